package allocator_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/question-paper/internal/allocator"
)

var _ = Describe("Distribution", func() {
	Describe("JSON decoding", func() {
		DescribeTable("accepted bodies",
			func(body string, want allocator.Distribution) {
				var d allocator.Distribution
				Expect(json.Unmarshal([]byte(body), &d)).To(Succeed())
				Expect(d).To(Equal(want))
			},
			Entry("keeps key order", `{"hard": 30, "easy": 20, "medium": 50}`,
				dist(share("hard", 30), share("easy", 20), share("medium", 50))),
			Entry("fractional percentages", `{"easy": 33.5, "hard": 66.5}`,
				dist(share("easy", 33.5), share("hard", 66.5))),
			Entry("empty object", `{}`, allocator.Distribution{}),
			Entry("null", `null`, allocator.Distribution(nil)),
		)

		DescribeTable("rejected bodies",
			func(body string) {
				var d allocator.Distribution
				Expect(json.Unmarshal([]byte(body), &d)).NotTo(Succeed())
			},
			Entry("list", `[50, 50]`),
			Entry("number", `100`),
			Entry("string", `"easy"`),
			Entry("string percentage", `{"easy": "50"}`),
			Entry("object percentage", `{"easy": {"value": 50}}`),
			Entry("truncated object", `{"easy": 50`),
		)

		It("should keep key order inside a request", func() {
			var req struct {
				Distribution allocator.Distribution `json:"difficultyDistribution"`
			}
			body := `{"difficultyDistribution": {"medium": 10, "hard": 40, "easy": 50}}`
			Expect(json.Unmarshal([]byte(body), &req)).To(Succeed())
			Expect(req.Distribution).To(Equal(dist(share("medium", 10), share("hard", 40), share("easy", 50))))
		})
	})

	Describe("JSON encoding", func() {
		It("should write shares in order", func() {
			out, err := json.Marshal(dist(share("hard", 30), share("easy", 70)))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(Equal(`{"hard":30,"easy":70}`))
		})

		It("should write an empty object for no shares", func() {
			out, err := json.Marshal(allocator.Distribution(nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(Equal(`{}`))
		})

		It("should round trip", func() {
			in := dist(share("medium", 25.5), share("easy", 24.5), share("hard", 50))

			out, err := json.Marshal(in)
			Expect(err).NotTo(HaveOccurred())

			var back allocator.Distribution
			Expect(json.Unmarshal(out, &back)).To(Succeed())
			Expect(back).To(Equal(in))
		})
	})

	Describe("Sum", func() {
		It("should add all percentages", func() {
			Expect(dist(share("easy", 30), share("hard", 70)).Sum()).To(Equal(100.0))
		})
	})
})
