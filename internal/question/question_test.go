package question_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/angeloszaimis/question-paper/internal/question"
)

var _ = Describe("Question", func() {
	Describe("JSON decoding", func() {
		It("should accept numeric ids", func() {
			var q question.Question
			err := json.Unmarshal([]byte(`{"id": 7, "difficulty": "Easy", "marks": 5}`), &q)
			Expect(err).NotTo(HaveOccurred())
			Expect(q.ID).To(Equal(question.ID("7")))
			Expect(q.Difficulty).To(Equal("Easy"))
			Expect(q.Marks).To(Equal(5))
		})

		It("should accept string ids", func() {
			var q question.Question
			err := json.Unmarshal([]byte(`{"id": "q-7", "difficulty": "hard", "marks": 10}`), &q)
			Expect(err).NotTo(HaveOccurred())
			Expect(q.ID).To(Equal(question.ID("q-7")))
		})

		It("should reject object ids", func() {
			var q question.Question
			err := json.Unmarshal([]byte(`{"id": {"x": 1}, "difficulty": "hard", "marks": 10}`), &q)
			Expect(err).To(HaveOccurred())
		})

		It("should keep unknown fields in Extra", func() {
			var q question.Question
			err := json.Unmarshal([]byte(`{"id": 1, "difficulty": "easy", "marks": 5, "subject": "physics", "topic": "optics"}`), &q)
			Expect(err).NotTo(HaveOccurred())
			Expect(q.Extra).To(HaveKeyWithValue("subject", "physics"))
			Expect(q.Extra).To(HaveKeyWithValue("topic", "optics"))
			Expect(q.Extra).NotTo(HaveKey("marks"))
		})

		It("should leave Extra nil without unknown fields", func() {
			var q question.Question
			err := json.Unmarshal([]byte(`{"id": 1, "difficulty": "easy", "marks": 5}`), &q)
			Expect(err).NotTo(HaveOccurred())
			Expect(q.Extra).To(BeNil())
		})
	})

	Describe("JSON encoding", func() {
		It("should write descriptive and unknown fields back unchanged", func() {
			in := `{"id":1,"difficulty":"easy","marks":5,"question":"What is 2+2?","options":["3","4"],"subject":"maths"}`

			var q question.Question
			Expect(json.Unmarshal([]byte(in), &q)).To(Succeed())

			out, err := json.Marshal(q)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(MatchJSON(in))
		})

		It("should quote non-numeric ids", func() {
			out, err := json.Marshal(question.Question{ID: "abc", Difficulty: "easy", Marks: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(MatchJSON(`{"id":"abc","difficulty":"easy","marks":1}`))
		})

		DescribeTable("round trips records in their source shape",
			func(in string) {
				var q question.Question
				Expect(json.Unmarshal([]byte(in), &q)).To(Succeed())

				out, err := json.Marshal(q)
				Expect(err).NotTo(HaveOccurred())
				Expect(out).To(MatchJSON(in))
			},
			Entry("string id that looks numeric", `{"id":"42","difficulty":"easy","marks":5}`),
			Entry("numeric id", `{"id":42,"difficulty":"easy","marks":5}`),
			Entry("large numeric id", `{"id":12345678901234567890,"difficulty":"easy","marks":5}`),
			Entry("empty question text", `{"id":"42","difficulty":"easy","marks":5,"question":""}`),
			Entry("empty options", `{"id":1,"difficulty":"easy","marks":5,"options":[]}`),
		)
	})

	Describe("YAML decoding", func() {
		DescribeTable("keeps the id shape for JSON output",
			func(in, want string) {
				var q question.Question
				Expect(yaml.Unmarshal([]byte(in), &q)).To(Succeed())

				out, err := json.Marshal(q)
				Expect(err).NotTo(HaveOccurred())
				Expect(out).To(MatchJSON(want))
			},
			Entry("quoted numeric id", "id: \"42\"\ndifficulty: easy\nmarks: 5\n",
				`{"id":"42","difficulty":"easy","marks":5}`),
			Entry("plain numeric id", "id: 42\ndifficulty: easy\nmarks: 5\n",
				`{"id":42,"difficulty":"easy","marks":5}`),
			Entry("hex id", "id: 0x1F\ndifficulty: easy\nmarks: 5\n",
				`{"id":"0x1F","difficulty":"easy","marks":5}`),
			Entry("empty question text", "id: q1\ndifficulty: easy\nmarks: 5\nquestion: \"\"\nsubject: maths\n",
				`{"id":"q1","difficulty":"easy","marks":5,"question":"","subject":"maths"}`),
		)
	})

	DescribeTable("Validate",
		func(q question.Question, valid bool) {
			if valid {
				Expect(q.Validate()).To(Succeed())
			} else {
				Expect(q.Validate()).To(HaveOccurred())
			}
		},
		Entry("complete record", question.Question{ID: "1", Difficulty: "easy", Marks: 5}, true),
		Entry("missing id", question.Question{Difficulty: "easy", Marks: 5}, false),
		Entry("missing difficulty", question.Question{ID: "1", Marks: 5}, false),
		Entry("zero marks", question.Question{ID: "1", Difficulty: "easy"}, false),
		Entry("negative marks", question.Question{ID: "1", Difficulty: "easy", Marks: -2}, false),
	)

	Describe("TotalMarks", func() {
		It("should sum marks", func() {
			Expect(question.TotalMarks([]question.Question{{Marks: 5}, {Marks: 10}, {Marks: 2}})).To(Equal(17))
		})

		It("should be zero for no questions", func() {
			Expect(question.TotalMarks(nil)).To(Equal(0))
		})
	})
})
