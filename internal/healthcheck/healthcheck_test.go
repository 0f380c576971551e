package healthcheck_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/question-paper/internal/healthcheck"
	"github.com/angeloszaimis/question-paper/internal/question"
)

var _ = Describe("Healthcheck", func() {
	var log *slog.Logger

	BeforeEach(func() {
		log = slog.New(slog.NewTextHandler(GinkgoWriter, nil))
	})

	Describe("Check", func() {
		It("should report questions per difficulty", func() {
			pool, err := question.NewPool([]question.Question{
				{ID: "1", Difficulty: "Easy", Marks: 5},
				{ID: "2", Difficulty: "easy", Marks: 5},
				{ID: "3", Difficulty: "hard", Marks: 10},
			})
			Expect(err).NotTo(HaveOccurred())

			report := healthcheck.Check(pool)
			Expect(report.Status).To(Equal(healthcheck.StatusOK))
			Expect(report.Questions).To(Equal(3))
			Expect(report.Difficulties).To(Equal(map[string]int{"easy": 2, "hard": 1}))
		})

		It("should flag an empty pool", func() {
			pool, err := question.NewPool(nil)
			Expect(err).NotTo(HaveOccurred())

			report := healthcheck.Check(pool)
			Expect(report.Status).To(Equal(healthcheck.StatusEmpty))
			Expect(report.Questions).To(BeZero())
		})
	})

	Describe("Handler", func() {
		It("should serve the report as JSON", func() {
			pool, err := question.NewPool([]question.Question{{ID: "1", Difficulty: "easy", Marks: 5}})
			Expect(err).NotTo(HaveOccurred())

			w := httptest.NewRecorder()
			healthcheck.Handler(pool, log)(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			Expect(w.Code).To(Equal(http.StatusOK))

			var report healthcheck.Report
			Expect(json.Unmarshal(w.Body.Bytes(), &report)).To(Succeed())
			Expect(report.Status).To(Equal("ok"))
			Expect(report.Difficulties).To(HaveKeyWithValue("easy", 1))
		})

		It("should answer 200 for an empty pool", func() {
			pool, err := question.NewPool(nil)
			Expect(err).NotTo(HaveOccurred())

			w := httptest.NewRecorder()
			healthcheck.Handler(pool, log)(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"status":"empty"`))
		})
	})
})
