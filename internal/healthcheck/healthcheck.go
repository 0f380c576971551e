package healthcheck

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/angeloszaimis/question-paper/internal/question"
)

const (
	StatusOK    = "ok"
	StatusEmpty = "empty"
)

type Report struct {
	Status       string         `json:"status"`
	Questions    int            `json:"questions"`
	Difficulties map[string]int `json:"difficulties"`
}

// Check reports the pool's readiness. An empty pool is a valid, if degraded,
// state and is reported as StatusEmpty.
func Check(pool *question.Pool) Report {
	report := Report{
		Status:       StatusOK,
		Questions:    pool.Len(),
		Difficulties: pool.Counts(),
	}

	if report.Questions == 0 {
		report.Status = StatusEmpty
	}

	return report
}

// Handler serves the pool report at the health endpoint. It always answers
// 200 while the process is up.
func Handler(pool *question.Pool, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := Check(pool)

		if report.Status != StatusOK {
			logger.Warn("Health check on empty pool",
				slog.String("from", r.RemoteAddr))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
