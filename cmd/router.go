package main

import (
	"log/slog"
	"net/http"

	"github.com/angeloszaimis/question-paper/internal/handler"
	"github.com/angeloszaimis/question-paper/internal/healthcheck"
	"github.com/angeloszaimis/question-paper/internal/metrics"
	"github.com/angeloszaimis/question-paper/internal/question"
)

// setupRouter mounts /metrics only when a collector is given.
func setupRouter(log *slog.Logger, paperHandler *handler.PaperHandler, pool *question.Pool, metricsCollector *metrics.Collector, samplerKind string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/api/generate-question-paper", paperHandler)
	mux.HandleFunc("GET /health", healthcheck.Handler(pool, log))
	if metricsCollector != nil {
		mux.HandleFunc("GET /metrics", metricsCollector.Handler(samplerKind))
	}

	return mux
}
