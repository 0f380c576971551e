package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angeloszaimis/question-paper/internal/allocator"
	"github.com/angeloszaimis/question-paper/internal/metrics"
	"github.com/angeloszaimis/question-paper/internal/question"
)

const maxBodyBytes = 1 << 20

const (
	kindValidation = "validation"
	kindAllocation = "allocation"
)

type PaperRequest struct {
	TotalMarks   int                    `json:"totalMarks"`
	Distribution allocator.Distribution `json:"difficultyDistribution"`
}

type PaperResponse struct {
	Success             bool                   `json:"success"`
	PaperID             string                 `json:"paperId"`
	Distribution        allocator.Distribution `json:"difficultyDistribution"`
	QuestionPaper       []question.Question    `json:"questionPaper"`
	TotalMarksGenerated int                    `json:"totalMarksGenerated"`
	Skipped             []string               `json:"skipped,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
}

// Generator produces papers; *allocator.Allocator satisfies it.
type Generator interface {
	Generate(pool *question.Pool, totalMarks int, dist allocator.Distribution) (*allocator.Paper, error)
}

type PaperHandler struct {
	logger           *slog.Logger
	generator        Generator
	pool             *question.Pool
	metricsCollector *metrics.Collector
}

func NewPaperHandler(logger *slog.Logger, generator Generator, pool *question.Pool, collector *metrics.Collector) *PaperHandler {
	return &PaperHandler{
		logger:           logger,
		generator:        generator,
		pool:             pool,
		metricsCollector: collector,
	}
}

func (h *PaperHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clientIP := extractClientIP(r)

	h.logger.Info("Received request",
		slog.String("from", clientIP),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("user_agent", r.UserAgent()))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
		return
	}

	h.metricsCollector.Emit(metrics.MetricEvent{Type: metrics.EventPaperRequested})

	var req PaperRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		h.logger.Warn("Malformed request body",
			slog.String("client", clientIP),
			slog.Any("err", err))
		h.metricsCollector.Emit(metrics.MetricEvent{Type: metrics.EventValidationFailed})
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "malformed request body", Kind: kindValidation})
		return
	}

	start := time.Now()
	paper, err := h.generator.Generate(h.pool, req.TotalMarks, req.Distribution)
	duration := time.Since(start)

	if err != nil {
		h.writeError(w, clientIP, err, duration)
		return
	}

	h.emitPaper(paper, duration)

	paperID := uuid.NewString()
	h.logger.Info("Generated question paper",
		slog.String("client", clientIP),
		slog.String("paper_id", paperID),
		slog.Int("questions", len(paper.Questions)),
		slog.Int("total_marks", paper.TotalMarks),
		slog.Duration("duration", duration))

	writeJSON(w, http.StatusOK, PaperResponse{
		Success:             true,
		PaperID:             paperID,
		Distribution:        req.Distribution,
		QuestionPaper:       paper.Questions,
		TotalMarksGenerated: paper.TotalMarks,
		Skipped:             paper.Skipped,
	})
}

func (h *PaperHandler) writeError(w http.ResponseWriter, clientIP string, err error, duration time.Duration) {
	var verr *allocator.ValidationError
	var aerr *allocator.AllocationError

	switch {
	case errors.As(err, &verr):
		h.logger.Warn("Rejected paper request",
			slog.String("client", clientIP),
			slog.String("field", verr.Field),
			slog.Any("err", err))
		h.metricsCollector.Emit(metrics.MetricEvent{Type: metrics.EventValidationFailed})
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Kind: kindValidation})

	case errors.As(err, &aerr):
		h.logger.Warn("Could not allocate paper",
			slog.String("client", clientIP),
			slog.Int("requested", aerr.Requested),
			slog.Int("generated", aerr.Generated))
		h.metricsCollector.Emit(metrics.MetricEvent{Type: metrics.EventAllocationFailed, Duration: duration})
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: aerr.Error(), Kind: kindAllocation})

	default:
		h.logger.Error("Failed to generate paper",
			slog.String("client", clientIP),
			slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
	}
}

func (h *PaperHandler) emitPaper(paper *allocator.Paper, duration time.Duration) {
	h.metricsCollector.Emit(metrics.MetricEvent{
		Type:     metrics.EventPaperGenerated,
		Duration: duration,
		Marks:    paper.TotalMarks,
	})

	perDifficulty := make(map[string]int)
	for _, q := range paper.Questions {
		perDifficulty[q.Level()]++
	}
	for difficulty, count := range perDifficulty {
		h.metricsCollector.Emit(metrics.MetricEvent{
			Type:       metrics.EventQuestionsSelected,
			Difficulty: difficulty,
			Questions:  count,
		})
	}

	for _, difficulty := range paper.Skipped {
		h.metricsCollector.Emit(metrics.MetricEvent{
			Type:       metrics.EventDifficultySkipped,
			Difficulty: question.NormalizeDifficulty(difficulty),
		})
	}
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
