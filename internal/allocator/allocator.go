package allocator

import (
	"log/slog"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/angeloszaimis/question-paper/internal/question"
	"github.com/angeloszaimis/question-paper/internal/sampler"
)

// Paper is a generated question paper. Questions are grouped by difficulty in
// distribution order.
type Paper struct {
	Questions  []question.Question
	TotalMarks int
	// Skipped lists requested difficulties that had no questions in the pool.
	Skipped []string
}

// Allocator assembles papers from a question pool. It holds no per-call
// state and is safe for concurrent use.
type Allocator struct {
	logger     *slog.Logger
	newSampler sampler.Factory
}

func New(logger *slog.Logger, newSampler sampler.Factory) *Allocator {
	return &Allocator{
		logger:     logger,
		newSampler: newSampler,
	}
}

// quota is the planned selection for one share.
type quota struct {
	averageMarks float64
	desired      int
	actual       int
	marks        float64
}

func planQuota(share Share, totalMarks int, candidates []question.Question) quota {
	average := float64(question.TotalMarks(candidates)) / float64(len(candidates))
	desired := int(math.Ceil(share.Percentage / 100 * float64(totalMarks) / average))
	actual := min(desired, len(candidates))

	return quota{
		averageMarks: average,
		desired:      desired,
		actual:       actual,
		marks:        float64(actual) * average,
	}
}

// Generate selects questions from pool so that their marks add up to
// totalMarks, splitting marks between difficulties by dist.
//
// An empty pool yields an empty paper. A difficulty with no questions is
// skipped. If the selection does not hit totalMarks exactly the call fails
// with *AllocationError; no top-up or trimming is attempted.
func (a *Allocator) Generate(pool *question.Pool, totalMarks int, dist Distribution) (*Paper, error) {
	if err := validateRequest(totalMarks, dist); err != nil {
		return nil, err
	}

	paper := &Paper{Questions: []question.Question{}}

	if pool.Len() == 0 {
		a.logger.Warn("No questions available in the pool")
		return paper, nil
	}

	pick := a.newSampler()
	remaining := float64(totalMarks)

	for _, share := range dist {
		candidates := pool.ByDifficulty(share.Difficulty)
		if len(candidates) == 0 {
			a.logger.Warn("No questions found for difficulty",
				slog.String("difficulty", share.Difficulty))
			paper.Skipped = append(paper.Skipped, share.Difficulty)
			continue
		}

		q := planQuota(share, totalMarks, candidates)
		adjusted := math.Min(remaining, q.marks)

		paper.Questions = append(paper.Questions, pick.Sample(candidates, q.actual)...)
		remaining -= adjusted

		a.logger.Debug("Allocated difficulty",
			slog.String("difficulty", share.Difficulty),
			slog.Float64("percentage", share.Percentage),
			slog.Float64("average_marks", q.averageMarks),
			slog.Int("desired", q.desired),
			slog.Int("selected", q.actual),
			slog.Float64("remaining_marks", remaining))

		if remaining <= 0 {
			break
		}
	}

	paper.TotalMarks = question.TotalMarks(paper.Questions)
	if paper.TotalMarks != totalMarks {
		return nil, &AllocationError{Requested: totalMarks, Generated: paper.TotalMarks}
	}

	return paper, nil
}

func validateRequest(totalMarks int, dist Distribution) error {
	if err := validation.Validate(totalMarks, validation.Required, validation.Min(1)); err != nil {
		return &ValidationError{
			Field:   "totalMarks",
			Message: "totalMarks must be a positive integer",
			Err:     err,
		}
	}

	if err := dist.Validate(); err != nil {
		return &ValidationError{
			Field:   "distribution",
			Message: err.Error(),
			Err:     err,
		}
	}

	return nil
}
