package question

import (
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Pool is a read-only question catalog indexed by difficulty. It is built once
// and may be shared between goroutines.
type Pool struct {
	questions    []Question
	byDifficulty map[string][]Question
	difficulties []string
}

// NewPool validates the questions and indexes them by normalized difficulty.
// Question ids must be unique.
func NewPool(questions []Question) (*Pool, error) {
	p := &Pool{
		questions:    make([]Question, 0, len(questions)),
		byDifficulty: make(map[string][]Question),
	}

	seen := make(map[ID]int, len(questions))

	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}

		if first, ok := seen[q.ID]; ok {
			return nil, fmt.Errorf("question %d: %w", i, validation.Errors{
				"id": validation.NewError("validation_duplicate_id",
					fmt.Sprintf("duplicates the id of question %d", first)),
			})
		}
		seen[q.ID] = i

		level := q.Level()
		if _, ok := p.byDifficulty[level]; !ok {
			p.difficulties = append(p.difficulties, level)
		}

		p.questions = append(p.questions, q)
		p.byDifficulty[level] = append(p.byDifficulty[level], q)
	}

	sort.Strings(p.difficulties)
	return p, nil
}

// Len returns the number of questions in the pool.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.questions)
}

// All returns a copy of every question in load order.
func (p *Pool) All() []Question {
	if p == nil {
		return nil
	}
	return append([]Question(nil), p.questions...)
}

// ByDifficulty returns a copy of the questions whose difficulty matches label
// case-insensitively, in load order.
func (p *Pool) ByDifficulty(label string) []Question {
	if p == nil {
		return nil
	}
	return append([]Question(nil), p.byDifficulty[NormalizeDifficulty(label)]...)
}

// Difficulties returns the normalized difficulty labels present in the pool,
// sorted.
func (p *Pool) Difficulties() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.difficulties...)
}

// Counts returns the number of questions per normalized difficulty label.
func (p *Pool) Counts() map[string]int {
	counts := make(map[string]int)
	if p == nil {
		return counts
	}

	for level, qs := range p.byDifficulty {
		counts[level] = len(qs)
	}
	return counts
}
