package sampler

import (
	"math/rand/v2"

	"github.com/angeloszaimis/question-paper/internal/question"
)

// shuffleSampler scrambles a copy of the candidates and keeps the first n.
type shuffleSampler struct {
	rng *rand.Rand
}

func (s *shuffleSampler) Sample(candidates []question.Question, n int) []question.Question {
	n = clamp(n, len(candidates))
	if n == 0 {
		return []question.Question{}
	}

	shuffled := append([]question.Question(nil), candidates...)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[:n]
}

func NewShuffleSampler(rng *rand.Rand) Sampler {
	return &shuffleSampler{rng: rng}
}
