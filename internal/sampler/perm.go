package sampler

import (
	"math/rand/v2"

	"github.com/angeloszaimis/question-paper/internal/question"
)

// permSampler draws a random permutation of candidate indices and takes the
// first n of them.
type permSampler struct {
	rng *rand.Rand
}

func (p *permSampler) Sample(candidates []question.Question, n int) []question.Question {
	n = clamp(n, len(candidates))

	picked := make([]question.Question, 0, n)
	for _, idx := range p.rng.Perm(len(candidates))[:n] {
		picked = append(picked, candidates[idx])
	}

	return picked
}

func NewPermSampler(rng *rand.Rand) Sampler {
	return &permSampler{rng: rng}
}
