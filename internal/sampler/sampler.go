package sampler

import (
	"log/slog"
	"math/rand/v2"

	"github.com/angeloszaimis/question-paper/internal/question"
)

const (
	KindShuffle = "shuffle"
	KindPerm    = "perm"
)

// Sampler picks n distinct questions from candidates. Implementations never
// modify candidates and clamp n to [0, len(candidates)].
type Sampler interface {
	Sample(candidates []question.Question, n int) []question.Question
}

// Factory returns a fresh Sampler. The allocator draws one per generation so
// no random state is shared between concurrent calls.
type Factory func() Sampler

// NewFactory builds a Factory for the given kind. A zero seed seeds every
// sampler from the global generator; any other seed makes every sampler
// produce the same sequence.
func NewFactory(logger *slog.Logger, kind string, seed uint64) Factory {
	newRand := func() *rand.Rand {
		if seed == 0 {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		return rand.New(rand.NewPCG(seed, seed))
	}

	if Resolve(kind) != kind {
		logger.Warn("Unknown sampler, defaulting to shuffle", slog.String("requested", kind))
	}

	if Resolve(kind) == KindPerm {
		return func() Sampler { return NewPermSampler(newRand()) }
	}
	return func() Sampler { return NewShuffleSampler(newRand()) }
}

// Resolve returns the sampler kind NewFactory builds for the requested name.
func Resolve(kind string) string {
	switch kind {
	case KindShuffle, KindPerm:
		return kind
	default:
		return KindShuffle
	}
}

func clamp(n, size int) int {
	if n < 0 {
		return 0
	}
	if n > size {
		return size
	}
	return n
}
