// Package allocator turns a requested total mark count and a difficulty
// percentage distribution into a concrete list of questions.
//
// For every difficulty, in distribution order, the allocator computes how
// many questions of average marks are needed to cover that difficulty's share
// of the total, clamps the count to what the pool holds, and samples that many
// questions without replacement:
//
//	alloc := allocator.New(logger, sampler.NewFactory(logger, sampler.KindShuffle, 0))
//	paper, err := alloc.Generate(pool, 100, allocator.Distribution{
//		{Difficulty: "easy", Percentage: 30},
//		{Difficulty: "medium", Percentage: 50},
//		{Difficulty: "hard", Percentage: 20},
//	})
//
// The result must add up to the requested total exactly. Because counts are
// integers and average marks are not, papers drawn from pools whose marks vary
// inside a difficulty can miss the total; Generate then returns an
// *AllocationError instead of an approximate paper. Bad input is reported as
// *ValidationError before any question is selected.
package allocator
