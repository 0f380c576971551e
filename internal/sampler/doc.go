// Package sampler implements sample-without-replacement strategies used to pick
// questions for a difficulty band:
//
//   - Shuffle: Scrambles a copy of the candidates and keeps the leading n
//   - Perm: Takes the first n indices of a random permutation
//
// Samplers wrap a caller-supplied *rand.Rand, so a fixed seed gives
// reproducible papers. A Sampler is not safe for concurrent use; use a
// Factory to get one per generation.
package sampler
