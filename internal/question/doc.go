// Package question defines the question record and the read-only, difficulty
// indexed pool that papers are assembled from. Pools are loaded once from a
// JSON or YAML file and shared by reference afterwards.
package question
