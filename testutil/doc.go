// Package testutil provides deterministic input generators for tests and
// benchmarks.
//
// This package is intended for use in tests and benchmarks only.
//
// # Unique Words
//
//	words := testutil.Words(100_000, 5) // "aaaaa", "aaaab", ...
//
// # Random Workloads
//
//	rng := testutil.NewRNG(seed)
//	stream := rng.ZipfStream(words, 1_000_000, 1.2) // skewed, many repeats
package testutil
