// SPDX-License-Identifier: MIT

// Package fatigue - RNG utilities for per-worker speed factors.
//
// Goals:
//   - Reproducibility: same seed ⇒ identical factors for every worker id.
//   - Independence: each worker draws from its own derived stream, so adding
//     a worker never shifts the factors of the others.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe; streams are created and consumed
//     during Scheduler construction only.
package fatigue

import (
	"math/rand"
	"time"
)

// rngFromSeed returns a deterministic *rand.Rand for seed.
func rngFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// baseSeed resolves the seed policy: explicit seed when configured, else wall clock.
func baseSeed(o options) int64 {
	if o.seeded {
		return o.seed
	}
	return time.Now().UnixNano()
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// using a SplitMix64-style finalizer, so neighbouring stream ids decorrelate.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// drawFactor draws worker id's factor uniformly from [lo, hi) using the
// stream derived from parent.
func drawFactor(parent int64, id int, lo, hi float64) float64 {
	rng := rngFromSeed(deriveSeed(parent, uint64(id)))
	f := lo + rng.Float64()*(hi-lo)
	if f >= hi { // guard the open upper bound against rounding
		f = lo
	}
	return f
}
