// Package rng provides the single seeded random stream threaded through every
// pipeline stage that makes a random choice.
//
// A run owns exactly one Stream. Stages receive it by pointer and draw from it
// in a fixed order, so the same seed, inputs, and parameters always reproduce
// the same selection, ordering, gap, and effect decisions. Stages must never
// construct their own generator.
package rng

import (
	"math/rand/v2"
)

// pcgIncrement is the fixed PCG stream selector. Only the seed varies between
// runs.
const pcgIncrement = 0x9e3779b97f4a7c15

// Stream is a deterministic pseudo-random source. It is not safe for
// concurrent use; parallel stages must not draw from it.
type Stream struct {
	seed int64
	r    *rand.Rand
}

// New returns a stream seeded with seed.
func New(seed int64) *Stream {
	return &Stream{
		seed: seed,
		r:    rand.New(rand.NewPCG(uint64(seed), pcgIncrement)),
	}
}

// NewSeed derives a fresh seed for runs that did not request one. The value
// is kept below 2^31 so it is easy to read back from a manifest.
func NewSeed() int64 {
	return rand.Int64N(1 << 31)
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() int64 { return s.seed }

// Float64 returns a uniform value in [0, 1).
func (s *Stream) Float64() float64 { return s.r.Float64() }

// Chance reports whether a single draw falls below probability. It always
// consumes one draw so the stream position does not depend on the outcome.
func (s *Stream) Chance(probability float64) bool {
	return s.r.Float64() < probability
}

// IntN returns a uniform value in [0, n). n must be positive.
func (s *Stream) IntN(n int) int { return s.r.IntN(n) }

// IntBetween returns a uniform integer in the inclusive range [lo, hi].
func (s *Stream) IntBetween(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.r.IntN(hi-lo+1)
}

// FloatBetween returns a uniform value in [lo, hi]. It consumes one draw even
// when lo == hi.
func (s *Stream) FloatBetween(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}

// Weighted returns an index chosen with probability proportional to weights.
// Non-positive totals fall back to a uniform choice.
func (s *Stream) Weighted(weights []float64) int {
	if len(weights) == 0 {
		return 0
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return s.r.IntN(len(weights))
	}
	target := s.r.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if target < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Uint64 returns a uniform 64-bit value.
func (s *Stream) Uint64() uint64 { return s.r.Uint64() }

// Shuffle permutes items in place.
func Shuffle[T any](s *Stream, items []T) {
	s.r.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// Pick returns a uniformly chosen element. items must not be empty.
func Pick[T any](s *Stream, items []T) T {
	return items[s.r.IntN(len(items))]
}
