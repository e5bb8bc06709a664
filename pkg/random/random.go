// Package random provides the seeded random stream that drives puzzle
// generation.
//
// A [Source] is a single ordered stream: every jitter value and every tab
// direction of a puzzle is drawn from it in a fixed order, so two runs with the
// same non-zero seed and the same configuration produce identical puzzles.
// Callers own their Source and pass it explicitly; there is no package-level
// stream.
//
// A Source is not safe for concurrent use.
package random

import "math/rand/v2"

// pcgIncrement is mixed into the seed to derive the second PCG word.
const pcgIncrement = 0xdeadbeef

// Source is a seeded uniform and boolean generator.
type Source struct {
	rng   *rand.Rand
	seed  uint64
	draws int
}

// New returns a Source seeded with seed. A zero seed selects runtime entropy,
// making the stream non-reproducible.
func New(seed uint64) *Source {
	s := &Source{}
	s.Seed(seed)
	return s
}

// Seed restarts the stream. Seeds greater than zero replay deterministically;
// zero reseeds from runtime entropy.
func (s *Source) Seed(n uint64) {
	s.seed = n
	s.draws = 0
	if n == 0 {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		return
	}
	s.rng = rand.New(rand.NewPCG(n, n^pcgIncrement))
}

// Uniform returns a value uniformly distributed in [low, high).
func (s *Source) Uniform(low, high float64) float64 {
	s.draws++
	return low + (high-low)*s.rng.Float64()
}

// Bool returns true with probability one half.
func (s *Source) Bool() bool {
	s.draws++
	return s.rng.Float64() >= 0.5
}

// Uint64 returns a raw 64-bit value from the stream. It is used to pick a
// concrete seed for puzzles that were requested with seed zero.
func (s *Source) Uint64() uint64 {
	s.draws++
	return s.rng.Uint64()
}

// Draws reports how many values were taken since the last reseed.
func (s *Source) Draws() int { return s.draws }

// Deterministic reports whether the stream was seeded with a fixed seed.
func (s *Source) Deterministic() bool { return s.seed != 0 }

// maxSeed keeps generated seeds exact in JSON numbers and TOML integers.
const maxSeed = 1<<53 - 1

// NewSeed returns a fresh non-zero seed from runtime entropy.
func NewSeed() uint64 {
	src := New(0)
	for {
		if n := src.Uint64() & maxSeed; n != 0 {
			return n
		}
	}
}
