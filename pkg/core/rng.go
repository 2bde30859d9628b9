package core

import (
	"math"
	"math/bits"
	"math/rand/v2"
)

// RNG is a seeded xoshiro256** stream used for all procedural generation.
// Two RNGs seeded with the same value produce identical sequences.
type RNG struct {
	s [4]uint64
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed uint64) *RNG {
	r := &RNG{}
	r.Seed(seed)
	return r
}

// Seed resets the stream. The seed is expanded into the four state words with
// splitmix64 so adjacent seeds yield uncorrelated streams.
func (r *RNG) Seed(seed uint64) {
	z := seed + 0x9e3779b97f4a7c15
	for i := range r.s {
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		r.s[i] = z ^ (z >> 31)
	}
}

// Uint64 returns the next value in the stream. It makes RNG a rand.Source.
func (r *RNG) Uint64() uint64 {
	s := &r.s
	result := bits.RotateLeft64(s[1]*5, 7) * 9
	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t
	s[3] = bits.RotateLeft64(s[3], 45)

	return result
}

// Range returns an unbiased integer in [min, max]. Draws at or above the
// largest multiple of the range width are rejected and redrawn.
func (r *RNG) Range(min, max int) int {
	if min > max {
		panic("core: RNG.Range called with min > max")
	}

	width := uint64(max-min) + 1
	if width == 0 {
		return int(r.Uint64())
	}

	threshold := math.MaxUint64 - math.MaxUint64%width
	n := r.Uint64()
	for n >= threshold {
		n = r.Uint64()
	}
	return int(n%width) + min
}

// Source exposes the stream through math/rand/v2 for advanced use. Values
// drawn from the returned Rand advance this RNG.
func (r *RNG) Source() *rand.Rand { return rand.New(r) }
