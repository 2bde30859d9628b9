package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNGDeterministic(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42, 123213213, math.MaxUint64} {
		a := NewRNG(seed)
		b := NewRNG(seed)
		for i := 0; i < 200; i++ {
			require.Equal(t, a.Range(-50, 50), b.Range(-50, 50), "seed %d draw %d", seed, i)
		}
	}
}

func TestRNGReseedRestartsStream(t *testing.T) {
	r := NewRNG(7)
	first := make([]uint64, 16)
	for i := range first {
		first[i] = r.Uint64()
	}

	r.Seed(7)
	for i := range first {
		assert.Equal(t, first[i], r.Uint64(), "draw %d", i)
	}
}

func TestRNGDistinctSeedsDiverge(t *testing.T) {
	pairs := [][2]uint64{{1, 2}, {42, 43}, {0, math.MaxUint64}}
	for _, p := range pairs {
		a := NewRNG(p[0])
		b := NewRNG(p[1])
		same := true
		for i := 0; i < 100; i++ {
			if a.Range(0, 1000) != b.Range(0, 1000) {
				same = false
			}
		}
		assert.False(t, same, "seeds %d and %d produced identical sequences", p[0], p[1])
	}
}

func TestRNGRangeBounds(t *testing.T) {
	r := NewRNG(99)
	cases := []struct{ min, max int }{
		{0, 0},
		{0, 1},
		{-3, 3},
		{10, 17},
		{-1000, -990},
		{0, 1 << 40},
	}
	for _, c := range cases {
		for i := 0; i < 2000; i++ {
			v := r.Range(c.min, c.max)
			require.GreaterOrEqual(t, v, c.min)
			require.LessOrEqual(t, v, c.max)
		}
	}
}

func TestRNGRangeSingleValue(t *testing.T) {
	r := NewRNG(5)
	for _, v := range []int{-7, 0, 1, 99999} {
		for i := 0; i < 50; i++ {
			require.Equal(t, v, r.Range(v, v))
		}
	}
}

func TestRNGRangeFullWidth(t *testing.T) {
	r := NewRNG(11)
	assert.NotPanics(t, func() {
		for i := 0; i < 10; i++ {
			r.Range(math.MinInt, math.MaxInt)
		}
	})
}

func TestRNGRangePanicsOnInvertedBounds(t *testing.T) {
	r := NewRNG(1)
	assert.Panics(t, func() { r.Range(3, 2) })
}

func TestRNGRangeUniform(t *testing.T) {
	r := NewRNG(2024)
	const (
		buckets = 6
		draws   = 60000
	)
	var counts [buckets]int
	for i := 0; i < draws; i++ {
		counts[r.Range(0, buckets-1)]++
	}
	expected := float64(draws) / buckets
	for i, c := range counts {
		assert.InDelta(t, expected, float64(c), expected*0.05, "bucket %d", i)
	}
}

func TestRNGSourceAdvancesStream(t *testing.T) {
	a := NewRNG(3)
	b := NewRNG(3)

	src := a.Source()
	src.Uint64()
	b.Uint64()

	assert.Equal(t, b.Uint64(), a.Uint64())
}
