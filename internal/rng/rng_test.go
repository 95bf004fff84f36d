package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_Deterministic(t *testing.T) {
	a := New(9527)
	b := New(9527)
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.next(), b.next(), "sequence diverged at step %d", i)
	}
}

func TestStream_SeedTruncation(t *testing.T) {
	// Seeds that agree in their low 32 bits produce the same stream.
	a := New(7)
	b := New(7 + (1 << 32))
	assert.Equal(t, a.next(), b.next())
}

func TestStream_ZeroSeedRemapped(t *testing.T) {
	z := New(0)
	one := New(1)
	assert.Equal(t, one.next(), z.next())
	// And the stream must not get stuck at zero.
	assert.NotZero(t, z.next())
}

func TestStream_Float64Range(t *testing.T) {
	s := New(42)
	for i := 0; i < 10000; i++ {
		f := s.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
	}
}

func TestStream_IntnBounds(t *testing.T) {
	s := New(1234)
	seen := make(map[int]bool)
	for i := 0; i < 5000; i++ {
		v := s.Intn(7)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 7)
		seen[v] = true
	}
	// A few thousand draws should hit every bucket of a 7-way split.
	assert.Len(t, seen, 7)
}

func TestStream_IntnPanicsOnNonPositive(t *testing.T) {
	s := New(1)
	assert.Panics(t, func() { s.Intn(0) })
	assert.Panics(t, func() { s.Intn(-3) })
}

func TestStream_ShuffleIsPermutation(t *testing.T) {
	s := New(99)
	vals := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	s.Shuffle(len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })

	seen := make(map[int]bool)
	for _, v := range vals {
		seen[v] = true
	}
	assert.Len(t, seen, 10)
}
