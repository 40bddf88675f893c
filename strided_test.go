package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColMajorStrides(t *testing.T) {
	// Column-major: dimension 0 varies fastest.
	s := NewColMajor[float64]([]int{2, 3, 4})

	require.Equal(t, []int{1, 2, 6}, s.Strides())
	require.Equal(t, 24, s.Size())
	require.True(t, s.IsContiguous())
}

func TestStridedAtSet(t *testing.T) {
	s := NewColMajor[float64]([]int{2, 3})
	s.Set(7.5, 1, 2)

	require.Equal(t, 7.5, s.At(1, 2))
	require.Equal(t, 0.0, s.At(0, 0))
	// (1,2) in a 2x3 col-major array sits at flat offset 1 + 2*2.
	require.Equal(t, 7.5, s.data[5])
}

func TestStridedScalar(t *testing.T) {
	s := NewColMajor[float64](nil)
	require.Equal(t, 1, s.Size())
	require.Equal(t, 0, s.Rank())
	s.Set(3.0)
	require.Equal(t, 3.0, s.At())
}

func TestPermutedIsAView(t *testing.T) {
	s := NewColMajorRand[float64]([]int{2, 3, 4})
	v := s.Permuted([]int{2, 0, 1})

	require.Equal(t, []int{4, 2, 3}, v.Dims())
	require.Equal(t, []int{6, 1, 2}, v.Strides())
	require.False(t, v.IsContiguous())

	// Views share storage: elements line up through the permutation and
	// writes through the base are visible in the view.
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 4; k++ {
				require.Equal(t, s.At(i, j, k), v.At(k, i, j))
			}
		}
	}
	s.Set(42, 1, 2, 3)
	require.Equal(t, 42.0, v.At(3, 1, 2))
}

func TestPermutedIdentityStaysContiguous(t *testing.T) {
	s := NewColMajor[float64]([]int{2, 3})
	require.True(t, s.Permuted([]int{0, 1}).IsContiguous())
	require.False(t, s.Permuted([]int{1, 0}).IsContiguous())
}

func TestPermutedRejectsNonBijections(t *testing.T) {
	s := NewColMajor[float64]([]int{2, 3})

	require.Panics(t, func() { s.Permuted([]int{0, 0}) })
	require.Panics(t, func() { s.Permuted([]int{0, 2}) })
	require.Panics(t, func() { s.Permuted([]int{0}) })
}

func TestNewColMajorRandFillsValues(t *testing.T) {
	s := NewColMajorRand[float64]([]int{4, 4})
	nonzero := 0
	for _, v := range s.data {
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
		if v != 0 {
			nonzero++
		}
	}
	require.Greater(t, nonzero, 0)

	c := NewColMajorRand[complex128]([]int{4, 4})
	require.NotEqual(t, complex128(0), c.data[0]+c.data[1]+c.data[2])
}

func TestNewColMajorRejectsBadDims(t *testing.T) {
	require.Panics(t, func() { NewColMajor[float64]([]int{2, 0}) })
	require.Panics(t, func() { NewColMajor[float64]([]int{-1}) })
}
