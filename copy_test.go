package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopyIntoScatteredView(t *testing.T) {
	src := NewColMajorRand[float64]([]int{2, 3, 4})
	view := src.Permuted([]int{2, 0, 1})
	require.False(t, view.IsContiguous())

	dst := NewColMajor[float64](view.Dims())
	require.NoError(t, CopyInto(dst, view))
	require.True(t, dst.IsContiguous())

	forEachIndex(view.Dims(), func(idx []int) {
		require.Equal(t, view.At(idx...), dst.At(idx...))
	})
}

func TestCopyIntoRankOne(t *testing.T) {
	src := NewColMajorRand[float64]([]int{7})
	dst := NewColMajor[float64]([]int{7})

	require.NoError(t, CopyInto(dst, src))
	for i := 0; i < 7; i++ {
		require.Equal(t, src.At(i), dst.At(i))
	}
}

func TestCopyIntoScalar(t *testing.T) {
	src := NewColMajor[float64](nil)
	src.Set(9.0)
	dst := NewColMajor[float64](nil)

	require.NoError(t, CopyInto(dst, src))
	require.Equal(t, 9.0, dst.At())
}

func TestCopyIntoComplex(t *testing.T) {
	src := NewColMajorRand[complex128]([]int{3, 2})
	view := src.Permuted([]int{1, 0})
	dst := NewColMajor[complex128](view.Dims())

	require.NoError(t, CopyInto(dst, view))
	forEachIndex(view.Dims(), func(idx []int) {
		require.Equal(t, view.At(idx...), dst.At(idx...))
	})
}

func TestCopyIntoErrors(t *testing.T) {
	t.Run("dims mismatch", func(t *testing.T) {
		src := NewColMajor[float64]([]int{2, 3})
		dst := NewColMajor[float64]([]int{3, 2})
		require.Error(t, CopyInto(dst, src))
	})

	t.Run("rank mismatch", func(t *testing.T) {
		src := NewColMajor[float64]([]int{2, 3})
		dst := NewColMajor[float64]([]int{6})
		require.Error(t, CopyInto(dst, src))
	})

	t.Run("non-contiguous destination", func(t *testing.T) {
		src := NewColMajor[float64]([]int{2, 3})
		dst := NewColMajor[float64]([]int{3, 2}).Permuted([]int{1, 0})
		require.Error(t, CopyInto(dst, src))
	})
}
