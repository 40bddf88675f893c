package main

import (
	"fmt"
	"math/rand"
)

// Element is the set of scalar types a benchmark instance can carry.
// Instance files declare either real or complex double precision.
type Element interface {
	float64 | complex128
}

// Strided is a multi-dimensional array over a flat backing slice with an
// explicit stride per dimension. The storage convention is column-major:
// dimension 0 varies fastest in memory.
//
// A Strided value is either owned storage (freshly allocated, contiguous)
// or a view into another array's storage (for example after Permuted).
// Views share the backing slice; no operation here moves element data.
//
// Strided is not safe for concurrent use.
type Strided[T Element] struct {
	data    []T
	dims    []int
	strides []int
	offset  int
}

// colMajorStrides computes the contiguous column-major strides for dims:
// stride[0] = 1, stride[i] = stride[i-1] * dims[i-1].
func colMajorStrides(dims []int) []int {
	strides := make([]int, len(dims))
	acc := 1
	for i, d := range dims {
		strides[i] = acc
		acc *= d
	}
	return strides
}

// NewColMajor creates a zero-initialized contiguous column-major array.
// Panics on non-positive dimensions; an invalid shape is a programmer
// error, not a runtime condition.
func NewColMajor[T Element](dims []int) *Strided[T] {
	size := 1
	for i, d := range dims {
		if d <= 0 {
			panic(fmt.Sprintf("strided: dims[%d] must be positive, got %d", i, d))
		}
		size *= d
	}

	dimsCopy := make([]int, len(dims))
	copy(dimsCopy, dims)

	return &Strided[T]{
		data:    make([]T, size),
		dims:    dimsCopy,
		strides: colMajorStrides(dimsCopy),
	}
}

// NewColMajorRand creates a contiguous column-major array filled with
// uniform random values in [0, 1). Complex elements get independent real
// and imaginary parts.
func NewColMajorRand[T Element](dims []int) *Strided[T] {
	s := NewColMajor[T](dims)
	switch data := any(s.data).(type) {
	case []float64:
		for i := range data {
			data[i] = rand.Float64()
		}
	case []complex128:
		for i := range data {
			data[i] = complex(rand.Float64(), rand.Float64())
		}
	}
	return s
}

// Dims returns a copy of the array's dimension sizes.
func (s *Strided[T]) Dims() []int {
	dims := make([]int, len(s.dims))
	copy(dims, s.dims)
	return dims
}

// Strides returns a copy of the array's per-dimension strides.
func (s *Strided[T]) Strides() []int {
	strides := make([]int, len(s.strides))
	copy(strides, s.strides)
	return strides
}

// Rank returns the number of dimensions.
func (s *Strided[T]) Rank() int {
	return len(s.dims)
}

// Size returns the total number of elements.
func (s *Strided[T]) Size() int {
	size := 1
	for _, d := range s.dims {
		size *= d
	}
	return size
}

// At returns the element at the given indices. Panics on rank mismatch
// or out-of-bounds access.
func (s *Strided[T]) At(indices ...int) T {
	return s.data[s.flatIndex(indices)]
}

// Set stores value at the given indices. Panics on invalid indices.
func (s *Strided[T]) Set(value T, indices ...int) {
	s.data[s.flatIndex(indices)] = value
}

func (s *Strided[T]) flatIndex(indices []int) int {
	if len(indices) != len(s.dims) {
		panic(fmt.Sprintf("strided: expected %d indices, got %d", len(s.dims), len(indices)))
	}
	idx := s.offset
	for i, ix := range indices {
		if ix < 0 || ix >= s.dims[i] {
			panic(fmt.Sprintf("strided: index[%d]=%d out of bounds [0,%d)", i, ix, s.dims[i]))
		}
		idx += ix * s.strides[i]
	}
	return idx
}

// IsContiguous reports whether the array's strides are exactly the
// contiguous column-major strides for its dims.
func (s *Strided[T]) IsContiguous() bool {
	want := colMajorStrides(s.dims)
	for i := range want {
		if s.strides[i] != want[i] {
			return false
		}
	}
	return true
}

// Permuted returns a view with dimensions reordered by perm: dimension i
// of the view is dimension perm[i] of s. The view shares backing storage
// with s; only dims and strides are rearranged, so a permuted view of a
// contiguous array generally has scattered strides.
//
// Panics unless perm is a bijection on 0..Rank()-1.
func (s *Strided[T]) Permuted(perm []int) *Strided[T] {
	if len(perm) != len(s.dims) {
		panic(fmt.Sprintf("strided: permutation length %d does not match rank %d", len(perm), len(s.dims)))
	}
	seen := make([]bool, len(perm))
	dims := make([]int, len(perm))
	strides := make([]int, len(perm))
	for i, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			panic(fmt.Sprintf("strided: invalid permutation %v", perm))
		}
		seen[p] = true
		dims[i] = s.dims[p]
		strides[i] = s.strides[p]
	}
	return &Strided[T]{
		data:    s.data,
		dims:    dims,
		strides: strides,
		offset:  s.offset,
	}
}

// contiguousData returns the backing slice of a contiguous array,
// trimmed to exactly Size() elements. Panics if called on a
// non-contiguous view; callers canonicalize first.
func (s *Strided[T]) contiguousData() []T {
	if !s.IsContiguous() {
		panic("strided: contiguousData on non-contiguous view")
	}
	return s.data[s.offset : s.offset+s.Size()]
}

// String returns a short description for debugging.
func (s *Strided[T]) String() string {
	return fmt.Sprintf("Strided(dims=%v, strides=%v, size=%d)", s.dims, s.strides, s.Size())
}
