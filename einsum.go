package main

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/blas/cblas128"
)

// Einsum2 contracts two strided operands into a fresh array whose
// dimensions follow outIDs. The operand layouts may be arbitrarily
// scattered; the engine brings each to canonical contiguous order
// (copying only when the canonical view is not already contiguous),
// reduces the contraction to one GEMM per batch slice, and finally
// permute-copies the result when the requested output order differs
// from the canonical one.
//
// outIDs must name exactly the kept labels: every shared label present
// in outIDs is a batch dim, every shared label absent is summed, and
// every unshared label must appear in outIDs.
func Einsum2[T Element](left, right *Strided[T], leftIDs, rightIDs, outIDs []rune) (*Strided[T], error) {
	if len(leftIDs) != left.Rank() {
		return nil, errors.Errorf("left operand has rank %d but %d labels", left.Rank(), len(leftIDs))
	}
	if len(rightIDs) != right.Rank() {
		return nil, errors.Errorf("right operand has rank %d but %d labels", right.Rank(), len(rightIDs))
	}

	c, err := deriveCanonical(leftIDs, rightIDs, outIDs)
	if err != nil {
		return nil, err
	}

	sizes := make(map[rune]int, len(leftIDs)+len(rightIDs))
	for i, id := range leftIDs {
		sizes[id] = left.dims[i]
	}
	for i, id := range rightIDs {
		if s, ok := sizes[id]; ok && s != right.dims[i] {
			return nil, errors.Errorf("label %q has size %d in the left operand but %d in the right",
				string(id), s, right.dims[i])
		}
		sizes[id] = right.dims[i]
	}

	m := groupSize(c.leftFree, sizes)
	k := groupSize(c.contracted, sizes)
	n := groupSize(c.rightFree, sizes)
	batch := groupSize(c.batch, sizes)

	leftCanon, err := canonicalized(left, c.leftPerm)
	if err != nil {
		return nil, err
	}
	rightCanon, err := canonicalized(right, c.rightPerm)
	if err != nil {
		return nil, err
	}

	outCanon := NewColMajor[T](groupDims(c.canonOut, sizes))
	gemmBatched(m, n, k, batch,
		leftCanon.contiguousData(), rightCanon.contiguousData(), outCanon.contiguousData())

	if runesEqual(outIDs, c.canonOut) {
		return outCanon, nil
	}

	// Re-express the canonical result in the requested dimension order.
	outPerm := make([]int, len(outIDs))
	canonPos := make(map[rune]int, len(c.canonOut))
	for i, id := range c.canonOut {
		canonPos[id] = i
	}
	for i, id := range outIDs {
		outPerm[i] = canonPos[id]
	}
	view := outCanon.Permuted(outPerm)
	dst := NewColMajor[T](view.Dims())
	if err := CopyInto(dst, view); err != nil {
		return nil, err
	}
	return dst, nil
}

// canonicalized returns x in canonical dimension order as contiguous
// storage. When the permuted view is already contiguous (for example
// operands pre-packed by the compute-only probe) no copy happens; the
// engine performs no large data movement in that case.
func canonicalized[T Element](x *Strided[T], perm []int) (*Strided[T], error) {
	view := x.Permuted(perm)
	if view.IsContiguous() {
		return view, nil
	}
	dst := NewColMajor[T](view.Dims())
	if err := CopyInto(dst, view); err != nil {
		return nil, err
	}
	return dst, nil
}

// gemmBatched multiplies batch pairs of canonical column-major slices:
// for each batch index, C (m x n) = A (m x k) * B (k x n).
//
// gonum's blas64/cblas128 interfaces are row-major, so each column-major
// slice is presented as its row-major transpose and the product is taken
// in swapped order: C_col = A_col * B_col  <=>  C_row^T = B_row^T * A_row^T.
// No element moves; only the descriptor differs.
func gemmBatched[T Element](m, n, k, batch int, a, b, c []T) {
	switch cData := any(c).(type) {
	case []float64:
		aData := any(a).([]float64)
		bData := any(b).([]float64)
		for bi := 0; bi < batch; bi++ {
			av := blas64.General{Rows: k, Cols: m, Stride: m, Data: aData[bi*m*k : (bi+1)*m*k]}
			bv := blas64.General{Rows: n, Cols: k, Stride: k, Data: bData[bi*k*n : (bi+1)*k*n]}
			cv := blas64.General{Rows: n, Cols: m, Stride: m, Data: cData[bi*m*n : (bi+1)*m*n]}
			blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, bv, av, 0, cv)
		}
	case []complex128:
		aData := any(a).([]complex128)
		bData := any(b).([]complex128)
		for bi := 0; bi < batch; bi++ {
			av := cblas128.General{Rows: k, Cols: m, Stride: m, Data: aData[bi*m*k : (bi+1)*m*k]}
			bv := cblas128.General{Rows: n, Cols: k, Stride: k, Data: bData[bi*k*n : (bi+1)*k*n]}
			cv := cblas128.General{Rows: n, Cols: m, Stride: m, Data: cData[bi*m*n : (bi+1)*m*n]}
			cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, bv, av, 0, cv)
		}
	}
}

// groupSize is the element count spanned by a label group.
func groupSize(ids []rune, sizes map[rune]int) int {
	size := 1
	for _, id := range ids {
		size *= sizes[id]
	}
	return size
}

// groupDims is the per-dimension size list for a label sequence.
func groupDims(ids []rune, sizes map[rune]int) []int {
	dims := make([]int, len(ids))
	for i, id := range ids {
		dims[i] = sizes[id]
	}
	return dims
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
