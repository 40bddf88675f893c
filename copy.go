package main

import "github.com/pkg/errors"

// CopyInto fills a contiguous column-major destination from a source
// view with the same dims. The source may have arbitrary (scattered)
// strides; this routine is the data-movement primitive whose cost the
// prober isolates, so it must touch every element exactly once.
//
// The walk is an odometer over the source dims with dimension 0 (the
// fastest-varying one) as the inner loop, writing the destination
// linearly.
func CopyInto[T Element](dst, src *Strided[T]) error {
	if len(dst.dims) != len(src.dims) {
		return errors.Errorf("copy: rank mismatch, dst %v vs src %v", dst.dims, src.dims)
	}
	for i := range dst.dims {
		if dst.dims[i] != src.dims[i] {
			return errors.Errorf("copy: dims mismatch, dst %v vs src %v", dst.dims, src.dims)
		}
	}
	if !dst.IsContiguous() {
		return errors.New("copy: destination must be contiguous column-major")
	}

	rank := len(src.dims)
	if rank == 0 {
		dst.data[dst.offset] = src.data[src.offset]
		return nil
	}

	n0, s0 := src.dims[0], src.strides[0]
	idx := make([]int, rank)
	srcOff := src.offset
	dstOff := dst.offset
	for {
		for i0 := 0; i0 < n0; i0++ {
			dst.data[dstOff] = src.data[srcOff+i0*s0]
			dstOff++
		}

		// Advance the odometer over the outer dims.
		d := 1
		for ; d < rank; d++ {
			idx[d]++
			srcOff += src.strides[d]
			if idx[d] < src.dims[d] {
				break
			}
			srcOff -= idx[d] * src.strides[d]
			idx[d] = 0
		}
		if d == rank {
			return nil
		}
	}
}
