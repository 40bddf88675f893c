package main

// ===========================================================================
// COST-ISOLATION PROBING
// ===========================================================================
//
// A scattered-stride contraction spends its time in two places: copying
// strided data into contiguous canonical layout, and the GEMM itself.
// This file decomposes the measured wall-clock cost of one pairwise
// contraction into those two sources by timing three variants:
//
//   1. Full path: the unmodified scattered-stride contraction, end to
//      end. Ground-truth total cost.
//   2. Copy-only, per operand: build the canonically-permuted (still
//      scattered) view and time only the copy that fills a fresh
//      contiguous destination from it.
//   3. Compute-only: pre-materialize both operands contiguously in
//      canonical order (untimed), re-express their label sequences in
//      canonical order, and time the contraction again. With contiguous
//      canonical inputs the engine performs no further large copy, so
//      this isolates near-pure GEMM cost.
//
// The attribution is approximate, not an exact partition: the
// compute-only probe still includes minor packing and bookkeeping
// overhead, and copy and compute can overlap in the full path. The
// percentages reported from these probes must be read with that in
// mind.
//
// The permutations passed in mirror what the contraction engine computes
// internally before reducing to a matrix multiply. Whether they match
// the engine's actual choice is an assumption to validate per engine
// version; the micro benchmark pins it with literal permutation lists.
//
// ===========================================================================

// ProbeOptions sets the timing parameters shared by all probes.
type ProbeOptions struct {
	Warmup int
	Runs   int
}

// ProbeReport holds the timings of the three probe variants for one
// pairwise contraction.
type ProbeReport struct {
	Full        Timing // scattered-stride contraction, end to end
	CopyLeft    Timing // canonical copy of the left operand only
	CopyRight   Timing // canonical copy of the right operand only
	ComputeOnly Timing // contraction on pre-copied canonical inputs
}

// CopyLeftPercent is the left copy median as a share of the full median.
func (r *ProbeReport) CopyLeftPercent() float64 {
	return percentOf(r.CopyLeft, r.Full)
}

// CopyRightPercent is the right copy median as a share of the full median.
func (r *ProbeReport) CopyRightPercent() float64 {
	return percentOf(r.CopyRight, r.Full)
}

// ComputePercent is the compute-only median as a share of the full median.
func (r *ProbeReport) ComputePercent() float64 {
	return percentOf(r.ComputeOnly, r.Full)
}

func percentOf(part, whole Timing) float64 {
	if whole.Median == 0 {
		return 0
	}
	return float64(part.Median) / float64(whole.Median) * 100
}

// probeContraction runs the full, copy-only and compute-only probes for
// the contraction left x right -> out. leftPerm and rightPerm are the
// canonical dimension reorderings of the two operands, as produced by
// deriveCanonical or supplied literally.
//
// Every measured run allocates its own destination, so no run observes
// another's results.
func probeContraction[T Element](
	left, right *Strided[T],
	leftIDs, rightIDs, outIDs []rune,
	leftPerm, rightPerm []int,
	opts ProbeOptions,
) (*ProbeReport, error) {
	// Validate the contraction once, untimed, so the timed closures
	// cannot fail.
	if _, err := Einsum2(left, right, leftIDs, rightIDs, outIDs); err != nil {
		return nil, err
	}

	report := &ProbeReport{}

	report.Full = measure(nil, func() {
		out, _ := Einsum2(left, right, leftIDs, rightIDs, outIDs)
		benchSink = out
	}, opts.Warmup, opts.Runs)

	leftView := left.Permuted(leftPerm)
	report.CopyLeft = measure(nil, func() {
		dst := NewColMajor[T](leftView.Dims())
		_ = CopyInto(dst, leftView)
		benchSink = dst
	}, opts.Warmup, opts.Runs)

	rightView := right.Permuted(rightPerm)
	report.CopyRight = measure(nil, func() {
		dst := NewColMajor[T](rightView.Dims())
		_ = CopyInto(dst, rightView)
		benchSink = dst
	}, opts.Warmup, opts.Runs)

	// Pre-materialize both operands in canonical contiguous order,
	// untimed, and re-express the labels to match.
	leftContig := NewColMajor[T](leftView.Dims())
	if err := CopyInto(leftContig, leftView); err != nil {
		return nil, err
	}
	rightContig := NewColMajor[T](rightView.Dims())
	if err := CopyInto(rightContig, rightView); err != nil {
		return nil, err
	}
	leftCanonIDs := permuteIDs(leftIDs, leftPerm)
	rightCanonIDs := permuteIDs(rightIDs, rightPerm)

	if _, err := Einsum2(leftContig, rightContig, leftCanonIDs, rightCanonIDs, outIDs); err != nil {
		return nil, err
	}
	report.ComputeOnly = measure(nil, func() {
		out, _ := Einsum2(leftContig, rightContig, leftCanonIDs, rightCanonIDs, outIDs)
		benchSink = out
	}, opts.Warmup, opts.Runs)

	return report, nil
}
