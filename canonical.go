package main

import "github.com/pkg/errors"

// contraction is the canonical classification of one pairwise
// contraction's labels, plus the permutation each operand needs to reach
// canonical dimension order.
//
// Canonical order groups the dims of each operand so the contraction
// reduces to one batched matrix multiply:
//
//	left:  [free(left)..., contracted..., batch...]
//	right: [contracted..., free(right)..., batch...]
//
// With column-major storage this makes each batch slice of the left a
// (m x k) matrix and of the right a (k x n) matrix, batch outermost.
//
// Within-group ordering is fixed: batch and contracted labels in order
// of first appearance in the LEFT operand, free labels in order of
// appearance in their own operand. The contraction engine and the
// cost-isolation prober both rely on this tie-break; the micro benchmark
// pins it against known-good literal permutations.
type contraction struct {
	batch      []rune // shared by both operands, kept in the output
	contracted []rune // shared by both operands, summed away
	leftFree   []rune // only in the left operand, kept
	rightFree  []rune // only in the right operand, kept

	leftPerm  []int // original left dim indices in canonical order
	rightPerm []int // original right dim indices in canonical order

	canonOut []rune // [leftFree..., rightFree..., batch...]
}

// deriveCanonical classifies labels and computes both canonical
// permutations for a pairwise contraction left x right -> out.
//
// Unsupported label patterns are rejected: a label repeated within one
// operand (a trace), a label present in exactly one operand but absent
// from the output (a lone summation), and an output label produced by
// neither operand. Tensor-network contractions never contain these.
func deriveCanonical(leftIDs, rightIDs, outIDs []rune) (*contraction, error) {
	leftPos, err := labelPositions(leftIDs, "left")
	if err != nil {
		return nil, err
	}
	rightPos, err := labelPositions(rightIDs, "right")
	if err != nil {
		return nil, err
	}
	outSet := make(map[rune]bool, len(outIDs))
	for _, id := range outIDs {
		if outSet[id] {
			return nil, errors.Errorf("output label %q repeated", string(id))
		}
		outSet[id] = true
	}

	c := &contraction{}

	// Batch and contracted groups follow left-operand appearance order.
	for _, id := range leftIDs {
		_, shared := rightPos[id]
		switch {
		case shared && outSet[id]:
			c.batch = append(c.batch, id)
		case shared:
			c.contracted = append(c.contracted, id)
		case outSet[id]:
			c.leftFree = append(c.leftFree, id)
		default:
			return nil, errors.Errorf("label %q appears only in the left operand and not in the output", string(id))
		}
	}
	for _, id := range rightIDs {
		if _, shared := leftPos[id]; shared {
			continue // classified above
		}
		if !outSet[id] {
			return nil, errors.Errorf("label %q appears only in the right operand and not in the output", string(id))
		}
		c.rightFree = append(c.rightFree, id)
	}

	for _, id := range outIDs {
		_, inLeft := leftPos[id]
		_, inRight := rightPos[id]
		if !inLeft && !inRight {
			return nil, errors.Errorf("output label %q produced by neither operand", string(id))
		}
	}

	c.leftPerm = make([]int, 0, len(leftIDs))
	for _, group := range [][]rune{c.leftFree, c.contracted, c.batch} {
		for _, id := range group {
			c.leftPerm = append(c.leftPerm, leftPos[id])
		}
	}
	c.rightPerm = make([]int, 0, len(rightIDs))
	for _, group := range [][]rune{c.contracted, c.rightFree, c.batch} {
		for _, id := range group {
			c.rightPerm = append(c.rightPerm, rightPos[id])
		}
	}

	c.canonOut = make([]rune, 0, len(c.leftFree)+len(c.rightFree)+len(c.batch))
	c.canonOut = append(c.canonOut, c.leftFree...)
	c.canonOut = append(c.canonOut, c.rightFree...)
	c.canonOut = append(c.canonOut, c.batch...)

	return c, nil
}

// labelPositions maps each label to its dim index, rejecting repeats.
func labelPositions(ids []rune, side string) (map[rune]int, error) {
	pos := make(map[rune]int, len(ids))
	for i, id := range ids {
		if _, dup := pos[id]; dup {
			return nil, errors.Errorf("label %q repeated within the %s operand", string(id), side)
		}
		pos[id] = i
	}
	return pos, nil
}

// permuteIDs returns ids reordered by perm: result[i] = ids[perm[i]].
// This is how a label sequence is re-expressed after its operand has
// been brought to canonical order.
func permuteIDs(ids []rune, perm []int) []rune {
	out := make([]rune, len(perm))
	for i, p := range perm {
		out[i] = ids[p]
	}
	return out
}
