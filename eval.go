package main

import "github.com/pkg/errors"

// EvaluateTree executes a contraction tree bottom-up over the operands
// and returns the result with dimensions in outIDs order.
//
// The output labels of each interior contraction are inferred from the
// whole tree: a label survives a pairwise contraction if it appears in
// the final output or in a leaf outside the contracted subtree.
// Interior results are requested in canonical order so only the root
// contraction pays an output reordering.
func EvaluateTree[T Element](root *TreeNode, outIDs []rune, operands []*Strided[T]) (*Strided[T], error) {
	ev := &treeEval[T]{
		operands: operands,
		total:    make(map[rune]int),
		outSet:   make(map[rune]bool, len(outIDs)),
	}
	for _, id := range outIDs {
		ev.outSet[id] = true
	}

	if err := ev.index(root); err != nil {
		return nil, err
	}
	if ev.leaves != len(operands) {
		return nil, errors.Errorf("tree has %d leaves but %d operands were supplied", ev.leaves, len(operands))
	}

	_, result, _, err := ev.eval(root, outIDs)
	return result, err
}

type treeEval[T Element] struct {
	operands []*Strided[T]
	total    map[rune]int // occurrences of each label across all leaves
	outSet   map[rune]bool
	leaves   int
}

// index validates leaves against the operand list and counts label
// occurrences across the whole tree.
func (ev *treeEval[T]) index(n *TreeNode) error {
	if !n.IsLeaf() {
		if err := ev.index(n.Left); err != nil {
			return err
		}
		return ev.index(n.Right)
	}

	ev.leaves++
	if n.TensorIndex < 0 || n.TensorIndex >= len(ev.operands) {
		return errors.Errorf("leaf references operand %d, have %d operands", n.TensorIndex, len(ev.operands))
	}
	if op := ev.operands[n.TensorIndex]; op.Rank() != len(n.IDs) {
		return errors.Errorf("operand %d has rank %d but leaf carries %d labels",
			n.TensorIndex, op.Rank(), len(n.IDs))
	}
	for _, id := range n.IDs {
		ev.total[id]++
	}
	return nil
}

// eval computes a subtree. want, when non-nil, forces the result's label
// order (used at the root); otherwise the canonical order is kept.
// It returns the result's label order, the result, and the per-label
// leaf counts of the subtree.
func (ev *treeEval[T]) eval(n *TreeNode, want []rune) ([]rune, *Strided[T], map[rune]int, error) {
	if n.IsLeaf() {
		count := make(map[rune]int, len(n.IDs))
		for _, id := range n.IDs {
			count[id]++
		}
		op := ev.operands[n.TensorIndex]
		if want == nil || runesEqual(want, n.IDs) {
			return n.IDs, op, count, nil
		}
		t, err := reorder(op, n.IDs, want)
		return want, t, count, err
	}

	leftIDs, left, leftCount, err := ev.eval(n.Left, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	rightIDs, right, rightCount, err := ev.eval(n.Right, nil)
	if err != nil {
		return nil, nil, nil, err
	}

	count := leftCount
	for id, c := range rightCount {
		count[id] += c
	}

	nodeOut := want
	if nodeOut == nil {
		nodeOut = ev.nodeOutput(leftIDs, rightIDs, count)
	}
	result, err := Einsum2(left, right, leftIDs, rightIDs, nodeOut)
	if err != nil {
		return nil, nil, nil, err
	}
	return nodeOut, result, count, nil
}

// nodeOutput selects the surviving labels of an interior contraction in
// canonical order: left free, right free, then batch. A label survives
// if the final output needs it or a leaf outside this subtree still
// carries it.
func (ev *treeEval[T]) nodeOutput(leftIDs, rightIDs []rune, subCount map[rune]int) []rune {
	inRight := make(map[rune]bool, len(rightIDs))
	for _, id := range rightIDs {
		inRight[id] = true
	}
	inLeft := make(map[rune]bool, len(leftIDs))
	for _, id := range leftIDs {
		inLeft[id] = true
	}
	keep := func(id rune) bool {
		return ev.outSet[id] || ev.total[id] > subCount[id]
	}

	var out []rune
	for _, id := range leftIDs {
		if !inRight[id] && keep(id) {
			out = append(out, id)
		}
	}
	for _, id := range rightIDs {
		if !inLeft[id] && keep(id) {
			out = append(out, id)
		}
	}
	for _, id := range leftIDs {
		if inRight[id] && keep(id) {
			out = append(out, id)
		}
	}
	return out
}

// reorder permute-copies an operand into want label order.
func reorder[T Element](op *Strided[T], ids, want []rune) (*Strided[T], error) {
	if len(want) != len(ids) {
		return nil, errors.Errorf("cannot reorder labels %q to %q", string(ids), string(want))
	}
	pos := make(map[rune]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	perm := make([]int, len(want))
	for i, id := range want {
		p, ok := pos[id]
		if !ok {
			return nil, errors.Errorf("label %q not present in %q", string(id), string(ids))
		}
		perm[i] = p
	}
	view := op.Permuted(perm)
	dst := NewColMajor[T](view.Dims())
	if err := CopyInto(dst, view); err != nil {
		return nil, err
	}
	return dst, nil
}
