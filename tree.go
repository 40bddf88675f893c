package main

import "github.com/pkg/errors"

// TreeNode is one node of an owned, acyclic binary contraction tree.
// A leaf references one original operand by position; an internal node
// combines the results of its two children. Child order is significant:
// later stages treat the left and right operands asymmetrically.
type TreeNode struct {
	// Leaf fields. IDs holds the operand's label sequence,
	// TensorIndex its position in the operand list.
	TensorIndex int
	IDs         []rune

	// Internal fields. Both nil on a leaf, both non-nil otherwise.
	Left  *TreeNode
	Right *TreeNode
}

// IsLeaf reports whether n references an original operand.
func (n *TreeNode) IsLeaf() bool {
	return n.Left == nil
}

// buildContractionTree converts a flat contraction path into a binary
// tree. The path convention (opt_einsum / cotengra) is: each pair [p, q]
// indexes the current worklist of not-yet-combined tensors; the two
// entries are removed, contracted, and the result appended to the end.
//
// The entry at the higher index must be removed first. Removing the
// lower index first would shift the higher entry's position, which is
// the classic way to corrupt this conversion.
func buildContractionTree(inputIDs [][]rune, path [][2]int) (*TreeNode, error) {
	worklist := make([]*TreeNode, len(inputIDs))
	for i, ids := range inputIDs {
		worklist[i] = &TreeNode{TensorIndex: i, IDs: ids}
	}

	for step, pair := range path {
		i, j := pair[0], pair[1]
		if i > j {
			i, j = j, i
		}
		if i == j {
			return nil, errors.Errorf("path step %d contracts entry %d with itself", step, i)
		}
		if i < 0 || j >= len(worklist) {
			return nil, errors.Errorf("path step %d indexes [%d,%d] outside worklist of %d entries",
				step, pair[0], pair[1], len(worklist))
		}

		// Remove j first, then i.
		nodeJ := worklist[j]
		worklist = append(worklist[:j], worklist[j+1:]...)
		nodeI := worklist[i]
		worklist = append(worklist[:i], worklist[i+1:]...)

		worklist = append(worklist, &TreeNode{Left: nodeI, Right: nodeJ})
	}

	if len(worklist) != 1 {
		return nil, errors.Errorf("contraction path left %d nodes on the worklist, want exactly 1", len(worklist))
	}
	return worklist[0], nil
}

// countNodes returns the number of leaves and internal nodes in the tree.
func (n *TreeNode) countNodes() (leaves, internals int) {
	if n.IsLeaf() {
		return 1, 0
	}
	ll, li := n.Left.countNodes()
	rl, ri := n.Right.countNodes()
	return ll + rl, li + ri + 1
}

// leafIndices appends the TensorIndex of every leaf, left to right.
func (n *TreeNode) leafIndices(acc []int) []int {
	if n.IsLeaf() {
		return append(acc, n.TensorIndex)
	}
	acc = n.Left.leafIndices(acc)
	return n.Right.leafIndices(acc)
}
