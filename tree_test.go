package main

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParseInputs(t *testing.T, format string) ([][]rune, []rune) {
	t.Helper()
	inputIDs, outIDs, err := parseFormatString(format)
	require.NoError(t, err)
	return inputIDs, outIDs
}

func TestBuildTreeThreeOperands(t *testing.T) {
	// Path [[1,2],[0,1]] over "ba,dca,feb": the first step removes
	// positions 2 then 1, combining "dca" with "feb"; the second step
	// combines "ba" with that result.
	inputIDs, _ := mustParseInputs(t, "ba,dca,feb->ki")

	root, err := buildContractionTree(inputIDs, [][2]int{{1, 2}, {0, 1}})
	require.NoError(t, err)

	leaves, internals := root.countNodes()
	require.Equal(t, 3, leaves)
	require.Equal(t, 2, internals)

	require.False(t, root.IsLeaf())
	require.True(t, root.Left.IsLeaf())
	require.Equal(t, 0, root.Left.TensorIndex)
	require.Equal(t, []rune("ba"), root.Left.IDs)

	inner := root.Right
	require.False(t, inner.IsLeaf())
	require.Equal(t, 1, inner.Left.TensorIndex)
	require.Equal(t, []rune("dca"), inner.Left.IDs)
	require.Equal(t, 2, inner.Right.TensorIndex)
	require.Equal(t, []rune("feb"), inner.Right.IDs)
}

func TestBuildTreeAdjacentIndices(t *testing.T) {
	// Adjacent and overlapping path entries are where a wrong removal
	// order (lower index first) would corrupt positions.
	inputIDs := [][]rune{[]rune("ab"), []rune("bc"), []rune("cd")}

	root, err := buildContractionTree(inputIDs, [][2]int{{0, 1}, {0, 1}})
	require.NoError(t, err)

	// First merge combines leaves 0 and 1 and appends the result, so the
	// worklist becomes [leaf2, merged01]; the second pair picks leaf 2 as
	// the left child.
	require.True(t, root.Left.IsLeaf())
	require.Equal(t, 2, root.Left.TensorIndex)
	merged := root.Right
	require.Equal(t, 0, merged.Left.TensorIndex)
	require.Equal(t, 1, merged.Right.TensorIndex)
}

func TestBuildTreeUnsortedPairKeepsWorklistOrder(t *testing.T) {
	// A pair given as (2,1) still removes index 2 first and keeps the
	// lower-index entry as the left child.
	inputIDs := [][]rune{[]rune("ab"), []rune("bc"), []rune("cd")}

	root, err := buildContractionTree(inputIDs, [][2]int{{2, 1}, {1, 0}})
	require.NoError(t, err)

	inner := root.Right
	require.Equal(t, 1, inner.Left.TensorIndex)
	require.Equal(t, 2, inner.Right.TensorIndex)
	require.Equal(t, 0, root.Left.TensorIndex)
}

func TestBuildTreeLeafInvariants(t *testing.T) {
	// Any well-formed path over n operands yields n leaves whose tensor
	// indices are a permutation of 0..n-1, and n-1 internal nodes.
	inputIDs := [][]rune{
		[]rune("ab"), []rune("bc"), []rune("cd"),
		[]rune("de"), []rune("ef"), []rune("fa"),
	}
	path := [][2]int{{0, 3}, {0, 1}, {2, 0}, {0, 1}, {0, 1}}

	root, err := buildContractionTree(inputIDs, path)
	require.NoError(t, err)

	leaves, internals := root.countNodes()
	require.Equal(t, 6, leaves)
	require.Equal(t, 5, internals)

	indices := root.leafIndices(nil)
	sort.Ints(indices)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, indices)
}

func TestBuildTreeBadPaths(t *testing.T) {
	inputIDs := [][]rune{[]rune("ab"), []rune("bc"), []rune("cd")}

	t.Run("too short", func(t *testing.T) {
		_, err := buildContractionTree(inputIDs, [][2]int{{0, 1}})
		require.Error(t, err)
		require.Contains(t, err.Error(), "worklist")
	})

	t.Run("too long", func(t *testing.T) {
		_, err := buildContractionTree(inputIDs, [][2]int{{0, 1}, {0, 1}, {0, 1}})
		require.Error(t, err)
	})

	t.Run("self pair", func(t *testing.T) {
		_, err := buildContractionTree(inputIDs, [][2]int{{1, 1}, {0, 1}})
		require.Error(t, err)
		require.Contains(t, err.Error(), "itself")
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := buildContractionTree(inputIDs, [][2]int{{0, 5}, {0, 1}})
		require.Error(t, err)
	})
}
