package tree

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestBST_RemoveTwoChildren(t *testing.T) {
	tree := NewBST[int, string]()
	for _, key := range []int{20, 10, 5, 15} {
		require.NoError(t, tree.Insert(key, "v"))
	}
	require.NoError(t, tree.Remove(10))
	require.Equal(t, []int{5, 15, 20}, tree.Keys())

	root := tree.Root()
	require.Equal(t, 20, root.Key())
	require.Nil(t, root.Right())
	require.Equal(t, 15, root.Left().Key())
	require.Equal(t, 5, root.Left().Left().Key())
	require.Nil(t, root.Left().Right())
	require.Equal(t, root, root.Left().Parent())
	require.NoError(t, Validate[int, string](tree))
}

func TestBST_RemoveOneChildAndLeaf(t *testing.T) {
	tree := NewBST[int, int]()
	for _, key := range []int{8, 4, 12, 2, 6, 14} {
		require.NoError(t, tree.Insert(key, key))
	}
	// One child, the child takes its place.
	require.NoError(t, tree.Remove(12))
	require.Equal(t, 14, tree.Root().Right().Key())
	require.Equal(t, tree.Root(), tree.Root().Right().Parent())

	// Leaf.
	require.NoError(t, tree.Remove(2))
	require.Nil(t, tree.Root().Left().Left())

	// Root with two children.
	require.NoError(t, tree.Remove(8))
	require.Equal(t, 14, tree.Root().Key())
	require.Equal(t, []int{4, 6, 14}, tree.Keys())
	require.NoError(t, Validate[int, int](tree))
}

func TestBST_KeepsInsertionShape(t *testing.T) {
	tree := NewBST[int, int]()
	for _, key := range []int{3, 1, 2} {
		require.NoError(t, tree.Insert(key, key))
	}
	// No rotation.
	require.Equal(t, 3, tree.Root().Key())
	require.Equal(t, 1, tree.Root().Left().Key())
	require.Equal(t, 2, tree.Root().Left().Right().Key())
}

func TestBST_SortedInsertionDegenerates(t *testing.T) {
	const total = 10_000
	tree := NewBST[int, int]()
	for _, key := range lo.Range(total) {
		require.NoError(t, tree.Insert(key, key))
	}
	require.Equal(t, int64(total), tree.Len())

	depth := 0
	for aux := tree.Root(); aux != nil; aux = aux.Right() {
		require.Nil(t, aux.Left())
		depth++
	}
	require.Equal(t, total, depth)
	require.Equal(t, lo.Range(total), tree.Keys())
	require.NoError(t, Validate[int, int](tree))

	_max, ok := tree.MaxKey()
	require.True(t, ok)
	require.Equal(t, total-1, _max)

	for _, key := range lo.Range(total) {
		x, err := tree.RemoveMin()
		require.NoError(t, err)
		require.Equal(t, key, x.Key())
	}
	require.Nil(t, tree.Root())
}
