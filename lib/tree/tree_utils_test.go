package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func brokenTree(t *testing.T, kind Kind) *binaryTree[int, int] {
	tree := newTreeOfKind[int, int](t, kind)
	for _, key := range []int{2, 1, 3} {
		require.NoError(t, tree.Insert(key, key))
	}
	require.NoError(t, Validate[int, int](tree))
	return tree.(*binaryTree[int, int])
}

func TestOrderViolationValidate(t *testing.T) {
	bt := brokenTree(t, KindBST)
	bt.root.left.key = 5
	err := OrderViolationValidate[int, int](bt)
	require.ErrorIs(t, err, ErrInvariantViolation)
	require.ErrorContains(t, err, "order violation")

	bt = brokenTree(t, KindBST)
	bt.count = 10
	err = OrderViolationValidate[int, int](bt)
	require.ErrorIs(t, err, ErrInvariantViolation)
	require.ErrorContains(t, err, "length 10")
}

func TestParentLinkValidate(t *testing.T) {
	bt := brokenTree(t, KindAVL)
	bt.root.right.parent = bt.root.left
	require.ErrorIs(t, ParentLinkValidate[int, int](bt), ErrInvariantViolation)

	bt = brokenTree(t, KindAVL)
	bt.root.parent = bt.root.left
	require.ErrorContains(t, ParentLinkValidate[int, int](bt), "has a parent")
}

func TestAVLViolationValidate(t *testing.T) {
	bt := brokenTree(t, KindAVL)
	bt.root.height = 5
	err := AVLViolationValidate[int, int](bt)
	require.ErrorIs(t, err, ErrInvariantViolation)
	require.ErrorContains(t, err, "height 5, expected 2")

	bt = brokenTree(t, KindAVL)
	one := bt.root.left
	zero := &bstNode[int, int]{key: 0, parent: one, height: 2}
	zero.left = &bstNode[int, int]{key: -1, parent: zero, height: 1}
	one.left = zero
	err = AVLViolationValidate[int, int](bt)
	require.ErrorIs(t, err, ErrInvariantViolation)
	require.ErrorContains(t, err, "node 1 balance factor -2")
}

func TestRBViolationValidate(t *testing.T) {
	bt := brokenTree(t, KindRB)
	bt.root.color = Red
	require.ErrorContains(t, RedViolationValidate[int, int](bt), "red violation at key 2")
	require.ErrorContains(t, BlackViolationValidate[int, int](bt), "root 2 is red")

	err := Validate[int, int](bt)
	require.ErrorIs(t, err, ErrInvariantViolation)
	require.Len(t, multierr.Errors(err), 2)

	bt = brokenTree(t, KindRB)
	bt.root.right.color = Black
	require.NoError(t, RedViolationValidate[int, int](bt))
	require.ErrorContains(t, BlackViolationValidate[int, int](bt), "black violation")
}

func TestValidate_ChecksByKind(t *testing.T) {
	// Colors and heights mean nothing to the unbalanced tree.
	bt := brokenTree(t, KindBST)
	bt.root.color = Red
	bt.root.height = 7
	require.NoError(t, Validate[int, int](bt))

	bt = brokenTree(t, KindAVL)
	bt.root.color = Red
	require.NoError(t, Validate[int, int](bt))
	bt.root.height = 7
	require.Error(t, Validate[int, int](bt))

	require.NoError(t, Validate[int, int](NewRBTree[int, int]()))
}
