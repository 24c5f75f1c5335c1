package tree

import "github.com/benz9527/xtree/lib/infra"

// unbalanced keeps the ordering only. Sorted input degrades the tree
// into a list, but descent and traversal are loops so that the depth
// is bounded by memory rather than by the goroutine stack.
type unbalanced[K infra.OrderedKey, V any] struct{}

func (unbalanced[K, V]) kind() Kind {
	return KindBST
}

func (unbalanced[K, V]) insertFixup(*binaryTree[K, V], *bstNode[K, V]) {}

func (unbalanced[K, V]) removeFixup(tree *binaryTree[K, V], z *bstNode[K, V]) error {
	child := z.left
	if child == nil {
		child = z.right
	}
	tree.transplant(z, child)
	return nil
}

func NewBST[K infra.OrderedKey, V any](opts ...TreeOption[K, V]) Tree[K, V] {
	return newBinaryTree[K, V](unbalanced[K, V]{}, opts...)
}
