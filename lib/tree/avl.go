package tree

import "github.com/benz9527/xtree/lib/infra"

/*
AVL tree, every node holds the height of its subtree (leaf is 1, nil is 0).
The balance factor is height(right) - height(left) and must stay in [-1, 1].

After an insertion or a removal all the ancestors of the edit point are
retraced bottom-up to the root. An ancestor out of balance is fixed by one
of four rotations. H is the heavy child of X.

a1 (RR): right heavy and H is outer, left rotate X.

	  X                    H
	   \    l-rotate(X)   / \
	    H   ==========>  X   Hd
	     \
	      Hd

a2 (RL): right heavy and H is inner, right rotate H, then left rotate X.

	  X                   X                   Hc
	   \    r-rotate(H)    \    l-rotate(X)   / \
	    H   ==========>     Hc  ==========>  X   H
	   /                     \
	 Hc                       H

a3 (LL) and a4 (LR) are the mirrors of a1 and a2.

Whether H is outer is decided by the inserted key on insertion (the key is
on the far side of H) and by H's own balance factor on removal (H is not
leaning towards X). Equal balance on removal is treated as outer.
*/
type avlBalancer[K infra.OrderedKey, V any] struct{}

func (avlBalancer[K, V]) kind() Kind {
	return KindAVL
}

func (b avlBalancer[K, V]) leftRotate(tree *binaryTree[K, V], x *bstNode[K, V]) *bstNode[K, V] {
	y := tree.leftRotate(x)
	x.updateHeight()
	y.updateHeight()
	return y
}

func (b avlBalancer[K, V]) rightRotate(tree *binaryTree[K, V], x *bstNode[K, V]) *bstNode[K, V] {
	y := tree.rightRotate(x)
	x.updateHeight()
	y.updateHeight()
	return y
}

// rebalance returns the root of the subtree which x used to root.
func (b avlBalancer[K, V]) rebalance(
	tree *binaryTree[K, V],
	x *bstNode[K, V],
	isOuter func(heavy *bstNode[K, V], dir Direction) bool,
) *bstNode[K, V] {
	x.updateHeight()
	switch bf := x.balanceFactor(); {
	case bf > 1:
		if /* a2 */ !isOuter(x.right, Right) {
			b.rightRotate(tree, x.right)
		}
		return /* a1 */ b.leftRotate(tree, x)
	case bf < -1:
		if /* a4 */ !isOuter(x.left, Left) {
			b.leftRotate(tree, x.left)
		}
		return /* a3 */ b.rightRotate(tree, x)
	default:
	}
	return x
}

func (b avlBalancer[K, V]) retrace(
	tree *binaryTree[K, V],
	from *bstNode[K, V],
	isOuter func(heavy *bstNode[K, V], dir Direction) bool,
) {
	for x := from; x != nil; x = x.parent {
		x = b.rebalance(tree, x, isOuter)
	}
}

func (b avlBalancer[K, V]) insertFixup(tree *binaryTree[K, V], z *bstNode[K, V]) {
	key := z.key
	b.retrace(tree, z.parent, func(heavy *bstNode[K, V], dir Direction) bool {
		res := tree.cmp(key, heavy.key)
		if dir == Right {
			return res > 0
		}
		return res < 0
	})
}

func (b avlBalancer[K, V]) removeFixup(tree *binaryTree[K, V], z *bstNode[K, V]) error {
	p, child := z.parent, z.left
	if child == nil {
		child = z.right
	}
	tree.transplant(z, child)
	b.retrace(tree, p, func(heavy *bstNode[K, V], dir Direction) bool {
		if dir == Right {
			return heavy.balanceFactor() >= 0
		}
		return heavy.balanceFactor() <= 0
	})
	return nil
}

func NewAVLTree[K infra.OrderedKey, V any](opts ...TreeOption[K, V]) Tree[K, V] {
	return newBinaryTree[K, V](avlBalancer[K, V]{}, opts...)
}
