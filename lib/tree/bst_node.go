package tree

import "github.com/benz9527/xtree/lib/infra"

var (
	_ AVLNode[int, struct{}] = (*bstNode[int, struct{}])(nil)
	_ RBNode[int, struct{}]  = (*bstNode[int, struct{}])(nil)
)

// bstNode is shared by all kinds of trees.
// The left and right subtrees are owned by the node. The parent is
// a back link used to walk upwards and is never the owner.
// height is maintained by the AVL tree only, color by the rbtree only.
type bstNode[K infra.OrderedKey, V any] struct {
	parent *bstNode[K, V]
	left   *bstNode[K, V]
	right  *bstNode[K, V]
	key    K
	val    V
	height int32
	color  RBColor
}

func (node *bstNode[K, V]) Key() K {
	return node.key
}

func (node *bstNode[K, V]) Val() V {
	return node.val
}

func (node *bstNode[K, V]) Height() int32 {
	return node.height
}

func (node *bstNode[K, V]) Color() RBColor {
	return node.color
}

func (node *bstNode[K, V]) Left() Node[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *bstNode[K, V]) Right() Node[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *bstNode[K, V]) Parent() Node[K, V] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

// Nil leaves are black.
func (node *bstNode[K, V]) isBlack() bool {
	return node == nil || node.color == Black
}

func (node *bstNode[K, V]) isRed() bool {
	return node != nil && node.color == Red
}

func (node *bstNode[K, V]) isRoot() bool {
	return node != nil && node.parent == nil
}

func (node *bstNode[K, V]) Direction() Direction {
	if node == nil {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] nil node without direction")
	}

	if node.isRoot() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *bstNode[K, V]) sibling() *bstNode[K, V] {
	switch node.Direction() {
	case Left:
		return node.parent.right
	case Right:
		return node.parent.left
	default:
	}
	return nil
}

func (node *bstNode[K, V]) fixLink() {
	if node.left != nil {
		node.left.parent = node
	}
	if node.right != nil {
		node.right.parent = node
	}
}

func (node *bstNode[K, V]) minimum() *bstNode[K, V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *bstNode[K, V]) maximum() *bstNode[K, V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

func (node *bstNode[K, V]) heightOf() int32 {
	if node == nil {
		return 0
	}
	return node.height
}

func (node *bstNode[K, V]) updateHeight() {
	l, r := node.left.heightOf(), node.right.heightOf()
	if l > r {
		node.height = l + 1
	} else {
		node.height = r + 1
	}
}

// balanceFactor is height(right) - height(left).
func (node *bstNode[K, V]) balanceFactor() int32 {
	return node.right.heightOf() - node.left.heightOf()
}

func (node *bstNode[K, V]) unlink() {
	node.parent = nil
	node.left = nil
	node.right = nil
}
