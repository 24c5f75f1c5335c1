package tree

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/xlog"
)

// balancer is the rebalancing strategy plugged into binaryTree.
// The shared tree does the descent, the duplicate checks and the
// successor splice. The balancer only restores its own invariants.
type balancer[K infra.OrderedKey, V any] interface {
	kind() Kind
	// insertFixup is called after z has been linked as a new leaf.
	insertFixup(tree *binaryTree[K, V], z *bstNode[K, V])
	// removeFixup splices out z, which has at most one child, and
	// restores the invariants around it. z is still linked on entry.
	removeFixup(tree *binaryTree[K, V], z *bstNode[K, V]) error
}

var _ Tree[int, struct{}] = (*binaryTree[int, struct{}])(nil)

type binaryTree[K infra.OrderedKey, V any] struct {
	root     *bstNode[K, V]
	count    int64
	cmp      infra.OrderedKeyComparator[K]
	valEqual func(a, b V) bool
	balancer balancer[K, V]
	logger   xlog.XLogger
	stats    *treeStats
}

func (tree *binaryTree[K, V]) Kind() Kind {
	return tree.balancer.kind()
}

func (tree *binaryTree[K, V]) Len() int64 {
	return tree.count
}

func (tree *binaryTree[K, V]) Root() Node[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

/*
		 |                         |
		 X                         Y
		/ \     leftRotate(X)     / \
	   L   Y    ============>    X   Yd
		  / \                   / \
		Yc   Yd                L   Yc
*/
func (tree *binaryTree[K, V]) leftRotate(x *bstNode[K, V]) *bstNode[K, V] {
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] left rotate node x is nil or x.right is nil")
	}

	p, y := x.parent, x.right
	dir := x.Direction()
	x.right, y.left = y.left, x

	x.fixLink()
	y.fixLink()
	tree.replaceChild(p, dir, y)
	tree.stats.recordRotation(tree.Kind())
	return y
}

/*
			 |                         |
			 X                         Y
			/ \    rightRotate(X)     / \
	       Y   R   ============>    Yc   X
		  / \                           / \
		Yc   Yd                       Yd   R
*/
func (tree *binaryTree[K, V]) rightRotate(x *bstNode[K, V]) *bstNode[K, V] {
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] right rotate node x is nil or x.left is nil")
	}

	p, y := x.parent, x.left
	dir := x.Direction()
	x.left, y.right = y.right, x

	x.fixLink()
	y.fixLink()
	tree.replaceChild(p, dir, y)
	tree.stats.recordRotation(tree.Kind())
	return y
}

// replaceChild hangs y where a child of p in direction dir used to be.
func (tree *binaryTree[K, V]) replaceChild(p *bstNode[K, V], dir Direction, y *bstNode[K, V]) {
	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[xtree] unknown node direction to replace")
	}
	if y != nil {
		y.parent = p
	}
}

// transplant replaces the subtree rooted at u by the subtree rooted at v.
func (tree *binaryTree[K, V]) transplant(u, v *bstNode[K, V]) {
	tree.replaceChild(u.parent, u.Direction(), v)
}

func (tree *binaryTree[K, V]) search(key K) *bstNode[K, V] {
	for aux := tree.root; aux != nil; {
		res := tree.cmp(key, aux.key)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	return nil
}

func (tree *binaryTree[K, V]) Search(key K) (V, bool) {
	if x := tree.search(key); x != nil {
		return x.val, true
	}
	var zero V
	return zero, false
}

func (tree *binaryTree[K, V]) Insert(key K, val V) error {
	if /* NaN */ key != key {
		return tree.keyError("insert", key, ErrUnorderedKey)
	}

	var x, y *bstNode[K, V] = tree.root, nil
	res := int64(0)
	for x != nil {
		y = x
		if res = tree.cmp(key, x.key); /* equal */ res == 0 {
			if tree.valEqual(x.val, val) {
				return tree.keyError("insert", key, ErrDuplicateEntry)
			}
			return tree.keyError("insert", key, ErrDuplicateKey)
		} else /* less */ if res < 0 {
			x = x.left
		} else /* greater */ {
			x = x.right
		}
	}

	// A new node is a red leaf. Only the rbtree reads the color.
	z := &bstNode[K, V]{
		key:    key,
		val:    val,
		parent: y,
		height: 1,
		color:  Red,
	}
	if y == nil {
		tree.root = z
	} else if res < 0 {
		y.left = z
	} else {
		y.right = z
	}
	tree.count++
	tree.balancer.insertFixup(tree, z)
	tree.stats.recordInsert(tree.Kind())
	return nil
}

func (tree *binaryTree[K, V]) Remove(key K) error {
	z := tree.search(key)
	if z == nil {
		return tree.keyError("remove", key, ErrKeyNotFound)
	}
	return tree.removeNode(z)
}

func (tree *binaryTree[K, V]) RemoveMin() (Node[K, V], error) {
	_min := tree.root.minimum()
	if _min == nil {
		return nil, tree.keyError("remove min", "<empty>", ErrKeyNotFound)
	}
	res := &bstNode[K, V]{
		key: _min.key,
		val: _min.val,
	}
	if err := tree.removeNode(_min); err != nil {
		return nil, err
	}
	return res, nil
}

// removeNode borrows the in-order successor when z has two children.
// The successor, which has no left child, is the node really spliced
// out. Its key and value are moved into z only after the fixup
// succeeded. Rotations never change keys and z stays right before the
// successor in order, so the late move keeps the order.
func (tree *binaryTree[K, V]) removeNode(z *bstNode[K, V]) error {
	target := z
	if z.left != nil && z.right != nil {
		target = z.right.minimum()
	}

	if err := tree.balancer.removeFixup(tree, target); err != nil {
		tree.stats.recordError(tree.Kind(), err)
		tree.logger.ErrorStack(err, "[xtree] remove node failed",
			zap.Stringer("kind", tree.Kind()),
			zap.Any("key", z.key),
		)
		return err
	}
	if target != z {
		z.key, z.val = target.key, target.val
	}
	target.unlink()
	tree.count--
	tree.stats.recordRemove(tree.Kind())
	return nil
}

func (tree *binaryTree[K, V]) MinKey() (K, bool) {
	if x := tree.root.minimum(); x != nil {
		return x.key, true
	}
	var zero K
	return zero, false
}

func (tree *binaryTree[K, V]) MaxKey() (K, bool) {
	if x := tree.root.maximum(); x != nil {
		return x.key, true
	}
	var zero K
	return zero, false
}

// Inorder traversal to implement the DFS.
func (tree *binaryTree[K, V]) Foreach(action func(idx int64, node Node[K, V]) bool) {
	aux := tree.root
	if aux == nil {
		return
	}

	stack := make([]*bstNode[K, V], 0, 32)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; !action(idx, aux) {
			return
		}
		idx++
		stack = stack[:size-1]
		for aux = aux.right; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

func (tree *binaryTree[K, V]) Keys() []K {
	keys := make([]K, 0, tree.count)
	tree.Foreach(func(_ int64, node Node[K, V]) bool {
		keys = append(keys, node.Key())
		return true
	})
	return keys
}

func (tree *binaryTree[K, V]) Values() []V {
	vals := make([]V, 0, tree.count)
	tree.Foreach(func(_ int64, node Node[K, V]) bool {
		vals = append(vals, node.Val())
		return true
	})
	return vals
}

func (tree *binaryTree[K, V]) BulkInsert(pairs ...KeyVal[K, V]) error {
	for idx, pair := range pairs {
		if err := tree.Insert(pair.Key, pair.Val); err != nil {
			tree.logger.Debug("[xtree] bulk insert aborted",
				zap.Stringer("kind", tree.Kind()),
				zap.Int("index", idx),
				zap.Int("total", len(pairs)),
				zap.Error(err),
			)
			return fmt.Errorf("[%s] bulk insert aborted at index %d: %w", tree.Kind(), idx, err)
		}
	}
	return nil
}

func (tree *binaryTree[K, V]) BulkRemove(keys ...K) error {
	for idx, key := range keys {
		if err := tree.Remove(key); err != nil {
			tree.logger.Debug("[xtree] bulk remove aborted",
				zap.Stringer("kind", tree.Kind()),
				zap.Int("index", idx),
				zap.Int("total", len(keys)),
				zap.Error(err),
			)
			return fmt.Errorf("[%s] bulk remove aborted at index %d: %w", tree.Kind(), idx, err)
		}
	}
	return nil
}

func (tree *binaryTree[K, V]) ReplaceValue(key K, val V) error {
	x := tree.search(key)
	if x == nil {
		return tree.keyError("replace value", key, ErrKeyNotFound)
	}
	x.val = val
	return nil
}

// Clean removes every key one by one, so the balancers run as usual.
func (tree *binaryTree[K, V]) Clean() {
	keys := tree.Keys()
	for _, key := range keys {
		if err := tree.Remove(key); err != nil && !errors.Is(err, ErrKeyNotFound) {
			break
		}
	}
	if tree.root != nil || tree.count != 0 {
		// Only a tree broken from outside ends up here.
		tree.logger.Warn("[xtree] clean left nodes behind, drop them",
			zap.Stringer("kind", tree.Kind()),
			zap.Int64("count", tree.count),
		)
		tree.stats.recordNodeCount(tree.Kind(), -tree.count)
		tree.root, tree.count = nil, 0
	}
	tree.logger.Debug("[xtree] cleaned",
		zap.Stringer("kind", tree.Kind()),
		zap.Int("removed", len(keys)),
	)
}

func (tree *binaryTree[K, V]) keyError(op string, key any, err TreeErr) error {
	tree.stats.recordError(tree.Kind(), err)
	return fmt.Errorf("[%s] %s key %v: %w", tree.Kind(), op, key, err)
}
