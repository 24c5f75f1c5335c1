package tree

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

// Tree rule validation utilities.
// Each returns nil or an error wrapping ErrInvariantViolation.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

func violation(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvariantViolation)...)
}

func comparatorOf[K infra.OrderedKey, V any](tree Tree[K, V]) infra.OrderedKeyComparator[K] {
	if bt, ok := tree.(*binaryTree[K, V]); ok && bt.cmp != nil {
		return bt.cmp
	}
	return infra.AscOrderedKeyComparator[K]()
}

// Inorder traversal must yield strictly ordered keys.
func OrderViolationValidate[K infra.OrderedKey, V any](tree Tree[K, V]) error {
	cmp := comparatorOf[K, V](tree)
	var (
		prev  K
		err   error
		count int64
	)
	tree.Foreach(func(idx int64, node Node[K, V]) bool {
		count++
		if idx > 0 && cmp(prev, node.Key()) >= 0 {
			err = violation("[xtree] order violation at index %d, key %v after %v", idx, node.Key(), prev)
			return false
		}
		prev = node.Key()
		return true
	})
	if err == nil && count != tree.Len() {
		err = violation("[xtree] length %d, but %d nodes reachable", tree.Len(), count)
	}
	return err
}

// Every child must point back to its parent, the root to nothing.
func ParentLinkValidate[K infra.OrderedKey, V any](tree Tree[K, V]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	if root.Parent() != nil {
		return violation("[xtree] root %v has a parent", root.Key())
	}

	stack := []Node[K, V]{root}
	defer func() {
		clear(stack)
	}()
	for len(stack) > 0 {
		aux := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range []Node[K, V]{aux.Left(), aux.Right()} {
			if child == nil {
				continue
			}
			if child.Parent() != aux {
				return violation("[xtree] node %v does not link back to parent %v", child.Key(), aux.Key())
			}
			stack = append(stack, child)
		}
	}
	return nil
}

// Postorder traversal to check the stored heights and balance factors.
func AVLViolationValidate[K infra.OrderedKey, V any](tree Tree[K, V]) error {
	_, err := avlHeight[K, V](tree.Root())
	return err
}

func avlHeight[K infra.OrderedKey, V any](node Node[K, V]) (int32, error) {
	if node == nil {
		return 0, nil
	}
	avlNode, ok := node.(AVLNode[K, V])
	if !ok {
		return 0, violation("[avl] node %v without height", node.Key())
	}
	l, err := avlHeight[K, V](node.Left())
	if err != nil {
		return 0, err
	}
	r, err := avlHeight[K, V](node.Right())
	if err != nil {
		return 0, err
	}
	if bf := r - l; bf > 1 || bf < -1 {
		return 0, violation("[avl] node %v balance factor %d", node.Key(), bf)
	}
	h := max(l, r) + 1
	if avlNode.Height() != h {
		return 0, violation("[avl] node %v height %d, expected %d", node.Key(), avlNode.Height(), h)
	}
	return h, nil
}

func colorOf[K infra.OrderedKey, V any](node Node[K, V]) RBColor {
	if node == nil {
		return Black
	}
	if rbNode, ok := node.(RBNode[K, V]); ok {
		return rbNode.Color()
	}
	return Black
}

// Inorder traversal to validate there is no red node with a red child.
func RedViolationValidate[K infra.OrderedKey, V any](tree Tree[K, V]) error {
	var err error
	tree.Foreach(func(_ int64, node Node[K, V]) bool {
		if colorOf[K, V](node) != Red {
			return true
		}
		if colorOf[K, V](node.Left()) == Red || colorOf[K, V](node.Right()) == Red {
			err = violation("[rbtree] red violation at key %v", node.Key())
			return false
		}
		return true
	})
	return err
}

// BFS traversal to load all the nodes holding a nil leaf.
func bfsLeaves[K infra.OrderedKey, V any](tree Tree[K, V]) []Node[K, V] {
	aux := tree.Root()
	if aux == nil {
		return nil
	}

	leaves := make([]Node[K, V], 0, tree.Len()>>1+1)
	queue := make([]Node[K, V], 0, tree.Len()>>1+1)
	defer func() {
		clear(queue)
	}()
	queue = append(queue, aux)

	for len(queue) > 0 {
		aux = queue[0]
		l, r := aux.Left(), aux.Right()
		if /* nil leaves, keep one */ l == nil || r == nil {
			leaves = append(leaves, aux)
		}
		if l != nil {
			queue = append(queue, l)
		}
		if r != nil {
			queue = append(queue, r)
		}
		queue = queue[1:]
	}
	return leaves
}

func blackDepthTo[K infra.OrderedKey, V any](target, to Node[K, V]) int {
	depth := 0
	for aux := target; aux != nil && aux != to; aux = aux.Parent() {
		if colorOf[K, V](aux) == Black {
			depth++
		}
	}
	return depth
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

2-3-4 tree like:

	       <8> --- [13] --- <15>
		  /  \             /    \
		 /    \           /      \
	  <1>-[6][11]      [14] <16>-[17]

Each leaf node to root node black depth are equal. The root is black.
*/
func BlackViolationValidate[K infra.OrderedKey, V any](tree Tree[K, V]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	if colorOf[K, V](root) != Black {
		return violation("[rbtree] root %v is red", root.Key())
	}

	leaves := bfsLeaves[K, V](tree)
	blackDepth := blackDepthTo[K, V](leaves[0], root)
	for i := 1; i < len(leaves); i++ {
		if depth := blackDepthTo[K, V](leaves[i], root); depth != blackDepth {
			return violation("[rbtree] black violation at key %v, black depth %d, expected %d",
				leaves[i].Key(), depth, blackDepth)
		}
	}
	return nil
}

// Validate runs all the checks that apply to the kind of the tree.
func Validate[K infra.OrderedKey, V any](tree Tree[K, V]) error {
	err := multierr.Combine(
		OrderViolationValidate[K, V](tree),
		ParentLinkValidate[K, V](tree),
	)
	switch tree.Kind() {
	case KindAVL:
		err = multierr.Append(err, AVLViolationValidate[K, V](tree))
	case KindRB:
		err = multierr.Append(err, RedViolationValidate[K, V](tree))
		err = multierr.Append(err, BlackViolationValidate[K, V](tree))
	default:
	}
	return err
}
