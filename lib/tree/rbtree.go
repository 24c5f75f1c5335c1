package tree

import (
	"fmt"

	"github.com/benz9527/xtree/lib/infra"
)

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.
type rbBalancer[K infra.OrderedKey, V any] struct{}

func (rbBalancer[K, V]) kind() Kind {
	return KindRB
}

// rotateTowards rotates x so that x moves down in direction dir.
func (rbBalancer[K, V]) rotateTowards(tree *binaryTree[K, V], x *bstNode[K, V], dir Direction) {
	switch dir {
	case Left:
		tree.leftRotate(x)
	case Right:
		tree.rightRotate(x)
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] rotate towards unknown direction")
	}
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

i1: X is the root or X's parent P is black, nothing to fix.

i2: Both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainted G into red may be still red-violation.
Loop to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

i3: The parent P is red but the uncle U is black. (red-violation)
X is opposite direction to P. Rotate P to straighten the path.
After rotation still red-violation, P is the new X and enters i4.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

i4: X is the same direction as its parent P.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]

At last the root is painted into black.
*/
func (b rbBalancer[K, V]) insertFixup(tree *binaryTree[K, V], x *bstNode[K, V]) {
	for /* i1 */ !x.isRoot() && x.parent.isRed() {
		// A red parent is never the root, so grandpa exists.
		p := x.parent
		g := p.parent
		pDir := p.Direction()
		u := p.sibling()

		if /* i2 */ u.isRed() {
			p.color = Black
			u.color = Black
			g.color = Red
			x = g
			continue
		}

		if /* i3 */ dir := x.Direction(); dir != pDir {
			// Rotate P away from X's side.
			b.rotateTowards(tree, p, pDir)
			x, p = p, x
		}

		/* i4 */
		p.color = Black
		g.color = Red
		b.rotateTowards(tree, g, -pDir)
	}
	tree.root.color = Black
}

/*
The node Z to splice out has at most one child. The shared tree has
already swapped a two-children node with its successor.

r1: Z has one child C. C must be red (see conclusion), replace Z by C
and paint C into black.

r2: Z is a red leaf, remove directly.

r3: Z is a black leaf, it is double black. Fix up from Z, then remove.

r4: Z is the root leaf, the tree becomes empty.
*/
func (b rbBalancer[K, V]) removeFixup(tree *binaryTree[K, V], z *bstNode[K, V]) error {
	child := z.left
	if child == nil {
		child = z.right
	}

	if /* r1 */ child != nil {
		tree.transplant(z, child)
		child.color = Black
		return nil
	}

	if /* r3 */ !z.isRoot() && z.isBlack() {
		if err := b.removeRebalance(tree, z); err != nil {
			return err
		}
	}
	/* r2, r3, r4 */
	tree.transplant(z, nil)
	return nil
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

X is double black, P is its parent and S its sibling.
Sc is S's child on X's side (near), Sd is S's child away from X (far).
S always exists, X's side is one black short of S's side.

rm1: S is red, so P, Sc and Sd are black.
Rotate P towards X, repaint S into black, P into red, then fix X again
with the black Sc as its new sibling.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: S, Sc and Sd are black, P is red.
Swap the colors of P and S.

	  <P>             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: P, S, Sc and Sd are all black.
Paint S into red, P's subtree is balanced but one black short as a whole.
P becomes the double black node. It stops at the root, where the whole
tree shrinks by one black level.

	  [P]             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm4: S is black, Sc is red and Sd is black.
Rotate S away from X, repaint Sc into black and S into red.
Then fix X again, now it is rm5.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm5: S is black and Sd is red.
Rotate P towards X, S takes P's color, P and Sd are painted into black.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]
*/
func (b rbBalancer[K, V]) removeRebalance(tree *binaryTree[K, V], x *bstNode[K, V]) error {
	for !x.isRoot() {
		p, s := x.parent, x.sibling()
		if s == nil {
			// A black non-root node always has a sibling.
			return infra.WrapErrorStackWithMessage(
				fmt.Errorf("[%s] double black node %v has no sibling: %w", KindRB, x.key, ErrInvariantViolation),
				"[rbtree] remove rebalance",
			)
		}

		dir := x.Direction()
		if /* rm1 */ s.isRed() {
			s.color = Black
			p.color = Red
			b.rotateTowards(tree, p, dir)
			continue
		}

		var sc, sd *bstNode[K, V]
		switch dir {
		case Left:
			sc, sd = s.left, s.right
		case Right:
			sc, sd = s.right, s.left
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove violate (rm2)")
		}

		if sc.isBlack() && sd.isBlack() {
			s.color = Red
			if /* rm2 */ p.isRed() {
				p.color = Black
				return nil
			}
			/* rm3 */
			x = p
			continue
		}

		if /* rm4 */ sd.isBlack() {
			sc.color = Black
			s.color = Red
			b.rotateTowards(tree, s, -dir)
			continue
		}

		/* rm5 */
		s.color = p.color
		p.color = Black
		sd.color = Black
		b.rotateTowards(tree, p, dir)
		return nil
	}
	return nil
}

func NewRBTree[K infra.OrderedKey, V any](opts ...TreeOption[K, V]) Tree[K, V] {
	return newBinaryTree[K, V](rbBalancer[K, V]{}, opts...)
}
