package tree

// Node is a red-black tree node. Nodes are owned by exactly one tree,
// the parent link is a back reference.
type Node[V any] struct {
	parent *Node[V]
	left   *Node[V]
	right  *Node[V]
	value  V
	color  RBColor
}

func (node *Node[V]) Value() V {
	return node.value
}

func (node *Node[V]) Color() RBColor {
	return node.color
}

func (node *Node[V]) Left() *Node[V] {
	return node.left
}

func (node *Node[V]) Right() *Node[V] {
	return node.right
}

func (node *Node[V]) Parent() *Node[V] {
	return node.parent
}

// A nil node is a black leaf.

func (node *Node[V]) isRed() bool {
	return node != nil && node.color == Red
}

func (node *Node[V]) isBlack() bool {
	return node == nil || node.color == Black
}

func (node *Node[V]) isRoot() bool {
	return node != nil && node.parent == nil
}

func (node *Node[V]) Direction() RBDirection {
	if node == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] nil leaf node without direction")
	}

	if node.isRoot() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *Node[V]) sibling() *Node[V] {
	switch dir := node.Direction(); dir {
	case Left:
		return node.parent.right
	case Right:
		return node.parent.left
	default:
	}
	return nil
}

func (node *Node[V]) fixLink() {
	if node.left != nil {
		node.left.parent = node
	}
	if node.right != nil {
		node.right.parent = node
	}
}

func (node *Node[V]) minimum() *Node[V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *Node[V]) maximum() *Node[V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order.
// The pred of the minimum is nil.
func (node *Node[V]) pred() *Node[V] {
	x := node
	if x == nil {
		return nil
	}
	if x.left != nil {
		return x.left.maximum()
	}

	aux := x.parent
	// Backtrack to father node that is the x's pred.
	for aux != nil && x == aux.left {
		x = aux
		aux = aux.parent
	}
	return aux
}

// The succ node of the current node is its next node in sorted order.
// The succ of the maximum is nil, which is End().
func (node *Node[V]) succ() *Node[V] {
	x := node
	if x == nil {
		return nil
	}
	if x.right != nil {
		return x.right.minimum()
	}

	aux := x.parent
	// Backtrack to father node that is the x's succ.
	for aux != nil && x == aux.right {
		x = aux
		aux = aux.parent
	}
	return aux
}

// blackCount counts the black nodes on the path from node up to root,
// both inclusive.
func blackCount[V any](node, root *Node[V]) int {
	if node == nil {
		return 0
	}
	count := 0
	for aux := node; ; aux = aux.parent {
		if aux.isBlack() {
			count++
		}
		if aux == root || aux.parent == nil {
			break
		}
	}
	return count
}

// rbHeader is the tree handle. It caches the extremes so that
// Begin() is O(1) and decrementing End() lands on the maximum.
// Iterators point at it, it is exchanged as a whole on swap.
type rbHeader[V any] struct {
	root      *Node[V]
	leftmost  *Node[V]
	rightmost *Node[V]
	count     int
}

// decrement steps x back in sorted order, End() (nil) steps back to
// the maximum.
func (h *rbHeader[V]) decrement(x *Node[V]) *Node[V] {
	if x == nil {
		return h.rightmost
	}
	return x.pred()
}

func (h *rbHeader[V]) reset() {
	h.root, h.leftmost, h.rightmost = nil, nil, nil
}

// replaceChild links x into the slot owned by old in old's parent.
func (h *rbHeader[V]) replaceChild(old, x *Node[V]) {
	switch dir := old.Direction(); dir {
	case Root:
		h.root = x
	case Left:
		old.parent.left = x
	case Right:
		old.parent.right = x
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to replace")
	}
}

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

/*
		 |                         |
		 X                         S
		/ \     rotateLeft(X)     / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc
*/
func (h *rbHeader[V]) rotateLeft(x *Node[V]) {
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] left rotate node x is nil or x.right is nil")
	}

	p, y := x.parent, x.right
	dir := x.Direction()
	x.right, y.left = y.left, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		h.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to left-rotate")
	}
	y.parent = p
}

/*
			 |                         |
			 X                         S
			/ \     rotateRight(S)    / \
	       L   S    <============    X   R
			  / \                   / \
			Sc   Sd               Sc   Sd
*/
func (h *rbHeader[V]) rotateRight(x *Node[V]) {
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] right rotate node x is nil or x.left is nil")
	}

	p, y := x.parent, x.left
	dir := x.Direction()
	x.left, y.right = y.right, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		h.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to right-rotate")
	}
	y.parent = p
}

// insertAndRebalance links the detached node x under p, on the left
// side if insertLeft. A nil p means x becomes the root of an empty tree.
func (h *rbHeader[V]) insertAndRebalance(insertLeft bool, x, p *Node[V]) {
	x.parent, x.left, x.right = p, nil, nil
	x.color = Red

	if p == nil {
		h.root, h.leftmost, h.rightmost = x, x, x
	} else if insertLeft {
		p.left = x
		if p == h.leftmost {
			h.leftmost = x
		}
	} else {
		p.right = x
		if p == h.rightmost {
			h.rightmost = x
		}
	}
	h.insertRebalance(x)
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

im1: Current node X's parent P is black, nothing to fix.

im2: Current node X is the root, repaint it into black.

im3: If both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainted G into red may be still red-violation.
Recursive to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im4: The parent P is red but the uncle U is black. (red-violation)
X is opposite direction to P. Rotate P to opposite direction.
After rotation may be still red-violation. Here must enter im5 to fix.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im5: Handle im4 scenario, current node is the same direction as parent.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (h *rbHeader[V]) insertRebalance(x *Node[V]) {
	for /* im1 */ x != h.root && x.parent.isRed() {
		// The parent is red, so it is not the root and the grandpa exists.
		p, gp := x.parent, x.parent.parent
		if /* im3 */ u := p.sibling(); u.isRed() {
			p.color = Black
			u.color = Black
			gp.color = Red
			x = gp
			continue
		}

		if dir := x.Direction(); /* im4 */ dir != p.Direction() {
			switch dir {
			case Left:
				h.rotateRight(p)
			case Right:
				h.rotateLeft(p)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] insert violate (im4)")
			}
			x, p = p, x // enter im5 to fix
		}

		switch /* im5 */ dir := p.Direction(); dir {
		case Left:
			h.rotateRight(gp)
		case Right:
			h.rotateLeft(gp)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] insert violate (im5)")
		}
		p.color = Black
		gp.color = Red
		break
	}
	/* im2 */ h.root.color = Black
}

/*
rebalanceForErase unlinks z and returns it, ready to be destroyed.

r1: Z has at most one child X, X takes z's place.

r2: Z has two children. Its successor Y (the minimum of the right
subtree, without a left child) is spliced into z's place and takes
z's color. The nodes move, the values never do, so every iterator
but the ones to z stays valid.

	  |                    |
	  Z                    Y
	 / \                  / \
	L  ..   splice(Y)    L  ..
		|   =========>       |
		P                    P
	   / \                  / \
	  Y  ..                X  ..
	   \
	    X

When a black node left the tree, X carries an extra black. The
sibling cases below move it up or absorb it.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

Sc is the same direction to X and it X's sibling's child node.
Sd is the opposite direction to X and it X's sibling's child node.

rm1: Current node X's sibling S is red, so the parent P, nephew node Sc and Sd
must be black. (Otherwise, red-violation)
Rotate P towards X, repaint S into black, P into red.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [D]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: The sibling S, nephew node Sc and Sd are black, the parent P is red.
Repaint S into red and P into black. Done.

rm3: All of current node X's parent P, the sibling S, nephew node Sc and Sd
are black. Paint the S into red to satisfy p4 locally. Then recursive to
handle P.

	  {P}             {P}
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm4: Current node X's sibling S is black, nephew node Sc is red and Sd
is black. Rotate S away from X, repaint S into red, Sc into black.
Enter into rm5 to fix.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm5: Current node X's sibling S is black, nephew node Sd is red.
Rotate P towards X, S takes P's color, P and Sd are repainted into black.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]
*/
func (h *rbHeader[V]) rebalanceForErase(z *Node[V]) *Node[V] {
	var x, xParent *Node[V]
	y := z
	if y.left == nil {
		x = y.right
	} else if y.right == nil {
		x = y.left
	} else /* r2 */ {
		y = y.right.minimum()
		x = y.right
	}

	if /* r2 */ y != z {
		z.left.parent = y
		y.left = z.left
		if y != z.right {
			xParent = y.parent
			if x != nil {
				x.parent = y.parent
			}
			y.parent.left = x
			y.right = z.right
			z.right.parent = y
		} else {
			xParent = y
		}
		h.replaceChild(z, y)
		y.parent = z.parent
		y.color, z.color = z.color, y.color
		// y is now the node actually removed from the tree.
		y = z
	} else /* r1 */ {
		xParent = y.parent
		if x != nil {
			x.parent = y.parent
		}
		h.replaceChild(z, x)
		if h.leftmost == z {
			if z.right == nil {
				h.leftmost = z.parent
			} else {
				h.leftmost = x.minimum()
			}
		}
		if h.rightmost == z {
			if z.left == nil {
				h.rightmost = z.parent
			} else {
				h.rightmost = x.maximum()
			}
		}
	}

	if y.isRed() {
		return z
	}
	for x != h.root && x.isBlack() {
		if x == xParent.left {
			s := xParent.right
			if /* rm1 */ s.isRed() {
				s.color = Black
				xParent.color = Red
				h.rotateLeft(xParent)
				s = xParent.right
			}
			if /* rm2, rm3 */ s.left.isBlack() && s.right.isBlack() {
				s.color = Red
				x = xParent
				xParent = xParent.parent
				continue
			}
			if /* rm4 */ s.right.isBlack() {
				s.left.color = Black
				s.color = Red
				h.rotateRight(s)
				s = xParent.right
			}
			/* rm5 */
			s.color = xParent.color
			xParent.color = Black
			if s.right != nil {
				s.right.color = Black
			}
			h.rotateLeft(xParent)
			break
		}

		s := xParent.left
		if /* rm1 */ s.isRed() {
			s.color = Black
			xParent.color = Red
			h.rotateRight(xParent)
			s = xParent.left
		}
		if /* rm2, rm3 */ s.right.isBlack() && s.left.isBlack() {
			s.color = Red
			x = xParent
			xParent = xParent.parent
			continue
		}
		if /* rm4 */ s.left.isBlack() {
			s.right.color = Black
			s.color = Red
			h.rotateLeft(s)
			s = xParent.left
		}
		/* rm5 */
		s.color = xParent.color
		xParent.color = Black
		if s.left != nil {
			s.left.color = Black
		}
		h.rotateRight(xParent)
		break
	}
	if x != nil {
		x.color = Black
	}
	return z
}
