package tree

import (
	"github.com/benz9527/xstl/lib/iterator"
)

// insertPos is where a new node goes: under parent, on the left side
// if left. A nil parent is the root of an empty tree. A non-nil dup
// is the node already holding an equivalent key.
type insertPos[V any] struct {
	parent *Node[V]
	left   bool
	dup    *Node[V]
}

func (tree *Tree[K, V]) uniquePos(k K) insertPos[V] {
	var y *Node[V]
	x, comp := tree.root, true
	for x != nil {
		y = x
		comp = tree.less(k, tree.key(x))
		if comp {
			x = x.left
		} else {
			x = x.right
		}
	}
	if y == nil {
		return insertPos[V]{left: true}
	}

	j := y
	if comp {
		if j == tree.leftmost {
			return insertPos[V]{parent: y, left: true}
		}
		j = j.pred()
	}
	if tree.less(tree.key(j), k) {
		return insertPos[V]{parent: y, left: comp}
	}
	return insertPos[V]{dup: j}
}

// equalPos places k after every equivalent key, so equal keys keep
// their insertion order.
func (tree *Tree[K, V]) equalPos(k K) insertPos[V] {
	var y *Node[V]
	x, left := tree.root, true
	for x != nil {
		y = x
		left = tree.less(k, tree.key(x))
		if left {
			x = x.left
		} else {
			x = x.right
		}
	}
	return insertPos[V]{parent: y, left: y == nil || left}
}

// uniqueHintPos checks the slots right before and right after hint
// and falls back to the full descent when neither fits.
func (tree *Tree[K, V]) uniqueHintPos(hint *Node[V], k K) insertPos[V] {
	if hint == nil {
		if tree.count > 0 && tree.less(tree.key(tree.rightmost), k) {
			return insertPos[V]{parent: tree.rightmost}
		}
		return tree.uniquePos(k)
	}

	if tree.less(k, tree.key(hint)) {
		if hint == tree.leftmost {
			return insertPos[V]{parent: hint, left: true}
		}
		before := hint.pred()
		if tree.less(tree.key(before), k) {
			if before.right == nil {
				return insertPos[V]{parent: before}
			}
			return insertPos[V]{parent: hint, left: true}
		}
		return tree.uniquePos(k)
	}

	if tree.less(tree.key(hint), k) {
		if hint == tree.rightmost {
			return insertPos[V]{parent: hint}
		}
		after := hint.succ()
		if tree.less(k, tree.key(after)) {
			if hint.right == nil {
				return insertPos[V]{parent: hint}
			}
			return insertPos[V]{parent: after, left: true}
		}
		return tree.uniquePos(k)
	}
	return insertPos[V]{dup: hint}
}

func (tree *Tree[K, V]) equalHintPos(hint *Node[V], k K) insertPos[V] {
	if hint == nil {
		if tree.count > 0 && !tree.less(k, tree.key(tree.rightmost)) {
			return insertPos[V]{parent: tree.rightmost}
		}
		return tree.equalPos(k)
	}

	if !tree.less(tree.key(hint), k) {
		if hint == tree.leftmost {
			return insertPos[V]{parent: hint, left: true}
		}
		before := hint.pred()
		if !tree.less(k, tree.key(before)) {
			if before.right == nil {
				return insertPos[V]{parent: before}
			}
			return insertPos[V]{parent: hint, left: true}
		}
		return tree.equalPos(k)
	}

	if hint == tree.rightmost {
		return insertPos[V]{parent: hint}
	}
	after := hint.succ()
	if !tree.less(tree.key(after), k) {
		if hint.right == nil {
			return insertPos[V]{parent: hint}
		}
		return insertPos[V]{parent: after, left: true}
	}
	return tree.equalPos(k)
}

func (tree *Tree[K, V]) insertAt(pos insertPos[V], val V) (Iterator[V], error) {
	node, err := tree.createNode(val)
	if err != nil {
		return tree.End(), err
	}
	tree.insertAndRebalance(pos.left, node, pos.parent)
	tree.count++
	return tree.iter(node), nil
}

// InsertUnique inserts val unless its key is already present. It
// returns the position of the value with that key and whether val
// was inserted. An allocator error leaves the tree untouched.
func (tree *Tree[K, V]) InsertUnique(val V) (Iterator[V], bool, error) {
	pos := tree.uniquePos(tree.keyOf(val))
	if pos.dup != nil {
		return tree.iter(pos.dup), false, nil
	}
	it, err := tree.insertAt(pos, val)
	return it, err == nil, err
}

// InsertEqual always inserts val, after the values with an equivalent key.
func (tree *Tree[K, V]) InsertEqual(val V) (Iterator[V], error) {
	return tree.insertAt(tree.equalPos(tree.keyOf(val)), val)
}

// InsertUniqueHint is InsertUnique in amortized O(1) when val belongs
// right before or right after hint. A bad hint costs the full descent.
func (tree *Tree[K, V]) InsertUniqueHint(hint Iterator[V], val V) (Iterator[V], bool, error) {
	k := tree.keyOf(val)
	var pos insertPos[V]
	if tree.owns(hint) {
		pos = tree.uniqueHintPos(hint.node, k)
	} else {
		pos = tree.uniquePos(k)
	}
	if pos.dup != nil {
		return tree.iter(pos.dup), false, nil
	}
	it, err := tree.insertAt(pos, val)
	return it, err == nil, err
}

// InsertEqualHint inserts val as close as possible before hint.
func (tree *Tree[K, V]) InsertEqualHint(hint Iterator[V], val V) (Iterator[V], error) {
	k := tree.keyOf(val)
	if !tree.owns(hint) {
		return tree.insertAt(tree.equalPos(k), val)
	}
	return tree.insertAt(tree.equalHintPos(hint.node, k), val)
}

// InsertUniqueRange inserts every value of [first, last) whose key is
// not present yet, hinting at End() so that sorted input is linear.
// It stops at the first allocator error, values inserted so far stay.
func InsertUniqueRange[K, V any, It iterator.Reader[V, It]](tree *Tree[K, V], first, last It) error {
	for ; !first.Equal(last); first = first.Next() {
		if _, _, err := tree.InsertUniqueHint(tree.End(), first.Value()); err != nil {
			return err
		}
	}
	return nil
}

// InsertEqualRange inserts every value of [first, last).
func InsertEqualRange[K, V any, It iterator.Reader[V, It]](tree *Tree[K, V], first, last It) error {
	for ; !first.Equal(last); first = first.Next() {
		if _, err := tree.InsertEqualHint(tree.End(), first.Value()); err != nil {
			return err
		}
	}
	return nil
}
