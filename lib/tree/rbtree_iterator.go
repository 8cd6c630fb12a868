package tree

import (
	"github.com/benz9527/xstl/lib/iterator"
)

var _ iterator.Bidirectional[int, Iterator[int]] = Iterator[int]{}

// Iterator is a bidirectional position in a tree. The zero node is
// End(). An iterator stays valid until the node it refers to is
// erased; insertions and erasures of other nodes never move it.
type Iterator[V any] struct {
	iterator.BidirectionalTag
	node *Node[V]
	h    *rbHeader[V]
}

// Node returns the referenced node, nil for End().
func (it Iterator[V]) Node() *Node[V] {
	return it.node
}

func (it Iterator[V]) IsEnd() bool {
	return it.node == nil
}

// Value panics on End().
func (it Iterator[V]) Value() V {
	if it.node == nil {
		panic("[rbtree] dereference of End()")
	}
	return it.node.value
}

// Ptr gives in-place access to the value. Changing the key part
// through it breaks the ordering.
func (it Iterator[V]) Ptr() *V {
	if it.node == nil {
		panic("[rbtree] dereference of End()")
	}
	return &it.node.value
}

func (it Iterator[V]) Next() Iterator[V] {
	return Iterator[V]{node: it.node.succ(), h: it.h}
}

// Prev of End() is the maximum, Prev of Begin() is End().
func (it Iterator[V]) Prev() Iterator[V] {
	if it.h == nil {
		return it
	}
	return Iterator[V]{node: it.h.decrement(it.node), h: it.h}
}

func (it Iterator[V]) Equal(other Iterator[V]) bool {
	return it.node == other.node && (it.node != nil || it.h == other.h)
}
