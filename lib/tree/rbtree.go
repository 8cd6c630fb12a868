package tree

import (
	"iter"
	"unsafe"

	"go.uber.org/zap"

	"github.com/benz9527/xstl/lib/alloc"
	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/lib/iterator"
	"github.com/benz9527/xstl/lib/xlog"
)

// Tree is an ordered container of V, sorted by the key K extracted
// from every value. It is not safe for concurrent mutation.
type Tree[K, V any] struct {
	*rbHeader[V]
	keyOf  func(V) K
	less   infra.LessFunc[K]
	alloc  alloc.Allocator[Node[V]]
	logger xlog.XLogger
}

type RBTreeOpt[K, V any] func(*Tree[K, V])

// WithRBTreeDesc reverses the ordering of the tree.
func WithRBTreeDesc[K, V any]() RBTreeOpt[K, V] {
	return func(tree *Tree[K, V]) {
		less := tree.less
		tree.less = func(i, j K) bool {
			return less(j, i)
		}
	}
}

func WithRBTreeAllocator[K, V any](a alloc.Allocator[Node[V]]) RBTreeOpt[K, V] {
	return func(tree *Tree[K, V]) {
		if a != nil {
			tree.alloc = a
		}
	}
}

func WithRBTreeLogger[K, V any](logger xlog.XLogger) RBTreeOpt[K, V] {
	return func(tree *Tree[K, V]) {
		if logger != nil {
			tree.logger = logger
		}
	}
}

// New creates an empty tree ordered by less over the keys returned
// by keyOf.
func New[K, V any](keyOf func(V) K, less infra.LessFunc[K], opts ...RBTreeOpt[K, V]) *Tree[K, V] {
	if keyOf == nil || less == nil {
		panic("[rbtree] nil key extractor or key comparator")
	}
	tree := &Tree[K, V]{
		rbHeader: &rbHeader[V]{},
		keyOf:    keyOf,
		less:     less,
		alloc:    alloc.NewHeap[Node[V]](),
		logger:   xlog.NewNopXLogger(),
	}
	for _, o := range opts {
		o(tree)
	}
	return tree
}

func identity[K any](k K) K {
	return k
}

// NewOrdered creates a tree whose values are their own keys, in
// ascending natural order.
func NewOrdered[K infra.OrderedKey](opts ...RBTreeOpt[K, K]) *Tree[K, K] {
	return New[K, K](identity[K], infra.OrderedLess[K], opts...)
}

func (tree *Tree[K, V]) key(node *Node[V]) K {
	return tree.keyOf(node.value)
}

func (tree *Tree[K, V]) iter(node *Node[V]) Iterator[V] {
	return Iterator[V]{node: node, h: tree.rbHeader}
}

func (tree *Tree[K, V]) owns(it Iterator[V]) bool {
	return it.h == tree.rbHeader
}

func (tree *Tree[K, V]) createNode(val V) (*Node[V], error) {
	slots, err := tree.alloc.Allocate(1)
	if err != nil {
		return nil, err
	}
	node := &slots[0]
	if err = tree.alloc.Construct(node, Node[V]{value: val}); err != nil {
		tree.alloc.Deallocate(slots)
		return nil, err
	}
	return node, nil
}

func (tree *Tree[K, V]) dropNode(node *Node[V]) {
	tree.alloc.Destroy(node)
	tree.alloc.Deallocate(unsafe.Slice(node, 1))
}

// eraseSubtree destroys x and all of its descendants in post-order,
// without rebalancing.
func (tree *Tree[K, V]) eraseSubtree(x *Node[V]) {
	for x != nil {
		tree.eraseSubtree(x.right)
		y := x.left
		tree.dropNode(x)
		x = y
	}
}

func (tree *Tree[K, V]) Len() int {
	return tree.count
}

func (tree *Tree[K, V]) Empty() bool {
	return tree.count == 0
}

func (tree *Tree[K, V]) MaxSize() int {
	return tree.alloc.MaxSize()
}

func (tree *Tree[K, V]) KeyLess() infra.LessFunc[K] {
	return tree.less
}

func (tree *Tree[K, V]) KeyOf() func(V) K {
	return tree.keyOf
}

func (tree *Tree[K, V]) Root() *Node[V] {
	return tree.root
}

func (tree *Tree[K, V]) Begin() Iterator[V] {
	return tree.iter(tree.leftmost)
}

func (tree *Tree[K, V]) End() Iterator[V] {
	return tree.iter(nil)
}

func (tree *Tree[K, V]) RBegin() iterator.Reverse[V, Iterator[V]] {
	return iterator.MakeReverse[V](tree.End())
}

func (tree *Tree[K, V]) REnd() iterator.Reverse[V, Iterator[V]] {
	return iterator.MakeReverse[V](tree.Begin())
}

// All yields the values in ascending key order.
func (tree *Tree[K, V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for node := tree.leftmost; node != nil; node = node.succ() {
			if !yield(node.value) {
				return
			}
		}
	}
}

// Backward yields the values in descending key order.
func (tree *Tree[K, V]) Backward() iter.Seq[V] {
	return func(yield func(V) bool) {
		for node := tree.rightmost; node != nil; node = node.pred() {
			if !yield(node.value) {
				return
			}
		}
	}
}

// Inorder traversal to implement the DFS.
func (tree *Tree[K, V]) Foreach(action func(idx int64, color RBColor, val V) bool) {
	aux := tree.root
	if tree.count <= 0 || aux == nil {
		return
	}

	stack := make([]*Node[V], 0, tree.count>>1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.value) {
			return
		}
		idx++
		stack = stack[:size-1]
		for aux = aux.right; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

// lowerBound returns the first node under x whose key is not less
// than k, or y if there is none.
func (tree *Tree[K, V]) lowerBound(x, y *Node[V], k K) *Node[V] {
	for x != nil {
		if !tree.less(tree.key(x), k) {
			y, x = x, x.left
		} else {
			x = x.right
		}
	}
	return y
}

// upperBound returns the first node under x whose key is greater
// than k, or y if there is none.
func (tree *Tree[K, V]) upperBound(x, y *Node[V], k K) *Node[V] {
	for x != nil {
		if tree.less(k, tree.key(x)) {
			y, x = x, x.left
		} else {
			x = x.right
		}
	}
	return y
}

func (tree *Tree[K, V]) LowerBound(k K) Iterator[V] {
	return tree.iter(tree.lowerBound(tree.root, nil, k))
}

func (tree *Tree[K, V]) UpperBound(k K) Iterator[V] {
	return tree.iter(tree.upperBound(tree.root, nil, k))
}

// EqualRange returns [LowerBound(k), UpperBound(k)). The descent is
// shared until the first equivalent key, then it splits.
func (tree *Tree[K, V]) EqualRange(k K) (first, last Iterator[V]) {
	x := tree.root
	var y *Node[V]
	for x != nil {
		if tree.less(tree.key(x), k) {
			x = x.right
		} else if tree.less(k, tree.key(x)) {
			y, x = x, x.left
		} else {
			xu, yu := x.right, y
			y, x = x, x.left
			return tree.iter(tree.lowerBound(x, y, k)), tree.iter(tree.upperBound(xu, yu, k))
		}
	}
	return tree.iter(y), tree.iter(y)
}

// Find returns the first value with a key equivalent to k, or End().
func (tree *Tree[K, V]) Find(k K) Iterator[V] {
	node := tree.lowerBound(tree.root, nil, k)
	if node == nil || tree.less(k, tree.key(node)) {
		return tree.End()
	}
	return tree.iter(node)
}

func (tree *Tree[K, V]) Contains(k K) bool {
	return !tree.Find(k).IsEnd()
}

func (tree *Tree[K, V]) Count(k K) int {
	first, last := tree.EqualRange(k)
	return iterator.Distance(first, last)
}

// Erase removes the value at pos and returns the iterator to its
// successor. Erasing End() or a position of another tree panics.
func (tree *Tree[K, V]) Erase(pos Iterator[V]) Iterator[V] {
	if pos.node == nil || !tree.owns(pos) {
		panic("[rbtree] erase of End() or of a foreign position")
	}
	next := pos.node.succ()
	tree.dropNode(tree.rebalanceForErase(pos.node))
	tree.count--
	return tree.iter(next)
}

// EraseRange removes [first, last) and returns last.
func (tree *Tree[K, V]) EraseRange(first, last Iterator[V]) Iterator[V] {
	if first.Equal(tree.Begin()) && last.IsEnd() {
		tree.Clear()
		return tree.End()
	}
	for !first.Equal(last) {
		first = tree.Erase(first)
	}
	return last
}

// EraseKey removes every value whose key is equivalent to k and
// returns how many were removed.
func (tree *Tree[K, V]) EraseKey(k K) int {
	first, last := tree.EqualRange(k)
	size := tree.count
	tree.EraseRange(first, last)
	return size - tree.count
}

// Clear destroys every node.
func (tree *Tree[K, V]) Clear() {
	tree.eraseSubtree(tree.root)
	tree.reset()
	tree.count = 0
}

// Release destroys every node. The tree stays usable.
func (tree *Tree[K, V]) Release() {
	if tree.count > 0 {
		tree.logger.Debug("[rbtree] release", zap.Int("size", tree.count))
	}
	tree.Clear()
}

// Swap exchanges the contents, comparators and allocators in O(1).
// The handle moves along with its nodes, so iterators keep referring
// to their nodes and now belong to other. End() iterators follow the
// handle as well.
func (tree *Tree[K, V]) Swap(other *Tree[K, V]) {
	if tree == other {
		return
	}
	*tree, *other = *other, *tree
}
