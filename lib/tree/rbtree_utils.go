package tree

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xstl/lib/infra"
)

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{infra.ErrTreeViolation}, args...)...)
}

// rbtree rule validation utilities.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

// Inorder traversal to validate the rbtree properties.
func RedViolationValidate[K, V any](tree *Tree[K, V]) error {
	aux := tree.root
	if tree.count <= 0 || aux == nil {
		return nil
	}

	stack := make([]*Node[V], 0, tree.count>>1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; aux.isRed() {
			if aux.parent.isRed() || aux.left.isRed() || aux.right.isRed() {
				return violation("red node %v has a red neighbour", tree.key(aux))
			}
		}

		stack = stack[:size-1]
		for aux = aux.right; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
	return nil
}

// BFS traversal to load all nodes owning a nil leaf.
func bfsLeaves[V any](root *Node[V]) []*Node[V] {
	if root == nil {
		return nil
	}

	leaves := make([]*Node[V], 0, 8)
	queue := []*Node[V]{root}
	for len(queue) > 0 {
		aux := queue[0]
		l, r := aux.left, aux.right
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

Each leaf node to root node black depth are equal.
*/
func BlackViolationValidate[K, V any](tree *Tree[K, V]) error {
	leaves := bfsLeaves(tree.root)
	if leaves == nil {
		return nil
	}

	blackDepth := blackCount(leaves[0], tree.root)
	for i := 1; i < len(leaves); i++ {
		if depth := blackCount(leaves[i], tree.root); depth != blackDepth {
			return violation("black depth %d at %v, expected %d", depth, tree.key(leaves[i]), blackDepth)
		}
	}
	return nil
}

// Verify checks every structural invariant and reports all the
// violations found at once.
func (tree *Tree[K, V]) Verify() (err error) {
	defer func() {
		if err != nil {
			tree.logger.ErrorStack(infra.WrapErrorStack(err), "[rbtree] verify failed")
		}
	}()

	if tree.root == nil {
		if tree.count != 0 || tree.leftmost != nil || tree.rightmost != nil {
			return violation("empty tree with size %d or cached extremes", tree.count)
		}
		return nil
	}

	if tree.root.isRed() {
		err = multierr.Append(err, violation("red root"))
	}
	if tree.root.parent != nil {
		err = multierr.Append(err, violation("root with a parent"))
	}
	if tree.leftmost != tree.root.minimum() {
		err = multierr.Append(err, violation("leftmost is not the minimum"))
	}
	if tree.rightmost != tree.root.maximum() {
		err = multierr.Append(err, violation("rightmost is not the maximum"))
	}

	size := 0
	tree.walk(func(node *Node[V]) {
		size++
		for _, child := range [2]*Node[V]{node.left, node.right} {
			if child != nil && child.parent != node {
				err = multierr.Append(err, violation("broken parent link under %v", tree.key(node)))
			}
		}
		if node.left != nil && tree.less(tree.key(node), tree.key(node.left)) {
			err = multierr.Append(err, violation("left child %v after %v", tree.key(node.left), tree.key(node)))
		}
		if node.right != nil && tree.less(tree.key(node.right), tree.key(node)) {
			err = multierr.Append(err, violation("right child %v before %v", tree.key(node.right), tree.key(node)))
		}
		if prev := node.pred(); prev != nil && tree.less(tree.key(node), tree.key(prev)) {
			err = multierr.Append(err, violation("%v out of order after %v", tree.key(node), tree.key(prev)))
		}
	})
	if size != tree.count {
		err = multierr.Append(err, violation("size %d, %d nodes reachable", tree.count, size))
	}

	err = multierr.Append(err, RedViolationValidate(tree))
	err = multierr.Append(err, BlackViolationValidate(tree))
	return err
}

// walk visits every node in pre-order.
func (tree *Tree[K, V]) walk(visit func(node *Node[V])) {
	if tree.root == nil {
		return
	}
	stack := []*Node[V]{tree.root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(node)
		if node.right != nil {
			stack = append(stack, node.right)
		}
		if node.left != nil {
			stack = append(stack, node.left)
		}
	}
}
