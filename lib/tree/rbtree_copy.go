package tree

import (
	"unsafe"

	"go.uber.org/zap"
)

// nodeGen produces a detached node holding a copy of src's value.
type nodeGen[V any] func(src *Node[V]) (*Node[V], error)

func cloneNode[V any](x *Node[V], gen nodeGen[V]) (*Node[V], error) {
	node, err := gen(x)
	if err != nil {
		return nil, err
	}
	node.color = x.color
	node.parent, node.left, node.right = nil, nil, nil
	return node, nil
}

// copySubtree copies x with its shape and colors under p. The right
// spines recurse, the left spine loops. On error the partial copy is
// destroyed and nil is returned.
func (tree *Tree[K, V]) copySubtree(x, p *Node[V], gen nodeGen[V]) (top *Node[V], err error) {
	if top, err = cloneNode(x, gen); err != nil {
		return nil, err
	}
	top.parent = p
	defer func() {
		if err != nil {
			tree.eraseSubtree(top)
			top = nil
		}
	}()

	if x.right != nil {
		if top.right, err = tree.copySubtree(x.right, top, gen); err != nil {
			return top, err
		}
	}
	p = top
	for x = x.left; x != nil; x = x.left {
		y, cerr := cloneNode(x, gen)
		if cerr != nil {
			return top, cerr
		}
		p.left, y.parent = y, p
		if x.right != nil {
			if y.right, err = tree.copySubtree(x.right, y, gen); err != nil {
				return top, err
			}
		}
		p = y
	}
	return top, nil
}

// copyFrom rebuilds this (empty) tree as a structural copy of other.
func (tree *Tree[K, V]) copyFrom(other *Tree[K, V], gen nodeGen[V]) error {
	if other.root == nil {
		return nil
	}
	root, err := tree.copySubtree(other.root, nil, gen)
	if err != nil {
		return err
	}
	tree.root = root
	tree.leftmost = root.minimum()
	tree.rightmost = root.maximum()
	tree.count = other.count
	return nil
}

// Clone returns a deep copy with the same shape, colors, comparator,
// allocator and logger. On an allocator error nothing is leaked and
// the error is returned.
func (tree *Tree[K, V]) Clone() (*Tree[K, V], error) {
	c := &Tree[K, V]{
		rbHeader: &rbHeader[V]{},
		keyOf:    tree.keyOf,
		less:     tree.less,
		alloc:    tree.alloc,
		logger:   tree.logger,
	}
	err := c.copyFrom(tree, func(src *Node[V]) (*Node[V], error) {
		return c.createNode(src.value)
	})
	if err != nil {
		tree.logger.Warn("[rbtree] clone rolled back",
			zap.Error(err),
			zap.Int("size", tree.count),
		)
		return nil, err
	}
	return c, nil
}

// CopyFrom replaces the content with a copy of other, and takes over
// its comparator and key extractor. The current nodes are reused for
// the copy before new ones are allocated. On an allocator error the
// tree is left empty and valid.
func (tree *Tree[K, V]) CopyFrom(other *Tree[K, V]) error {
	if tree == other {
		return nil
	}

	pool := tree.detachNodes()
	defer func() {
		for _, node := range pool {
			tree.dropNode(node)
		}
		clear(pool)
	}()

	tree.keyOf, tree.less = other.keyOf, other.less
	err := tree.copyFrom(other, func(src *Node[V]) (*Node[V], error) {
		if len(pool) == 0 {
			return tree.createNode(src.value)
		}
		node := pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		tree.alloc.Destroy(node)
		if err := tree.alloc.Construct(node, Node[V]{value: src.value}); err != nil {
			tree.alloc.Deallocate(unsafe.Slice(node, 1))
			return nil, err
		}
		return node, nil
	})
	if err != nil {
		tree.logger.Warn("[rbtree] copy rolled back",
			zap.Error(err),
			zap.Int("size", other.count),
		)
		return err
	}
	return nil
}

// detachNodes unlinks every node and leaves the tree empty. The nodes
// are still constructed.
func (tree *Tree[K, V]) detachNodes() []*Node[V] {
	nodes := make([]*Node[V], 0, tree.count)
	tree.walk(func(node *Node[V]) {
		nodes = append(nodes, node)
	})
	tree.reset()
	tree.count = 0
	return nodes
}
