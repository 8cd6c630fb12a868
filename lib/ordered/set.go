package ordered

import (
	"iter"
	"slices"

	"github.com/samber/lo"

	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/lib/iterator"
	"github.com/benz9527/xstl/lib/tree"
)

func identity[K any](k K) K {
	return k
}

// Set holds unique keys in order.
type Set[K any] struct {
	base[K, K]
}

func NewSet[K infra.OrderedKey](opts ...tree.RBTreeOpt[K, K]) *Set[K] {
	return NewSetFunc[K](infra.OrderedLess[K], opts...)
}

func NewSetFunc[K any](less infra.LessFunc[K], opts ...tree.RBTreeOpt[K, K]) *Set[K] {
	return &Set[K]{base[K, K]{t: tree.New[K, K](identity[K], less, opts...)}}
}

// NewSetOf creates a set holding the distinct keys.
func NewSetOf[K infra.OrderedKey](keys ...K) (*Set[K], error) {
	s := NewSet[K]()
	first, last := iterator.OfSlice(lo.Uniq(keys))
	if err := tree.InsertUniqueRange(s.t, first, last); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

// Insert adds k unless it is present already.
func (s *Set[K]) Insert(k K) (tree.Iterator[K], bool, error) {
	return s.t.InsertUnique(k)
}

func (s *Set[K]) InsertHint(hint tree.Iterator[K], k K) (tree.Iterator[K], bool, error) {
	return s.t.InsertUniqueHint(hint, k)
}

func (s *Set[K]) All() iter.Seq[K] {
	return s.t.All()
}

func (s *Set[K]) Backward() iter.Seq[K] {
	return s.t.Backward()
}

func (s *Set[K]) Keys() []K {
	return slices.Collect(s.t.All())
}

func (s *Set[K]) Clone() (*Set[K], error) {
	t, err := s.t.Clone()
	if err != nil {
		return nil, err
	}
	return &Set[K]{base[K, K]{t: t}}, nil
}

func (s *Set[K]) CopyFrom(other *Set[K]) error {
	return s.t.CopyFrom(other.t)
}

func (s *Set[K]) Swap(other *Set[K]) {
	s.t.Swap(other.t)
}

// InsertSetRange inserts every key of [first, last) not present yet.
func InsertSetRange[K any, It iterator.Reader[K, It]](s *Set[K], first, last It) error {
	return tree.InsertUniqueRange(s.t, first, last)
}

// MultiSet holds keys in order, equivalent keys allowed.
type MultiSet[K any] struct {
	base[K, K]
}

func NewMultiSet[K infra.OrderedKey](opts ...tree.RBTreeOpt[K, K]) *MultiSet[K] {
	return NewMultiSetFunc[K](infra.OrderedLess[K], opts...)
}

func NewMultiSetFunc[K any](less infra.LessFunc[K], opts ...tree.RBTreeOpt[K, K]) *MultiSet[K] {
	return &MultiSet[K]{base[K, K]{t: tree.New[K, K](identity[K], less, opts...)}}
}

// Insert adds k after the keys equivalent to it.
func (s *MultiSet[K]) Insert(k K) (tree.Iterator[K], error) {
	return s.t.InsertEqual(k)
}

func (s *MultiSet[K]) InsertHint(hint tree.Iterator[K], k K) (tree.Iterator[K], error) {
	return s.t.InsertEqualHint(hint, k)
}

func (s *MultiSet[K]) All() iter.Seq[K] {
	return s.t.All()
}

func (s *MultiSet[K]) Backward() iter.Seq[K] {
	return s.t.Backward()
}

func (s *MultiSet[K]) Keys() []K {
	return slices.Collect(s.t.All())
}

func (s *MultiSet[K]) Clone() (*MultiSet[K], error) {
	t, err := s.t.Clone()
	if err != nil {
		return nil, err
	}
	return &MultiSet[K]{base[K, K]{t: t}}, nil
}

func (s *MultiSet[K]) Swap(other *MultiSet[K]) {
	s.t.Swap(other.t)
}

// InsertMultiSetRange inserts every key of [first, last).
func InsertMultiSetRange[K any, It iterator.Reader[K, It]](s *MultiSet[K], first, last It) error {
	return tree.InsertEqualRange(s.t, first, last)
}
