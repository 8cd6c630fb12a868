package ordered

import (
	"fmt"
	"iter"
	"slices"

	"github.com/samber/lo"

	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/lib/iterator"
	"github.com/benz9527/xstl/lib/tree"
)

// Pair is the value stored by the maps. The key must not be changed
// through an iterator.
type Pair[K, M any] struct {
	Key   K
	Value M
}

func (p Pair[K, M]) String() string {
	return fmt.Sprintf("{%v %v}", p.Key, p.Value)
}

func pairKey[K, M any](p Pair[K, M]) K {
	return p.Key
}

func newPairTree[K, M any](less infra.LessFunc[K], opts []tree.RBTreeOpt[K, Pair[K, M]]) *tree.Tree[K, Pair[K, M]] {
	return tree.New[K, Pair[K, M]](pairKey[K, M], less, opts...)
}

// pairSeq yields the key and value of every pair of seq.
func pairSeq[K, M any](seq iter.Seq[Pair[K, M]]) iter.Seq2[K, M] {
	return func(yield func(K, M) bool) {
		for p := range seq {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Map associates unique keys with mapped values.
type Map[K, M any] struct {
	base[K, Pair[K, M]]
}

// NewMap creates a map ordered by the natural order of K.
func NewMap[K infra.OrderedKey, M any](opts ...tree.RBTreeOpt[K, Pair[K, M]]) *Map[K, M] {
	return NewMapFunc[K, M](infra.OrderedLess[K], opts...)
}

// NewMapFunc creates a map ordered by less.
func NewMapFunc[K, M any](less infra.LessFunc[K], opts ...tree.RBTreeOpt[K, Pair[K, M]]) *Map[K, M] {
	return &Map[K, M]{base[K, Pair[K, M]]{t: newPairTree(less, opts)}}
}

// Insert adds key with val unless key is present already. The returned
// position holds the pair with that key in both cases.
func (m *Map[K, M]) Insert(key K, val M) (tree.Iterator[Pair[K, M]], bool, error) {
	return m.t.InsertUnique(Pair[K, M]{Key: key, Value: val})
}

// InsertHint is Insert with a position close to where key belongs.
func (m *Map[K, M]) InsertHint(hint tree.Iterator[Pair[K, M]], key K, val M) (tree.Iterator[Pair[K, M]], bool, error) {
	return m.t.InsertUniqueHint(hint, Pair[K, M]{Key: key, Value: val})
}

// Put inserts key with val or overwrites the value mapped to key. It
// reports whether a new pair was inserted.
func (m *Map[K, M]) Put(key K, val M) (tree.Iterator[Pair[K, M]], bool, error) {
	it := m.t.LowerBound(key)
	if !it.IsEnd() && !m.t.KeyLess()(key, it.Value().Key) {
		it.Ptr().Value = val
		return it, false, nil
	}
	return m.t.InsertUniqueHint(it, Pair[K, M]{Key: key, Value: val})
}

// Ref returns the slot of the value mapped to key, inserting the zero
// value first when key is missing. The slot stays valid until the pair
// is erased.
func (m *Map[K, M]) Ref(key K) (*M, error) {
	it := m.t.LowerBound(key)
	if it.IsEnd() || m.t.KeyLess()(key, it.Value().Key) {
		var (
			zero M
			err  error
		)
		if it, _, err = m.t.InsertUniqueHint(it, Pair[K, M]{Key: key, Value: zero}); err != nil {
			return nil, err
		}
	}
	return &it.Ptr().Value, nil
}

// Get returns the value mapped to key.
func (m *Map[K, M]) Get(key K) (M, bool) {
	if it := m.t.Find(key); !it.IsEnd() {
		return it.Value().Value, true
	}
	var zero M
	return zero, false
}

// At is Get that reports a missing key as infra.ErrKeyNotFound.
func (m *Map[K, M]) At(key K) (M, error) {
	val, ok := m.Get(key)
	if !ok {
		return val, fmt.Errorf("%w: %v", infra.ErrKeyNotFound, key)
	}
	return val, nil
}

// All yields the pairs in key order.
func (m *Map[K, M]) All() iter.Seq2[K, M] {
	return pairSeq(m.t.All())
}

// Backward yields the pairs in reverse key order.
func (m *Map[K, M]) Backward() iter.Seq2[K, M] {
	return pairSeq(m.t.Backward())
}

func (m *Map[K, M]) Keys() []K {
	return lo.Map(slices.Collect(m.t.All()), func(p Pair[K, M], _ int) K {
		return p.Key
	})
}

func (m *Map[K, M]) Values() []M {
	return lo.Map(slices.Collect(m.t.All()), func(p Pair[K, M], _ int) M {
		return p.Value
	})
}

func (m *Map[K, M]) Clone() (*Map[K, M], error) {
	t, err := m.t.Clone()
	if err != nil {
		return nil, err
	}
	return &Map[K, M]{base[K, Pair[K, M]]{t: t}}, nil
}

// CopyFrom replaces the pairs with copies of other's, reusing the
// nodes already allocated.
func (m *Map[K, M]) CopyFrom(other *Map[K, M]) error {
	return m.t.CopyFrom(other.t)
}

func (m *Map[K, M]) Swap(other *Map[K, M]) {
	m.t.Swap(other.t)
}

// InsertMapRange inserts every pair of [first, last) whose key is not
// present yet.
func InsertMapRange[K, M any, It iterator.Reader[Pair[K, M], It]](m *Map[K, M], first, last It) error {
	return tree.InsertUniqueRange(m.t, first, last)
}

// MultiMap associates keys with values, equivalent keys allowed.
type MultiMap[K, M any] struct {
	base[K, Pair[K, M]]
}

func NewMultiMap[K infra.OrderedKey, M any](opts ...tree.RBTreeOpt[K, Pair[K, M]]) *MultiMap[K, M] {
	return NewMultiMapFunc[K, M](infra.OrderedLess[K], opts...)
}

func NewMultiMapFunc[K, M any](less infra.LessFunc[K], opts ...tree.RBTreeOpt[K, Pair[K, M]]) *MultiMap[K, M] {
	return &MultiMap[K, M]{base[K, Pair[K, M]]{t: newPairTree(less, opts)}}
}

// Insert adds key with val after the pairs with an equivalent key.
func (m *MultiMap[K, M]) Insert(key K, val M) (tree.Iterator[Pair[K, M]], error) {
	return m.t.InsertEqual(Pair[K, M]{Key: key, Value: val})
}

func (m *MultiMap[K, M]) InsertHint(hint tree.Iterator[Pair[K, M]], key K, val M) (tree.Iterator[Pair[K, M]], error) {
	return m.t.InsertEqualHint(hint, Pair[K, M]{Key: key, Value: val})
}

// GetAll returns the values mapped to key in insertion order.
func (m *MultiMap[K, M]) GetAll(key K) []M {
	first, last := m.t.EqualRange(key)
	vals := make([]M, 0, iterator.Distance(first, last))
	for ; !first.Equal(last); first = first.Next() {
		vals = append(vals, first.Value().Value)
	}
	return vals
}

func (m *MultiMap[K, M]) All() iter.Seq2[K, M] {
	return pairSeq(m.t.All())
}

func (m *MultiMap[K, M]) Backward() iter.Seq2[K, M] {
	return pairSeq(m.t.Backward())
}

// Keys returns the distinct keys in order.
func (m *MultiMap[K, M]) Keys() []K {
	less := m.t.KeyLess()
	keys := make([]K, 0, m.t.Len())
	for k := range m.All() {
		if n := len(keys); n == 0 || less(keys[n-1], k) {
			keys = append(keys, k)
		}
	}
	return keys
}

func (m *MultiMap[K, M]) Clone() (*MultiMap[K, M], error) {
	t, err := m.t.Clone()
	if err != nil {
		return nil, err
	}
	return &MultiMap[K, M]{base[K, Pair[K, M]]{t: t}}, nil
}

func (m *MultiMap[K, M]) Swap(other *MultiMap[K, M]) {
	m.t.Swap(other.t)
}

// InsertMultiMapRange inserts every pair of [first, last).
func InsertMultiMapRange[K, M any, It iterator.Reader[Pair[K, M], It]](m *MultiMap[K, M], first, last It) error {
	return tree.InsertEqualRange(m.t, first, last)
}
