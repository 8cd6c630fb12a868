package tree

import (
	"cmp"
	"errors"
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/benz9527/xstl/lib/alloc"
	"github.com/benz9527/xstl/lib/alloc/alloctest"
	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/lib/iterator"
	"github.com/benz9527/xstl/lib/xlog"
)

type entry struct {
	key int
	seq int
}

func newMulti(opts ...RBTreeOpt[int, entry]) *Tree[int, entry] {
	return New(func(e entry) int { return e.key }, infra.OrderedLess[int], opts...)
}

func keysOf(tree *Tree[int, entry]) []int {
	return lo.Map(slices.Collect(tree.All()), func(e entry, _ int) int {
		return e.key
	})
}

func TestTree_Bounds(t *testing.T) {
	tree := newMulti()
	for i, k := range []int{10, 20, 20, 20, 30, 40} {
		_, err := tree.InsertEqual(entry{k, i})
		require.NoError(t, err)
	}

	testcases := []struct {
		name          string
		key           int
		lower, upper  int // -1 is End()
		count         int
		found         bool
		lowerSeq      int
		distanceLower int
	}{
		{"below all", 5, 10, 10, 0, false, 0, 0},
		{"single", 10, 10, 20, 1, true, 0, 0},
		{"duplicates", 20, 20, 30, 3, true, 1, 1},
		{"between", 25, 30, 30, 0, false, 4, 4},
		{"max", 40, 40, -1, 1, true, 5, 5},
		{"above all", 50, -1, -1, 0, false, -1, 6},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			lower, upper := tree.LowerBound(tc.key), tree.UpperBound(tc.key)
			if tc.lower < 0 {
				require.True(tt, lower.IsEnd())
			} else {
				require.Equal(tt, tc.lower, lower.Value().key)
				require.Equal(tt, tc.lowerSeq, lower.Value().seq)
			}
			if tc.upper < 0 {
				require.True(tt, upper.IsEnd())
			} else {
				require.Equal(tt, tc.upper, upper.Value().key)
			}
			require.Equal(tt, tc.distanceLower, iterator.Distance(tree.Begin(), lower))

			first, last := tree.EqualRange(tc.key)
			require.True(tt, first.Equal(lower))
			require.True(tt, last.Equal(upper))
			require.Equal(tt, tc.count, tree.Count(tc.key))
			require.Equal(tt, tc.found, tree.Contains(tc.key))
			if tc.found {
				require.Equal(tt, tc.lowerSeq, tree.Find(tc.key).Value().seq)
			} else {
				require.True(tt, tree.Find(tc.key).IsEnd())
			}
		})
	}
}

func TestTree_InsertEqualIsStable(t *testing.T) {
	tree := newMulti()
	for i := 0; i < 64; i++ {
		_, err := tree.InsertEqual(entry{i % 4, i})
		require.NoError(t, err)
	}
	require.NoError(t, tree.Verify())

	for k := 0; k < 4; k++ {
		first, last := tree.EqualRange(k)
		prev := -1
		for it := first; !it.Equal(last); it = it.Next() {
			require.Greater(t, it.Value().seq, prev)
			prev = it.Value().seq
		}
		require.Equal(t, 16, iterator.Distance(first, last))
	}

	require.Equal(t, 16, tree.EraseKey(2))
	require.Equal(t, 48, tree.Len())
	require.False(t, tree.Contains(2))
	require.NotContains(t, keysOf(tree), 2)
	require.True(t, slices.IsSorted(keysOf(tree)))
	require.NoError(t, tree.Verify())
}

func TestTree_InsertUniqueIsIdempotent(t *testing.T) {
	tree := NewOrdered[string]()
	it, ok, err := tree.InsertUnique("x")
	require.NoError(t, err)
	require.True(t, ok)

	again, ok, err := tree.InsertUnique("x")
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, again.Equal(it))
	require.Equal(t, 1, tree.Len())

	hinted, ok, err := tree.InsertUniqueHint(tree.Begin(), "x")
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, hinted.Equal(it))
}

func TestTree_Hints(t *testing.T) {
	testcases := []struct {
		name string
		hint func(tree *Tree[int, int], k int) Iterator[int]
	}{
		{"end", func(tree *Tree[int, int], k int) Iterator[int] { return tree.End() }},
		{"begin", func(tree *Tree[int, int], k int) Iterator[int] { return tree.Begin() }},
		{"lower bound", func(tree *Tree[int, int], k int) Iterator[int] { return tree.LowerBound(k) }},
		{"upper bound", func(tree *Tree[int, int], k int) Iterator[int] { return tree.UpperBound(k) }},
		{"before lower bound", func(tree *Tree[int, int], k int) Iterator[int] { return tree.LowerBound(k).Prev() }},
		{"foreign", func(tree *Tree[int, int], k int) Iterator[int] { return NewOrdered[int]().End() }},
	}
	keys := []int{50, 20, 80, 10, 30, 70, 90, 60, 40, 0, 100, 55, 25, 75}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			unique := NewOrdered[int]()
			multi := NewOrdered[int]()
			for _, k := range append(slices.Clone(keys), keys...) {
				_, _, err := unique.InsertUniqueHint(tc.hint(unique, k), k)
				require.NoError(tt, err)
				_, err = multi.InsertEqualHint(tc.hint(multi, k), k)
				require.NoError(tt, err)
				require.NoError(tt, unique.Verify())
				require.NoError(tt, multi.Verify())
			}
			sorted := slices.Sorted(slices.Values(keys))
			require.Equal(tt, sorted, slices.Collect(unique.All()))
			require.Equal(tt, len(keys)*2, multi.Len())
			for _, k := range keys {
				require.Equal(tt, 2, multi.Count(k))
			}
		})
	}
}

func TestTree_RangeInsert(t *testing.T) {
	src := []int{5, 1, 4, 1, 5, 9, 2, 6}
	first, last := iterator.OfSlice(src)

	unique := NewOrdered[int]()
	require.NoError(t, InsertUniqueRange(unique, first, last))
	require.Equal(t, []int{1, 2, 4, 5, 6, 9}, slices.Collect(unique.All()))

	multi := NewOrdered[int]()
	require.NoError(t, InsertEqualRange(multi, first, last))
	require.Equal(t, []int{1, 1, 2, 4, 5, 5, 6, 9}, slices.Collect(multi.All()))

	sfirst, slast := iterator.FromSeq(unique.Backward())
	desc := NewOrdered[int](WithRBTreeDesc[int, int]())
	require.NoError(t, InsertUniqueRange(desc, sfirst, slast))
	require.Equal(t, []int{9, 6, 5, 4, 2, 1}, slices.Collect(desc.All()))
	require.NoError(t, desc.Verify())
}

func TestTree_Iterators(t *testing.T) {
	tree := NewOrdered[int]()
	require.True(t, tree.Begin().Equal(tree.End()))
	require.True(t, tree.End().Prev().IsEnd())
	require.Panics(t, func() {
		tree.End().Value()
	})

	for _, k := range []int{3, 1, 4, 1, 5, 9, 2, 6} {
		_, _, err := tree.InsertUnique(k)
		require.NoError(t, err)
	}
	expected := []int{1, 2, 3, 4, 5, 6, 9}

	forward := make([]int, 0, tree.Len())
	for it := tree.Begin(); !it.Equal(tree.End()); it = it.Next() {
		forward = append(forward, it.Value())
	}
	require.Equal(t, expected, forward)

	backward := make([]int, 0, tree.Len())
	for it := tree.RBegin(); !it.Equal(tree.REnd()); it = it.Next() {
		backward = append(backward, it.Value())
	}
	require.Equal(t, lo.Reverse(slices.Clone(expected)), backward)
	require.Equal(t, backward, slices.Collect(tree.Backward()))

	require.Equal(t, 9, tree.End().Prev().Value())
	require.True(t, tree.Begin().Prev().IsEnd())
	require.True(t, tree.Begin().Prev().Equal(tree.End()))
	require.Equal(t, len(expected), iterator.Distance(tree.Begin(), tree.End()))
	require.Equal(t, 4, iterator.Advance(tree.End(), -4).Value())
	require.Equal(t, 3, iterator.Next(tree.Begin(), 2).Value())
	require.Equal(t, 6, iterator.Prev(tree.End(), 2).Value())

	// Erasing a node keeps the iterators to the others.
	four, six := tree.Find(4), tree.Find(6)
	next := tree.Erase(tree.Find(5))
	require.True(t, next.Equal(six))
	require.Equal(t, 4, four.Value())
	require.Equal(t, 6, four.Next().Value())
	require.NoError(t, tree.Verify())

	// Erasing a node with two children must not move the successor value.
	root := tree.iter(tree.Root())
	succ := root.Next()
	succVal := succ.Value()
	tree.Erase(root)
	require.Equal(t, succVal, succ.Value())
	require.NoError(t, tree.Verify())

	require.Panics(t, func() {
		tree.Erase(tree.End())
	})
	other := NewOrdered[int]()
	_, _, _ = other.InsertUnique(1)
	require.Panics(t, func() {
		tree.Erase(other.Begin())
	})

	collected := 0
	for v := range tree.All() {
		collected++
		if v >= 3 {
			break
		}
	}
	require.Equal(t, 3, collected)

	visited := 0
	tree.Foreach(func(idx int64, color RBColor, val int) bool {
		visited++
		return idx < 1
	})
	require.Equal(t, 2, visited)
}

func TestTree_EraseRange(t *testing.T) {
	tree := NewOrdered[int]()
	for _, k := range []int{10, 20, 30, 40, 50} {
		_, _, err := tree.InsertUnique(k)
		require.NoError(t, err)
	}

	last := tree.EraseRange(tree.Find(20), tree.Find(50))
	require.Equal(t, 50, last.Value())
	require.Equal(t, []int{10, 50}, slices.Collect(tree.All()))
	require.NoError(t, tree.Verify())

	require.True(t, tree.EraseRange(tree.Begin(), tree.Begin()).Equal(tree.Begin()))
	require.Equal(t, 2, tree.Len())

	end := tree.EraseRange(tree.Begin(), tree.End())
	require.True(t, end.IsEnd())
	require.True(t, tree.Empty())
	require.NoError(t, tree.Verify())
	require.Equal(t, 0, tree.EraseKey(10))
}

func TestTree_Comparator(t *testing.T) {
	byLen := New(
		func(s string) int { return len(s) },
		infra.LessFromCompare(cmp.Compare[int]),
	)
	for _, s := range []string{"ccc", "a", "bb", "dd"} {
		_, _, err := byLen.InsertUnique(s)
		require.NoError(t, err)
	}
	require.Equal(t, []string{"a", "bb", "ccc"}, slices.Collect(byLen.All()))
	require.True(t, byLen.KeyLess()(1, 2))
	require.Equal(t, 2, byLen.KeyOf()("dd"))
	require.Panics(t, func() {
		New[int, int](nil, infra.OrderedLess[int])
	})
}

func TestTree_CloneAndCopyFrom(t *testing.T) {
	counting := alloc.NewCounting[Node[int]](nil)
	tree := NewOrdered[int](WithRBTreeAllocator[int, int](counting))
	for i := 0; i < 100; i++ {
		_, _, err := tree.InsertUnique((i * 37) % 101)
		require.NoError(t, err)
	}

	clone, err := tree.Clone()
	require.NoError(t, err)
	require.NoError(t, clone.Verify())
	require.Equal(t, slices.Collect(tree.All()), slices.Collect(clone.All()))
	requireSameShape(t, tree.Root(), clone.Root())
	require.Equal(t, int64(200), counting.Live())

	// Mutating the clone leaves the source alone.
	clone.EraseKey(0)
	require.True(t, tree.Contains(0))

	target := NewOrdered[int](WithRBTreeAllocator[int, int](counting))
	for i := 0; i < 60; i++ {
		_, _, err = target.InsertUnique(1000 + i)
		require.NoError(t, err)
	}
	allocations := counting.Allocations()
	require.NoError(t, target.CopyFrom(tree))
	// 60 nodes are recycled, only 40 new ones are allocated.
	require.Equal(t, allocations+40, counting.Allocations())
	require.NoError(t, target.Verify())
	requireSameShape(t, tree.Root(), target.Root())

	small := NewOrdered[int](WithRBTreeAllocator[int, int](counting))
	_, _, _ = small.InsertUnique(7)
	deallocations := counting.Deallocations()
	require.NoError(t, target.CopyFrom(small))
	require.Equal(t, deallocations+99, counting.Deallocations())
	require.Equal(t, []int{7}, slices.Collect(target.All()))
	require.NoError(t, target.CopyFrom(target))

	tree.Clear()
	clone.Clear()
	target.Clear()
	small.Release()
	require.Zero(t, counting.Live())
	require.Zero(t, counting.Outstanding())
}

func requireSameShape(t *testing.T, a, b *Node[int]) {
	t.Helper()
	if a == nil || b == nil {
		require.True(t, a == nil && b == nil)
		return
	}
	require.NotSame(t, a, b)
	require.Equal(t, a.Value(), b.Value())
	require.Equal(t, a.Color(), b.Color())
	requireSameShape(t, a.Left(), b.Left())
	requireSameShape(t, a.Right(), b.Right())
	if b.Left() != nil {
		require.Same(t, b, b.Left().Parent())
	}
}

func TestTree_AllocatorFailures(t *testing.T) {
	faulty := alloctest.NewFaulty[Node[int]]()
	core, logs := observer.New(zapcore.DebugLevel)
	tree := NewOrdered[int](
		WithRBTreeAllocator[int, int](faulty),
		WithRBTreeLogger[int, int](xlog.NewXLoggerFromZap(zap.New(core))),
	)
	for i := 0; i < 50; i++ {
		_, _, err := tree.InsertUnique(i)
		require.NoError(t, err)
	}

	t.Run("insert allocate", func(tt *testing.T) {
		faulty.FailAllocateAfter(0)
		defer faulty.Heal()
		it, ok, err := tree.InsertUnique(100)
		require.ErrorIs(tt, err, alloctest.ErrInjected)
		require.False(tt, ok)
		require.True(tt, it.IsEnd())
		_, err = tree.InsertEqual(100)
		require.ErrorIs(tt, err, alloctest.ErrInjected)
		require.Equal(tt, 50, tree.Len())
		require.NoError(tt, tree.Verify())
	})

	t.Run("insert construct", func(tt *testing.T) {
		faulty.FailConstructAfter(0)
		defer faulty.Heal()
		_, _, err := tree.InsertUniqueHint(tree.End(), 100)
		require.ErrorIs(tt, err, alloctest.ErrInjected)
		require.Equal(tt, 50, tree.Len())
		require.Zero(tt, faulty.Outstanding()-faulty.Live())
	})

	t.Run("range insert", func(tt *testing.T) {
		faulty.FailAllocateAfter(2)
		defer faulty.Heal()
		first, last := iterator.OfSlice([]int{200, 201, 202, 203})
		require.ErrorIs(tt, InsertUniqueRange(tree, first, last), alloctest.ErrInjected)
		require.Equal(tt, 52, tree.Len())
		tree.EraseKey(200)
		tree.EraseKey(201)
	})

	t.Run("clone rollback", func(tt *testing.T) {
		live := faulty.Live()
		faulty.FailConstructAfter(20)
		defer faulty.Heal()
		clone, err := tree.Clone()
		require.ErrorIs(tt, err, alloctest.ErrInjected)
		require.Nil(tt, clone)
		require.Equal(tt, live, faulty.Live())
		require.Equal(tt, faulty.Live(), faulty.Outstanding())
		require.NoError(tt, tree.Verify())
	})

	t.Run("copy rollback", func(tt *testing.T) {
		target := NewOrdered[int](
			WithRBTreeAllocator[int, int](faulty),
			WithRBTreeLogger[int, int](xlog.NewXLoggerFromZap(zap.New(core))),
		)
		for i := 0; i < 10; i++ {
			_, _, _ = target.InsertUnique(i)
		}
		live := faulty.Live()
		faulty.FailAllocateAfter(5)
		defer faulty.Heal()
		require.ErrorIs(tt, target.CopyFrom(tree), alloctest.ErrInjected)
		require.True(tt, target.Empty())
		require.NoError(tt, target.Verify())
		require.Equal(tt, live-10, faulty.Live())
		require.Equal(tt, faulty.Live(), faulty.Outstanding())
	})

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 2)
	assert.Equal(t, "[rbtree] clone rolled back", warns[0].Message)
	assert.Equal(t, "[rbtree] copy rolled back", warns[1].Message)

	tree.Clear()
	require.Zero(t, faulty.Live())
	require.Zero(t, faulty.Outstanding())
}

func TestTree_Swap(t *testing.T) {
	asc := NewOrdered[int]()
	desc := NewOrdered[int](WithRBTreeDesc[int, int]())
	for _, k := range []int{1, 2, 3} {
		_, _, _ = asc.InsertUnique(k)
		_, _, _ = desc.InsertUnique(k * 10)
	}
	two := asc.Find(2)
	thirty := desc.Find(30)
	ascEnd := asc.End()

	asc.Swap(desc)
	require.Equal(t, []int{30, 20, 10}, slices.Collect(asc.All()))
	require.Equal(t, []int{1, 2, 3}, slices.Collect(desc.All()))
	require.Equal(t, 2, two.Value())
	require.Equal(t, 3, two.Next().Value())
	require.True(t, two.Next().Next().Equal(desc.End()))
	require.True(t, ascEnd.Equal(desc.End()))
	require.Equal(t, 3, desc.End().Prev().Value())
	require.True(t, thirty.Equal(asc.Begin()))
	require.Equal(t, 30, asc.End().Prev().Prev().Prev().Value())

	next := desc.Erase(two)
	require.Equal(t, 3, next.Value())
	require.Equal(t, []int{1, 3}, slices.Collect(desc.All()))
	require.Panics(t, func() {
		desc.Erase(thirty)
	})
	require.Equal(t, 20, asc.Erase(thirty).Value())
	_, _, _ = asc.InsertUnique(30)
	_, _, _ = asc.InsertUnique(25)
	require.Equal(t, []int{30, 25, 20, 10}, slices.Collect(asc.All()))
	require.NoError(t, asc.Verify())
	require.NoError(t, desc.Verify())
	asc.Swap(asc)
	require.Equal(t, 4, asc.Len())
}

func TestTree_VerifyReportsViolations(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tree := NewOrdered[int](WithRBTreeLogger[int, int](xlog.NewXLoggerFromZap(zap.New(core))))
	for i := 0; i < 16; i++ {
		_, _, _ = tree.InsertUnique(i)
	}
	require.NoError(t, tree.Verify())

	tree.Root().color = Red
	tree.count++
	err := tree.Verify()
	require.Error(t, err)
	require.True(t, errors.Is(err, infra.ErrTreeViolation))
	require.GreaterOrEqual(t, len(multierr.Errors(err)), 2)

	entries := logs.FilterMessage("[rbtree] verify failed").All()
	require.Len(t, entries, 1)
	require.NotEmpty(t, entries[0].ContextMap()["errorStack"])

	tree.Root().color = Black
	tree.count--
	require.NoError(t, tree.Verify())
	require.Equal(t, tree.alloc.MaxSize(), tree.MaxSize())
}
