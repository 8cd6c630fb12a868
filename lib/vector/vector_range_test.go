package vector

import (
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/benz9527/xstl/lib/alloc"
	"github.com/benz9527/xstl/lib/alloc/alloctest"
	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/lib/iterator"
)

func TestVectorIntegerPairRule(t *testing.T) {
	v, err := NewFrom[int](3, 7)
	require.NoError(t, err)
	requireElems(t, v, []int{7, 7, 7})

	wide, err := NewFrom[int64](uint8(2), uint8(9))
	require.NoError(t, err)
	requireElems(t, wide, []int64{9, 9})

	src := []int{1, 2, 3}
	first, last := iterator.OfSlice(src)
	r, err := NewFrom[int](first, last)
	require.NoError(t, err)
	requireElems(t, r, src)

	fromVec, err := NewFrom[int](r.Begin().Add(1), r.End())
	require.NoError(t, err)
	requireElems(t, fromVec, []int{2, 3})

	_, err = NewFrom[int](-1, 7)
	require.ErrorIs(t, err, infra.ErrInvalidArgument)
	_, err = NewFrom[string](2, 3)
	require.ErrorIs(t, err, infra.ErrInvalidArgument)
	_, err = NewFrom[int]("a", "b")
	require.ErrorIs(t, err, infra.ErrInvalidArgument)

	require.NoError(t, AssignFrom(v, 1, 5))
	requireElems(t, v, []int{5})
}

func TestVectorInsertRange(t *testing.T) {
	testcases := []struct {
		name     string
		reserve  int
		pos      int
		src      []int
		expected []int
	}{
		{
			name:     "in place, long tail",
			reserve:  16,
			pos:      1,
			src:      []int{7, 8},
			expected: []int{0, 7, 8, 1, 2, 3, 4},
		},
		{
			name:     "in place, short tail",
			reserve:  16,
			pos:      4,
			src:      []int{7, 8, 9},
			expected: []int{0, 1, 2, 3, 7, 8, 9, 4},
		},
		{
			name:     "reallocation",
			pos:      0,
			src:      []int{7, 8, 9, 10},
			expected: []int{7, 8, 9, 10, 0, 1, 2, 3, 4},
		},
		{
			name:     "empty",
			pos:      3,
			expected: []int{0, 1, 2, 3, 4},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			counting := alloc.NewCounting[int](nil)
			v := New[int](WithVectorAllocator[int](counting))
			require.NoError(tt, v.Reserve(tc.reserve))
			for i := 0; i < 5; i++ {
				require.NoError(tt, v.PushBack(i))
			}
			first, last := iterator.OfSlice(tc.src)
			it, err := InsertRange(v, v.Begin().Add(tc.pos), first, last)
			require.NoError(tt, err)
			require.Equal(tt, tc.pos, it.Index())
			requireElems(tt, v, tc.expected)
			require.Equal(tt, int64(v.Len()), counting.Live())
		})
	}
}

func TestVectorInsertInputRange(t *testing.T) {
	v, err := NewFrom[int](2, 0)
	require.NoError(t, err)

	first, last := iterator.FromSeq(slices.Values([]int{7, 8, 9}))
	it, err := InsertRange(v, v.Begin().Add(1), first, last)
	require.NoError(t, err)
	require.Equal(t, 1, it.Index())
	requireElems(t, v, []int{0, 7, 8, 9, 0})

	_, err = InsertRange(v, New[int]().Begin(), first, last)
	require.ErrorIs(t, err, infra.ErrInvalidArgument)
}

func TestVectorAssignRange(t *testing.T) {
	v := New[int]()
	require.NoError(t, v.Reserve(8))
	for i := 0; i < 4; i++ {
		require.NoError(t, v.PushBack(i))
	}

	first, last := iterator.OfSlice([]int{9, 8})
	require.NoError(t, AssignRange(v, first, last))
	requireElems(t, v, []int{9, 8})

	first, last = iterator.OfSlice([]int{1, 2, 3, 4, 5, 6})
	require.NoError(t, AssignRange(v, first, last))
	requireElems(t, v, []int{1, 2, 3, 4, 5, 6})
	require.Equal(t, 8, v.Cap())

	src := lo.Range(20)
	first, last = iterator.OfSlice(src)
	require.NoError(t, AssignRange(v, first, last))
	requireElems(t, v, src)
	require.Equal(t, 20, v.Cap())

	sfirst, slast := iterator.FromSeq(slices.Values([]int{5, 6}))
	require.NoError(t, AssignRange(v, sfirst, slast))
	requireElems(t, v, []int{5, 6})

	sfirst, slast = iterator.FromSeq(slices.Values(lo.Range(25)))
	require.NoError(t, AssignRange(v, sfirst, slast))
	requireElems(t, v, lo.Range(25))

	afirst, alast := iterator.OfSlice([]string{"a", "b"})
	r, err := NewFromRange(afirst, alast)
	require.NoError(t, err)
	requireElems(t, r, []string{"a", "b"})
}

func TestVectorRangeFailureSafety(t *testing.T) {
	faulty := alloctest.NewFaulty[int]()
	v := New[int](WithVectorAllocator[int](faulty))
	for i := 0; i < 4; i++ {
		require.NoError(t, v.PushBack(i))
	}

	first, last := iterator.OfSlice([]int{7, 8, 9})
	faulty.FailConstructAfter(2)
	_, err := InsertRange(v, v.Begin().Add(2), first, last)
	require.ErrorIs(t, err, alloctest.ErrInjected)
	faulty.Heal()
	requireElems(t, v, []int{0, 1, 2, 3})
	require.Equal(t, 4, v.Cap())

	big := lo.Range(10)
	first, last = iterator.OfSlice(big)
	faulty.FailConstructAfter(9)
	require.ErrorIs(t, AssignRange(v, first, last), alloctest.ErrInjected)
	faulty.Heal()
	requireElems(t, v, []int{0, 1, 2, 3})
	require.Equal(t, int64(4), faulty.Live())
	require.Equal(t, int64(4), faulty.Outstanding())

	_, err = NewFromRange(first, last, WithVectorAllocator[int](faulty.FailAllocateAfter(0)))
	require.ErrorIs(t, err, alloctest.ErrInjected)
	faulty.Heal()
}

func TestVectorIterator(t *testing.T) {
	v, err := NewFrom[int](0, 0)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		require.NoError(t, v.PushBack(i))
	}

	begin, end := v.Begin(), v.End()
	require.Equal(t, iterator.RandomAccessCategory, begin.Category())
	require.Equal(t, 6, iterator.Distance(begin, end))
	require.Equal(t, 4, iterator.Advance(begin, 4).Value())
	require.Equal(t, 5, iterator.Prev(end, 1).Value())
	require.Equal(t, 3, begin.At(3))
	require.True(t, begin.Less(end))
	require.False(t, end.Less(begin))

	iterator.Fill(begin.Add(1), begin.Add(3), 42)
	require.Equal(t, []int{0, 42, 42, 3, 4, 5}, v.Data())
	it := iterator.FillN(begin, 2, 7)
	require.Equal(t, 2, it.Index())
	require.Equal(t, []int{7, 7, 42, 3, 4, 5}, v.Data())

	*begin.Ptr() = 1
	require.Equal(t, 1, v.Get(0))

	reversed := make([]int, 0, v.Len())
	for r := v.RBegin(); !r.Equal(v.REnd()); r = r.Next() {
		reversed = append(reversed, r.Value())
	}
	require.Equal(t, lo.Reverse([]int{1, 7, 42, 3, 4, 5}), reversed)
	require.Equal(t, 6, v.REnd().Diff(v.RBegin()))
	require.Equal(t, 4, v.RBegin().At(1))

	dst := make([]int, v.Len())
	dfirst, _ := iterator.OfSlice(dst)
	iterator.Copy[int](v.Begin(), v.End(), dfirst)
	require.Equal(t, v.Data(), dst)

	other := New[int]()
	require.False(t, other.End().Equal(v.Begin()))
}
