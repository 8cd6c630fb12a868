package vector

import (
	"github.com/benz9527/xstl/lib/iterator"
)

// Iterator is a random-access position of a vector. Dereferencing a
// position outside of [Begin, End) panics.
type Iterator[T any] struct {
	iterator.RandomAccessTag
	s   *storage[T]
	idx int
}

func (it Iterator[T]) Index() int {
	return it.idx
}

func (it Iterator[T]) Value() T {
	return it.s.data()[it.idx]
}

func (it Iterator[T]) Ptr() *T {
	return &it.s.data()[it.idx]
}

func (it Iterator[T]) Set(val T) {
	it.s.data()[it.idx] = val
}

func (it Iterator[T]) Next() Iterator[T] {
	it.idx++
	return it
}

func (it Iterator[T]) Prev() Iterator[T] {
	it.idx--
	return it
}

func (it Iterator[T]) Add(n int) Iterator[T] {
	it.idx += n
	return it
}

func (it Iterator[T]) Diff(other Iterator[T]) int {
	return it.idx - other.idx
}

func (it Iterator[T]) At(n int) T {
	return it.s.data()[it.idx+n]
}

func (it Iterator[T]) Less(other Iterator[T]) bool {
	return it.idx < other.idx
}

func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.s == other.s && it.idx == other.idx
}

// Span is the view of the n live elements from it on, used by the
// block algorithms.
func (it Iterator[T]) Span(n int) []T {
	return it.s.data()[it.idx : it.idx+n : it.idx+n]
}
