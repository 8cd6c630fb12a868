package iterator

import (
	"github.com/benz9527/xstl/lib/traits"
)

func isRandomAccess(it Tagged) bool {
	return it.Category().Refines(RandomAccessCategory)
}

// Advance moves it by n steps. Random-access iterators jump in O(1),
// the others walk. A negative n requires a bidirectional iterator.
func Advance[It Stepper[It]](it It, n int) It {
	if n == 0 {
		return it
	}
	if off, ok := any(it).(Offsetter[It]); ok && isRandomAccess(it) {
		return off.Add(n)
	}
	if n < 0 {
		if !it.Category().Refines(BidirectionalCategory) {
			panic("[iterator] negative advance of a " + it.Category().String() + " iterator")
		}
		for ; n < 0; n++ {
			it = any(it).(Retreater[It]).Prev()
		}
		return it
	}
	for ; n > 0; n-- {
		it = it.Next()
	}
	return it
}

// Distance counts the steps from first to last. The walk for
// non random-access iterators requires last to be reachable from first.
func Distance[It Stepper[It]](first, last It) int {
	if off, ok := any(last).(Offsetter[It]); ok && isRandomAccess(last) {
		return off.Diff(first)
	}
	n := 0
	for ; !first.Equal(last); first = first.Next() {
		n++
	}
	return n
}

func Next[It Stepper[It]](it It, n int) It {
	return Advance(it, n)
}

func Prev[It interface {
	Stepper[It]
	Retreater[It]
}](it It, n int) It {
	return Advance(it, -n)
}

// Fill assigns val to every position of [first, last).
func Fill[T any, It Writer[T, It]](first, last It, val T) {
	if sp, ok := any(first).(Spanner[T]); ok && isRandomAccess(first) && traits.IsScalar[T]() {
		fillSpan(sp.Span(Distance(first, last)), val)
		return
	}
	for ; !first.Equal(last); first = first.Next() {
		first.Set(val)
	}
}

// FillN assigns val to n positions starting at first and returns the
// position past the last one written. A non-positive n is a no-op.
func FillN[T any, It Output[T, It]](first It, n int, val T) It {
	if n <= 0 {
		return first
	}
	if sp, ok := any(first).(Spanner[T]); ok && isRandomAccess(first) && traits.IsScalar[T]() {
		if off, ok := any(first).(Offsetter[It]); ok {
			fillSpan(sp.Span(n), val)
			return off.Add(n)
		}
	}
	for ; n > 0; n-- {
		first.Set(val)
		first = first.Next()
	}
	return first
}

// fillSpan writes val over s. Byte-sized values are block filled by
// doubling copies, the remaining scalars by a plain store loop.
func fillSpan[T any](s []T, val T) {
	if len(s) == 0 {
		return
	}
	if traits.IsByte[T]() {
		s[0] = val
		for filled := 1; filled < len(s); filled *= 2 {
			copy(s[filled:], s[:filled])
		}
		return
	}
	for i := range s {
		s[i] = val
	}
}

// Copy writes [first, last) to dst in order and returns the position
// past the last one written.
func Copy[T any, In Reader[T, In], Out Output[T, Out]](first, last In, dst Out) Out {
	for ; !first.Equal(last); first = first.Next() {
		dst.Set(first.Value())
		dst = dst.Next()
	}
	return dst
}
