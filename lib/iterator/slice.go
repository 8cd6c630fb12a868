package iterator

// Slice is a random-access iterator over a Go slice.
type Slice[T any] struct {
	RandomAccessTag
	s   []T
	idx int
}

// OfSlice returns the [first, last) pair covering s.
func OfSlice[T any](s []T) (first, last Slice[T]) {
	return Slice[T]{s: s}, Slice[T]{s: s, idx: len(s)}
}

func (it Slice[T]) Index() int {
	return it.idx
}

func (it Slice[T]) Value() T {
	return it.s[it.idx]
}

func (it Slice[T]) Ptr() *T {
	return &it.s[it.idx]
}

func (it Slice[T]) Set(val T) {
	it.s[it.idx] = val
}

func (it Slice[T]) Next() Slice[T] {
	it.idx++
	return it
}

func (it Slice[T]) Prev() Slice[T] {
	it.idx--
	return it
}

func (it Slice[T]) Add(n int) Slice[T] {
	it.idx += n
	return it
}

func (it Slice[T]) Diff(other Slice[T]) int {
	return it.idx - other.idx
}

func (it Slice[T]) At(n int) T {
	return it.s[it.idx+n]
}

func (it Slice[T]) Less(other Slice[T]) bool {
	return it.idx < other.idx
}

func (it Slice[T]) Equal(other Slice[T]) bool {
	return it.idx == other.idx
}

func (it Slice[T]) Span(n int) []T {
	return it.s[it.idx : it.idx+n : it.idx+n]
}
