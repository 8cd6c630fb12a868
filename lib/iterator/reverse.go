package iterator

// Reverse walks a bidirectional range backwards. It holds the base
// position one past the element it refers to, so the reverse of
// end() is rbegin() and the reverse of begin() is rend().
type Reverse[T any, It Bidirectional[T, It]] struct {
	BidirectionalTag
	base It
}

// MakeReverse wraps base. T cannot be inferred from base and has to be
// passed explicitly, e.g. MakeReverse[int](it).
func MakeReverse[T any, It Bidirectional[T, It]](base It) Reverse[T, It] {
	return Reverse[T, It]{base: base}
}

// Base returns the underlying forward position.
func (r Reverse[T, It]) Base() It {
	return r.base
}

func (r Reverse[T, It]) Value() T {
	return r.base.Prev().Value()
}

// Set writes through to the underlying iterator. It panics when the
// base iterator is read-only.
func (r Reverse[T, It]) Set(val T) {
	w, ok := any(r.base.Prev()).(interface{ Set(T) })
	if !ok {
		panic("[iterator] reverse of a read-only iterator")
	}
	w.Set(val)
}

func (r Reverse[T, It]) Next() Reverse[T, It] {
	return Reverse[T, It]{base: r.base.Prev()}
}

func (r Reverse[T, It]) Prev() Reverse[T, It] {
	return Reverse[T, It]{base: r.base.Next()}
}

func (r Reverse[T, It]) Equal(other Reverse[T, It]) bool {
	return r.base.Equal(other.base)
}

// ReverseRandom is Reverse over a random-access base, with the offset
// arithmetic mirrored.
type ReverseRandom[T any, It RandomAccess[T, It]] struct {
	RandomAccessTag
	base It
}

func MakeReverseRandom[T any, It RandomAccess[T, It]](base It) ReverseRandom[T, It] {
	return ReverseRandom[T, It]{base: base}
}

func (r ReverseRandom[T, It]) Base() It {
	return r.base
}

func (r ReverseRandom[T, It]) Value() T {
	return r.base.Prev().Value()
}

func (r ReverseRandom[T, It]) Set(val T) {
	w, ok := any(r.base.Prev()).(interface{ Set(T) })
	if !ok {
		panic("[iterator] reverse of a read-only iterator")
	}
	w.Set(val)
}

func (r ReverseRandom[T, It]) Next() ReverseRandom[T, It] {
	return ReverseRandom[T, It]{base: r.base.Prev()}
}

func (r ReverseRandom[T, It]) Prev() ReverseRandom[T, It] {
	return ReverseRandom[T, It]{base: r.base.Next()}
}

func (r ReverseRandom[T, It]) Equal(other ReverseRandom[T, It]) bool {
	return r.base.Equal(other.base)
}

func (r ReverseRandom[T, It]) Add(n int) ReverseRandom[T, It] {
	return ReverseRandom[T, It]{base: r.base.Add(-n)}
}

func (r ReverseRandom[T, It]) Diff(other ReverseRandom[T, It]) int {
	return other.base.Diff(r.base)
}

func (r ReverseRandom[T, It]) At(n int) T {
	return r.base.Add(-n - 1).Value()
}

func (r ReverseRandom[T, It]) Less(other ReverseRandom[T, It]) bool {
	return other.base.Less(r.base)
}
