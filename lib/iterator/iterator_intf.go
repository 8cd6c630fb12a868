// Package iterator unifies the traversal over the tree and the array
// containers.
//
// Iterators are values: Next and Prev return the moved copy and leave
// the receiver untouched, so copying an iterator is a plain assignment.
// The It type parameter is the concrete iterator type itself, which keeps
// every algorithm statically typed and free of interface boxing.
package iterator

type Tagged interface {
	Category() Category
}

// Stepper is the minimal forward moving iterator.
type Stepper[It any] interface {
	Tagged
	Next() It
	Equal(other It) bool
}

// Reader is an input iterator over T.
type Reader[T, It any] interface {
	Stepper[It]
	Value() T
}

// Output is an iterator over T that can be written and moved, but
// not necessarily compared.
type Output[T, It any] interface {
	Tagged
	Next() It
	Set(val T)
}

// Writer is a comparable Output iterator.
type Writer[T, It any] interface {
	Stepper[It]
	Set(val T)
}

type Retreater[It any] interface {
	Prev() It
}

type Bidirectional[T, It any] interface {
	Reader[T, It]
	Retreater[It]
}

// Offsetter is the O(1) arithmetic of random-access iterators.
// i.Diff(j) is the signed distance i - j.
type Offsetter[It any] interface {
	Add(n int) It
	Diff(other It) int
}

type RandomAccess[T, It any] interface {
	Bidirectional[T, It]
	Offsetter[It]
	At(n int) T
	Less(other It) bool
}

// Spanner exposes the contiguous storage behind a random-access
// iterator: the n live slots starting at the iterator.
type Spanner[T any] interface {
	Span(n int) []T
}
