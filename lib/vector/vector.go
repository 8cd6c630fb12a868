// Package vector is a growable contiguous array with explicit
// allocator and failure contracts.
package vector

import (
	"fmt"
	"iter"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xstl/lib/alloc"
	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/lib/iterator"
	"github.com/benz9527/xstl/lib/xlog"
)

// Vector is not safe for concurrent mutation.
//
// Invalidation: a reallocation invalidates every iterator, an insert
// or erase without reallocation invalidates the iterators at and
// after the position.
type Vector[T any] struct {
	*storage[T]
	logger xlog.XLogger
}

type VectorOpt[T any] func(*Vector[T])

func WithVectorAllocator[T any](a alloc.Allocator[T]) VectorOpt[T] {
	return func(v *Vector[T]) {
		if a != nil {
			v.alloc = a
		}
	}
}

func WithVectorLogger[T any](logger xlog.XLogger) VectorOpt[T] {
	return func(v *Vector[T]) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New creates an empty vector without any storage.
func New[T any](opts ...VectorOpt[T]) *Vector[T] {
	v := &Vector[T]{
		storage: &storage[T]{alloc: alloc.NewHeap[T]()},
		logger:  xlog.NewNopXLogger(),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// NewN creates a vector holding n copies of val.
func NewN[T any](n int, val T, opts ...VectorOpt[T]) (*Vector[T], error) {
	v := New[T](opts...)
	if err := v.Assign(n, val); err != nil {
		return nil, err
	}
	return v, nil
}

// NewFromRange creates a vector holding a copy of [first, last).
func NewFromRange[T any, It iterator.Reader[T, It]](first, last It, opts ...VectorOpt[T]) (*Vector[T], error) {
	v := New[T](opts...)
	if err := AssignRange(v, first, last); err != nil {
		v.Release()
		return nil, err
	}
	return v, nil
}

// NewFrom is NewN when a and b are integers, a being the count and b
// the value, and NewFromRange otherwise.
func NewFrom[T, A any](a, b A, opts ...VectorOpt[T]) (*Vector[T], error) {
	v := New[T](opts...)
	if err := AssignFrom(v, a, b); err != nil {
		v.Release()
		return nil, err
	}
	return v, nil
}

func (v *Vector[T]) Len() int {
	return v.finish
}

func (v *Vector[T]) Cap() int {
	return v.capacity()
}

func (v *Vector[T]) Empty() bool {
	return v.finish == 0
}

func (v *Vector[T]) MaxSize() int {
	return v.alloc.MaxSize()
}

// Data is a view of the live elements. It is invalidated together
// with the iterators.
func (v *Vector[T]) Data() []T {
	return v.data()
}

// Get is the unchecked access, an index out of range panics.
func (v *Vector[T]) Get(idx int) T {
	return v.Data()[idx]
}

func (v *Vector[T]) Set(idx int, val T) {
	v.Data()[idx] = val
}

// At is the checked access.
func (v *Vector[T]) At(idx int) (T, error) {
	if err := infra.CheckIndex(idx, v.finish); err != nil {
		var zero T
		return zero, err
	}
	return v.buf[idx], nil
}

func (v *Vector[T]) Front() (T, error) {
	if v.Empty() {
		var zero T
		return zero, infra.ErrContainerEmpty
	}
	return v.buf[0], nil
}

func (v *Vector[T]) Back() (T, error) {
	if v.Empty() {
		var zero T
		return zero, infra.ErrContainerEmpty
	}
	return v.buf[v.finish-1], nil
}

func (v *Vector[T]) iter(idx int) Iterator[T] {
	return Iterator[T]{s: v.storage, idx: idx}
}

func (v *Vector[T]) Begin() Iterator[T] {
	return v.iter(0)
}

func (v *Vector[T]) End() Iterator[T] {
	return v.iter(v.finish)
}

func (v *Vector[T]) RBegin() iterator.ReverseRandom[T, Iterator[T]] {
	return iterator.MakeReverseRandom[T](v.End())
}

func (v *Vector[T]) REnd() iterator.ReverseRandom[T, Iterator[T]] {
	return iterator.MakeReverseRandom[T](v.Begin())
}

// All yields the index and value pairs in order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.finish; i++ {
			if !yield(i, v.buf[i]) {
				return
			}
		}
	}
}

// Values yields the values in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.finish; i++ {
			if !yield(v.buf[i]) {
				return
			}
		}
	}
}

// position validates that it is a position of v in [begin, end].
func (v *Vector[T]) position(it Iterator[T]) (int, error) {
	if it.s != v.storage || it.idx < 0 || it.idx > v.finish {
		return 0, fmt.Errorf("%w: position %d of a vector of %d", infra.ErrInvalidArgument, it.idx, v.finish)
	}
	return it.idx, nil
}

// Reserve grows the capacity to exactly n. It never shrinks.
func (v *Vector[T]) Reserve(n int) error {
	if n > v.MaxSize() {
		return fmt.Errorf("%w: reserve %d (max %d)", infra.ErrLengthExceeded, n, v.MaxSize())
	}
	if n <= v.Cap() {
		return nil
	}
	return v.reallocate(n)
}

// reallocate moves the elements into exactly n slots.
func (v *Vector[T]) reallocate(n int) error {
	oldCap := v.Cap()
	if err := v.relocate(n, v.finish, 0, func([]T) error { return nil }); err != nil {
		return err
	}
	v.logger.Debug("[vector] reallocated",
		zap.Int("size", v.finish),
		zap.Int("from", oldCap),
		zap.Int("to", n),
	)
	return nil
}

// grow reallocates for n more elements with a gap at pos.
func (v *Vector[T]) grow(pos, n int, construct func(dst []T) error) error {
	newCap, err := v.checkLen(n)
	if err != nil {
		return err
	}
	oldCap := v.Cap()
	if err = v.relocate(newCap, pos, n, construct); err != nil {
		return err
	}
	v.logger.Debug("[vector] reallocated",
		zap.Int("size", v.finish),
		zap.Int("from", oldCap),
		zap.Int("to", newCap),
	)
	return nil
}

// PushBack appends val. On reallocation val is constructed in its
// final slot before the elements move, and a failure leaves the
// vector untouched.
func (v *Vector[T]) PushBack(val T) error {
	if v.finish < v.Cap() {
		if err := v.alloc.Construct(&v.buf[v.finish], val); err != nil {
			return err
		}
		v.finish++
		return nil
	}
	return v.grow(v.finish, 1, func(dst []T) error {
		return v.uninitializedFill(dst, val)
	})
}

func (v *Vector[T]) PopBack() error {
	if v.Empty() {
		return infra.ErrContainerEmpty
	}
	v.finish--
	v.alloc.Destroy(&v.buf[v.finish])
	return nil
}

// truncate destroys the elements from n on.
func (v *Vector[T]) truncate(n int) {
	v.destroy(v.buf[n:v.finish])
	v.finish = n
}

// Erase removes the element at pos and returns the position of the
// element that followed it.
func (v *Vector[T]) Erase(pos Iterator[T]) (Iterator[T], error) {
	p, err := v.position(pos)
	if err != nil {
		return v.End(), err
	}
	if p == v.finish {
		return v.End(), fmt.Errorf("%w: erase of End()", infra.ErrInvalidArgument)
	}
	copy(v.buf[p:v.finish-1], v.buf[p+1:v.finish])
	v.truncate(v.finish - 1)
	return v.iter(p), nil
}

// EraseRange removes [first, last) and returns first.
func (v *Vector[T]) EraseRange(first, last Iterator[T]) (Iterator[T], error) {
	f, err := v.position(first)
	if err != nil {
		return v.End(), err
	}
	l, err := v.position(last)
	if err != nil {
		return v.End(), err
	}
	if f > l {
		return v.End(), fmt.Errorf("%w: range [%d, %d)", infra.ErrInvalidArgument, f, l)
	}
	if f != l {
		n := copy(v.buf[f:], v.buf[l:v.finish])
		v.truncate(f + n)
	}
	return v.iter(f), nil
}

// Resize grows by appending copies of val or shrinks by destroying
// the tail. Shrinking keeps the capacity.
func (v *Vector[T]) Resize(n int, val T) error {
	switch {
	case n > v.finish:
		_, err := v.InsertN(v.End(), n-v.finish, val)
		return err
	case n < v.finish:
		if n < 0 {
			return fmt.Errorf("%w: resize to %d", infra.ErrInvalidArgument, n)
		}
		v.truncate(n)
	default:
	}
	return nil
}

// Clear destroys every element and keeps the capacity.
func (v *Vector[T]) Clear() {
	v.truncate(0)
}

// Release destroys every element and gives the storage back.
func (v *Vector[T]) Release() {
	v.release()
}

// Swap exchanges the storage, allocators and loggers in O(1). The
// storage handle moves as a whole, iterators keep referring to their
// elements and now belong to other.
func (v *Vector[T]) Swap(other *Vector[T]) {
	if v == other {
		return
	}
	*v, *other = *other, *v
}

// Clone returns a copy whose capacity is exactly the size.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	c := &Vector[T]{
		storage: &storage[T]{alloc: v.alloc},
		logger:  v.logger,
	}
	if v.finish == 0 {
		return c, nil
	}
	buf, err := c.alloc.Allocate(v.finish)
	if err != nil {
		return nil, err
	}
	if err = c.uninitializedCopy(buf, v.buf[:v.finish]); err != nil {
		c.deallocate(buf)
		return nil, err
	}
	c.buf, c.finish = buf, v.finish
	return c, nil
}

// CopyFrom replaces the elements with a copy of other's. The storage
// is reused when it is large enough.
func (v *Vector[T]) CopyFrom(other *Vector[T]) error {
	if v == other {
		return nil
	}
	return v.assignSlice(other.Data())
}

// assignSlice replaces the elements with a copy of src, which must
// not alias the storage.
func (v *Vector[T]) assignSlice(src []T) error {
	n := len(src)
	switch {
	case n > v.Cap():
		if n > v.MaxSize() {
			return fmt.Errorf("%w: assign %d (max %d)", infra.ErrLengthExceeded, n, v.MaxSize())
		}
		buf, err := v.alloc.Allocate(n)
		if err != nil {
			return err
		}
		if err = v.uninitializedCopy(buf, src); err != nil {
			v.deallocate(buf)
			return err
		}
		v.release()
		v.buf, v.finish = buf, n
	case n <= v.finish:
		copy(v.buf, src)
		v.truncate(n)
	default:
		copy(v.buf, src[:v.finish])
		if err := v.uninitializedCopy(v.buf[v.finish:n], src[v.finish:]); err != nil {
			return err
		}
		v.finish = n
	}
	return nil
}

// Verify checks the storage invariants.
func (v *Vector[T]) Verify() (err error) {
	defer func() {
		if err != nil {
			v.logger.ErrorStack(infra.WrapErrorStack(err), "[vector] verify failed")
		}
	}()

	violation := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{infra.ErrStorageViolation}, args...)...)
	}
	if v.finish < 0 || v.finish > v.Cap() {
		err = multierr.Append(err, violation("finish %d outside of [0, %d]", v.finish, v.Cap()))
	}
	if v.Cap() > v.MaxSize() {
		err = multierr.Append(err, violation("capacity %d above max size %d", v.Cap(), v.MaxSize()))
	}
	if v.alloc == nil {
		err = multierr.Append(err, violation("no allocator"))
	}
	return err
}
