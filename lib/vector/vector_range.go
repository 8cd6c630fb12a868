package vector

import (
	"fmt"

	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/lib/iterator"
	"github.com/benz9527/xstl/lib/traits"
)

// The range operations are functions because Go methods cannot
// declare their own type parameters. The source range must not
// overlap the destination vector.

func isForward(it iterator.Tagged) bool {
	return it.Category().Refines(iterator.ForwardCategory)
}

// constructFrom constructs len(dst) values read from first into the
// raw slots of dst and returns the position after the last one read.
func constructFrom[T any, It iterator.Reader[T, It]](s *storage[T], dst []T, first It) (It, error) {
	for i := range dst {
		if err := s.alloc.Construct(&dst[i], first.Value()); err != nil {
			s.destroy(dst[:i])
			return first, err
		}
		first = first.Next()
	}
	return first, nil
}

func assignFrom[T any, It iterator.Reader[T, It]](dst []T, first It) It {
	for i := range dst {
		dst[i] = first.Value()
		first = first.Next()
	}
	return first
}

// InsertRange inserts a copy of [first, last) before pos and returns
// the position of the first inserted element. Forward ranges are
// measured and inserted at once, input ranges element by element.
func InsertRange[T any, It iterator.Reader[T, It]](v *Vector[T], pos Iterator[T], first, last It) (Iterator[T], error) {
	p, err := v.position(pos)
	if err != nil {
		return v.End(), err
	}
	if !isForward(first) {
		for it := v.iter(p); !first.Equal(last); first = first.Next() {
			if it, err = v.Insert(it, first.Value()); err != nil {
				return v.End(), err
			}
			it = it.Next()
		}
		return v.iter(p), nil
	}

	n := iterator.Distance(first, last)
	if n == 0 {
		return v.iter(p), nil
	}
	if v.Cap()-v.finish < n {
		if err = v.grow(p, n, func(dst []T) error {
			_, err := constructFrom(v.storage, dst, first)
			return err
		}); err != nil {
			return v.End(), err
		}
		return v.iter(p), nil
	}

	oldFinish := v.finish
	after := oldFinish - p
	if after > n {
		if err = v.uninitializedCopy(v.buf[oldFinish:oldFinish+n], v.buf[oldFinish-n:oldFinish]); err != nil {
			return v.End(), err
		}
		v.finish += n
		copy(v.buf[p+n:oldFinish], v.buf[p:oldFinish-n])
		assignFrom(v.buf[p:p+n], first)
		return v.iter(p), nil
	}

	mid := iterator.Advance(first, after)
	if _, err = constructFrom(v.storage, v.buf[oldFinish:oldFinish+n-after], mid); err != nil {
		return v.End(), err
	}
	v.finish += n - after
	if err = v.uninitializedCopy(v.buf[v.finish:v.finish+after], v.buf[p:oldFinish]); err != nil {
		v.truncate(oldFinish)
		return v.End(), err
	}
	v.finish += after
	assignFrom(v.buf[p:oldFinish], first)
	return v.iter(p), nil
}

// AssignRange replaces the elements with a copy of [first, last).
func AssignRange[T any, It iterator.Reader[T, It]](v *Vector[T], first, last It) error {
	if !isForward(first) {
		i := 0
		for ; i < v.finish && !first.Equal(last); first = first.Next() {
			v.buf[i] = first.Value()
			i++
		}
		if first.Equal(last) {
			v.truncate(i)
			return nil
		}
		_, err := InsertRange(v, v.End(), first, last)
		return err
	}

	n := iterator.Distance(first, last)
	switch {
	case n > v.Cap():
		if n > v.MaxSize() {
			return fmt.Errorf("%w: assign %d (max %d)", infra.ErrLengthExceeded, n, v.MaxSize())
		}
		buf, err := v.alloc.Allocate(n)
		if err != nil {
			return err
		}
		if _, err = constructFrom(v.storage, buf, first); err != nil {
			v.deallocate(buf)
			return err
		}
		v.release()
		v.buf, v.finish = buf, n
	case n > v.finish:
		mid := assignFrom(v.buf[:v.finish], first)
		if _, err := constructFrom(v.storage, v.buf[v.finish:n], mid); err != nil {
			return err
		}
		v.finish = n
	default:
		assignFrom(v.buf[:n], first)
		v.truncate(n)
	}
	return nil
}

// AssignFrom is Assign when a and b are integers, a being the count
// and b the value converted to T. Otherwise a and b must be the
// iterators of a range over T.
func AssignFrom[T, A any](v *Vector[T], a, b A) error {
	if traits.IsIntegral[A]() {
		n, err := traits.ToCount(a)
		if err != nil {
			return err
		}
		val, ok := traits.Convert[T](b)
		if !ok {
			return fmt.Errorf("%w: %T is not a value of the element type", infra.ErrInvalidArgument, b)
		}
		return v.Assign(n, val)
	}
	if _, ok := any(a).(iterator.Reader[T, A]); !ok {
		return fmt.Errorf("%w: %T is neither a count nor an iterator", infra.ErrInvalidArgument, a)
	}
	return AssignRange(v, anyReader[T, A]{it: a}, anyReader[T, A]{it: b})
}

// anyReader lifts an iterator only known to satisfy iterator.Reader at
// run time into a statically typed one.
type anyReader[T, A any] struct {
	it A
}

func (r anyReader[T, A]) reader() iterator.Reader[T, A] {
	return any(r.it).(iterator.Reader[T, A])
}

func (r anyReader[T, A]) Category() iterator.Category {
	return r.reader().Category()
}

func (r anyReader[T, A]) Next() anyReader[T, A] {
	return anyReader[T, A]{it: r.reader().Next()}
}

func (r anyReader[T, A]) Equal(other anyReader[T, A]) bool {
	return r.reader().Equal(other.it)
}

func (r anyReader[T, A]) Value() T {
	return r.reader().Value()
}
