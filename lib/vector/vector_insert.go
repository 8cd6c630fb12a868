package vector

import (
	"fmt"

	"github.com/benz9527/xstl/lib/infra"
)

// Insert inserts val before pos and returns its position.
func (v *Vector[T]) Insert(pos Iterator[T], val T) (Iterator[T], error) {
	return v.InsertN(pos, 1, val)
}

// InsertN inserts n copies of val before pos and returns the position
// of the first one.
//
// With spare capacity the tail is shifted in place: the slots past
// finish are constructed first, the rest is moved backward and the
// hole is assigned. A construction failure there leaves the vector
// valid with its old contents. Otherwise the vector is reallocated and
// a failure leaves it untouched.
func (v *Vector[T]) InsertN(pos Iterator[T], n int, val T) (Iterator[T], error) {
	p, err := v.position(pos)
	if err != nil {
		return v.End(), err
	}
	if n < 0 {
		return v.End(), fmt.Errorf("%w: insert of %d elements", infra.ErrInvalidArgument, n)
	}
	if n == 0 {
		return v.iter(p), nil
	}

	if v.Cap()-v.finish < n {
		if err = v.grow(p, n, func(dst []T) error {
			return v.uninitializedFill(dst, val)
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
		for i := p; i < p+n; i++ {
			v.buf[i] = val
		}
		return v.iter(p), nil
	}

	if err = v.uninitializedFill(v.buf[oldFinish:oldFinish+n-after], val); err != nil {
		return v.End(), err
	}
	v.finish += n - after
	if err = v.uninitializedCopy(v.buf[v.finish:v.finish+after], v.buf[p:oldFinish]); err != nil {
		v.truncate(oldFinish)
		return v.End(), err
	}
	v.finish += after
	for i := p; i < oldFinish; i++ {
		v.buf[i] = val
	}
	return v.iter(p), nil
}

// Assign replaces the elements with n copies of val.
func (v *Vector[T]) Assign(n int, val T) error {
	if n < 0 {
		return fmt.Errorf("%w: assign of %d elements", infra.ErrInvalidArgument, n)
	}
	switch {
	case n > v.Cap():
		if n > v.MaxSize() {
			return fmt.Errorf("%w: assign %d (max %d)", infra.ErrLengthExceeded, n, v.MaxSize())
		}
		buf, err := v.alloc.Allocate(n)
		if err != nil {
			return err
		}
		if err = v.uninitializedFill(buf, val); err != nil {
			v.deallocate(buf)
			return err
		}
		v.release()
		v.buf, v.finish = buf, n
	case n > v.finish:
		for i := 0; i < v.finish; i++ {
			v.buf[i] = val
		}
		if err := v.uninitializedFill(v.buf[v.finish:n], val); err != nil {
			return err
		}
		v.finish = n
	default:
		for i := 0; i < n; i++ {
			v.buf[i] = val
		}
		v.truncate(n)
	}
	return nil
}
