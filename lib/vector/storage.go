package vector

import (
	"fmt"

	"github.com/benz9527/xstl/lib/alloc"
	"github.com/benz9527/xstl/lib/infra"
)

// storage is the raw buffer of a vector.
//
//	buf[:finish]         constructed elements
//	buf[finish:len(buf)] allocated raw slots
//
// len(buf) is the capacity, it never shrinks implicitly. A vector
// and its iterators share one storage handle.
type storage[T any] struct {
	buf    []T
	finish int
	alloc  alloc.Allocator[T]
}

func (s *storage[T]) capacity() int {
	return len(s.buf)
}

// data is the view of the constructed elements.
func (s *storage[T]) data() []T {
	return s.buf[:s.finish:s.finish]
}

func (s *storage[T]) deallocate(buf []T) {
	if buf != nil {
		s.alloc.Deallocate(buf)
	}
}

func (s *storage[T]) destroy(buf []T) {
	for i := range buf {
		s.alloc.Destroy(&buf[i])
	}
}

// uninitializedFill constructs val into every raw slot of dst. On
// failure the slots constructed so far are destroyed again.
func (s *storage[T]) uninitializedFill(dst []T, val T) error {
	for i := range dst {
		if err := s.alloc.Construct(&dst[i], val); err != nil {
			s.destroy(dst[:i])
			return err
		}
	}
	return nil
}

// uninitializedCopy constructs src into the raw slots of dst,
// len(dst) == len(src). On failure the slots constructed so far are
// destroyed again.
func (s *storage[T]) uninitializedCopy(dst, src []T) error {
	for i := range src {
		if err := s.alloc.Construct(&dst[i], src[i]); err != nil {
			s.destroy(dst[:i])
			return err
		}
	}
	return nil
}

// checkLen is the growth law for adding n elements: the size doubles
// or grows by n, whichever is more, bounded by the max size.
func (s *storage[T]) checkLen(n int) (int, error) {
	size, maxSize := s.finish, s.alloc.MaxSize()
	if maxSize-size < n {
		return 0, fmt.Errorf("%w: %d + %d elements (max %d)", infra.ErrLengthExceeded, size, n, maxSize)
	}
	l := size + max(size, n)
	if l < size || l > maxSize {
		return maxSize, nil
	}
	return l, nil
}

// relocate moves the elements into a new buffer of newCap slots and
// leaves a gap of n slots at pos, filled by construct. The old buffer
// is torn down only once the new one is complete, so a failure
// leaves the storage untouched.
func (s *storage[T]) relocate(newCap, pos, n int, construct func(dst []T) error) error {
	newBuf, err := s.alloc.Allocate(newCap)
	if err != nil {
		return err
	}
	if err = construct(newBuf[pos : pos+n]); err != nil {
		s.deallocate(newBuf)
		return err
	}
	if err = s.uninitializedCopy(newBuf[:pos], s.buf[:pos]); err != nil {
		s.destroy(newBuf[pos : pos+n])
		s.deallocate(newBuf)
		return err
	}
	if err = s.uninitializedCopy(newBuf[pos+n:s.finish+n], s.buf[pos:s.finish]); err != nil {
		s.destroy(newBuf[:pos+n])
		s.deallocate(newBuf)
		return err
	}

	s.destroy(s.buf[:s.finish])
	s.deallocate(s.buf)
	s.buf = newBuf
	s.finish += n
	return nil
}

// release destroys the elements and gives the buffer back.
func (s *storage[T]) release() {
	s.destroy(s.buf[:s.finish])
	s.deallocate(s.buf)
	s.buf, s.finish = nil, 0
}
