package alloc

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/benz9527/xstl/lib/infra"
)

var _ Allocator[int] = (*heapAllocator[int])(nil)

// heapAllocator is backed by the Go heap. Deallocate only clears the
// slots so that the GC can reclaim whatever they referenced.
type heapAllocator[T any] struct {
	maxSize int
}

func (a *heapAllocator[T]) Allocate(n int) ([]T, error) {
	if n < 0 || n > a.maxSize {
		return nil, fmt.Errorf("%w: %d slots (max %d)", infra.ErrBadAlloc, n, a.maxSize)
	}
	if n == 0 {
		return nil, nil
	}
	return make([]T, n), nil
}

func (a *heapAllocator[T]) Deallocate(p []T) {
	clear(p)
}

func (a *heapAllocator[T]) Construct(p *T, val T) error {
	*p = val
	return nil
}

func (a *heapAllocator[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

func (a *heapAllocator[T]) MaxSize() int {
	return a.maxSize
}

func maxSizeOf[T any]() int {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return math.MaxInt
	}
	return int(uintptr(math.MaxInt) / size)
}

// NewHeap returns the default allocator.
func NewHeap[T any](opts ...AllocatorOpt) Allocator[T] {
	cfg := &allocatorCfg{maxSize: maxSizeOf[T]()}
	for _, o := range opts {
		o(cfg)
	}
	return &heapAllocator[T]{maxSize: cfg.maxSize}
}
