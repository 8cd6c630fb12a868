// Reference:
// https://github.com/nsqio/nsq/blob/master/internal/pqueue/pqueue.go

package queue

import (
	"container/heap"

	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/lib/vector"
)

// vectorHeap is the heap.Interface view of the vector. The vector
// keeps the max heap order of less.
type vectorHeap[E any] struct {
	vec  *vector.Vector[E]
	less infra.LessFunc[E]
}

func (h *vectorHeap[E]) Len() int { return h.vec.Len() }
func (h *vectorHeap[E]) Less(i, j int) bool {
	// container/heap keeps a min heap, the top is the greatest.
	return h.less(h.vec.Get(j), h.vec.Get(i))
}
func (h *vectorHeap[E]) Swap(i, j int) {
	data := h.vec.Data()
	data[i], data[j] = data[j], data[i]
}

// Push is never called by the queue, the element is appended before
// the heap is fixed so that an allocator error can be returned.
func (h *vectorHeap[E]) Push(any) {
	panic("[queue] push through container/heap")
}

// Pop returns nil when the vector is empty.
func (h *vectorHeap[E]) Pop() any {
	item, err := h.vec.Back()
	if err != nil {
		return nil
	}
	if err = h.vec.PopBack(); err != nil {
		return nil
	}
	return item
}

type ArrayPriorityQueue[E any] struct {
	queue    *vectorHeap[E]
	opts     []vector.VectorOpt[E]
	capacity int
}

var _ PriorityQueue[int] = (*ArrayPriorityQueue[int])(nil)

func (pq *ArrayPriorityQueue[E]) Len() int {
	return pq.queue.Len()
}

func (pq *ArrayPriorityQueue[E]) Empty() bool {
	return pq.queue.vec.Empty()
}

func (pq *ArrayPriorityQueue[E]) Push(item E) error {
	if err := pq.queue.vec.PushBack(item); err != nil {
		return err
	}
	heap.Fix(pq.queue, pq.queue.Len()-1)
	return nil
}

func (pq *ArrayPriorityQueue[E]) Pop() (E, error) {
	var zero E
	if pq.queue.vec.Empty() {
		return zero, infra.ErrContainerEmpty
	}
	item, ok := heap.Pop(pq.queue).(E)
	if !ok {
		return zero, infra.ErrContainerEmpty
	}
	return item, nil
}

func (pq *ArrayPriorityQueue[E]) Peek() (E, error) {
	return pq.queue.vec.Front()
}

// Release gives the storage of the underlying vector back.
func (pq *ArrayPriorityQueue[E]) Release() {
	pq.queue.vec.Release()
}

type ArrayPriorityQueueOption[E any] func(*ArrayPriorityQueue[E])

// NewArrayPriorityQueue creates a queue popping the greatest element
// of less first.
func NewArrayPriorityQueue[E any](less infra.LessFunc[E], opts ...ArrayPriorityQueueOption[E]) (*ArrayPriorityQueue[E], error) {
	if less == nil {
		panic("[queue] nil comparator")
	}
	pq := &ArrayPriorityQueue[E]{}
	for _, o := range opts {
		if o != nil {
			o(pq)
		}
	}
	pq.queue = &vectorHeap[E]{
		vec:  vector.New[E](pq.opts...),
		less: less,
	}
	if err := pq.queue.vec.Reserve(pq.capacity); err != nil {
		return nil, err
	}
	return pq, nil
}

// NewMinPriorityQueue pops the smallest element first.
func NewMinPriorityQueue[E infra.OrderedKey](opts ...ArrayPriorityQueueOption[E]) (*ArrayPriorityQueue[E], error) {
	return NewArrayPriorityQueue[E](infra.OrderedGreater[E], opts...)
}

func WithArrayPriorityQueueCapacity[E any](capacity int) ArrayPriorityQueueOption[E] {
	return func(pq *ArrayPriorityQueue[E]) {
		if capacity < 0 {
			capacity = 0
		}
		pq.capacity = capacity
	}
}

func WithArrayPriorityQueueVectorOpts[E any](opts ...vector.VectorOpt[E]) ArrayPriorityQueueOption[E] {
	return func(pq *ArrayPriorityQueue[E]) {
		pq.opts = append(pq.opts, opts...)
	}
}
