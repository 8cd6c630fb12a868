// Package queue holds the heap ordered adaptor over the vector.
package queue

// PriorityQueue pops its elements highest priority first. An element
// i has a lower priority than j when less(i, j).
type PriorityQueue[E any] interface {
	Len() int
	Empty() bool
	// Push returns the allocator error of the underlying vector, the
	// queue is unchanged then.
	Push(item E) error
	// Pop and Peek return infra.ErrContainerEmpty on an empty queue.
	Pop() (E, error)
	Peek() (E, error)
}
