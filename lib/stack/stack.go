// Package stack is the LIFO adaptor over the vector.
package stack

import (
	"github.com/benz9527/xstl/lib/vector"
)

// Stack pushes and pops at the back of the underlying vector.
type Stack[T any] struct {
	c *vector.Vector[T]
}

func New[T any](opts ...vector.VectorOpt[T]) *Stack[T] {
	return &Stack[T]{c: vector.New[T](opts...)}
}

// NewFrom adopts v as the underlying container, its back being the top.
func NewFrom[T any](v *vector.Vector[T]) *Stack[T] {
	if v == nil {
		v = vector.New[T]()
	}
	return &Stack[T]{c: v}
}

func (s *Stack[T]) Len() int {
	return s.c.Len()
}

func (s *Stack[T]) Empty() bool {
	return s.c.Empty()
}

func (s *Stack[T]) Push(val T) error {
	return s.c.PushBack(val)
}

// Top returns infra.ErrContainerEmpty on an empty stack.
func (s *Stack[T]) Top() (T, error) {
	return s.c.Back()
}

// Pop removes the top element and returns it.
func (s *Stack[T]) Pop() (T, error) {
	top, err := s.c.Back()
	if err != nil {
		return top, err
	}
	return top, s.c.PopBack()
}

func (s *Stack[T]) Swap(other *Stack[T]) {
	s.c.Swap(other.c)
}

func (s *Stack[T]) Clone() (*Stack[T], error) {
	c, err := s.c.Clone()
	if err != nil {
		return nil, err
	}
	return &Stack[T]{c: c}, nil
}

// Release gives the storage of the underlying vector back.
func (s *Stack[T]) Release() {
	s.c.Release()
}
