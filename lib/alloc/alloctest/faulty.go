// Package alloctest provides allocator doubles for container tests.
package alloctest

import (
	"errors"

	"github.com/benz9527/xstl/lib/alloc"
)

// ErrInjected is returned by a Faulty allocator once its budget runs out.
var ErrInjected = errors.New("[alloctest] injected failure")

const unlimited = -1

// Faulty lets a fixed number of Allocate and Construct calls through
// and fails every later one, until Heal is called.
type Faulty[T any] struct {
	*alloc.Counting[T]
	allocBudget     int
	constructBudget int
}

var _ alloc.Allocator[int] = (*Faulty[int])(nil)

func NewFaulty[T any](opts ...alloc.AllocatorOpt) *Faulty[T] {
	return &Faulty[T]{
		Counting:        alloc.NewCounting[T](alloc.NewHeap[T](opts...)),
		allocBudget:     unlimited,
		constructBudget: unlimited,
	}
}

// FailAllocateAfter allows n more successful Allocate calls.
func (f *Faulty[T]) FailAllocateAfter(n int) *Faulty[T] {
	f.allocBudget = n
	return f
}

// FailConstructAfter allows n more successful Construct calls.
func (f *Faulty[T]) FailConstructAfter(n int) *Faulty[T] {
	f.constructBudget = n
	return f
}

// Heal removes both budgets.
func (f *Faulty[T]) Heal() {
	f.allocBudget = unlimited
	f.constructBudget = unlimited
}

func (f *Faulty[T]) Allocate(n int) ([]T, error) {
	if f.allocBudget == 0 {
		return nil, ErrInjected
	}
	if f.allocBudget > 0 {
		f.allocBudget--
	}
	return f.Counting.Allocate(n)
}

func (f *Faulty[T]) Construct(p *T, val T) error {
	if f.constructBudget == 0 {
		return ErrInjected
	}
	if f.constructBudget > 0 {
		f.constructBudget--
	}
	return f.Counting.Construct(p, val)
}
