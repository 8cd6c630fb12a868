// Package ordered provides the key ordered map and set containers, each
// a typed view over the red-black tree.
//
// Map and Set hold unique keys, MultiMap and MultiSet keep every
// inserted value, equivalent keys in insertion order. None of them is
// safe for concurrent mutation.
package ordered

import (
	"github.com/benz9527/xstl/lib/infra"
	"github.com/benz9527/xstl/lib/iterator"
	"github.com/benz9527/xstl/lib/tree"
)

// base carries the operations the four containers share.
type base[K, V any] struct {
	t *tree.Tree[K, V]
}

func (b base[K, V]) Len() int {
	return b.t.Len()
}

func (b base[K, V]) Empty() bool {
	return b.t.Empty()
}

func (b base[K, V]) MaxSize() int {
	return b.t.MaxSize()
}

func (b base[K, V]) KeyLess() infra.LessFunc[K] {
	return b.t.KeyLess()
}

func (b base[K, V]) Begin() tree.Iterator[V] {
	return b.t.Begin()
}

func (b base[K, V]) End() tree.Iterator[V] {
	return b.t.End()
}

func (b base[K, V]) RBegin() iterator.Reverse[V, tree.Iterator[V]] {
	return b.t.RBegin()
}

func (b base[K, V]) REnd() iterator.Reverse[V, tree.Iterator[V]] {
	return b.t.REnd()
}

// Find returns the position of a value with key k, or End().
func (b base[K, V]) Find(k K) tree.Iterator[V] {
	return b.t.Find(k)
}

func (b base[K, V]) Contains(k K) bool {
	return b.t.Contains(k)
}

func (b base[K, V]) Count(k K) int {
	return b.t.Count(k)
}

// LowerBound returns the first position whose key is not before k.
func (b base[K, V]) LowerBound(k K) tree.Iterator[V] {
	return b.t.LowerBound(k)
}

// UpperBound returns the first position whose key is after k.
func (b base[K, V]) UpperBound(k K) tree.Iterator[V] {
	return b.t.UpperBound(k)
}

func (b base[K, V]) EqualRange(k K) (first, last tree.Iterator[V]) {
	return b.t.EqualRange(k)
}

// Erase removes the value at pos, which must not be End(), and returns
// the position that followed it.
func (b base[K, V]) Erase(pos tree.Iterator[V]) tree.Iterator[V] {
	return b.t.Erase(pos)
}

// EraseRange removes [first, last) and returns last.
func (b base[K, V]) EraseRange(first, last tree.Iterator[V]) tree.Iterator[V] {
	return b.t.EraseRange(first, last)
}

// EraseKey removes the values with key k and returns their number.
func (b base[K, V]) EraseKey(k K) int {
	return b.t.EraseKey(k)
}

func (b base[K, V]) Clear() {
	b.t.Clear()
}

func (b base[K, V]) Release() {
	b.t.Release()
}

// Verify checks the invariants of the underlying tree.
func (b base[K, V]) Verify() error {
	return b.t.Verify()
}
