package iterator

import (
	"iter"
)

// SeqIterator adapts an iter.Seq into a single pass input iterator.
// All copies share the pull state, advancing one advances them all.
type SeqIterator[T any] struct {
	InputTag
	st   *pullState[T]
	last bool
}

type pullState[T any] struct {
	next func() (T, bool)
	stop func()
	cur  T
	done bool
}

func (st *pullState[T]) pull() {
	v, ok := st.next()
	if !ok {
		st.done = true
		st.stop()
		var zero T
		st.cur = zero
		return
	}
	st.cur = v
}

// FromSeq returns the [first, last) pair over seq. The sequence is
// pulled lazily; Stop releases it early.
func FromSeq[T any](seq iter.Seq[T]) (first, last SeqIterator[T]) {
	next, stop := iter.Pull(seq)
	st := &pullState[T]{next: next, stop: stop}
	st.pull()
	return SeqIterator[T]{st: st}, SeqIterator[T]{st: st, last: true}
}

func (it SeqIterator[T]) atEnd() bool {
	return it.last || it.st == nil || it.st.done
}

func (it SeqIterator[T]) Value() T {
	if it.atEnd() {
		panic("[iterator] dereference of an exhausted sequence")
	}
	return it.st.cur
}

func (it SeqIterator[T]) Next() SeqIterator[T] {
	if !it.atEnd() {
		it.st.pull()
	}
	return it
}

func (it SeqIterator[T]) Equal(other SeqIterator[T]) bool {
	if it.atEnd() || other.atEnd() {
		return it.atEnd() == other.atEnd()
	}
	return it.st == other.st
}

// Stop releases the underlying sequence.
func (it SeqIterator[T]) Stop() {
	if it.st != nil && !it.st.done {
		it.st.done = true
		it.st.stop()
	}
}
