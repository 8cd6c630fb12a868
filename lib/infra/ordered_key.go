package infra

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint that permits any floating-point type.
type Float interface {
	~float32 | ~float64
}

// OrderedKey
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// LessFunc is a strict weak ordering.
// It must be irreflexive, transitive and stable for the whole
// lifetime of the container that owns it.
//  1. less(i, i) == false
//  2. less(i, j) && less(j, k) => less(i, k)
//  3. !less(i, j) && !less(j, i) => i and j are equivalent keys.
type LessFunc[K any] func(i, j K) bool

// OrderedLess is the natural ascending order of K.
func OrderedLess[K OrderedKey](i, j K) bool {
	return i < j
}

// OrderedGreater is the natural descending order of K.
func OrderedGreater[K OrderedKey](i, j K) bool {
	return i > j
}

// LessFromCompare adapts a three-way comparator (cmp.Compare style)
// into a LessFunc.
func LessFromCompare[K any](compare func(i, j K) int) LessFunc[K] {
	return func(i, j K) bool {
		return compare(i, j) < 0
	}
}

// Equivalent reports whether i and j are equivalent keys under less.
func (less LessFunc[K]) Equivalent(i, j K) bool {
	return !less(i, j) && !less(j, i)
}
