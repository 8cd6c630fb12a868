// Package traits answers the capability questions the containers ask about
// their element and argument types: "is this an integer count?", "can this
// be block filled as bytes?", "is this a plain scalar?".
//
// Go has no overload resolution, so the questions are asked on the
// instantiated type parameter. The answers depend only on the type, never
// on the value, so every instantiation always takes the same branch.
package traits

import (
	"fmt"
	"reflect"

	"github.com/benz9527/xstl/lib/infra"
)

// IsIntegral reports whether T is (or is defined over) a Go integer type.
func IsIntegral[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
	}
	return false
}

// IsByte reports whether T is a single byte wide scalar,
// which is the precondition of block filling.
func IsByte[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int8, reflect.Uint8, reflect.Bool:
		return true
	default:
	}
	return false
}

// IsScalar reports whether T is a bool, a number or a pointer-like word.
// Assigning a scalar never runs user code.
func IsScalar[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.Pointer, reflect.UnsafePointer:
		return true
	default:
	}
	return false
}

// ToCount converts an integral value into a non-negative element count.
func ToCount[T any](v T) (int, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < 0 || int64(int(n)) != n {
			return 0, fmt.Errorf("%w: count %d", infra.ErrInvalidArgument, n)
		}
		return int(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > uint64(^uint(0)>>1) {
			return 0, fmt.Errorf("%w: count %d", infra.ErrInvalidArgument, n)
		}
		return int(n), nil
	default:
	}
	return 0, fmt.Errorf("%w: %T is not an integer", infra.ErrInvalidArgument, v)
}

// Convert converts an integral value v into T when T is integral too,
// or returns v itself when it already is a T.
func Convert[T, A any](v A) (T, bool) {
	if t, ok := any(v).(T); ok {
		return t, true
	}
	var zero T
	if !IsIntegral[T]() || !IsIntegral[A]() {
		return zero, false
	}
	rv := reflect.ValueOf(v)
	to := reflect.TypeFor[T]()
	if !rv.CanConvert(to) {
		return zero, false
	}
	return rv.Convert(to).Interface().(T), true
}
