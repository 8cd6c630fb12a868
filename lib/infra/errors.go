package infra

import (
	"errors"
	"fmt"
)

var (
	// ErrContainerEmpty signals front/back/top/pop on an empty container.
	ErrContainerEmpty = errors.New("[xstl] container is empty")
	// ErrOutOfRange signals a positional index outside of [0, size).
	ErrOutOfRange = errors.New("[xstl] index out of range")
	// ErrKeyNotFound signals a checked key lookup miss.
	ErrKeyNotFound = fmt.Errorf("%w: key not found", ErrOutOfRange)
	// ErrLengthExceeded signals a requested length above the allocator max size.
	ErrLengthExceeded = errors.New("[xstl] requested length exceeds maximum")
	// ErrBadAlloc signals an allocator that refused to hand out storage.
	ErrBadAlloc = errors.New("[xstl] bad allocation")
	// ErrInvalidArgument signals arguments that do not fit the operation,
	// e.g. an iterator that belongs to another container.
	ErrInvalidArgument = errors.New("[xstl] invalid argument")
	// ErrTreeViolation wraps every red-black tree structural violation.
	ErrTreeViolation = errors.New("[rbtree] structural violation")
	// ErrStorageViolation wraps every dynamic array storage violation.
	ErrStorageViolation = errors.New("[vector] storage violation")
)

// OutOfRangeError carries the offending index and the container size.
type OutOfRangeError struct {
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: index %d, size %d", ErrOutOfRange.Error(), e.Index, e.Size)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

// CheckIndex returns an *OutOfRangeError if idx is not in [0, size).
func CheckIndex(idx, size int) error {
	if idx < 0 || idx >= size {
		return &OutOfRangeError{Index: idx, Size: size}
	}
	return nil
}
