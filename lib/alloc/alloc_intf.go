// Package alloc is the storage capability consumed by the containers.
//
// The containers never call make or new for their elements directly,
// they go through the five operations below. Swapping the allocator
// is how tests observe and break the containers.
package alloc

// Allocator hands out and takes back raw slots of T.
// Slots returned by Allocate hold the zero value and are not
// constructed yet.
type Allocator[T any] interface {
	// Allocate acquires n raw slots. n == 0 returns a nil slice.
	Allocate(n int) ([]T, error)
	// Deallocate releases slots previously acquired by Allocate.
	// Every slot must have been destroyed already.
	Deallocate(p []T)
	// Construct places val into the raw slot p.
	Construct(p *T, val T) error
	// Destroy turns the constructed slot p back into a raw slot.
	Destroy(p *T)
	// MaxSize is the upper bound of n for Allocate.
	MaxSize() int
}

type AllocatorOpt func(*allocatorCfg)

type allocatorCfg struct {
	maxSize int
	name    string
}

// WithMaxSize lowers the max size reported by the allocator.
func WithMaxSize(n int) AllocatorOpt {
	return func(cfg *allocatorCfg) {
		if n >= 0 {
			cfg.maxSize = n
		}
	}
}

// WithName names the allocator instance in metrics.
func WithName(name string) AllocatorOpt {
	return func(cfg *allocatorCfg) {
		cfg.name = name
	}
}
