package alloc

// Counting wraps an allocator and counts what passes through it.
// A balanced container run ends with Live() == 0 and Outstanding() == 0.
type Counting[T any] struct {
	base          Allocator[T]
	allocations   int64
	deallocations int64
	slotsAcquired int64
	slotsReleased int64
	constructed   int64
	destroyed     int64
}

var _ Allocator[int] = (*Counting[int])(nil)

func NewCounting[T any](base Allocator[T]) *Counting[T] {
	if base == nil {
		base = NewHeap[T]()
	}
	return &Counting[T]{base: base}
}

func (c *Counting[T]) Allocate(n int) ([]T, error) {
	p, err := c.base.Allocate(n)
	if err != nil {
		return nil, err
	}
	c.allocations++
	c.slotsAcquired += int64(n)
	return p, nil
}

func (c *Counting[T]) Deallocate(p []T) {
	c.deallocations++
	c.slotsReleased += int64(len(p))
	c.base.Deallocate(p)
}

func (c *Counting[T]) Construct(p *T, val T) error {
	if err := c.base.Construct(p, val); err != nil {
		return err
	}
	c.constructed++
	return nil
}

func (c *Counting[T]) Destroy(p *T) {
	c.destroyed++
	c.base.Destroy(p)
}

func (c *Counting[T]) MaxSize() int {
	return c.base.MaxSize()
}

func (c *Counting[T]) Allocations() int64   { return c.allocations }
func (c *Counting[T]) Deallocations() int64 { return c.deallocations }
func (c *Counting[T]) Constructed() int64   { return c.constructed }
func (c *Counting[T]) Destroyed() int64     { return c.destroyed }

// Live is the number of constructed and not yet destroyed values.
func (c *Counting[T]) Live() int64 {
	return c.constructed - c.destroyed
}

// Outstanding is the number of slots acquired and not yet released.
func (c *Counting[T]) Outstanding() int64 {
	return c.slotsAcquired - c.slotsReleased
}
