package alloc

import (
	"context"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	MeterName = "xstl/alloc"

	SlotsMetricName    = "xstl.alloc.slots"
	LiveMetricName     = "xstl.alloc.live"
	FailuresMetricName = "xstl.alloc.failures"
)

// metered reports the allocator traffic of one container family
// through OpenTelemetry instruments. It adds counters only, the
// storage behaviour is the base allocator's.
type metered[T any] struct {
	base               Allocator[T]
	attrs              metric.MeasurementOption
	allocFailAttrs     metric.MeasurementOption
	constructFailAttrs metric.MeasurementOption
	slots              metric.Int64UpDownCounter
	live               metric.Int64UpDownCounter
	failures           metric.Int64Counter
}

var _ Allocator[int] = (*metered[int])(nil)

func (m *metered[T]) Allocate(n int) ([]T, error) {
	p, err := m.base.Allocate(n)
	if err != nil {
		m.failures.Add(context.Background(), 1, m.allocFailAttrs)
		return nil, err
	}
	m.slots.Add(context.Background(), int64(n), m.attrs)
	return p, nil
}

func (m *metered[T]) Deallocate(p []T) {
	m.slots.Add(context.Background(), -int64(len(p)), m.attrs)
	m.base.Deallocate(p)
}

func (m *metered[T]) Construct(p *T, val T) error {
	if err := m.base.Construct(p, val); err != nil {
		m.failures.Add(context.Background(), 1, m.constructFailAttrs)
		return err
	}
	m.live.Add(context.Background(), 1, m.attrs)
	return nil
}

func (m *metered[T]) Destroy(p *T) {
	m.live.Add(context.Background(), -1, m.attrs)
	m.base.Destroy(p)
}

func (m *metered[T]) MaxSize() int {
	return m.base.MaxSize()
}

// NewMetered wraps base with slot, live value and failure counters.
// A nil meter falls back to the global meter provider.
func NewMetered[T any](base Allocator[T], meter metric.Meter, opts ...AllocatorOpt) Allocator[T] {
	cfg := &allocatorCfg{name: "default"}
	for _, o := range opts {
		o(cfg)
	}
	if base == nil {
		base = NewHeap[T]()
	}
	if meter == nil {
		meter = otel.Meter(MeterName)
	}
	nameAttr := attribute.String("xstl.alloc.name", cfg.name)
	return &metered[T]{
		base:               base,
		attrs:              metric.WithAttributeSet(attribute.NewSet(nameAttr)),
		allocFailAttrs:     metric.WithAttributeSet(attribute.NewSet(nameAttr, attribute.String("op", "allocate"))),
		constructFailAttrs: metric.WithAttributeSet(attribute.NewSet(nameAttr, attribute.String("op", "construct"))),
		slots: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			SlotsMetricName,
			metric.WithDescription("Allocated and not yet released slots."),
			metric.WithUnit("{slot}"),
		)),
		live: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			LiveMetricName,
			metric.WithDescription("Constructed and not yet destroyed values."),
			metric.WithUnit("{value}"),
		)),
		failures: lo.Must[metric.Int64Counter](meter.Int64Counter(
			FailuresMetricName,
			metric.WithDescription("Allocate and construct failures."),
		)),
	}
}
