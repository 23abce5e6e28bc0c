package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/opd-ai/go-asteroids/pkg/engine"

// Metrics holds the session's instruments. The zero value is not usable;
// build one with NewMetrics or NewNoopMetrics.
type Metrics struct {
	shots        metric.Int64Counter
	hits         metric.Int64Counter
	splits       metric.Int64Counter
	expired      metric.Int64Counter
	stale        metric.Int64Counter
	gamesOver    metric.Int64Counter
	liveEntities metric.Int64ObservableGauge

	meter        metric.Meter
	registration metric.Registration
}

// EntityCounter reports live entity counts for the gauge callback
type EntityCounter interface {
	EntityCounts() (ships, bullets, asteroids int)
}

// NewMetrics creates instruments from the global OTel meter provider (a
// no-op unless an SDK has been installed).
func NewMetrics() (*Metrics, error) {
	return newMetrics(otel.Meter(instrumentationName))
}

// NewNoopMetrics creates instruments that record nothing
func NewNoopMetrics() *Metrics {
	m, _ := newMetrics(noop.NewMeterProvider().Meter(instrumentationName))
	return m
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{meter: meter}
	var err error

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.shots, "asteroids.shots", "Bullets fired"},
		{&m.hits, "asteroids.hits", "Bullets that hit an asteroid"},
		{&m.splits, "asteroids.splits", "Asteroids that broke into fragments"},
		{&m.expired, "asteroids.bullets.expired", "Bullets removed after their travel time"},
		{&m.stale, "asteroids.collisions.stale", "Collision events dropped because an entity was already gone"},
		{&m.gamesOver, "asteroids.games.over", "Sessions that ended with the ship destroyed"},
	}
	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("creating %s counter: %w", c.name, err)
		}
	}

	m.liveEntities, err = meter.Int64ObservableGauge(
		"asteroids.entities.live",
		metric.WithDescription("Live simulated entities by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating live entities gauge: %w", err)
	}
	return m, nil
}

// Observe registers a callback reporting counts from source. Calling it
// again replaces the previous source.
func (m *Metrics) Observe(source EntityCounter) error {
	if m == nil {
		return nil
	}
	if m.registration != nil {
		if err := m.registration.Unregister(); err != nil {
			return fmt.Errorf("unregistering entity callback: %w", err)
		}
		m.registration = nil
	}

	reg, err := m.meter.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			ships, bullets, asteroids := source.EntityCounts()
			o.ObserveInt64(m.liveEntities, int64(ships), metric.WithAttributes(attribute.String("kind", "ship")))
			o.ObserveInt64(m.liveEntities, int64(bullets), metric.WithAttributes(attribute.String("kind", "bullet")))
			o.ObserveInt64(m.liveEntities, int64(asteroids), metric.WithAttributes(attribute.String("kind", "asteroid")))
			return nil
		},
		m.liveEntities,
	)
	if err != nil {
		return fmt.Errorf("registering entity callback: %w", err)
	}
	m.registration = reg
	return nil
}

// Close unregisters the gauge callback
func (m *Metrics) Close() error {
	if m == nil || m.registration == nil {
		return nil
	}
	err := m.registration.Unregister()
	m.registration = nil
	return err
}

func (m *Metrics) add(ctx context.Context, c metric.Int64Counter, n int) {
	if m == nil || n == 0 {
		return
	}
	c.Add(ctx, int64(n))
}

func (m *Metrics) shot(ctx context.Context) {
	if m != nil {
		m.add(ctx, m.shots, 1)
	}
}

func (m *Metrics) hit(ctx context.Context, split bool) {
	if m == nil {
		return
	}
	m.add(ctx, m.hits, 1)
	if split {
		m.add(ctx, m.splits, 1)
	}
}

func (m *Metrics) bulletExpired(ctx context.Context) {
	if m != nil {
		m.add(ctx, m.expired, 1)
	}
}

func (m *Metrics) staleEvents(ctx context.Context, n int) {
	if m != nil {
		m.add(ctx, m.stale, n)
	}
}

func (m *Metrics) gameOver(ctx context.Context) {
	if m != nil {
		m.add(ctx, m.gamesOver, 1)
	}
}
