package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// recorder collects lifecycle notifications published on a bus
type recorder struct {
	spawned   []*event.EntityEvent
	removed   []*event.EntityEvent
	splits    []*event.SplitEvent
	gameOvers int
	restarts  int
}

func newRecorder(bus *event.Bus) *recorder {
	r := &recorder{}
	bus.Subscribe(event.EntitySpawned, func(e event.Event) { r.spawned = append(r.spawned, e.(*event.EntityEvent)) })
	bus.Subscribe(event.EntityRemoved, func(e event.Event) { r.removed = append(r.removed, e.(*event.EntityEvent)) })
	bus.Subscribe(event.AsteroidSplit, func(e event.Event) { r.splits = append(r.splits, e.(*event.SplitEvent)) })
	bus.Subscribe(event.GameOver, func(event.Event) { r.gameOvers++ })
	bus.Subscribe(event.GameRestarted, func(event.Event) { r.restarts++ })
	return r
}

func (r *recorder) removedCount(id entity.ID) int {
	n := 0
	for _, e := range r.removed {
		if e.EntityID == id {
			n++
		}
	}
	return n
}

func testConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Asteroid.Seed = 7
	return cfg
}

// emptyFieldConfig starts with no asteroids so tests can place their own
func emptyFieldConfig() *config.GameConfig {
	cfg := testConfig()
	cfg.Asteroid.StartCount = 0
	return cfg
}

func newTestSession(t *testing.T, cfg *config.GameConfig) (*Session, *recorder) {
	t.Helper()
	bus := event.NewEventBus()
	rec := newRecorder(bus)
	s := NewSession(cfg, WithEventBus(bus), WithRand(rand.New(rand.NewPCG(1, 2))), WithMetrics(NewNoopMetrics()))
	return s, rec
}

// placeAsteroid adds a motionless asteroid at p
func placeAsteroid(s *Session, p physics.Vector3D, size int) *entity.Asteroid {
	a := s.field.add(p, size)
	a.Velocity = physics.Vector3D{}
	return a
}
