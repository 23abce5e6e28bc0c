// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	require.NotNil(t, bus)
	assert.NotNil(t, bus.handlers)
	assert.Equal(t, uint64(1), bus.nextID)
}

func TestBusSubscribe_SingleHandler_ReturnsValidSubscription(t *testing.T) {
	bus := NewEventBus()

	sub := bus.Subscribe(EntitySpawned, func(Event) {})

	require.NotNil(t, sub)
	assert.NotZero(t, sub.ID)
	assert.Equal(t, EntitySpawned, sub.Type)
	assert.NotNil(t, sub.Cancel)
	assert.Equal(t, 1, bus.HandlerCount(EntitySpawned))
}

func TestBusPublish_WithSubscribers_CallsAllHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []string

	bus.Subscribe(GameOver, func(Event) { calls = append(calls, "first") })
	bus.Subscribe(GameOver, func(Event) { calls = append(calls, "second") })
	bus.Subscribe(GameRestarted, func(Event) { calls = append(calls, "other") })

	bus.Publish(NewSessionEvent(GameOver, nil, 300, 5, 3))

	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestBusPublish_NoSubscribers_NoPanic(t *testing.T) {
	bus := NewEventBus()
	assert.NotPanics(t, func() {
		bus.Publish(NewSessionEvent(GameRestarted, nil, 0, 0, 0))
	})
}

func TestSubscriptionCancel_ValidSubscription_RemovesOnlyThatHandler(t *testing.T) {
	bus := NewEventBus()
	var first, second int

	sub := bus.Subscribe(ShotFired, func(Event) { first++ })
	bus.Subscribe(ShotFired, func(Event) { second++ })

	sub.Cancel()
	sub.Cancel() // idempotent

	bus.Publish(&BaseEvent{EventType: ShotFired})

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, bus.HandlerCount(ShotFired))
}

func TestSubscriptionCancel_DuringPublish_CurrentDispatchCompletes(t *testing.T) {
	bus := NewEventBus()
	var calls int
	var sub *Subscription

	sub = bus.Subscribe(EntityRemoved, func(Event) {
		calls++
		sub.Cancel()
	})
	bus.Subscribe(EntityRemoved, func(Event) { calls++ })

	bus.Publish(&BaseEvent{EventType: EntityRemoved})
	bus.Publish(&BaseEvent{EventType: EntityRemoved})

	assert.Equal(t, 3, calls)
}

func TestBusSubscribe_ConcurrentAccess_ThreadSafe(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := bus.Subscribe(EntitySpawned, func(Event) {})
			sub.Cancel()
		}()
		go func() {
			defer wg.Done()
			bus.Publish(&BaseEvent{EventType: EntitySpawned})
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, bus.HandlerCount(EntitySpawned))
}

func TestNewEntityEvent_Asteroid_CarriesSize(t *testing.T) {
	a := entity.NewAsteroid(9, physics.Vector3D{X: 1, Y: 2, Z: 3}, physics.Vector3D{}, 2)

	ev := NewEntityEvent(EntitySpawned, "field", a)

	assert.Equal(t, EntitySpawned, ev.GetType())
	assert.Equal(t, "field", ev.GetSource())
	assert.Equal(t, entity.ID(9), ev.EntityID)
	assert.Equal(t, entity.KindAsteroid, ev.Kind)
	assert.Equal(t, physics.Vector3D{X: 1, Y: 2, Z: 3}, ev.Position)
	assert.Equal(t, 2, ev.Size)
}

func TestNewEntityEvent_Bullet_HasNoSize(t *testing.T) {
	b := entity.NewBullet(4, 1, physics.Vector3D{}, physics.Vector3D{}, 0.05, 0, 10)

	ev := NewEntityEvent(EntityRemoved, nil, b)

	assert.Equal(t, entity.KindBullet, ev.Kind)
	assert.Zero(t, ev.Size)
}

func TestNewSplitEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	parent := entity.NewAsteroid(3, physics.Vector3D{}, physics.Vector3D{}, 3)

	ev := NewSplitEvent(nil, parent, []entity.ID{4, 5, 6})

	assert.Equal(t, AsteroidSplit, ev.GetType())
	assert.Equal(t, entity.ID(3), ev.ParentID)
	assert.Equal(t, 3, ev.ParentSize)
	assert.Equal(t, []entity.ID{4, 5, 6}, ev.Fragments)
}
