// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Type represents the type of event
type Type string

// Lifecycle and session event types
const (
	EntitySpawned Type = "entity_spawned"
	EntityRemoved Type = "entity_removed"
	ShotFired     Type = "shot_fired"
	AsteroidSplit Type = "asteroid_split"
	ShipDestroyed Type = "ship_destroyed"
	GameOver      Type = "game_over"
	GameRestarted Type = "game_restarted"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it and may
// be called more than once.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine in subscription order.
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:   id,
		Type: eventType,
		Cancel: func() {
			b.unsubscribe(eventType, id)
		},
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			// Copy so an in-flight Publish keeps iterating its own snapshot.
			next := make([]registration, 0, len(regs)-1)
			next = append(next, regs[:i]...)
			b.handlers[eventType] = append(next, regs[i+1:]...)
			return
		}
	}
}

// HandlerCount returns the number of handlers registered for eventType
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// EntityEvent reports an entity entering or leaving the simulation so that
// presentation layers can create or destroy proxies in lockstep.
type EntityEvent struct {
	BaseEvent
	EntityID entity.ID
	Kind     entity.Kind
	Position physics.Vector3D
	Size     int // asteroid tier, zero for other kinds
}

// NewEntityEvent creates a new entity lifecycle event
func NewEntityEvent(eventType Type, source interface{}, e entity.Entity) *EntityEvent {
	ev := &EntityEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		EntityID: e.GetID(),
		Kind:     e.GetKind(),
		Position: e.GetPosition(),
	}
	if a, ok := e.(*entity.Asteroid); ok {
		ev.Size = a.Size
	}
	return ev
}

// SplitEvent records an asteroid breaking into fragments
type SplitEvent struct {
	BaseEvent
	ParentID   entity.ID
	ParentSize int
	Fragments  []entity.ID
}

// NewSplitEvent creates a new split event
func NewSplitEvent(source interface{}, parent *entity.Asteroid, fragments []entity.ID) *SplitEvent {
	return &SplitEvent{
		BaseEvent: BaseEvent{
			EventType: AsteroidSplit,
			Source:    source,
		},
		ParentID:   parent.ID,
		ParentSize: parent.Size,
		Fragments:  fragments,
	}
}

// SessionEvent carries the scoreboard at a session transition
type SessionEvent struct {
	BaseEvent
	Score int
	Shots int
	Hits  int
}

// NewSessionEvent creates a new session event
func NewSessionEvent(eventType Type, source interface{}, score, shots, hits int) *SessionEvent {
	return &SessionEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Score: score,
		Shots: shots,
		Hits:  hits,
	}
}
