// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// ID is a unique identifier for an entity. Zero is never issued.
type ID uint64

// Kind distinguishes the simulated object types
type Kind int

const (
	KindShip Kind = iota + 1
	KindBullet
	KindAsteroid
)

// String returns the lower-case kind name
func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindBullet:
		return "bullet"
	case KindAsteroid:
		return "asteroid"
	default:
		return "unknown"
	}
}

// Entity is the base interface for all simulated objects
type Entity interface {
	GetID() ID
	GetKind() Kind
	GetPosition() physics.Vector3D
	GetCollider() physics.Sphere
	IsAlive() bool
	Update(deltaTime float64)
	Render(r Renderer)
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID       ID
	Kind     Kind
	Position physics.Vector3D
	Velocity physics.Vector3D
	Radius   float64
	Active   bool
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetKind returns the entity's kind
func (e *BaseEntity) GetKind() Kind {
	return e.Kind
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector3D {
	return e.Position
}

// GetCollider returns the entity's collision sphere
func (e *BaseEntity) GetCollider() physics.Sphere {
	return physics.Sphere{Center: e.Position, Radius: e.Radius}
}

// IsAlive reports whether the entity is still active
func (e *BaseEntity) IsAlive() bool {
	return e.Active
}

// Update advances the position by velocity * dt
func (e *BaseEntity) Update(deltaTime float64) {
	e.Position = e.Position.Add(e.Velocity.Scale(deltaTime))
}

// Render does nothing; concrete types dispatch to their renderer hook.
func (e *BaseEntity) Render(r Renderer) {}

// IDGenerator issues monotonically increasing identities. IDs are never
// reused within a generator, so a stale ID can't alias a newer entity.
type IDGenerator struct {
	last atomic.Uint64
}

// NewIDGenerator creates a generator whose first ID is 1
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns a fresh ID
func (g *IDGenerator) Next() ID {
	return ID(g.last.Add(1))
}
