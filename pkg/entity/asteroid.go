package entity

import (
	"math"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Asteroid is a drifting rock. Size is its tier; size 1 rocks don't split.
type Asteroid struct {
	BaseEntity
	Size     int
	Spin     float64 // degrees, for renderers only
	SpinRate float64 // degrees per second
}

// NewAsteroid creates a live asteroid whose collision radius equals its size
func NewAsteroid(id ID, position, velocity physics.Vector3D, size int) *Asteroid {
	return &Asteroid{
		BaseEntity: BaseEntity{
			ID:       id,
			Kind:     KindAsteroid,
			Position: position,
			Velocity: velocity,
			Radius:   float64(size),
			Active:   true,
		},
		Size: size,
	}
}

// CanSplit reports whether hitting the asteroid produces fragments
func (a *Asteroid) CanSplit() bool {
	return a.Size > 1
}

// Update drifts the asteroid and advances its spin
func (a *Asteroid) Update(deltaTime float64) {
	a.BaseEntity.Update(deltaTime)
	if a.SpinRate != 0 {
		a.Spin = math.Mod(a.Spin+a.SpinRate*deltaTime, 360)
	}
}

// Render draws the asteroid
func (a *Asteroid) Render(r Renderer) {
	r.RenderAsteroid(a)
}
