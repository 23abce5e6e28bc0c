// pkg/entity/ship.go
package entity

import (
	"slices"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// ShipStats contains the tunables of the player ship
type ShipStats struct {
	MaxSpeed     float64
	Acceleration float64
	Size         float64 // hull extent used to place the muzzle
	Radius       float64 // collision sphere radius
}

// Ship represents the player's spaceship
type Ship struct {
	BaseEntity
	Orientation physics.Orientation
	Stats       ShipStats
	Bullets     []ID // live bullets fired by this ship
}

// NewShip creates a live ship at the origin facing +Z
func NewShip(id ID, stats ShipStats) *Ship {
	return &Ship{
		BaseEntity: BaseEntity{
			ID:     id,
			Kind:   KindShip,
			Radius: stats.Radius,
			Active: true,
		},
		Orientation: physics.IdentityOrientation(),
		Stats:       stats,
	}
}

// Rotate applies a relative rotation in degrees
func (s *Ship) Rotate(heading, pitch, roll float64) {
	s.Orientation = s.Orientation.Rotate(heading, pitch, roll)
}

// Facing returns the unit vector the ship points along
func (s *Ship) Facing() physics.Vector3D {
	return s.Orientation.Forward()
}

// Accelerate thrusts along the facing vector for dt seconds and caps the
// resulting speed at Stats.MaxSpeed. Dead ships don't accelerate.
func (s *Ship) Accelerate(deltaTime float64) {
	if !s.Active {
		return
	}
	m := s.movement()
	m.Accelerate(deltaTime)
	s.Velocity = m.Velocity
}

// Update integrates the position while the ship is alive
func (s *Ship) Update(deltaTime float64) {
	if !s.Active {
		return
	}
	m := s.movement()
	m.Integrate(deltaTime)
	s.Position = m.Position
}

func (s *Ship) movement() *physics.MovementState {
	return &physics.MovementState{
		Position: s.Position,
		Velocity: s.Velocity,
		Facing:   s.Orientation,
		Thrust:   s.Stats.Acceleration,
		MaxSpeed: s.Stats.MaxSpeed,
	}
}

// Speed returns the magnitude of the ship's velocity
func (s *Ship) Speed() float64 {
	return s.Velocity.Length()
}

// Muzzle returns the point just ahead of the hull where bullets appear
func (s *Ship) Muzzle(epsilon float64) physics.Vector3D {
	return s.Position.Add(s.Facing().Scale(s.Stats.Size + epsilon))
}

// Kill marks the ship destroyed. It reports false if it was already dead.
func (s *Ship) Kill() bool {
	if !s.Active {
		return false
	}
	s.Active = false
	return true
}

// Reset returns the ship to the origin at rest and alive. The caller is
// responsible for removing the bullets returned.
func (s *Ship) Reset() []ID {
	s.Position = physics.Vector3D{}
	s.Velocity = physics.Vector3D{}
	s.Orientation = physics.IdentityOrientation()
	s.Active = true
	return s.TakeBullets()
}

// Stop zeroes the velocity
func (s *Ship) Stop() {
	s.Velocity = physics.Vector3D{}
}

// ResetOrientation restores the rest orientation
func (s *Ship) ResetOrientation() {
	s.Orientation = physics.IdentityOrientation()
}

// AddBullet records ownership of a live bullet
func (s *Ship) AddBullet(id ID) {
	s.Bullets = append(s.Bullets, id)
}

// RemoveBullet drops ownership of a bullet; unknown IDs are ignored
func (s *Ship) RemoveBullet(id ID) bool {
	i := slices.Index(s.Bullets, id)
	if i < 0 {
		return false
	}
	s.Bullets = slices.Delete(s.Bullets, i, i+1)
	return true
}

// TakeBullets returns every owned bullet ID and clears the list
func (s *Ship) TakeBullets() []ID {
	owned := s.Bullets
	s.Bullets = nil
	return owned
}

// Render draws the ship
func (s *Ship) Render(r Renderer) {
	r.RenderShip(s)
}
