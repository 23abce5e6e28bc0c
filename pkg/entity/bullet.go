package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Bullet is a projectile travelling in a straight line until it hits an
// asteroid or its lifetime runs out
type Bullet struct {
	BaseEntity
	OwnerID   ID
	SpawnTime float64 // session clock seconds
	Lifetime  float64
}

// NewBullet creates a live bullet
func NewBullet(id, owner ID, position, velocity physics.Vector3D, radius, spawnTime, lifetime float64) *Bullet {
	return &Bullet{
		BaseEntity: BaseEntity{
			ID:       id,
			Kind:     KindBullet,
			Position: position,
			Velocity: velocity,
			Radius:   radius,
			Active:   true,
		},
		OwnerID:   owner,
		SpawnTime: spawnTime,
		Lifetime:  lifetime,
	}
}

// ExpiresAt returns the session time at which the bullet times out
func (b *Bullet) ExpiresAt() float64 {
	return b.SpawnTime + b.Lifetime
}

// Render draws the bullet
func (b *Bullet) Render(r Renderer) {
	r.RenderBullet(b)
}
