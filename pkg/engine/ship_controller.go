package engine

import (
	"github.com/opd-ai/go-asteroids/pkg/collision"
	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// ShipController owns the player's ship: its orientation, velocity, firing
// and death state
type ShipController struct {
	ship     *entity.Ship
	cfg      config.ShipConfig
	input    config.InputConfig
	bullets  *BulletManager
	bullet   config.BulletConfig
	registry *collision.Registry
	bus      *event.Bus
}

// NewShipController creates the session's single ship and registers it for
// collision detection
func NewShipController(cfg *config.GameConfig, ids *entity.IDGenerator, bullets *BulletManager,
	registry *collision.Registry, bus *event.Bus) *ShipController {
	sc := &ShipController{
		ship: entity.NewShip(ids.Next(), entity.ShipStats{
			MaxSpeed:     cfg.Ship.MaxSpeed,
			Acceleration: cfg.Ship.Acceleration,
			Size:         cfg.Ship.Size,
			Radius:       cfg.Ship.CollisionRadius,
		}),
		cfg:      cfg.Ship,
		input:    cfg.Input,
		bullets:  bullets,
		bullet:   cfg.Bullet,
		registry: registry,
		bus:      bus,
	}
	registry.SetResolver(entity.KindShip, sc)
	registry.RegisterEntity(sc.ship)

	bullets.OnRemoved(func(b *entity.Bullet) {
		if b.OwnerID == sc.ship.ID {
			sc.ship.RemoveBullet(b.ID)
		}
	})

	publish(bus, event.NewEntityEvent(event.EntitySpawned, sc, sc.ship))
	return sc
}

// Ship returns the controlled ship
func (sc *ShipController) Ship() *entity.Ship {
	return sc.ship
}

// Rotate applies a relative orientation change. Deltas are raw pointer
// units scaled by the rotation rate; pitch is negated unless the mouse is
// inverted.
func (sc *ShipController) Rotate(deltaHeading, deltaPitch float64) {
	pitchSign := 1.0
	if !sc.input.InvertedMouse {
		pitchSign = -1
	}
	sc.ship.Rotate(deltaHeading*sc.input.RotationRate, pitchSign*deltaPitch*sc.input.RotationRate, 0)
}

// Accelerate thrusts along the facing vector for dt seconds
func (sc *ShipController) Accelerate(deltaTime float64) {
	sc.ship.Accelerate(deltaTime)
}

// Integrate moves the ship by its velocity
func (sc *ShipController) Integrate(deltaTime float64) {
	sc.ship.Update(deltaTime)
}

// Fire launches a bullet from just ahead of the hull, inheriting the ship's
// velocity. It is a no-op while the ship is dead.
func (sc *ShipController) Fire(now float64) (entity.ID, bool) {
	if !sc.ship.IsAlive() {
		return 0, false
	}
	facing := sc.ship.Facing()
	position := sc.ship.Muzzle(sc.cfg.MuzzleEpsilon)
	velocity := sc.ship.Velocity.Add(facing.Scale(sc.bullet.Speed))

	id := sc.bullets.Spawn(sc.ship.ID, position, velocity, now)
	sc.ship.AddBullet(id)
	publish(sc.bus, event.NewEntityEvent(event.ShotFired, sc, sc.ship))
	return id, true
}

// OnCollideWithAsteroid kills the ship. It reports whether this call
// caused the death so the caller can raise the destroyed signal once.
func (sc *ShipController) OnCollideWithAsteroid() bool {
	if !sc.ship.Kill() {
		return false
	}
	sc.registry.Unregister(sc.ship.ID)
	publish(sc.bus, event.NewEntityEvent(event.ShipDestroyed, sc, sc.ship))
	return true
}

// Reset returns the ship to the origin alive and force-removes every bullet
// it owns
func (sc *ShipController) Reset() {
	for _, id := range sc.ship.Reset() {
		sc.bullets.Remove(id)
	}
	if !sc.registry.Contains(sc.ship.ID) {
		sc.registry.RegisterEntity(sc.ship)
	}
}

// Stop zeroes the ship's velocity
func (sc *ShipController) Stop() {
	sc.ship.Stop()
}

// ResetOrientation restores the ship's rest orientation
func (sc *ShipController) ResetOrientation() {
	sc.ship.ResetOrientation()
}

// Locate implements collision.Resolver. A dead ship has no collider.
func (sc *ShipController) Locate(id entity.ID) (physics.Vector3D, bool) {
	if id != sc.ship.ID || !sc.ship.IsAlive() {
		return physics.Vector3D{}, false
	}
	return sc.ship.Position, true
}
