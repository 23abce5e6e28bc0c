package engine

import (
	"cmp"
	"context"
	"slices"

	"github.com/opd-ai/go-asteroids/pkg/clock"
	"github.com/opd-ai/go-asteroids/pkg/collision"
	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// BulletManager exclusively owns every live bullet. Each bullet carries a
// scheduled expiry; whichever of expiry or collision happens first removes
// it and the other becomes a no-op.
type BulletManager struct {
	cfg       config.BulletConfig
	bullets   map[entity.ID]*entity.Bullet
	expiry    map[entity.ID]clock.Token
	ids       *entity.IDGenerator
	scheduler *clock.Scheduler
	registry  *collision.Registry
	bus       *event.Bus
	metrics   *Metrics
	onRemoved func(b *entity.Bullet)
}

// NewBulletManager creates an empty bullet manager and registers it as the
// collision resolver for bullets
func NewBulletManager(cfg config.BulletConfig, ids *entity.IDGenerator, scheduler *clock.Scheduler,
	registry *collision.Registry, bus *event.Bus, metrics *Metrics) *BulletManager {
	bm := &BulletManager{
		cfg:       cfg,
		bullets:   make(map[entity.ID]*entity.Bullet),
		expiry:    make(map[entity.ID]clock.Token),
		ids:       ids,
		scheduler: scheduler,
		registry:  registry,
		bus:       bus,
		metrics:   metrics,
	}
	registry.SetResolver(entity.KindBullet, bm)
	return bm
}

// OnRemoved installs a hook run after any bullet leaves the simulation
func (bm *BulletManager) OnRemoved(fn func(b *entity.Bullet)) {
	bm.onRemoved = fn
}

// Spawn creates a bullet that expires TravelTime seconds after now
func (bm *BulletManager) Spawn(owner entity.ID, position, velocity physics.Vector3D, now float64) entity.ID {
	b := entity.NewBullet(bm.ids.Next(), owner, position, velocity, bm.cfg.Radius, now, bm.cfg.TravelTime)
	bm.bullets[b.ID] = b
	bm.registry.RegisterEntity(b)

	id := b.ID
	bm.expiry[id] = bm.scheduler.Schedule(b.ExpiresAt(), func() {
		bm.Expire(id)
	})

	publish(bm.bus, event.NewEntityEvent(event.EntitySpawned, bm, b))
	return id
}

// Tick moves every live bullet in a straight line
func (bm *BulletManager) Tick(deltaTime float64) {
	for _, b := range bm.bullets {
		b.Update(deltaTime)
	}
}

// Expire removes a bullet whose lifetime elapsed. It reports false if the
// bullet was already gone.
func (bm *BulletManager) Expire(id entity.ID) bool {
	if !bm.remove(id) {
		return false
	}
	bm.metrics.bulletExpired(context.Background())
	return true
}

// RemoveOnCollision removes a bullet that hit something and cancels its
// pending expiry
func (bm *BulletManager) RemoveOnCollision(id entity.ID) bool {
	return bm.remove(id)
}

// Remove removes a bullet for any reason. Removing a bullet twice has the
// same effect as removing it once.
func (bm *BulletManager) Remove(id entity.ID) bool {
	return bm.remove(id)
}

func (bm *BulletManager) remove(id entity.ID) bool {
	b, ok := bm.bullets[id]
	if !ok {
		return false
	}
	delete(bm.bullets, id)
	if token, ok := bm.expiry[id]; ok {
		bm.scheduler.Cancel(token)
		delete(bm.expiry, id)
	}
	bm.registry.Unregister(id)
	b.Active = false

	if bm.onRemoved != nil {
		bm.onRemoved(b)
	}
	publish(bm.bus, event.NewEntityEvent(event.EntityRemoved, bm, b))
	return true
}

// Clear removes every bullet
func (bm *BulletManager) Clear() {
	for _, b := range bm.Bullets() {
		bm.remove(b.ID)
	}
}

// Get returns a live bullet
func (bm *BulletManager) Get(id entity.ID) (*entity.Bullet, bool) {
	b, ok := bm.bullets[id]
	return b, ok
}

// Locate implements collision.Resolver
func (bm *BulletManager) Locate(id entity.ID) (physics.Vector3D, bool) {
	b, ok := bm.bullets[id]
	if !ok {
		return physics.Vector3D{}, false
	}
	return b.Position, true
}

// Len returns the number of live bullets
func (bm *BulletManager) Len() int {
	return len(bm.bullets)
}

// Bullets returns the live bullets ordered by ID
func (bm *BulletManager) Bullets() []*entity.Bullet {
	out := make([]*entity.Bullet, 0, len(bm.bullets))
	for _, b := range bm.bullets {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b *entity.Bullet) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// publish sends ev when a bus is attached
func publish(bus *event.Bus, ev event.Event) {
	if bus != nil {
		bus.Publish(ev)
	}
}
