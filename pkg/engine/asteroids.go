package engine

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/opd-ai/go-asteroids/pkg/collision"
	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// AsteroidField exclusively owns every live asteroid and applies the
// splitting rule when one is hit
type AsteroidField struct {
	cfg       config.AsteroidConfig
	asteroids map[entity.ID]*entity.Asteroid
	ids       *entity.IDGenerator
	registry  *collision.Registry
	bus       *event.Bus
	rng       *rand.Rand
}

// NewAsteroidField creates an empty field and registers it as the
// collision resolver for asteroids
func NewAsteroidField(cfg config.AsteroidConfig, ids *entity.IDGenerator, registry *collision.Registry,
	bus *event.Bus, rng *rand.Rand) *AsteroidField {
	f := &AsteroidField{
		cfg:       cfg,
		asteroids: make(map[entity.ID]*entity.Asteroid),
		ids:       ids,
		registry:  registry,
		bus:       bus,
		rng:       rng,
	}
	registry.SetResolver(entity.KindAsteroid, f)
	return f
}

// SpawnInitial places count full-size asteroids. Each coordinate is a
// random sign times a whole-number magnitude in [SpawnMin, SpawnMax).
func (f *AsteroidField) SpawnInitial(count int) []entity.ID {
	ids := make([]entity.ID, 0, count)
	for i := 0; i < count; i++ {
		pos := physics.Vector3D{
			X: f.spawnCoordinate(),
			Y: f.spawnCoordinate(),
			Z: f.spawnCoordinate(),
		}
		a := f.add(pos, f.cfg.DefaultSize)
		ids = append(ids, a.ID)
	}
	return ids
}

// Tick drifts every live asteroid
func (f *AsteroidField) Tick(deltaTime float64) {
	for _, a := range f.asteroids {
		a.Update(deltaTime)
	}
}

// SplitOnHit destroys the asteroid and returns its fragments: none for a
// size 1 asteroid, otherwise Multiply children one size smaller scattered
// around the parent's last position. Unknown IDs yield nil.
func (f *AsteroidField) SplitOnHit(id entity.ID) []*entity.Asteroid {
	parent, ok := f.asteroids[id]
	if !ok {
		return nil
	}

	children := make([]*entity.Asteroid, 0)
	if parent.CanSplit() {
		childSize := parent.Size - 1
		for i := 0; i < f.cfg.Multiply; i++ {
			offset := f.splitOffset().Scale(float64(parent.Size) / 2)
			children = append(children, f.add(parent.Position.Add(offset), childSize))
		}
	}

	f.Remove(id)

	if len(children) > 0 {
		fragments := make([]entity.ID, len(children))
		for i, c := range children {
			fragments[i] = c.ID
		}
		publish(f.bus, event.NewSplitEvent(f, parent, fragments))
	}
	return children
}

// Remove takes an asteroid out of the field. Removing an asteroid twice has
// the same effect as removing it once.
func (f *AsteroidField) Remove(id entity.ID) bool {
	a, ok := f.asteroids[id]
	if !ok {
		return false
	}
	delete(f.asteroids, id)
	f.registry.Unregister(id)
	a.Active = false
	publish(f.bus, event.NewEntityEvent(event.EntityRemoved, f, a))
	return true
}

// Clear removes every asteroid
func (f *AsteroidField) Clear() {
	for _, a := range f.Asteroids() {
		f.Remove(a.ID)
	}
}

// Get returns a live asteroid
func (f *AsteroidField) Get(id entity.ID) (*entity.Asteroid, bool) {
	a, ok := f.asteroids[id]
	return a, ok
}

// Locate implements collision.Resolver
func (f *AsteroidField) Locate(id entity.ID) (physics.Vector3D, bool) {
	a, ok := f.asteroids[id]
	if !ok {
		return physics.Vector3D{}, false
	}
	return a.Position, true
}

// Len returns the number of live asteroids
func (f *AsteroidField) Len() int {
	return len(f.asteroids)
}

// Asteroids returns the live asteroids ordered by ID
func (f *AsteroidField) Asteroids() []*entity.Asteroid {
	out := make([]*entity.Asteroid, 0, len(f.asteroids))
	for _, a := range f.asteroids {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b *entity.Asteroid) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// add creates and registers a new asteroid
func (f *AsteroidField) add(position physics.Vector3D, size int) *entity.Asteroid {
	a := entity.NewAsteroid(f.ids.Next(), position, f.randomVelocity(), size)
	if f.cfg.SpinPeriod > 0 {
		a.SpinRate = 360 / f.cfg.SpinPeriod
	}
	f.asteroids[a.ID] = a
	f.registry.RegisterEntity(a)
	publish(f.bus, event.NewEntityEvent(event.EntitySpawned, f, a))
	return a
}

func (f *AsteroidField) spawnCoordinate() float64 {
	sign := 1.0
	if f.rng.IntN(2) == 0 {
		sign = -1
	}
	magnitude := f.cfg.SpawnMin
	if span := int(f.cfg.SpawnMax - f.cfg.SpawnMin); span > 0 {
		magnitude += float64(f.rng.IntN(span))
	}
	return sign * magnitude
}

// randomVelocity draws each component from [-1, 1) and scales by Speed.
// With NormalizeVelocity the direction is rescaled to unit length first.
func (f *AsteroidField) randomVelocity() physics.Vector3D {
	dir := f.symmetric()
	if f.cfg.NormalizeVelocity {
		for dir.IsZero() {
			dir = f.symmetric()
		}
		dir = dir.Normalize()
	}
	return dir.Scale(f.cfg.Speed)
}

// splitOffset returns a random offset in the unit cube around the origin
func (f *AsteroidField) splitOffset() physics.Vector3D {
	return f.symmetric()
}

func (f *AsteroidField) symmetric() physics.Vector3D {
	return physics.Vector3D{
		X: f.rng.Float64()*2 - 1,
		Y: f.rng.Float64()*2 - 1,
		Z: f.rng.Float64()*2 - 1,
	}
}
