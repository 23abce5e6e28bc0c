package engine

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-asteroids/pkg/collision"
	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

func newTestField(cfg config.AsteroidConfig) (*AsteroidField, *collision.Registry, *recorder) {
	bus := event.NewEventBus()
	registry := collision.NewRegistry()
	f := NewAsteroidField(cfg, entity.NewIDGenerator(), registry, bus, rand.New(rand.NewPCG(3, 4)))
	return f, registry, newRecorder(bus)
}

func TestAsteroidField_SpawnInitial(t *testing.T) {
	cfg := config.DefaultConfig().Asteroid
	f, registry, rec := newTestField(cfg)

	ids := f.SpawnInitial(50)

	require.Len(t, ids, 50)
	assert.Equal(t, 50, f.Len())
	assert.Equal(t, 50, registry.Len())
	assert.Len(t, rec.spawned, 50)

	for _, a := range f.Asteroids() {
		assert.Equal(t, cfg.DefaultSize, a.Size)
		for _, c := range []float64{a.Position.X, a.Position.Y, a.Position.Z} {
			magnitude := math.Abs(c)
			assert.GreaterOrEqual(t, magnitude, cfg.SpawnMin)
			assert.Less(t, magnitude, cfg.SpawnMax)
			assert.Equal(t, math.Trunc(magnitude), magnitude, "whole-number magnitude")
		}
		for _, v := range []float64{a.Velocity.X, a.Velocity.Y, a.Velocity.Z} {
			assert.LessOrEqual(t, math.Abs(v), cfg.Speed)
		}
	}
}

func TestAsteroidField_SpawnUsesBothSigns(t *testing.T) {
	f, _, _ := newTestField(config.DefaultConfig().Asteroid)
	f.SpawnInitial(40)

	var negative, positive int
	for _, a := range f.Asteroids() {
		if a.Position.X < 0 {
			negative++
		} else {
			positive++
		}
	}
	assert.NotZero(t, negative)
	assert.NotZero(t, positive)
}

func TestAsteroidField_NormalizedVelocity(t *testing.T) {
	cfg := config.DefaultConfig().Asteroid
	cfg.NormalizeVelocity = true
	f, _, _ := newTestField(cfg)
	f.SpawnInitial(20)

	for _, a := range f.Asteroids() {
		assert.InDelta(t, cfg.Speed, a.Velocity.Length(), 1e-9)
	}
}

func TestAsteroidField_SplitSizeOne(t *testing.T) {
	f, registry, rec := newTestField(config.DefaultConfig().Asteroid)
	a := f.add(physics.Vector3D{X: 5}, 1)

	children := f.SplitOnHit(a.ID)

	assert.Empty(t, children)
	assert.Zero(t, f.Len())
	assert.False(t, registry.Contains(a.ID))
	assert.False(t, a.IsAlive())
	assert.Empty(t, rec.splits)
	assert.Equal(t, 1, rec.removedCount(a.ID))
}

func TestAsteroidField_SplitProducesSmallerChildren(t *testing.T) {
	for size := 2; size <= 5; size++ {
		for _, multiply := range []int{1, 3, 4} {
			cfg := config.DefaultConfig().Asteroid
			cfg.Multiply = multiply
			f, registry, _ := newTestField(cfg)
			parent := f.add(physics.Vector3D{X: 10, Y: -10, Z: 3}, size)

			children := f.SplitOnHit(parent.ID)

			require.Len(t, children, multiply)
			assert.Equal(t, multiply, f.Len())
			_, ok := f.Get(parent.ID)
			assert.False(t, ok)
			for _, c := range children {
				assert.Equal(t, size-1, c.Size)
				assert.True(t, registry.Contains(c.ID))
				reach := float64(size) / 2
				assert.LessOrEqual(t, math.Abs(c.Position.X-parent.Position.X), reach)
				assert.LessOrEqual(t, math.Abs(c.Position.Y-parent.Position.Y), reach)
				assert.LessOrEqual(t, math.Abs(c.Position.Z-parent.Position.Z), reach)
				assert.LessOrEqual(t, c.Velocity.X, cfg.Speed)
			}
		}
	}
}

func TestAsteroidField_SplitLineageTerminates(t *testing.T) {
	cfg := config.DefaultConfig().Asteroid
	f, _, rec := newTestField(cfg)
	root := f.add(physics.Vector3D{}, 3)

	destroyed := 0
	queue := []*entity.Asteroid{root}
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		children := f.SplitOnHit(a.ID)
		destroyed++
		for _, c := range children {
			assert.Less(t, c.Size, a.Size)
		}
		queue = append(queue, children...)
	}

	// 1 + 3 + 9 rocks for a size 3 root that splits in three
	assert.Equal(t, 13, destroyed)
	assert.Zero(t, f.Len())
	assert.Len(t, rec.splits, 4)
}

func TestAsteroidField_RemoveIsIdempotent(t *testing.T) {
	f, _, rec := newTestField(config.DefaultConfig().Asteroid)
	a := f.add(physics.Vector3D{}, 2)
	f.add(physics.Vector3D{X: 50}, 2)

	assert.True(t, f.Remove(a.ID))
	assert.False(t, f.Remove(a.ID))
	assert.Nil(t, f.SplitOnHit(a.ID))

	assert.Equal(t, 1, f.Len())
	assert.Equal(t, 1, rec.removedCount(a.ID))
}

func TestAsteroidField_TickAndLocate(t *testing.T) {
	cfg := config.DefaultConfig().Asteroid
	f, _, _ := newTestField(cfg)
	a := f.add(physics.Vector3D{}, 2)
	a.Velocity = physics.Vector3D{X: 1, Y: 2, Z: 3}

	f.Tick(2)

	p, ok := f.Locate(a.ID)
	require.True(t, ok)
	assert.Equal(t, physics.Vector3D{X: 2, Y: 4, Z: 6}, p)
	assert.InDelta(t, 36, a.Spin, 1e-9, "360 degrees per 20 s spin period")

	_, ok = f.Locate(12345)
	assert.False(t, ok)
}

func TestAsteroidField_Clear(t *testing.T) {
	f, registry, _ := newTestField(config.DefaultConfig().Asteroid)
	f.SpawnInitial(5)

	f.Clear()

	assert.Zero(t, f.Len())
	assert.Zero(t, registry.Len())
}
