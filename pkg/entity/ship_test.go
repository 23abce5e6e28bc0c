// pkg/entity/ship_test.go
package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

func testStats() ShipStats {
	return ShipStats{MaxSpeed: 10, Acceleration: 5, Size: 1.5, Radius: 1}
}

func TestNewShip(t *testing.T) {
	s := NewShip(1, testStats())

	assert.True(t, s.IsAlive())
	assert.Equal(t, KindShip, s.GetKind())
	assert.Equal(t, physics.Vector3D{}, s.Position)
	assert.InDelta(t, 1, s.Facing().Z, 1e-9)
	assert.Equal(t, 1.0, s.GetCollider().Radius)
}

func TestShip_AccelerateNeverExceedsMaxSpeed(t *testing.T) {
	s := NewShip(1, testStats())

	steps := []struct {
		heading, pitch, dt float64
	}{
		{0, 0, 1}, {0, 0, 1}, {45, 0, 0.5}, {0, 30, 3}, {90, -10, 0.016}, {0, 0, 10},
	}
	for _, step := range steps {
		s.Rotate(step.heading, step.pitch, 0)
		s.Accelerate(step.dt)
		assert.LessOrEqual(t, s.Speed(), s.Stats.MaxSpeed)
	}
	assert.InDelta(t, s.Stats.MaxSpeed, s.Speed(), 1e-9)
}

func TestShip_DeadShipIsInert(t *testing.T) {
	s := NewShip(1, testStats())
	s.Velocity = physics.Vector3D{Z: 2}

	require.True(t, s.Kill())
	assert.False(t, s.Kill(), "second kill is a no-op")

	s.Accelerate(1)
	s.Update(1)
	assert.Equal(t, physics.Vector3D{Z: 2}, s.Velocity)
	assert.Equal(t, physics.Vector3D{}, s.Position)
}

func TestShip_Muzzle(t *testing.T) {
	s := NewShip(1, testStats())
	s.Position = physics.Vector3D{X: 1}

	m := s.Muzzle(0.05)
	assert.InDelta(t, 1, m.X, 1e-9)
	assert.InDelta(t, 1.55, m.Z, 1e-9)
}

func TestShip_BulletOwnership(t *testing.T) {
	s := NewShip(1, testStats())
	s.AddBullet(10)
	s.AddBullet(11)
	s.AddBullet(12)

	assert.True(t, s.RemoveBullet(11))
	assert.False(t, s.RemoveBullet(11))
	assert.Equal(t, []ID{10, 12}, s.Bullets)

	assert.Equal(t, []ID{10, 12}, s.TakeBullets())
	assert.Empty(t, s.Bullets)
}

func TestShip_Reset(t *testing.T) {
	s := NewShip(1, testStats())
	s.Rotate(30, 20, 10)
	s.Accelerate(1)
	s.Update(1)
	s.AddBullet(5)
	s.Kill()

	owned := s.Reset()

	assert.Equal(t, []ID{5}, owned)
	assert.True(t, s.IsAlive())
	assert.Equal(t, physics.Vector3D{}, s.Position)
	assert.Equal(t, physics.Vector3D{}, s.Velocity)
	assert.True(t, s.Orientation.ApproxEqual(physics.IdentityOrientation()))
	assert.Empty(t, s.Bullets)
}

func TestShip_DebugControls(t *testing.T) {
	s := NewShip(1, testStats())
	s.Rotate(90, 0, 0)
	s.Accelerate(1)

	s.Stop()
	assert.Equal(t, physics.Vector3D{}, s.Velocity)

	s.ResetOrientation()
	assert.InDelta(t, 1, s.Facing().Z, 1e-9)
}
