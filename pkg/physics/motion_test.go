package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovementState_AccelerateCapsSpeed(t *testing.T) {
	state := &MovementState{Facing: IdentityOrientation(), Thrust: 5, MaxSpeed: 10}

	for i := 0; i < 100; i++ {
		state.Accelerate(0.25)
		assert.LessOrEqual(t, state.Speed(), 10.0)
	}
	assert.InDelta(t, 10, state.Velocity.Z, 1e-9)
}

func TestMovementState_AcceleratePreservesDirection(t *testing.T) {
	state := &MovementState{
		Velocity: Vector3D{X: 8, Z: 0},
		Facing:   IdentityOrientation(),
		Thrust:   5,
		MaxSpeed: 10,
	}
	state.Accelerate(2) // adds (0,0,10), raw velocity (8,0,10)

	assert.InDelta(t, 10, state.Speed(), 1e-9)
	assert.InDelta(t, 0.8, state.Velocity.X/state.Velocity.Z, 1e-9)
}

func TestMovementState_Integrate(t *testing.T) {
	state := &MovementState{Position: Vector3D{X: 1}, Velocity: Vector3D{Y: 2, Z: -4}}
	state.Integrate(0.5)
	assert.Equal(t, Vector3D{X: 1, Y: 1, Z: -2}, state.Position)

	state.Integrate(0)
	assert.Equal(t, Vector3D{X: 1, Y: 1, Z: -2}, state.Position)
}
