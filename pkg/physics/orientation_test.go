package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVectorNear(t *testing.T, want, got Vector3D) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-9, "z")
}

func TestOrientation_Identity(t *testing.T) {
	for name, o := range map[string]Orientation{
		"constructor": IdentityOrientation(),
		"zero_value":  {},
	} {
		t.Run(name, func(t *testing.T) {
			assertVectorNear(t, UnitZ, o.Forward())
			assertVectorNear(t, UnitY, o.Up())
			assertVectorNear(t, UnitX, o.Right())
		})
	}
}

func TestOrientation_Rotate(t *testing.T) {
	tests := []struct {
		name    string
		heading float64
		pitch   float64
		forward Vector3D
	}{
		{"heading_90_turns_toward_x", 90, 0, UnitX},
		{"heading_180_reverses", 180, 0, Vector3D{Z: -1}},
		{"pitch_90_raises_nose", 0, 90, UnitY},
		{"heading_360_wraps", 360, 0, UnitZ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := IdentityOrientation().Rotate(tt.heading, tt.pitch, 0)
			assertVectorNear(t, tt.forward, o.Forward())
		})
	}
}

func TestOrientation_RotateIsRelative(t *testing.T) {
	// After pitching up, a heading change spins about the body's own up
	// axis, which now points backwards along -Z.
	o := IdentityOrientation().Rotate(0, 90, 0).Rotate(90, 0, 0)
	assertVectorNear(t, UnitX, o.Forward())
	assertVectorNear(t, Vector3D{Z: -1}, o.Up())
}

func TestOrientation_ForwardStaysUnit(t *testing.T) {
	o := IdentityOrientation()
	for i := 0; i < 1000; i++ {
		o = o.Rotate(7.3, -3.1, 1.7)
	}
	assert.InDelta(t, 1, o.Forward().Length(), 1e-9)
}

func TestOrientation_ApproxEqual(t *testing.T) {
	a := IdentityOrientation().Rotate(30, 0, 0)
	b := IdentityOrientation().Rotate(15, 0, 0).Rotate(15, 0, 0)
	assert.True(t, a.ApproxEqual(b))
	assert.False(t, a.ApproxEqual(IdentityOrientation()))
}
