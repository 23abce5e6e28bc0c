package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Local-frame axes used for relative rotation. Positive pitch raises the nose.
var (
	headingAxis = mgl64.Vec3{0, 1, 0}
	pitchAxis   = mgl64.Vec3{-1, 0, 0}
	rollAxis    = mgl64.Vec3{0, 0, 1}
)

// Orientation is a unit quaternion describing how a body is rotated
// away from its rest frame (facing +Z, up +Y).
type Orientation struct {
	q mgl64.Quat
}

// IdentityOrientation returns the rest orientation.
func IdentityOrientation() Orientation {
	return Orientation{q: mgl64.QuatIdent()}
}

// quat returns the quaternion, treating the zero value as identity.
func (o Orientation) quat() mgl64.Quat {
	if o.q.W == 0 && o.q.V.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return o.q
}

// Rotate applies a relative rotation in the body's own frame. Angles are in
// degrees and are not clamped, so repeated rotation wraps naturally.
func (o Orientation) Rotate(heading, pitch, roll float64) Orientation {
	q := o.quat()
	if heading != 0 {
		q = q.Mul(mgl64.QuatRotate(mgl64.DegToRad(heading), headingAxis))
	}
	if pitch != 0 {
		q = q.Mul(mgl64.QuatRotate(mgl64.DegToRad(pitch), pitchAxis))
	}
	if roll != 0 {
		q = q.Mul(mgl64.QuatRotate(mgl64.DegToRad(roll), rollAxis))
	}
	return Orientation{q: q.Normalize()}
}

// Forward returns the unit facing vector.
func (o Orientation) Forward() Vector3D {
	return FromVec3(o.quat().Rotate(mgl64.Vec3{0, 0, 1}))
}

// Up returns the unit up vector.
func (o Orientation) Up() Vector3D {
	return FromVec3(o.quat().Rotate(mgl64.Vec3{0, 1, 0}))
}

// Right returns the unit right vector.
func (o Orientation) Right() Vector3D {
	return FromVec3(o.quat().Rotate(mgl64.Vec3{1, 0, 0}))
}

// Quat exposes the underlying quaternion for renderers.
func (o Orientation) Quat() mgl64.Quat {
	return o.quat()
}

// ApproxEqual compares two orientations as rotations.
func (o Orientation) ApproxEqual(other Orientation) bool {
	return o.quat().OrientationEqual(other.quat())
}
