// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector3D represents a 3D vector with x, y and z components
type Vector3D struct {
	X float64
	Y float64
	Z float64
}

// Axis unit vectors. +Y is up and a ship at zero orientation faces +Z.
var (
	UnitX = Vector3D{X: 1}
	UnitY = Vector3D{Y: 1}
	UnitZ = Vector3D{Z: 1}
)

// Add returns the sum of two vectors
func (v Vector3D) Add(other Vector3D) Vector3D {
	return Vector3D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (v Vector3D) Sub(other Vector3D) Vector3D {
	return Vector3D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector3D) Scale(factor float64) Vector3D {
	return Vector3D{
		X: v.X * factor,
		Y: v.Y * factor,
		Z: v.Z * factor,
	}
}

// Length returns the magnitude of the vector
func (v Vector3D) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector3D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vector3D) Normalize() Vector3D {
	length := v.Length()
	if length == 0 {
		return Vector3D{}
	}
	return v.Scale(1 / length)
}

// Distance returns the distance between two vectors
func (v Vector3D) Distance(other Vector3D) float64 {
	return v.Sub(other).Length()
}

// DistanceSquared returns the squared distance between two vectors
func (v Vector3D) DistanceSquared(other Vector3D) float64 {
	return v.Sub(other).LengthSquared()
}

// Dot returns the dot product of two vectors
func (v Vector3D) Dot(other Vector3D) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product v × other
func (v Vector3D) Cross(other Vector3D) Vector3D {
	return FromVec3(v.Vec3().Cross(other.Vec3()))
}

// ClampLength rescales v so its magnitude does not exceed max.
// Direction is preserved; components are never clamped individually. The
// result's Length is never above max, rounding included.
func (v Vector3D) ClampLength(max float64) Vector3D {
	if max <= 0 {
		return Vector3D{}
	}
	length := v.Length()
	if length <= max {
		return v
	}
	for target := max; ; target = math.Nextafter(target, 0) {
		if c := v.Scale(target / length); c.Length() <= max {
			return c
		}
	}
}

// IsZero reports whether every component is zero
func (v Vector3D) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Vec3 converts to the mathgl representation
func (v Vector3D) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// FromVec3 converts from the mathgl representation
func FromVec3(v mgl64.Vec3) Vector3D {
	return Vector3D{X: v.X(), Y: v.Y(), Z: v.Z()}
}
