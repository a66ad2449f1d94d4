// pkg/physics/vector.go
package physics

import engomath "github.com/EngoEngine/math"

// Vec3 represents a 3D vector with x, y and z components
type Vec3 struct {
	X float32
	Y float32
	Z float32
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vec3) Scale(factor float32) Vec3 {
	return Vec3{
		X: v.X * factor,
		Y: v.Y * factor,
		Z: v.Z * factor,
	}
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float32 {
	return engomath.Sqrt(v.LengthSquared())
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	sq := v.LengthSquared()
	if sq == 0 {
		return Vec3{}
	}
	return v.Scale(InvSqrt(sq))
}

// DistanceSquared returns the squared distance between two points.
// Combined with InvSqrt this is the collision-radius test used on the
// hot path: InvSqrt(d²) > 1/r instead of sqrt(d²) < r.
func (v Vec3) DistanceSquared(other Vec3) float32 {
	return v.Sub(other).LengthSquared()
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}
