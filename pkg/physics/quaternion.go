// pkg/physics/quaternion.go
package physics

import engomath "github.com/EngoEngine/math"

// Quat is a rotation quaternion (x, y, z, w).
type Quat struct {
	X float32
	Y float32
	Z float32
	W float32
}

// Euler holds per-axis angular rates in radians per tick.
type Euler struct {
	Yaw   float32
	Pitch float32
	Roll  float32
}

// Identity returns the identity quaternion.
func Identity() Quat {
	return Quat{W: 1}
}

// NormSquared returns the squared norm of the quaternion.
func (q Quat) NormSquared() float32 {
	return q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
}

// Normalize renormalizes q if its squared norm deviates from 1 by more
// than SqrtTolerance. A degenerate (near zero) norm collapses to the
// identity quaternion.
func (q Quat) Normalize() Quat {
	sq := q.NormSquared()
	if engomath.Abs(sq-1) <= SqrtTolerance {
		return q
	}
	if sq <= SqrtTolerance {
		return Identity()
	}
	inv := InvSqrt(sq)
	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Mul returns the Hamilton product q ⊗ d (current orientation first,
// delta rotation second).
func (q Quat) Mul(d Quat) Quat {
	return Quat{
		X: q.W*d.X + q.X*d.W + q.Y*d.Z - q.Z*d.Y,
		Y: q.W*d.Y + q.Y*d.W + q.Z*d.X - q.X*d.Z,
		Z: q.W*d.Z + q.Z*d.W + q.X*d.Y - q.Y*d.X,
		W: q.W*d.W - q.X*d.X - q.Y*d.Y - q.Z*d.Z,
	}
}

// DeltaQuat builds the incremental rotation for one tick from per-axis
// angular rates scaled by the time modifier dt. Yaw, roll and pitch
// contribute through the half-angle triple composition, and the result is
// renormalized (or replaced by identity when degenerate).
func DeltaQuat(rot Euler, dt float32) Quat {
	s1 := engomath.Sin(rot.Yaw * 0.5 * dt)
	s2 := engomath.Sin(rot.Roll * 0.5 * dt)
	s3 := engomath.Sin(rot.Pitch * 0.5 * dt)
	c1 := engomath.Cos(rot.Yaw * 0.5 * dt)
	c2 := engomath.Cos(rot.Roll * 0.5 * dt)
	c3 := engomath.Cos(rot.Pitch * 0.5 * dt)
	d := Quat{
		X: s1*s2*c3 + c1*c2*s3,
		Y: s1*c2*c3 + c1*s2*s3,
		Z: c1*s2*c3 - s1*c2*s3,
		W: c1*c2*c3 - s1*s2*s3,
	}
	return d.Normalize()
}

// Forward returns the local z axis rotated into world space. A projectile
// fired "straight ahead" travels along this vector.
func (q Quat) Forward() Vec3 {
	return Vec3{
		X: 2*q.X*q.Z - 2*q.Y*q.W,
		Y: 2*q.Y*q.Z + 2*q.X*q.W,
		Z: 1 - 2*q.X*q.X - 2*q.Y*q.Y,
	}
}

// Mat4 is a 4x4 matrix in column-major array order, holding the
// transposed rotation derived from a quaternion plus a translation
// component. Layout:
//
//	| x(x) y(x) z(x) tx |
//	| x(y) y(y) z(y) ty |
//	| x(z) y(z) z(z) tz |
//	|  0    0    0    1 |
//
// where x(), y(), z() are the local axis directions.
type Mat4 [16]float32
