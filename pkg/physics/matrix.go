// pkg/physics/matrix.go
package physics

// Basis derives the transposed 3x3 rotation from the quaternion, stored
// in a Mat4 with the translation left as identity. The matrix doubles as
// the actor's local axis frame for thrust calculations and as the
// modelview rotation when rendering.
func (q Quat) Basis() Mat4 {
	var m Mat4
	m[0] = 1 - 2*q.Y*q.Y - 2*q.Z*q.Z
	m[1] = 2*q.X*q.Y - 2*q.Z*q.W
	m[2] = 2*q.X*q.Z + 2*q.Y*q.W
	m[3] = 0

	m[4] = 2*q.X*q.Y + 2*q.Z*q.W
	m[5] = 1 - 2*q.X*q.X - 2*q.Z*q.Z
	m[6] = 2*q.Y*q.Z - 2*q.X*q.W
	m[7] = 0

	m[8] = 2*q.X*q.Z - 2*q.Y*q.W
	m[9] = 2*q.Y*q.Z + 2*q.X*q.W
	m[10] = 1 - 2*q.X*q.X - 2*q.Y*q.Y
	m[11] = 0

	m[15] = 1
	return m
}

// AxisX returns the local x axis (right/left thrust direction).
func (m Mat4) AxisX() Vec3 { return Vec3{X: m[0], Y: m[4], Z: m[8]} }

// AxisY returns the local y axis (up/down thrust direction).
func (m Mat4) AxisY() Vec3 { return Vec3{X: m[1], Y: m[5], Z: m[9]} }

// AxisZ returns the local z axis (forward/backward thrust direction).
func (m Mat4) AxisZ() Vec3 { return Vec3{X: m[2], Y: m[6], Z: m[10]} }

// Translated returns a copy of m with pos written into the translation
// component, for a model transform.
func (m Mat4) Translated(pos Vec3) Mat4 {
	m[12] = pos.X
	m[13] = pos.Y
	m[14] = pos.Z
	m[15] = 1
	return m
}

// ViewTranslated returns a copy of m with the translation set to the
// position rotated through the basis, the form a camera matrix needs.
func (m Mat4) ViewTranslated(pos Vec3) Mat4 {
	m[12] = m[0]*pos.X + m[4]*pos.Y + m[8]*pos.Z
	m[13] = m[1]*pos.X + m[5]*pos.Y + m[9]*pos.Z
	m[14] = m[2]*pos.X + m[6]*pos.Y + m[10]*pos.Z
	m[15] = 1
	return m
}
