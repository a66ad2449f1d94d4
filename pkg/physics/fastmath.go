// pkg/physics/fastmath.go
package physics

import "math"

// SqrtTolerance is the allowed deviation of a squared norm from 1 before
// renormalization pays off. Inside this band InvSqrt noise would exceed
// the drift being corrected.
const SqrtTolerance = 0.001

// newtonScale trims the residual bias left by a single Newton step from
// the 0x5f375a87 seed.
const newtonScale = 1.000876311302185

// InvSqrt computes 1/sqrt(x) with the bit-twiddled initial guess and a
// single bias-corrected Newton step. Relative error stays under 0.2%,
// which the collision and normalization paths tolerate. x must be
// positive.
func InvSqrt(x float32) float32 {
	half := 0.5 * x
	i := math.Float32bits(x)
	i = 0x5f375a87 - i>>1
	y := math.Float32frombits(i)
	return y * (1.5 - half*y*y) * newtonScale
}
