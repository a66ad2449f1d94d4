// pkg/entity/actor.go
package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Mass values double as discrete size tiers for asteroids.
const (
	MassSmall  float32 = 1
	MassMedium float32 = 5
	MassLarge  float32 = 10
)

// WrapInset keeps a wrapped coordinate just inside the opposite face so
// the same tick does not re-trigger the wrap test.
const WrapInset = 0.001

// MassTier is the discrete size class of an asteroid.
type MassTier int

const (
	TierSmall MassTier = iota
	TierMedium
	TierLarge
)

// TierOf maps a float mass onto its tier. Boundaries sit at the midpoints
// between tier masses so accumulated float error cannot flip a tier.
func TierOf(mass float32) MassTier {
	switch {
	case mass > (MassLarge+MassMedium)/2:
		return TierLarge
	case mass > (MassSmall+MassMedium)/2:
		return TierMedium
	default:
		return TierSmall
	}
}

// Actor is a simulated rigid body. Spawned is the pool-membership flag;
// slot index carries no meaning once an actor despawns.
//
// Rot holds the per-tick angular rate. For the camera-controlled player
// it is consumed and zeroed after each application; free-flying actors
// keep theirs and tumble continuously.
type Actor struct {
	Spawned     bool
	Mass        float32
	Pos         physics.Vec3
	Vel         physics.Vec3
	Orientation physics.Quat
	Rot         physics.Euler
}

// NewActor returns an unspawned actor at rest with identity orientation.
func NewActor() Actor {
	return Actor{Orientation: physics.Identity()}
}

// Reset returns the actor to the origin at rest, spawned, facing identity.
func (a *Actor) Reset() {
	*a = NewActor()
	a.Spawned = true
}

// IntegrateOrientation composes one tick's angular rate into the
// orientation: build the delta quaternion from Rot scaled by dt, multiply
// old ⊗ delta, renormalize, and return the resulting transposed rotation
// basis for thrust and rendering.
func (a *Actor) IntegrateOrientation(dt float32) physics.Mat4 {
	delta := physics.DeltaQuat(a.Rot, dt)
	a.Orientation = a.Orientation.Mul(delta).Normalize()
	return a.Orientation.Basis()
}

// Advance moves the actor along its velocity scaled by dt, wrapping each
// position component independently at the toroidal arena boundary.
func (a *Actor) Advance(dt, arenaSize float32) {
	a.Pos = a.Pos.Add(a.Vel.Scale(dt))
	a.Pos.X = wrap(a.Pos.X, arenaSize)
	a.Pos.Y = wrap(a.Pos.Y, arenaSize)
	a.Pos.Z = wrap(a.Pos.Z, arenaSize)
}

// Transform returns the actor's current model transform without advancing
// any state.
func (a *Actor) Transform() physics.Mat4 {
	return a.Orientation.Basis().Translated(a.Pos)
}

func wrap(c, bound float32) float32 {
	if c > bound {
		return -bound + WrapInset
	}
	if c < -bound {
		return bound - WrapInset
	}
	return c
}
