// pkg/render/renderer.go

// Package render defines the drawing contract between the simulation and
// a display backend, plus a no-op backend for headless runs.
package render

import (
	"context"

	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Model names shared between the model configuration and the draw calls.
const (
	ModelPlayer     = "player"
	ModelProjectile = "projectile"
	ModelAsteroid   = "asteroid"
	ModelBlast      = "blast"
	ModelBounds     = "bounds"
)

// Tint is an RGB color applied to a model's material.
type Tint [3]float32

var (
	TintPlayer = Tint{1, 1, 1}
	TintShot   = Tint{0, 1, 1}
	TintBlast  = Tint{0.8, 0.4, 0.2}
	TintBounds = Tint{0.8, 0, 0}
)

// reticleOffsets are the distances of the three aim markers projected
// ahead of the ship along its flight path.
var reticleOffsets = [3]float32{100, 30, 10}

// AsteroidTint maps a mass tier to its diffuse color: large asteroids
// read red, fading out toward gray as they shrink.
func AsteroidTint(mass float32) Tint {
	switch entity.TierOf(mass) {
	case entity.TierLarge:
		return Tint{0.8, 0.4, 0.4}
	case entity.TierMedium:
		return Tint{0.8, 0.6, 0.6}
	default:
		return Tint{0.8, 0.8, 0.8}
	}
}

// PopupTint fades a reward marker from green toward dark red as it ages.
func PopupTint(offset float32) Tint {
	return Tint{0.5 - 0.5*offset, 1 - offset, 0}
}

// Renderer draws one frame of world state. BeginFrame establishes the
// view for the tick; EndFrame presents it.
type Renderer interface {
	BeginFrame(pose engine.CameraPose)
	// DrawPlayer draws the cockpit ship fixed in front of the camera.
	DrawPlayer()
	DrawModel(name string, transform physics.Mat4, scale float32, tint Tint)
	DrawText(pos physics.Vec3, color Tint, text string)
	EndFrame() error
}

// DrawSnapshot walks a snapshot in draw order and issues it to r.
func DrawSnapshot(r Renderer, snap engine.Snapshot, arenaSize float32) error {
	r.BeginFrame(snap.Camera)

	if snap.PlayerAlive {
		r.DrawPlayer()
	} else if snap.BlastAlive {
		r.DrawModel(ModelBlast, snap.Blast.Transform, snap.Blast.Mass, TintBlast)
	}

	r.DrawModel(ModelBounds, physics.Identity().Basis(), arenaSize, TintBounds)

	for _, s := range snap.Shots {
		r.DrawModel(ModelProjectile, s.Transform, 1, TintShot)
	}
	for _, a := range snap.Asteroids {
		r.DrawModel(ModelAsteroid, a.Transform, a.Mass, AsteroidTint(a.Mass))
	}
	for _, p := range snap.Popups {
		r.DrawText(p.Pos, PopupTint(p.Offset), p.Text)
	}

	if snap.PlayerAlive {
		// Aim markers sit ahead of the ship and lead by one second of
		// travel, showing where a shot fired now would go.
		forward := snap.Camera.Basis.AxisZ().Scale(-1)
		for _, dist := range reticleOffsets {
			pos := snap.Camera.Pos.Add(forward.Scale(dist)).Add(snap.Camera.Vel)
			r.DrawText(pos, TintPlayer, "+")
		}
	}

	return r.EndFrame()
}

// NullRenderer discards every draw call, logging frame boundaries at
// debug level. It backs the headless simulation runner.
type NullRenderer struct {
	log    *logging.Logger
	frames int
	draws  int
}

// NewNullRenderer creates a renderer that draws nothing.
func NewNullRenderer(log *logging.Logger) *NullRenderer {
	if log == nil {
		log = logging.NewLogger()
	}
	return &NullRenderer{log: log}
}

func (n *NullRenderer) BeginFrame(pose engine.CameraPose) {
	n.frames++
	n.log.Debug(context.Background(), "frame begin",
		"frame", n.frames, "fov_mod", pose.FOVMod)
}

func (n *NullRenderer) DrawPlayer() {
	n.draws++
}

func (n *NullRenderer) DrawModel(name string, transform physics.Mat4, scale float32, tint Tint) {
	n.draws++
}

func (n *NullRenderer) DrawText(pos physics.Vec3, color Tint, text string) {
	n.draws++
}

func (n *NullRenderer) EndFrame() error {
	return nil
}

// Frames returns the number of frames begun.
func (n *NullRenderer) Frames() int {
	return n.frames
}
