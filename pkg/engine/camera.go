// pkg/engine/camera.go
package engine

import (
	"math"

	engomath "github.com/EngoEngine/math"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

const radPerDeg = math.Pi / 180

// Controls is the set of input flags driving the camera for one tick.
// Flags stay set while the corresponding key or button is held.
type Controls struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool
	RollCCW  bool
	RollCW   bool
	Fire     bool
}

// Camera couples player input to the player actor and carries the view
// presentation state: field-of-view modifier, drift roll and the eye
// offset behind the ship.
//
// With drift enabled the view banks into yaw turns and slides with pitch
// before easing back to neutral, and the field of view widens under
// forward thrust.
type Camera struct {
	VelMod  float32
	RotMod  float32
	RollMod float32
	Sens    float32
	Drift   bool

	Controls Controls

	FOVMod  float32
	Roll    float32
	OffsetX float32
	OffsetY float32
	OffsetZ float32

	zz        float32
	yawIdle   float32
	pitchIdle float32
}

// NewCamera creates a camera in the neutral pose.
func NewCamera(cfg config.CameraConfig) *Camera {
	return &Camera{
		VelMod:  cfg.VelMod,
		RotMod:  cfg.RotMod,
		RollMod: cfg.RollMod,
		Sens:    cfg.Sens,
		Drift:   cfg.Drift,
		FOVMod:  1,
		OffsetY: -2,
		OffsetZ: -5,
		zz:      0.02,
	}
}

// Look converts one mouse motion delta into angular rates on the player.
// The rates are consumed and zeroed by the next Move call.
func (c *Camera) Look(player *entity.Actor, dx, dy float32) {
	player.Rot.Yaw = -c.RotMod * c.Sens * dx
	player.Rot.Pitch = -c.RotMod * c.Sens * dy
}

// Move applies one tick of camera-driven player control: drift easing,
// orientation integration, thrust along the local axes and the
// field-of-view animation. Angular rates on the player are consumed.
func (c *Camera) Move(player *entity.Actor, dt float32) {
	if c.Controls.RollCCW {
		player.Rot.Roll = c.RollMod * c.RotMod * dt
	}
	if c.Controls.RollCW {
		player.Rot.Roll = -c.RollMod * c.RotMod * dt
	}

	// Idle time per look axis gates the drift relaxation below.
	if engomath.Abs(player.Rot.Yaw) < 0.000001 {
		if c.yawIdle < 1000 {
			c.yawIdle += dt
		}
	} else {
		c.yawIdle = 0
	}
	if engomath.Abs(player.Rot.Pitch) < 0.000001 {
		if c.pitchIdle < 1000 {
			c.pitchIdle += dt
		}
	} else {
		c.pitchIdle = 0
	}

	if c.Drift {
		c.Roll += player.Rot.Yaw * 0.5 * dt / radPerDeg
		c.OffsetY -= player.Rot.Pitch * 0.02 * dt / radPerDeg
	}
	if c.yawIdle > 10 || !c.Drift {
		if c.Roll < -1 {
			c.Roll += 0.5 * dt
		} else if c.Roll > 1 {
			c.Roll -= 0.5 * dt
		} else {
			c.Roll = 0
		}
	}
	if c.pitchIdle > 10 || !c.Drift {
		if c.OffsetY < -2.05 {
			c.OffsetY += 0.02 * dt
		} else if c.OffsetY > -1.95 {
			c.OffsetY -= 0.02 * dt
		} else {
			c.OffsetY = -2
		}
	}
	c.OffsetX = 0.1 * c.Roll
	if c.Roll > 15 {
		c.Roll = 15
	}
	if c.Roll < -15 {
		c.Roll = -15
	}
	if c.OffsetY < -3 {
		c.OffsetY = -3
	}
	if c.OffsetY > -1 {
		c.OffsetY = -1
	}

	m := player.IntegrateOrientation(dt)
	player.Rot = physics.Euler{}

	if !player.Spawned {
		return
	}

	// World-space thrust directions: the ship flies toward -z of its
	// local frame, x is the camera's right and y its up.
	if c.Controls.Forward != c.Controls.Backward {
		if c.zz > 0.005 {
			c.zz -= 0.001 * dt
		}
		thrust := m.AxisZ().Scale(c.VelMod * dt)
		if c.Controls.Forward {
			player.Vel = player.Vel.Sub(thrust)
			if c.FOVMod < 1.2 && c.Drift {
				c.FOVMod += dt * c.zz
			}
		} else {
			player.Vel = player.Vel.Add(thrust)
			if c.FOVMod > 0.8 && c.Drift {
				c.FOVMod -= dt * c.zz
			}
		}
	} else {
		c.zz = 0.02
		if c.FOVMod > 1.02 {
			c.FOVMod -= 1.5 * dt * c.zz
		} else if c.FOVMod < 0.98 {
			c.FOVMod += 1.5 * dt * c.zz
		} else {
			c.FOVMod = 1
		}
	}
	if c.Controls.Left != c.Controls.Right {
		thrust := m.AxisX().Scale(c.VelMod * dt)
		if c.Controls.Left {
			player.Vel = player.Vel.Sub(thrust)
		} else {
			player.Vel = player.Vel.Add(thrust)
		}
	}
	if c.Controls.Up != c.Controls.Down {
		thrust := m.AxisY().Scale(c.VelMod * dt)
		if c.Controls.Up {
			player.Vel = player.Vel.Add(thrust)
		} else {
			player.Vel = player.Vel.Sub(thrust)
		}
	}
}
