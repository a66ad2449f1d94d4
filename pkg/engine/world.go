// pkg/engine/world.go

// Package engine runs the game simulation: the player ship, free-flying
// asteroids, projectiles and the camera, advanced in fixed-rate ticks
// scaled by a frame clock.
package engine

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

const (
	// hitFactor scales the collision radius: actors collide with an
	// asteroid when their distance drops below mass/hitFactor.
	hitFactor = 0.8

	blastInitialMass float32 = 0.001
	blastEndMass     float32 = 2.5
	blastModInitial  float32 = 20

	awardLarge  = 10
	awardMedium = 20
	awardSmall  = 50
)

// World owns the complete simulation state for one game.
type World struct {
	cfg *config.GameConfig
	log *logging.Logger
	bus *event.Bus
	rng *rand.Rand

	Player    entity.Actor
	Blast     entity.Actor
	Shots     *entity.Pool
	Asteroids *entity.Pool
	Popups    entity.Popups
	Camera    *Camera

	Score    int
	TopScore int

	simMS       float32
	firing      bool
	lastFireMS  float32
	lastSpawnMS float32
	blastMod    float32
}

// New creates a world from a validated configuration and spawns the
// initial asteroid field. A zero seed is replaced by the wall clock.
func New(cfg *config.GameConfig, log *logging.Logger, bus *event.Bus) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "engine: rejected configuration")
	}
	if log == nil {
		log = logging.NewLogger()
	}
	if bus == nil {
		bus = event.NewEventBus()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	w := &World{
		cfg:       cfg,
		log:       log,
		bus:       bus,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Player:    entity.NewActor(),
		Blast:     entity.NewActor(),
		Shots:     entity.NewPool(cfg.MaxShots),
		Asteroids: entity.NewPool(cfg.MaxAsteroids),
		Camera:    NewCamera(cfg.Camera),
		blastMod:  blastModInitial,
	}
	w.resetGame()

	log.Info(context.Background(), "world initialized",
		"seed", seed,
		"asteroids", w.Asteroids.CountSpawned(),
		"arena_size", cfg.ArenaSize)
	bus.Publish(event.NewGameEvent(event.GameStarted, w, w.TopScore))
	return w, nil
}

// Config returns the game configuration the world was built from.
func (w *World) Config() *config.GameConfig {
	return w.cfg
}

// Bus returns the event bus the world publishes on.
func (w *World) Bus() *event.Bus {
	return w.bus
}

// SimMS returns the accumulated simulated time in milliseconds.
func (w *World) SimMS() float32 {
	return w.simMS
}

// Update advances the simulation by one tick. dt is the time modifier
// from the frame clock, 1.0 at the target frame rate.
func (w *World) Update(dt float32) {
	w.simMS += dt * w.cfg.TargetFrameMS

	w.handleFire()
	w.handleCollisions()
	w.spawnPeriodic()
	w.Popups.Advance(dt)
	w.advanceBlast(dt)

	w.Camera.Move(&w.Player, dt)
	if w.Player.Spawned {
		w.Player.Advance(dt, w.cfg.ArenaSize)
	}
	w.Asteroids.Each(func(a *entity.Actor) {
		a.IntegrateOrientation(dt)
		a.Advance(dt, w.cfg.ArenaSize)
	})
	w.Shots.Each(func(s *entity.Actor) {
		s.Advance(dt, w.cfg.ArenaSize)
		d2 := s.Pos.DistanceSquared(w.Player.Pos)
		if physics.InvSqrt(d2) < 1/w.cfg.ShotRange {
			s.Spawned = false
			w.bus.Publish(event.NewShotEvent(event.ShotExpired, w, w.Shots.Index(s)))
		}
	})
	if w.Blast.Spawned {
		w.Blast.IntegrateOrientation(dt)
	}
}

// RelativeSpeed returns the player's speed on the scale shown in the
// status readout.
func (w *World) RelativeSpeed() float32 {
	return 16 / physics.InvSqrt(w.Player.Vel.LengthSquared())
}

// resetGame respawns the player at the origin and re-rolls the initial
// asteroid field.
func (w *World) resetGame() {
	w.Player.Reset()
	w.Asteroids.DespawnAll()
	for i := 0; i < w.cfg.InitAsteroids; i++ {
		a, ok := w.Asteroids.Acquire()
		if !ok {
			break
		}
		// Half the field is medium, the rest splits between large
		// and small.
		if w.coin() {
			a.Mass = entity.MassMedium
		} else if w.coin() {
			a.Mass = entity.MassLarge
		} else {
			a.Mass = entity.MassSmall
		}
		a.Pos = w.spawnPos()
		a.Vel = w.randVel()
		a.Rot = w.randRot()
	}
	w.lastFireMS = w.simMS
	w.lastSpawnMS = w.simMS
	w.firing = false
}

func (w *World) coin() bool {
	return w.rng.IntN(2) == 1
}

// spawnPos places a new asteroid on the far arena face at a random
// lateral offset.
func (w *World) spawnPos() physics.Vec3 {
	span := int(w.cfg.ArenaSize)
	return physics.Vec3{
		X: float32(w.rng.IntN(span) - span/2),
		Y: float32(w.rng.IntN(span) - span/2),
		Z: w.cfg.ArenaSize,
	}
}

func (w *World) randVel() physics.Vec3 {
	return physics.Vec3{
		X: float32(w.rng.IntN(200)-100) * 0.005,
		Y: float32(w.rng.IntN(200)-100) * 0.005,
		Z: float32(w.rng.IntN(200)-100) * 0.005,
	}
}

func (w *World) randRot() physics.Euler {
	return physics.Euler{
		Yaw:   float32(w.rng.IntN(400)-200) * 0.0001,
		Pitch: float32(w.rng.IntN(400)-200) * 0.0001,
		Roll:  float32(w.rng.IntN(400)-200) * 0.0001,
	}
}

// ActorState is a read-only copy of one actor for rendering.
type ActorState struct {
	Pos       physics.Vec3
	Transform physics.Mat4
	Mass      float32
}

// PopupState is a read-only copy of one score popup.
type PopupState struct {
	Text   string
	Offset float32
	Pos    physics.Vec3
}

// CameraPose carries everything a renderer needs to build the view.
type CameraPose struct {
	Basis  physics.Mat4
	Pos    physics.Vec3
	Vel    physics.Vec3
	FOVMod float32
	Roll   float32
	Offset physics.Vec3
}

// Snapshot is an immutable copy of the renderable world state.
type Snapshot struct {
	Camera      CameraPose
	Player      ActorState
	PlayerAlive bool
	Blast       ActorState
	BlastAlive  bool
	Shots       []ActorState
	Asteroids   []ActorState
	Popups      []PopupState
	Score       int
	TopScore    int
}

// Snapshot copies the renderable state out of the world. The result
// shares no memory with the simulation.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Camera: CameraPose{
			Basis:  w.Player.Orientation.Basis(),
			Pos:    w.Player.Pos,
			Vel:    w.Player.Vel,
			FOVMod: w.Camera.FOVMod,
			Roll:   w.Camera.Roll,
			Offset: physics.Vec3{X: w.Camera.OffsetX, Y: w.Camera.OffsetY, Z: w.Camera.OffsetZ},
		},
		Player:      actorState(&w.Player),
		PlayerAlive: w.Player.Spawned,
		Blast:       actorState(&w.Blast),
		BlastAlive:  w.Blast.Spawned,
		Score:       w.Score,
		TopScore:    w.TopScore,
	}
	w.Shots.Each(func(a *entity.Actor) {
		s.Shots = append(s.Shots, actorState(a))
	})
	w.Asteroids.Each(func(a *entity.Actor) {
		s.Asteroids = append(s.Asteroids, actorState(a))
	})
	for i := range w.Popups {
		if w.Popups[i].Spawned {
			s.Popups = append(s.Popups, PopupState{
				Text:   w.Popups[i].Text,
				Offset: w.Popups[i].Offset,
				Pos:    w.Popups[i].Pos,
			})
		}
	}
	return s
}

func actorState(a *entity.Actor) ActorState {
	return ActorState{
		Pos:       a.Pos,
		Transform: a.Transform(),
		Mass:      a.Mass,
	}
}
