// pkg/engine/world_test.go
package engine

import (
	"io"
	"testing"

	engomath "github.com/EngoEngine/math"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

func defaultTestConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Seed = 42
	return cfg
}

// emptyTestConfig starts with a clear arena and integer-friendly timing
// so cooldown boundaries land on exact tick counts.
func emptyTestConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	cfg.InitAsteroids = 0
	cfg.TargetFrameMS = 10
	cfg.SpawnIntervalMS = 1e9
	return cfg
}

func newTestWorld(t *testing.T, cfg *config.GameConfig) *World {
	t.Helper()
	w, err := New(cfg, logging.NewLoggerWithWriter(io.Discard), event.NewEventBus())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return w
}

// placeCollision spawns an asteroid away from the player with a shot
// already on top of it, so the next update registers a hit.
func placeCollision(w *World, mass float32) *entity.Actor {
	a, _ := w.Asteroids.Acquire()
	a.Mass = mass
	a.Pos = physics.Vec3{X: 100}
	s, _ := w.Shots.Acquire()
	s.Pos = a.Pos
	return a
}

func TestNew_InitialField(t *testing.T) {
	w := newTestWorld(t, defaultTestConfig())

	if got := w.Asteroids.CountSpawned(); got != 32 {
		t.Errorf("initial asteroids = %d, want 32", got)
	}
	if got := w.Shots.CountSpawned(); got != 0 {
		t.Errorf("initial shots = %d, want 0", got)
	}
	if !w.Player.Spawned {
		t.Error("player not spawned")
	}
	if w.Player.Pos != (physics.Vec3{}) {
		t.Errorf("player position = %+v, want origin", w.Player.Pos)
	}
	if w.Score != 0 || w.TopScore != 0 {
		t.Errorf("score = %d/%d, want 0/0", w.Score, w.TopScore)
	}

	w.Asteroids.Each(func(a *entity.Actor) {
		switch a.Mass {
		case entity.MassSmall, entity.MassMedium, entity.MassLarge:
		default:
			t.Errorf("asteroid mass = %v, not a valid tier", a.Mass)
		}
		if a.Pos.Z != w.Config().ArenaSize {
			t.Errorf("asteroid spawn Z = %v, want far arena face", a.Pos.Z)
		}
	})
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.MaxShots = 0
	if _, err := New(cfg, logging.NewLoggerWithWriter(io.Discard), nil); err == nil {
		t.Error("New() accepted an invalid configuration")
	}
}

func TestWorld_FireSpawnsShot(t *testing.T) {
	w := newTestWorld(t, emptyTestConfig())
	w.Camera.Controls.Fire = true

	w.Update(1)

	if got := w.Shots.CountSpawned(); got != 1 {
		t.Fatalf("shots = %d, want 1", got)
	}
	s := w.Shots.At(0)
	want := physics.Vec3{Z: -w.Config().ShotSpeed}
	if s.Vel != want {
		t.Errorf("shot velocity = %+v, want %+v", s.Vel, want)
	}
	// Spawned at the player and advanced one tick by the same update.
	if s.Pos != (physics.Vec3{Z: -w.Config().ShotSpeed}) {
		t.Errorf("shot position = %+v, want one tick ahead of the player", s.Pos)
	}
}

func TestWorld_ShotInheritsPlayerVelocity(t *testing.T) {
	w := newTestWorld(t, emptyTestConfig())
	w.Player.Vel = physics.Vec3{Z: 1}
	w.Camera.Controls.Fire = true

	w.Update(1)

	s := w.Shots.At(0)
	if s.Vel.Z != -4 {
		t.Errorf("shot Vel.Z = %v, want -4 (muzzle velocity plus ship velocity)", s.Vel.Z)
	}
}

func TestWorld_FireCooldown(t *testing.T) {
	w := newTestWorld(t, emptyTestConfig())
	w.Camera.Controls.Fire = true

	// 10ms ticks against a 250ms cooldown: the second shot leaves on
	// tick 27, the first one past the boundary.
	for i := 0; i < 26; i++ {
		w.Update(1)
	}
	if got := w.Shots.CountSpawned(); got != 1 {
		t.Fatalf("shots after 26 ticks = %d, want 1", got)
	}

	w.Update(1)
	if got := w.Shots.CountSpawned(); got != 2 {
		t.Errorf("shots after 27 ticks = %d, want 2", got)
	}
}

func TestWorld_FireReleaseRearms(t *testing.T) {
	w := newTestWorld(t, emptyTestConfig())

	w.Camera.Controls.Fire = true
	w.Update(1)
	w.Camera.Controls.Fire = false
	w.Update(1)
	w.Camera.Controls.Fire = true
	w.Update(1)

	if got := w.Shots.CountSpawned(); got != 2 {
		t.Errorf("shots = %d, want 2 (release skips the hold cooldown)", got)
	}
}

func TestWorld_ShotPoolCap(t *testing.T) {
	cfg := emptyTestConfig()
	cfg.FireCooldownMS = 0
	w := newTestWorld(t, cfg)
	w.Camera.Controls.Fire = true

	for i := 0; i < 12; i++ {
		w.Update(1)
	}
	if got := w.Shots.CountSpawned(); got != cfg.MaxShots {
		t.Errorf("shots = %d, want pool capacity %d", got, cfg.MaxShots)
	}
}

func TestWorld_ShotExpiresAtRange(t *testing.T) {
	w := newTestWorld(t, emptyTestConfig())
	expired := 0
	w.Bus().Subscribe(event.ShotExpired, func(event.Event) { expired++ })

	w.Camera.Controls.Fire = true
	w.Update(1)
	w.Camera.Controls.Fire = false

	for i := 0; i < 80; i++ {
		w.Update(1)
	}
	if got := w.Shots.CountSpawned(); got != 0 {
		t.Errorf("shots = %d, want 0 after leaving range", got)
	}
	if expired != 1 {
		t.Errorf("shot expiry events = %d, want 1", expired)
	}
}

func TestWorld_ScoringProgression(t *testing.T) {
	tests := []struct {
		name      string
		mass      float32
		wantMass  float32
		wantScore int
		wantText  string
		destroyed bool
	}{
		{name: "large_downgrades_to_medium", mass: entity.MassLarge, wantMass: entity.MassMedium, wantScore: 10, wantText: "+10"},
		{name: "medium_downgrades_to_small", mass: entity.MassMedium, wantMass: entity.MassSmall, wantScore: 20, wantText: "+20"},
		{name: "small_is_destroyed", mass: entity.MassSmall, wantScore: 50, wantText: "+50", destroyed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, emptyTestConfig())
			a := placeCollision(w, tt.mass)

			w.Update(1)

			if w.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", w.Score, tt.wantScore)
			}
			if tt.destroyed {
				if a.Spawned {
					t.Error("small asteroid survived a hit")
				}
				if got := w.Asteroids.CountSpawned(); got != 0 {
					t.Errorf("asteroids = %d, want 0 (destroyed asteroids never split)", got)
				}
			} else {
				if !a.Spawned {
					t.Error("asteroid despawned by a downgrade hit")
				}
				if a.Mass != tt.wantMass {
					t.Errorf("mass = %v, want %v", a.Mass, tt.wantMass)
				}
				if got := w.Asteroids.CountSpawned(); got != 1 && got != 2 {
					t.Errorf("asteroids = %d, want 1 or 2 (an even chance of a fragment)", got)
				}
			}
			if got := w.Shots.CountSpawned(); got != 0 {
				t.Errorf("shots = %d, want 0 (shot consumed by the hit)", got)
			}

			snap := w.Snapshot()
			if len(snap.Popups) != 1 || snap.Popups[0].Text != tt.wantText {
				t.Errorf("popups = %+v, want one %q marker", snap.Popups, tt.wantText)
			}
		})
	}
}

func TestWorld_HitPublishesEvents(t *testing.T) {
	w := newTestWorld(t, emptyTestConfig())

	var hits []*event.AsteroidEvent
	var scores []*event.ScoreEvent
	w.Bus().Subscribe(event.AsteroidHit, func(e event.Event) {
		hits = append(hits, e.(*event.AsteroidEvent))
	})
	w.Bus().Subscribe(event.ScoreChanged, func(e event.Event) {
		scores = append(scores, e.(*event.ScoreEvent))
	})

	placeCollision(w, entity.MassLarge)
	w.Update(1)

	if len(hits) != 1 {
		t.Fatalf("hit events = %d, want 1", len(hits))
	}
	if hits[0].Award != 10 {
		t.Errorf("award = %d, want 10", hits[0].Award)
	}
	if hits[0].Mass != entity.MassMedium {
		t.Errorf("event mass = %v, want the downgraded mass", hits[0].Mass)
	}
	if len(scores) != 1 || scores[0].Score != 10 {
		t.Errorf("score events = %+v, want one with score 10", scores)
	}
}

func TestWorld_PlayerDeathAndReset(t *testing.T) {
	w := newTestWorld(t, emptyTestConfig())
	resets := 0
	w.Bus().Subscribe(event.GameReset, func(event.Event) { resets++ })

	w.Score = 100
	a, _ := w.Asteroids.Acquire()
	a.Mass = entity.MassLarge
	a.Pos = physics.Vec3{Z: 1}

	w.Update(1)

	if w.Player.Spawned {
		t.Fatal("player survived a point-blank asteroid")
	}
	if !w.Blast.Spawned {
		t.Fatal("blast not spawned on player death")
	}
	if w.Blast.Mass <= 0 || w.Blast.Mass > 0.1 {
		t.Errorf("blast mass = %v, want a fresh blast barely grown", w.Blast.Mass)
	}

	// The blast pulls the camera back while it grows.
	for i := 0; i < 10; i++ {
		w.Update(1)
	}
	if w.Camera.OffsetZ >= -5 {
		t.Errorf("OffsetZ = %v, want < -5 during the blast", w.Camera.OffsetZ)
	}

	ticks := 0
	for !w.Player.Spawned && ticks < 2000 {
		w.Update(1)
		ticks++
	}
	if !w.Player.Spawned {
		t.Fatal("game never reset after the blast")
	}
	if w.Blast.Spawned {
		t.Error("blast still live after reset")
	}
	if w.TopScore != 100 {
		t.Errorf("top score = %d, want 100 banked from the run", w.TopScore)
	}
	if w.Score != 0 {
		t.Errorf("score = %d, want 0 after reset", w.Score)
	}
	if w.Camera.FOVMod != 1 || w.Camera.OffsetZ != -5 {
		t.Errorf("camera = fov %v offsetZ %v, want neutral pose", w.Camera.FOVMod, w.Camera.OffsetZ)
	}
	if got := w.Asteroids.CountSpawned(); got != w.Config().InitAsteroids {
		t.Errorf("asteroids = %d, want re-rolled initial field of %d", got, w.Config().InitAsteroids)
	}
	if resets != 1 {
		t.Errorf("reset events = %d, want 1", resets)
	}
}

func TestWorld_LowerScoreDoesNotReplaceTopScore(t *testing.T) {
	w := newTestWorld(t, emptyTestConfig())
	w.TopScore = 500
	w.Score = 100
	a, _ := w.Asteroids.Acquire()
	a.Mass = entity.MassLarge
	a.Pos = physics.Vec3{Z: 1}

	w.Update(1)
	for i := 0; i < 2000 && !w.Player.Spawned; i++ {
		w.Update(1)
	}

	if w.TopScore != 500 {
		t.Errorf("top score = %d, want 500 kept", w.TopScore)
	}
}

func TestWorld_BlastSuspendsCollisions(t *testing.T) {
	w := newTestWorld(t, emptyTestConfig())
	a, _ := w.Asteroids.Acquire()
	a.Mass = entity.MassLarge
	a.Pos = physics.Vec3{Z: 1}
	w.Update(1)
	if w.Player.Spawned {
		t.Fatal("player survived a point-blank asteroid")
	}

	placeCollision(w, entity.MassMedium)
	w.Update(1)

	if w.Score != 0 {
		t.Errorf("score = %d, want 0 (no combat while the player is down)", w.Score)
	}
	if got := w.Shots.CountSpawned(); got != 1 {
		t.Errorf("shots = %d, want 1 (shot not consumed while combat is suspended)", got)
	}
}

func TestWorld_PeriodicSpawn(t *testing.T) {
	cfg := emptyTestConfig()
	cfg.SpawnIntervalMS = 100
	w := newTestWorld(t, cfg)
	spawned := 0
	w.Bus().Subscribe(event.AsteroidSpawned, func(event.Event) { spawned++ })

	for i := 0; i < 15; i++ {
		w.Update(1)
	}

	if spawned != 1 {
		t.Fatalf("spawn events = %d, want exactly 1 per interval", spawned)
	}
	if got := w.Asteroids.CountSpawned(); got != 1 {
		t.Fatalf("asteroids = %d, want 1", got)
	}
	var mass float32
	w.Asteroids.Each(func(a *entity.Actor) { mass = a.Mass })
	if mass != entity.MassMedium && mass != entity.MassLarge {
		t.Errorf("periodic spawn mass = %v, want medium or large", mass)
	}
}

func TestWorld_RelativeSpeed(t *testing.T) {
	w := newTestWorld(t, emptyTestConfig())
	w.Player.Vel = physics.Vec3{X: 3, Y: 4}

	got := w.RelativeSpeed()
	if engomath.Abs(got-80) > 0.8 {
		t.Errorf("RelativeSpeed() = %v, want about 80", got)
	}
}

func TestWorld_Snapshot(t *testing.T) {
	w := newTestWorld(t, defaultTestConfig())

	snap := w.Snapshot()

	if !snap.PlayerAlive {
		t.Error("snapshot reports dead player")
	}
	if snap.BlastAlive {
		t.Error("snapshot reports live blast")
	}
	if len(snap.Asteroids) != 32 {
		t.Errorf("snapshot asteroids = %d, want 32", len(snap.Asteroids))
	}
	if len(snap.Shots) != 0 {
		t.Errorf("snapshot shots = %d, want 0", len(snap.Shots))
	}
	if snap.Camera.FOVMod != 1 {
		t.Errorf("snapshot FOVMod = %v, want 1", snap.Camera.FOVMod)
	}
	if snap.Camera.Offset.Z != -5 {
		t.Errorf("snapshot camera Z offset = %v, want -5", snap.Camera.Offset.Z)
	}
}
