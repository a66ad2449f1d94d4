// pkg/engine/collision.go
package engine

import (
	"context"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// handleFire spawns a projectile while the fire button is held, at most
// once per cooldown interval of simulated time. The first press fires
// immediately. The cooldown is charged even when the projectile pool is
// full.
func (w *World) handleFire() {
	if !w.Camera.Controls.Fire || !w.Player.Spawned {
		w.firing = false
		return
	}
	if w.firing && w.simMS-w.lastFireMS <= w.cfg.FireCooldownMS {
		return
	}
	w.firing = true
	w.lastFireMS = w.simMS

	s, ok := w.Shots.Acquire()
	if !ok {
		return
	}
	s.Pos = w.Player.Pos
	// The ship flies toward -z of its frame, so the shot orientation is
	// the player's conjugate with a 180 degree yaw folded in.
	q := w.Player.Orientation
	s.Orientation = physics.Quat{X: -q.Z, Y: q.W, Z: q.X, W: q.Y}
	s.Vel = s.Orientation.Forward().Scale(w.cfg.ShotSpeed).Add(w.Player.Vel)

	w.bus.Publish(event.NewShotEvent(event.ShotFired, w, w.Shots.Index(s)))
}

// handleCollisions tests every live asteroid against the player and all
// projectiles. Collisions are suspended while the player is down.
func (w *World) handleCollisions() {
	if !w.Player.Spawned {
		return
	}
	for i := 0; i < w.Asteroids.Cap(); i++ {
		a := w.Asteroids.At(i)
		if !a.Spawned {
			continue
		}

		d2 := a.Pos.DistanceSquared(w.Player.Pos)
		if physics.InvSqrt(d2) > hitFactor/a.Mass {
			w.destroyPlayer()
			return
		}

		for j := 0; j < w.Shots.Cap(); j++ {
			if !a.Spawned {
				break
			}
			s := w.Shots.At(j)
			if !s.Spawned {
				continue
			}
			d2 := s.Pos.DistanceSquared(a.Pos)
			if physics.InvSqrt(d2) < hitFactor/a.Mass {
				continue
			}
			s.Spawned = false
			w.hitAsteroid(i, a)
		}
	}
}

// hitAsteroid downgrades the asteroid one mass tier, or destroys it when
// already small. Either way its trajectory re-rolls, and a surviving
// asteroid has an even chance of shedding a small fragment.
func (w *World) hitAsteroid(slot int, a *entity.Actor) {
	hitPos := a.Pos

	var award int
	var text string
	switch entity.TierOf(a.Mass) {
	case entity.TierLarge:
		a.Mass = entity.MassMedium
		award, text = awardLarge, "+10"
	case entity.TierMedium:
		a.Mass = entity.MassSmall
		award, text = awardMedium, "+20"
	default:
		a.Spawned = false
		award, text = awardSmall, "+50"
	}
	a.Vel = w.randVel()
	a.Rot = w.randRot()

	w.Score += award
	w.Popups.Spawn(hitPos, text)

	evtType := event.AsteroidHit
	if !a.Spawned {
		evtType = event.AsteroidDestroyed
	}
	w.bus.Publish(event.NewAsteroidEvent(evtType, w, slot, a.Mass, award))
	w.bus.Publish(event.NewScoreEvent(w, w.Score, w.TopScore))
	w.log.Debug(context.Background(), "asteroid hit",
		"slot", slot, "award", award, "score", w.Score)

	if a.Spawned && w.coin() {
		child, ok := w.Asteroids.Acquire()
		if !ok {
			return
		}
		child.Mass = entity.MassSmall
		child.Pos = hitPos
		child.Vel = w.randVel()
		child.Rot = w.randRot()
		w.bus.Publish(event.NewAsteroidEvent(event.AsteroidSpawned, w,
			w.Asteroids.Index(child), child.Mass, 0))
	}
}

// destroyPlayer despawns the ship and starts the blast effect in its
// place. The game resets once the blast finishes growing.
func (w *World) destroyPlayer() {
	w.Player.Spawned = false
	w.blastMod = blastModInitial
	w.Blast.Spawned = true
	w.Blast.Mass = blastInitialMass
	w.Blast.Pos = w.Player.Pos
	w.Blast.Rot = w.randRot()

	w.log.Info(context.Background(), "player destroyed",
		"score", w.Score, "top_score", w.TopScore)
	w.bus.Publish(event.NewGameEvent(event.PlayerDestroyed, w, w.TopScore))
}

// advanceBlast grows the blast while it lasts, pulling the camera back
// and widening the view, then banks the score and resets the game.
func (w *World) advanceBlast(dt float32) {
	if w.Player.Spawned || !w.Blast.Spawned {
		return
	}
	if w.Blast.Mass < blastEndMass {
		w.Blast.Mass += dt / w.blastMod
		w.Camera.FOVMod += 0.3 * dt / w.blastMod
		w.Camera.OffsetZ -= 2 * dt / w.blastMod
		w.blastMod += 0.5 * dt
		return
	}

	w.Blast.Spawned = false
	w.Camera.FOVMod = 1
	w.Camera.OffsetZ = -5
	if w.Score > w.TopScore {
		w.TopScore = w.Score
	}
	w.Score = 0
	w.resetGame()

	w.log.Info(context.Background(), "game reset", "top_score", w.TopScore)
	w.bus.Publish(event.NewGameEvent(event.GameReset, w, w.TopScore))
}

// spawnPeriodic injects one fresh medium or large asteroid at the far
// arena face once per spawn interval of simulated time.
func (w *World) spawnPeriodic() {
	if w.simMS-w.lastSpawnMS <= w.cfg.SpawnIntervalMS {
		return
	}
	w.lastSpawnMS = w.simMS

	a, ok := w.Asteroids.Acquire()
	if !ok {
		return
	}
	if w.coin() {
		a.Mass = entity.MassMedium
	} else {
		a.Mass = entity.MassLarge
	}
	a.Pos = w.spawnPos()
	a.Vel = w.randVel()
	a.Rot = w.randRot()

	w.bus.Publish(event.NewAsteroidEvent(event.AsteroidSpawned, w,
		w.Asteroids.Index(a), a.Mass, 0))
	w.log.Debug(context.Background(), "asteroid spawned",
		"slot", w.Asteroids.Index(a), "mass", a.Mass)
}
