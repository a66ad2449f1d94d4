// pkg/entity/popup.go
package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// MaxScorePopups bounds the number of simultaneous reward markers.
const MaxScorePopups = 3

const (
	popupGrowth float32 = 0.02
	popupExpiry float32 = 1
)

// ScorePopup is a short-lived reward marker spawned where an asteroid was
// hit. Offset drives both the on-screen drift and the lifetime: the popup
// despawns once it passes the expiry threshold.
type ScorePopup struct {
	Spawned bool
	Text    string
	Offset  float32
	Pos     physics.Vec3
}

// Popups is the fixed pool of score popups.
type Popups [MaxScorePopups]ScorePopup

// Spawn places a popup at pos into the first free slot. Returns false,
// dropping the request, when all slots are live.
func (p *Popups) Spawn(pos physics.Vec3, text string) bool {
	for i := range p {
		if p[i].Spawned {
			continue
		}
		p[i] = ScorePopup{Spawned: true, Text: text, Pos: pos}
		return true
	}
	return false
}

// Advance ages every live popup by one tick, despawning those past the
// expiry threshold.
func (p *Popups) Advance(dt float32) {
	for i := range p {
		if !p[i].Spawned {
			continue
		}
		if p[i].Offset > popupExpiry {
			p[i].Spawned = false
		} else {
			p[i].Offset += popupGrowth * dt
		}
	}
}
