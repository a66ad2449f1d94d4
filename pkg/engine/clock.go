// pkg/engine/clock.go
package engine

import (
	"time"
)

const (
	// maxFrameMS caps a measured frame so a long stall cannot inject a
	// huge simulation step.
	maxFrameMS = 250
	// catchUpFloor is the fraction of the target frame below which a
	// residual slice is rounded up to a full step after a skip.
	catchUpFloor = 0.2
	// residualEpsilon is the residual below which the clock re-measures
	// wall time.
	residualEpsilon = 0.0001
)

// FrameClock converts wall-clock frame boundaries into simulation time
// modifiers. Tick returns 1.0 when frames arrive at exactly the target
// rate. A slow frame is consumed in capped slices across several ticks
// so the simulation catches up without a single oversized step.
type FrameClock struct {
	target   float32
	residual float32
	skip     bool
	prev     time.Time
	now      func() time.Time
	sleep    func(time.Duration)
}

// NewFrameClock creates a clock targeting frames of targetMS milliseconds.
func NewFrameClock(targetMS float32) *FrameClock {
	return NewFrameClockWith(targetMS, time.Now, time.Sleep)
}

// NewFrameClockWith creates a clock with injected time functions.
func NewFrameClockWith(targetMS float32, now func() time.Time, sleep func(time.Duration)) *FrameClock {
	return &FrameClock{
		target: targetMS,
		now:    now,
		sleep:  sleep,
		prev:   now(),
	}
}

// Tick returns the time modifier for the next simulation step. It blocks
// until at least a fraction of a millisecond of unconsumed wall time is
// available.
func (c *FrameClock) Tick() float32 {
	current := c.now()
	for c.residual < residualEpsilon {
		elapsed := float32(current.Sub(c.prev).Seconds() * 1000)
		if elapsed > maxFrameMS {
			elapsed = maxFrameMS
		}
		c.residual = elapsed
		if c.residual >= residualEpsilon {
			break
		}
		c.sleep(200 * time.Microsecond)
		current = c.now()
	}

	var step float32
	switch {
	case c.residual > c.target:
		step = c.target
		c.skip = true
	case c.skip:
		c.skip = false
		if c.residual > c.target*catchUpFloor {
			step = c.residual
		} else {
			step = c.target
		}
	default:
		step = c.residual
	}

	c.residual -= step
	c.prev = current
	return step / c.target
}

// Pending reports whether unconsumed residual time remains, meaning the
// next Tick will not block.
func (c *FrameClock) Pending() bool {
	return c.residual >= residualEpsilon
}
