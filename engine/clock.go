package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/ikrig/parameter"
)

// TimeSource provides wall time readings
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the monotonic system clock
type SystemTime struct{}

func (SystemTime) Now() time.Time {
	return time.Now()
}

// ManualTime is a controllable time source for tests and deterministic playback
type ManualTime struct {
	mu      sync.RWMutex
	current time.Time
}

// NewManualTime creates a manual source starting at start
func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{current: start}
}

func (m *ManualTime) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Advance moves the source forward by d
func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

// FrameClock turns wall time into per-frame deltas and freezes while paused
// Authoring is only accepted while the clock is paused
type FrameClock struct {
	source TimeSource
	last   time.Time
	paused bool
}

// NewFrameClock creates a running clock reading from source
func NewFrameClock(source TimeSource) *FrameClock {
	return &FrameClock{
		source: source,
		last:   source.Now(),
	}
}

// Tick returns time since the previous Tick, zero while paused, clamped to parameter.MaxFrameDelta
func (c *FrameClock) Tick() time.Duration {
	now := c.source.Now()
	if c.paused {
		return 0
	}
	dt := now.Sub(c.last)
	c.last = now
	if dt < 0 {
		return 0
	}
	if dt > parameter.MaxFrameDelta {
		return parameter.MaxFrameDelta
	}
	return dt
}

// Pause freezes the clock
func (c *FrameClock) Pause() {
	c.paused = true
}

// Resume restarts the clock without counting the paused span
func (c *FrameClock) Resume() {
	if c.paused {
		c.paused = false
		c.last = c.source.Now()
	}
}

// Toggle flips between paused and running and returns the new paused state
func (c *FrameClock) Toggle() bool {
	if c.paused {
		c.Resume()
	} else {
		c.Pause()
	}
	return c.paused
}

// Paused reports whether the clock is frozen
func (c *FrameClock) Paused() bool {
	return c.paused
}
