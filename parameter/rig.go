package parameter

import "time"

// System Execution Priorities (lower runs first)
// Global overrides run before individual evaluation so per-clip output wins a shared limb
const (
	PriorityGlobal   = 20
	PriorityPlayback = 30 // Loop detection and clip matching, before blending
	PriorityBlend    = 40
)

// SessionStatPrefixes name the stats zeroed when a play session starts
// Readiness gauges describe authored data and survive a session restart
var SessionStatPrefixes = []string{"global.", "playback.", "blend."}

// Event queue sizing
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// Blend defaults
const (
	// FullIKWeight is written to every enabled IK channel
	FullIKWeight = 1.0

	// DefaultBlendSpeed is the weight gained per second by a newly added timed target
	DefaultBlendSpeed = 1.0

	// MaxBlendSpeed bounds authored speed; anything faster settles inside a single frame
	MaxBlendSpeed = 1000.0
)

// Simulation and sandbox timing
const (
	// FrameUpdateInterval is the sandbox frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// DefaultSimulationFPS is used by headless simulation when the scene omits fps
	DefaultSimulationFPS = 60

	// DefaultClipDuration is the loop length in seconds when the scene omits it
	DefaultClipDuration = 2.0

	// MaxFrameDelta clamps a single frame step so a stalled terminal does not skip whole blends
	MaxFrameDelta = 250 * time.Millisecond
)
