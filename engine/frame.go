package engine

import (
	"math"

	"github.com/lixenwraith/ikrig/vmath"
)

// Frame is the host state sampled once at the start of an IK pass
type Frame struct {
	ControllerID   string  // controller currently on the animator; empty skips stale detection
	Clip           string  // name of the clip playing on the IK layer
	NormalizedTime float64 // host normalized time, keeps growing on looping clips
	DeltaTime      float64 // seconds since the previous IK pass
}

// sanitized returns a copy with non-finite or negative numbers neutralized
func (f Frame) sanitized() Frame {
	if math.IsNaN(f.DeltaTime) || math.IsInf(f.DeltaTime, 0) || f.DeltaTime < 0 {
		f.DeltaTime = 0
	}
	f.NormalizedTime = vmath.Fraction(f.NormalizedTime)
	return f
}

// PlaybackState is written by the playback system each frame and read by the blend system
type PlaybackState struct {
	Time     float64 // normalized time of this frame in [0, 1)
	Previous float64 // normalized time of the previous tracked frame
	Wrapped  bool    // time decreased since the previous tracked frame
	Tracking bool    // a previous frame exists

	// PendingWrap latches a wrap seen while individual evaluation was suspended
	PendingWrap bool
}
