package audio

import (
	"errors"

	"github.com/lixenwraith/ikrig/core"
)

// CueType identifies a rig feedback cue
type CueType int

const (
	CueActivate CueType = iota // Timed target became current
	CueLoop                    // Clip wrapped
	CueSettle                  // Blend weight reached 1
	cueTypeCount
)

var cueNames = [cueTypeCount]string{"activate", "loop", "settle"}

func (c CueType) String() string {
	if c < 0 || c >= cueTypeCount {
		return "unknown"
	}
	return cueNames[c]
}

// Sink plays cues; Player is the speaker-backed implementation
type Sink interface {
	Play(cue CueType, limb core.Limb)
}

// Sentinel errors
var (
	ErrAudioDisabled = errors.New("audio disabled")
)
