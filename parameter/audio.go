package parameter

import "time"

// Audio cue timing
const (
	CueSampleRate = 44100

	ActivateCueDuration = 90 * time.Millisecond
	ActivateCueAttack   = 5 * time.Millisecond
	ActivateCueRelease  = 60 * time.Millisecond

	LoopCueDuration = 40 * time.Millisecond
	LoopCueAttack   = 2 * time.Millisecond
	LoopCueRelease  = 30 * time.Millisecond

	SettleCueDuration        = 250 * time.Millisecond
	SettleCueAttack          = 5 * time.Millisecond
	SettleCueFundamentalRel  = 200 * time.Millisecond
	SettleCueOvertoneRelease = 120 * time.Millisecond

	// SpeakerBuffer is the speaker latency passed to speaker.Init
	SpeakerBuffer = 100 * time.Millisecond
)

// ActivateCueBase is the chime pitch for the right hand; each further limb steps down a fourth
const ActivateCueBase = 880.0

// Settle chime partials (E6 and an octave above)
const (
	SettleCueFundamental = 1318.51
	SettleCueOvertone    = 2637.02
)
