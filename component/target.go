package component

import (
	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/parameter"
	"github.com/lixenwraith/ikrig/vmath"
)

// TargetConfig is the authored half of a target descriptor
type TargetConfig struct {
	Attachment  core.Handle
	UseLocation bool
	UseRotation bool

	// Time is the normalized clip time the target becomes eligible; ignored on defaults and globals
	Time float64
	// Speed is the weight gained per second while this target is being blended toward
	Speed float64
}

// HasFlags reports whether location or rotation is enabled
func (c TargetConfig) HasFlags() bool {
	return c.UseLocation || c.UseRotation
}

// TargetState is runtime blend state, rebuilt every play session and never authored
type TargetState struct {
	Weight    float64 // 0 = previous target's pose, 1 = this target's pose
	TotalTime float64 // normalized span until the next eligible target, 1 for the last
	Played    bool    // blend started during the current loop

	Captured   vmath.Pose // attachment local pose used as blend endpoint and loop restore value
	HasCapture bool
}

// Target is one candidate IK attachment for one limb
type Target struct {
	Config TargetConfig
	State  TargetState
	Status core.Status
}

// NewTarget creates an empty descriptor with the default blend speed
func NewTarget() *Target {
	return &Target{
		Config: TargetConfig{Speed: parameter.DefaultBlendSpeed},
	}
}

// ResetBlend rewinds the per-loop state without touching the capture
func (t *Target) ResetBlend() {
	t.State.Weight = 0
	t.State.Played = false
}

// Capture stores the attachment's local pose as this target's endpoint
func (t *Target) Capture(p vmath.Pose) {
	t.State.Captured = p
	t.State.HasCapture = true
}
