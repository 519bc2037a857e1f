package event

import "github.com/lixenwraith/ikrig/core"

// GlobalSchedule is the schedule index reported for global override targets
const GlobalSchedule = -1

// DefaultIndex is the target index reported for a track's default target
const DefaultIndex = -1

// AuthoringPayload locates the edited data; Limb is meaningless when Schedule is -1 and the edit was rig-wide
type AuthoringPayload struct {
	Schedule int
	Limb     core.Limb
}

// RebuildPayload summarizes a schedule rebuild
type RebuildPayload struct {
	ControllerID string
	ClipCount    int
	Preserved    int // schedules carried over from the previous build
}

// StalePayload names the bound and currently reported controllers
type StalePayload struct {
	Bound   string
	Current string
}

// LoopPayload carries the normalized times on either side of the wrap
type LoopPayload struct {
	Previous float64
	Current  float64
}

// TargetPayload identifies a timed target by schedule, limb and authoring index
type TargetPayload struct {
	Schedule int
	Clip     string
	Limb     core.Limb
	Index    int
	Time     float64
}
