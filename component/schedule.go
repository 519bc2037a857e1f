package component

import "github.com/lixenwraith/ikrig/core"

// Schedule holds the four limb tracks authored for one animation clip
type Schedule struct {
	Index  int    // clip ordinal in the bound controller
	Clip   string // clip name matched against the playing clip
	Tracks [core.LimbCount]*Track

	Status  core.Status
	Playing bool // UI feedback only
}

// NewSchedule creates a schedule with empty tracks for every limb
func NewSchedule(index int, clip string) *Schedule {
	s := &Schedule{
		Index: index,
		Clip:  clip,
	}
	for _, limb := range core.Limbs {
		s.Tracks[limb] = NewTrack(limb)
	}
	return s
}

// Track returns the track for limb, nil for an invalid limb
func (s *Schedule) Track(limb core.Limb) *Track {
	if !limb.Valid() {
		return nil
	}
	return s.Tracks[limb]
}

// Globals is the clip-independent override table, one target per limb
type Globals struct {
	Enabled bool
	Targets [core.LimbCount]*Target
}

// NewGlobals creates an empty disabled override table
func NewGlobals() *Globals {
	g := &Globals{}
	for _, limb := range core.Limbs {
		g.Targets[limb] = NewTarget()
	}
	return g
}
