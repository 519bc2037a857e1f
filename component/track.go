package component

import (
	"slices"
	"sort"

	"github.com/lixenwraith/ikrig/core"
)

// Track is the ordered set of targets for one limb within one clip
type Track struct {
	Limb    core.Limb
	Default *Target
	Timed   []*Target // authoring order
	Dynamic bool      // timed targets are ignored unless set

	// Derived on classification
	ByTime   []*Target // Timed stably sorted by Time
	Eligible []*Target // ByTime filtered to active targets
	Status   core.Status
}

// NewTrack creates a track with an empty default target
func NewTrack(limb core.Limb) *Track {
	return &Track{
		Limb:    limb,
		Default: NewTarget(),
	}
}

// AddTimed appends a new timed target and returns its authoring index
func (t *Track) AddTimed() (*Target, int) {
	target := NewTarget()
	t.Timed = append(t.Timed, target)
	return target, len(t.Timed) - 1
}

// RemoveTimed deletes the timed target at authoring index i
func (t *Track) RemoveTimed(i int) bool {
	if i < 0 || i >= len(t.Timed) {
		return false
	}
	t.Timed = slices.Delete(t.Timed, i, i+1)
	return true
}

// ClearTimed drops every timed target along with the derived views
func (t *Track) ClearTimed() {
	t.Timed = nil
	t.ByTime = nil
	t.Eligible = nil
}

// SortByTime rebuilds ByTime; ties keep authoring order
func (t *Track) SortByTime() {
	t.ByTime = append(t.ByTime[:0], t.Timed...)
	sort.SliceStable(t.ByTime, func(i, j int) bool {
		return t.ByTime[i].Config.Time < t.ByTime[j].Config.Time
	})
}

// RebuildEligible filters ByTime down to targets that classified active
func (t *Track) RebuildEligible() {
	t.Eligible = t.Eligible[:0]
	for _, target := range t.ByTime {
		if target.Status == core.StatusActive {
			t.Eligible = append(t.Eligible, target)
		}
	}
}

// Search returns the largest Eligible index whose Time <= now, or -1 when now precedes all of them
func (t *Track) Search(now float64) int {
	return sort.Search(len(t.Eligible), func(i int) bool {
		return t.Eligible[i].Config.Time > now
	}) - 1
}

// NextTime returns the activation time following Eligible[k], or 1 for the last
func (t *Track) NextTime(k int) float64 {
	if k+1 < len(t.Eligible) {
		return t.Eligible[k+1].Config.Time
	}
	return 1
}

// Targets returns the default followed by timed targets in authoring order
func (t *Track) Targets() []*Target {
	all := make([]*Target, 0, len(t.Timed)+1)
	all = append(all, t.Default)
	return append(all, t.Timed...)
}
