package system

import (
	"sync/atomic"

	"github.com/lixenwraith/ikrig/component"
	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/engine"
	"github.com/lixenwraith/ikrig/event"
)

// ClassifyTarget derives a descriptor status from its attachment and channel flags
// A dead handle counts as no attachment
func ClassifyTarget(cfg component.TargetConfig, valid func(core.Handle) bool) core.Status {
	attached := !cfg.Attachment.IsZero() && valid(cfg.Attachment)
	flagged := cfg.HasFlags()

	switch {
	case attached && flagged:
		return core.StatusActive
	case attached || flagged:
		return core.StatusIncomplete
	default:
		return core.StatusAbsent
	}
}

// ClassifyTrack folds the default and timed statuses by max severity
func ClassifyTrack(def core.Status, timed ...core.Status) core.Status {
	result := def
	for _, s := range timed {
		result = core.MaxStatus(result, s)
	}
	return result
}

// ClassifySchedule folds the four track statuses by max severity
func ClassifySchedule(tracks [core.LimbCount]core.Status) core.Status {
	return ClassifyTrack(core.StatusAbsent, tracks[:]...)
}

// IndividualLive reports whether any schedule is active
func IndividualLive(schedules []core.Status) bool {
	for _, s := range schedules {
		if s == core.StatusActive {
			return true
		}
	}
	return false
}

// ReadinessSystem reclassifies the rig whenever authored data changes
// It is event driven only; nothing runs per frame
type ReadinessSystem struct {
	rig *engine.Rig

	statRuns   *atomic.Int64
	statActive *atomic.Int64
}

// NewReadinessSystem creates the classifier and registers it with the rig
func NewReadinessSystem(rig *engine.Rig) *ReadinessSystem {
	s := &ReadinessSystem{
		rig:        rig,
		statRuns:   rig.Stats.Ints.Get("readiness.runs"),
		statActive: rig.Stats.Ints.Get("readiness.active_schedules"),
	}
	rig.RegisterEventHandler(s)
	return s
}

// EventTypes returns the event types ReadinessSystem handles
func (s *ReadinessSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventAuthoringChanged,
		event.EventSchedulesRebuilt,
	}
}

// HandleEvent reclassifies everything; edits arrive in bursts and the rig is small
func (s *ReadinessSystem) HandleEvent(ev event.Event) {
	s.Classify()
}

// Classify recomputes every status, the sorted views and the rig live flag
func (s *ReadinessSystem) Classify() {
	r := s.rig
	valid := r.Scene.Valid

	for _, target := range r.Globals.Targets {
		target.Status = ClassifyTarget(target.Config, valid)
	}

	statuses := make([]core.Status, len(r.Schedules))
	active := int64(0)
	for i, sched := range r.Schedules {
		var tracks [core.LimbCount]core.Status
		for limb, track := range sched.Tracks {
			tracks[limb] = s.classifyTrack(track, valid)
		}
		sched.Status = ClassifySchedule(tracks)
		statuses[i] = sched.Status
		if sched.Status == core.StatusActive {
			active++
		}
	}

	r.SetIndividualLive(IndividualLive(statuses))
	s.statRuns.Add(1)
	s.statActive.Store(active)
}

func (s *ReadinessSystem) classifyTrack(track *component.Track, valid func(core.Handle) bool) core.Status {
	track.Default.Status = ClassifyTarget(track.Default.Config, valid)

	timed := make([]core.Status, len(track.Timed))
	for i, target := range track.Timed {
		target.Status = ClassifyTarget(target.Config, valid)
		timed[i] = target.Status
	}

	track.SortByTime()
	track.RebuildEligible()
	track.Status = ClassifyTrack(track.Default.Status, timed...)
	return track.Status
}
