package system

import (
	"slices"
	"sync/atomic"

	"github.com/lixenwraith/ikrig/component"
	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/engine"
	"github.com/lixenwraith/ikrig/event"
	"github.com/lixenwraith/ikrig/parameter"
	"github.com/lixenwraith/ikrig/vmath"
)

// BlendSystem evaluates the playing schedule per limb and drives IK goals
type BlendSystem struct {
	rig *engine.Rig

	statApplied     *atomic.Int64
	statActivations *atomic.Int64
	statSettled     *atomic.Int64
	statSkipped     *atomic.Int64
}

// NewBlendSystem creates a new blend evaluator
func NewBlendSystem(rig *engine.Rig) engine.System {
	return &BlendSystem{
		rig:             rig,
		statApplied:     rig.Stats.Ints.Get("blend.applied"),
		statActivations: rig.Stats.Ints.Get("blend.activations"),
		statSettled:     rig.Stats.Ints.Get("blend.settled"),
		statSkipped:     rig.Stats.Ints.Get("blend.skipped"),
	}
}

// Name returns system's name
func (s *BlendSystem) Name() string {
	return "blend"
}

// Priority returns the system's priority
func (s *BlendSystem) Priority() int {
	return parameter.PriorityBlend
}

// Update evaluates every active track of every active playing schedule
func (s *BlendSystem) Update() {
	r := s.rig
	if !r.IndividualEnabled() {
		return
	}

	for _, sched := range r.Schedules {
		if sched.Status != core.StatusActive || !sched.Playing {
			continue
		}
		for _, track := range sched.Tracks {
			if track.Status != core.StatusActive {
				continue
			}
			s.evaluate(sched, track)
		}
	}
}

func (s *BlendSystem) evaluate(sched *component.Schedule, track *component.Track) {
	if !track.Dynamic || len(track.Eligible) == 0 {
		s.applyDefault(track)
		return
	}

	k := s.live(track, track.Search(s.rig.Playback.Time))
	if k < 0 {
		s.applyDefault(track)
		return
	}

	current := track.Eligible[k]
	previous := track.Default
	if p := s.live(track, k-1); p >= 0 {
		previous = track.Eligible[p]
	}

	if !current.State.Played {
		s.activate(sched, track, k)
	}
	if !current.State.HasCapture {
		s.statSkipped.Add(1)
		return
	}

	from := current.State.Captured
	if previous.State.HasCapture {
		from = previous.State.Captured
	}
	pose := vmath.BlendPose(from, current.State.Captured, current.State.Weight)
	s.rig.Scene.SetLocalPose(current.Config.Attachment, pose)
	s.apply(track.Limb, current)

	s.advance(sched, track, current)
}

// live steps back from k past targets whose attachment died since classification
func (s *BlendSystem) live(track *component.Track, k int) int {
	for ; k >= 0; k-- {
		if s.rig.Scene.Valid(track.Eligible[k].Config.Attachment) {
			return k
		}
	}
	return -1
}

// activate captures the target on its first eligible frame of the loop
func (s *BlendSystem) activate(sched *component.Schedule, track *component.Track, k int) {
	current := track.Eligible[k]
	current.State.Played = true
	current.State.TotalTime = track.NextTime(k)
	s.rig.Capture(current)
	s.statActivations.Add(1)

	s.rig.PushEvent(event.EventTargetActivated, &event.TargetPayload{
		Schedule: sched.Index,
		Clip:     sched.Clip,
		Limb:     track.Limb,
		Index:    slices.Index(track.Timed, current),
		Time:     current.Config.Time,
	})
}

// advance moves weight toward 1 at the target's speed
func (s *BlendSystem) advance(sched *component.Schedule, track *component.Track, current *component.Target) {
	if current.State.Weight >= 1 {
		return
	}
	current.State.Weight = vmath.Clamp01(current.State.Weight + s.rig.Frame.DeltaTime*current.Config.Speed)
	if current.State.Weight < 1 {
		return
	}

	s.statSettled.Add(1)
	s.rig.PushEvent(event.EventBlendSettled, &event.TargetPayload{
		Schedule: sched.Index,
		Clip:     sched.Clip,
		Limb:     track.Limb,
		Index:    slices.Index(track.Timed, current),
		Time:     current.Config.Time,
	})
}

func (s *BlendSystem) applyDefault(track *component.Track) {
	if track.Default.Status != core.StatusActive {
		return
	}
	s.apply(track.Limb, track.Default)
}

func (s *BlendSystem) apply(limb core.Limb, target *component.Target) {
	if s.rig.Applier.Apply(limb, target.Config) {
		s.statApplied.Add(1)
	} else {
		s.statSkipped.Add(1)
	}
}
