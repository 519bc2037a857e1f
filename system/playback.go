package system

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/ikrig/component"
	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/engine"
	"github.com/lixenwraith/ikrig/event"
	"github.com/lixenwraith/ikrig/parameter"
	"github.com/lixenwraith/ikrig/status"
)

// PlaybackSystem tracks normalized clip time, detects loop wraparound and marks the playing schedule
type PlaybackSystem struct {
	rig *engine.Rig

	statWraps *atomic.Int64
	statTime  *status.Float
	statClip  *status.Label
}

// NewPlaybackSystem creates a new playback tracker
func NewPlaybackSystem(rig *engine.Rig) engine.System {
	return &PlaybackSystem{
		rig:       rig,
		statWraps: rig.Stats.Ints.Get("playback.wraps"),
		statTime:  rig.Stats.Floats.Get("playback.time"),
		statClip:  rig.Stats.Strings.Get("playback.clip"),
	}
}

// Name returns system's name
func (s *PlaybackSystem) Name() string {
	return "playback"
}

// Priority returns the system's priority
func (s *PlaybackSystem) Priority() int {
	return parameter.PriorityPlayback
}

// Update advances playback state from the sampled frame
func (s *PlaybackSystem) Update() {
	r := s.rig
	pb := &r.Playback
	now := r.Frame.NormalizedTime

	wrapped := pb.Tracking && now < pb.Time
	if pb.Tracking {
		pb.Previous = pb.Time
	}
	pb.Time = now
	pb.Wrapped = wrapped
	pb.Tracking = true

	s.statTime.Set(now)
	s.statClip.Store(r.Frame.Clip)

	if !r.IndividualEnabled() {
		if wrapped {
			pb.PendingWrap = true
		}
		for _, sched := range r.Schedules {
			sched.Playing = false
		}
		return
	}

	if wrapped || pb.PendingWrap {
		pb.PendingWrap = false
		s.resetLoop()
		s.statWraps.Add(1)
		log.Printf("playback: clip %q wrapped %.3f -> %.3f", r.Frame.Clip, pb.Previous, now)
		r.PushEvent(event.EventLoopWrapped, &event.LoopPayload{Previous: pb.Previous, Current: now})
	}

	for _, sched := range r.Schedules {
		sched.Playing = sched.Clip == r.Frame.Clip
	}
}

// resetLoop rewinds every timed target of every dynamic active track and puts attachments back
func (s *PlaybackSystem) resetLoop() {
	for _, sched := range s.rig.Schedules {
		for _, track := range sched.Tracks {
			if !track.Dynamic || track.Status != core.StatusActive {
				continue
			}
			s.resetTrack(track)
		}
	}
}

func (s *PlaybackSystem) resetTrack(track *component.Track) {
	// Reverse so the earliest capture of a shared attachment lands last
	for i := len(track.Timed) - 1; i >= 0; i-- {
		target := track.Timed[i]
		target.ResetBlend()
		s.rig.Restore(target)
	}
}
