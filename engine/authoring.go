package engine

import (
	"fmt"

	"github.com/lixenwraith/ikrig/component"
	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/event"
	"github.com/lixenwraith/ikrig/parameter"
	"github.com/lixenwraith/ikrig/vmath"
)

// TargetRef addresses one authored target
type TargetRef struct {
	Global   bool
	Schedule int
	Limb     core.Limb
	Index    int // authoring index into the track's timed list, event.DefaultIndex for the default
}

// DefaultRef addresses the default target of a track
func DefaultRef(schedule int, limb core.Limb) TargetRef {
	return TargetRef{Schedule: schedule, Limb: limb, Index: event.DefaultIndex}
}

// TimedRef addresses a timed target by authoring index
func TimedRef(schedule int, limb core.Limb, index int) TargetRef {
	return TargetRef{Schedule: schedule, Limb: limb, Index: index}
}

// GlobalRef addresses the global override target of a limb
func GlobalRef(limb core.Limb) TargetRef {
	return TargetRef{Global: true, Schedule: event.GlobalSchedule, Limb: limb, Index: event.DefaultIndex}
}

// IsTimed reports whether the ref points into a timed list
func (ref TargetRef) IsTimed() bool {
	return !ref.Global && ref.Index != event.DefaultIndex
}

func (ref TargetRef) String() string {
	switch {
	case ref.Global:
		return fmt.Sprintf("global/%s", ref.Limb)
	case ref.Index == event.DefaultIndex:
		return fmt.Sprintf("schedule %d/%s/default", ref.Schedule, ref.Limb)
	default:
		return fmt.Sprintf("schedule %d/%s/timed %d", ref.Schedule, ref.Limb, ref.Index)
	}
}

// Schedule returns the schedule at clip index i
func (r *Rig) Schedule(i int) (*component.Schedule, error) {
	if i < 0 || i >= len(r.Schedules) {
		return nil, fmt.Errorf("schedule %d: %w", i, ErrNoSuchSchedule)
	}
	return r.Schedules[i], nil
}

// ScheduleByClip returns the first schedule authored for the named clip
func (r *Rig) ScheduleByClip(clip string) (*component.Schedule, error) {
	for _, s := range r.Schedules {
		if s.Clip == clip {
			return s, nil
		}
	}
	return nil, fmt.Errorf("clip %q: %w", clip, ErrNoSuchSchedule)
}

// Track returns the limb track of a schedule
func (r *Rig) Track(schedule int, limb core.Limb) (*component.Track, error) {
	if !limb.Valid() {
		return nil, fmt.Errorf("%v: %w", limb, ErrInvalidLimb)
	}
	s, err := r.Schedule(schedule)
	if err != nil {
		return nil, err
	}
	return s.Track(limb), nil
}

// Target resolves a ref to its target
func (r *Rig) Target(ref TargetRef) (*component.Target, error) {
	if !ref.Limb.Valid() {
		return nil, fmt.Errorf("%v: %w", ref, ErrInvalidLimb)
	}
	if ref.Global {
		return r.Globals.Targets[ref.Limb], nil
	}

	track, err := r.Track(ref.Schedule, ref.Limb)
	if err != nil {
		return nil, err
	}
	if ref.Index == event.DefaultIndex {
		return track.Default, nil
	}
	if ref.Index < 0 || ref.Index >= len(track.Timed) {
		return nil, fmt.Errorf("%v: %w", ref, ErrNoSuchTarget)
	}
	return track.Timed[ref.Index], nil
}

// AddTimedTarget appends an empty timed target to a track
func (r *Rig) AddTimedTarget(schedule int, limb core.Limb) (TargetRef, error) {
	track, err := r.Track(schedule, limb)
	if err != nil {
		return TargetRef{}, err
	}
	_, idx := track.AddTimed()
	ref := TimedRef(schedule, limb, idx)
	r.changed(ref)
	return ref, nil
}

// RemoveTimedTarget deletes a timed target; its attachment gets its captured pose back
func (r *Rig) RemoveTimedTarget(ref TargetRef) error {
	if !ref.IsTimed() {
		return fmt.Errorf("remove %v: %w", ref, ErrNotTimed)
	}
	target, err := r.Target(ref)
	if err != nil {
		return err
	}
	r.Restore(target)

	track, _ := r.Track(ref.Schedule, ref.Limb)
	track.RemoveTimed(ref.Index)
	r.changed(ref)
	return nil
}

// ClearTimedTargets deletes every timed target of a track
// Captures are restored in reverse so a shared attachment ends at its earliest capture
func (r *Rig) ClearTimedTargets(schedule int, limb core.Limb) error {
	track, err := r.Track(schedule, limb)
	if err != nil {
		return err
	}
	if len(track.Timed) == 0 {
		return nil
	}
	for i := len(track.Timed) - 1; i >= 0; i-- {
		r.Restore(track.Timed[i])
	}
	track.ClearTimed()
	r.changed(DefaultRef(schedule, limb))
	return nil
}

// SetDynamic toggles timed evaluation for a track
func (r *Rig) SetDynamic(schedule int, limb core.Limb, enabled bool) error {
	track, err := r.Track(schedule, limb)
	if err != nil {
		return err
	}
	track.Dynamic = enabled
	r.changed(DefaultRef(schedule, limb))
	return nil
}

// SetAttachment points a target at a scene transform
// While playing, the transform's current local pose is captured right away
func (r *Rig) SetAttachment(ref TargetRef, h core.Handle) error {
	target, err := r.Target(ref)
	if err != nil {
		return err
	}
	if target.Config.Attachment != h {
		r.Restore(target)
		target.State = component.TargetState{}
	}
	target.Config.Attachment = h
	if r.started {
		r.Capture(target)
	}
	r.changed(ref)
	return nil
}

// ClearAttachment detaches a target
func (r *Rig) ClearAttachment(ref TargetRef) error {
	return r.SetAttachment(ref, core.NoHandle)
}

// SetUseLocation toggles the position channel of a target
func (r *Rig) SetUseLocation(ref TargetRef, enabled bool) error {
	target, err := r.Target(ref)
	if err != nil {
		return err
	}
	target.Config.UseLocation = enabled
	r.changed(ref)
	return nil
}

// SetUseRotation toggles the rotation channel of a target
func (r *Rig) SetUseRotation(ref TargetRef, enabled bool) error {
	target, err := r.Target(ref)
	if err != nil {
		return err
	}
	target.Config.UseRotation = enabled
	r.changed(ref)
	return nil
}

// SetTime sets the activation time of a timed target, clamped into [0, 1)
func (r *Rig) SetTime(ref TargetRef, t float64) error {
	if !ref.IsTimed() {
		return fmt.Errorf("set time %v: %w", ref, ErrNotTimed)
	}
	target, err := r.Target(ref)
	if err != nil {
		return err
	}
	target.Config.Time = vmath.ClampTime(t)
	r.changed(ref)
	return nil
}

// SetSpeed sets the blend speed of a target; negative speeds store as 0 (never advances)
func (r *Rig) SetSpeed(ref TargetRef, speed float64) error {
	target, err := r.Target(ref)
	if err != nil {
		return err
	}
	target.Config.Speed = vmath.Clamp(speed, 0, parameter.MaxBlendSpeed)
	r.changed(ref)
	return nil
}

// SetGlobalEnabled switches the global override table on or off
func (r *Rig) SetGlobalEnabled(enabled bool) {
	r.Globals.Enabled = enabled
	r.changed(GlobalRef(core.RightHand))
}

// Restore writes the captured pose back onto the target attachment
func (r *Rig) Restore(target *component.Target) bool {
	if !target.State.HasCapture {
		return false
	}
	return r.Scene.SetLocalPose(target.Config.Attachment, target.State.Captured)
}

func (r *Rig) changed(ref TargetRef) {
	r.PushEvent(event.EventAuthoringChanged, &event.AuthoringPayload{
		Schedule: ref.Schedule,
		Limb:     ref.Limb,
	})
}
