package engine

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/tiendc/go-deepcopy"

	"github.com/lixenwraith/ikrig/component"
	"github.com/lixenwraith/ikrig/event"
	"github.com/lixenwraith/ikrig/host"
	"github.com/lixenwraith/ikrig/parameter"
	"github.com/lixenwraith/ikrig/status"
)

// Rig owns the authored IK schedules of one humanoid and runs its systems once per IK pass
// Not safe for concurrent use; authoring and Update must happen on the same thread
type Rig struct {
	Scene    host.Scene
	Animator host.Animator
	Applier  *host.Applier

	Schedules []*component.Schedule
	Globals   *component.Globals

	// Frame is the host sample of the running update
	Frame Frame
	// Playback is owned by the playback system
	Playback PlaybackState

	Stats *status.Registry

	controller   host.Controller
	controllerID string
	bound        bool
	stale        bool
	issue        error
	individual   bool
	started      bool
	frameNumber  int64

	queue   *event.EventQueue
	router  *EventRouter
	systems []System

	statOverwritten *atomic.Int64
}

// NewRig creates an unbound rig; call Refresh with the host controller before the first Update
func NewRig(scene host.Scene, animator host.Animator) *Rig {
	queue := event.NewEventQueue()
	stats := status.NewRegistry()
	return &Rig{
		Scene:    scene,
		Animator: animator,
		Applier:  host.NewApplier(scene, animator),
		Globals:  component.NewGlobals(),
		Stats:    stats,
		issue:    ErrMissingBinding,
		queue:    queue,
		router:   NewEventRouter(queue),

		statOverwritten: stats.Ints.Get("events.overwritten"),
	}
}

// AddSystem adds a system, keeps systems sorted by priority and registers it for events it declares
func (r *Rig) AddSystem(system System) {
	r.systems = append(r.systems, system)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(r.systems)-1; i++ {
		for j := 0; j < len(r.systems)-i-1; j++ {
			if r.systems[j].Priority() > r.systems[j+1].Priority() {
				r.systems[j], r.systems[j+1] = r.systems[j+1], r.systems[j]
			}
		}
	}

	if handler, ok := system.(EventHandler); ok {
		r.router.Register(handler)
	}
}

// Systems returns a copy of the registered systems in run order
func (r *Rig) Systems() []System {
	result := make([]System, len(r.systems))
	copy(result, r.systems)
	return result
}

// RegisterEventHandler subscribes a non-system handler such as an observer
func (r *Rig) RegisterEventHandler(handler EventHandler) {
	r.router.Register(handler)
}

// PushEvent queues an event stamped with the current frame number
func (r *Rig) PushEvent(eventType event.EventType, payload any) {
	r.queue.Push(event.Event{
		Type:    eventType,
		Payload: payload,
		Frame:   r.frameNumber,
	})
}

// Flush delivers pending events immediately, used after authoring outside the frame loop
func (r *Rig) Flush() {
	r.router.DispatchAll()
}

// FrameNumber returns the count of Update calls
func (r *Rig) FrameNumber() int64 {
	return r.frameNumber
}

// Update runs one IK pass for the sampled host frame
func (r *Rig) Update(frame Frame) {
	r.frameNumber++
	r.Frame = frame.sanitized()

	// Authoring edits made since the last pass reclassify before evaluation
	r.router.DispatchAll()

	if r.issue != nil {
		return
	}
	r.checkController(frame.ControllerID)

	if !r.started {
		r.Start()
	}

	for _, system := range r.systems {
		system.Update()
	}

	r.router.DispatchAll()
	r.statOverwritten.Store(int64(r.queue.Overwritten()))
}

func (r *Rig) checkController(current string) {
	if current == "" {
		return
	}
	stale := current != r.controllerID
	if stale && !r.stale {
		log.Printf("rig: controller changed from %q to %q, individual IK suspended until refresh", r.controllerID, current)
		r.PushEvent(event.EventControllerStale, &event.StalePayload{Bound: r.controllerID, Current: current})
	}
	r.stale = stale
}

// Start captures the initial local pose of every attached target and clears blend state
// Update calls it on the first pass; call Stop then Start to re-enter play
func (r *Rig) Start() {
	for _, target := range r.allTargets() {
		target.ResetBlend()
		target.State.TotalTime = 0
		r.Capture(target)
	}
	r.Playback = PlaybackState{}
	r.Stats.Reset(parameter.SessionStatPrefixes...)
	r.started = true
}

// Stop restores every captured attachment and ends the play session
// Targets restore in reverse so a shared attachment ends at its earliest capture
func (r *Rig) Stop() {
	targets := r.allTargets()
	for i := len(targets) - 1; i >= 0; i-- {
		r.Restore(targets[i])
		targets[i].ResetBlend()
	}
	r.started = false
}

// Started reports whether a play session is running
func (r *Rig) Started() bool {
	return r.started
}

// Capture snapshots the target attachment's local pose; false when the handle is dead
func (r *Rig) Capture(target *component.Target) bool {
	pose, ok := r.Scene.LocalPose(target.Config.Attachment)
	if ok {
		target.Capture(pose)
	}
	return ok
}

func (r *Rig) allTargets() []*component.Target {
	targets := make([]*component.Target, 0, len(r.Globals.Targets))
	targets = append(targets, r.Globals.Targets[:]...)
	for _, s := range r.Schedules {
		for _, track := range s.Tracks {
			targets = append(targets, track.Targets()...)
		}
	}
	return targets
}

// Refresh rederives schedules from the controller clip list
// With the same controller every schedule is kept by index; with a different one a schedule is kept
// only when its clip name still sits at the same index. Schedules past the new clip count are dropped
func (r *Rig) Refresh(ctrl host.Controller) error {
	r.controller = ctrl
	if ctrl == nil {
		r.issue = ErrMissingBinding
		return fmt.Errorf("refresh: %w", r.issue)
	}
	if !ctrl.IsHuman() {
		r.issue = ErrNotHumanoid
		return fmt.Errorf("refresh %q: %w", ctrl.ID(), r.issue)
	}

	clips := ctrl.Clips()
	sameController := r.bound && ctrl.ID() == r.controllerID

	rebuilt := make([]*component.Schedule, len(clips))
	preserved := 0
	for i, clip := range clips {
		if i < len(r.Schedules) {
			old := r.Schedules[i]
			if sameController || old.Clip == clip.Name {
				old.Index = i
				old.Clip = clip.Name
				rebuilt[i] = old
				preserved++
				continue
			}
		}
		rebuilt[i] = component.NewSchedule(i, clip.Name)
	}

	r.Schedules = rebuilt
	r.controllerID = ctrl.ID()
	r.bound = true
	r.stale = false
	r.issue = nil

	log.Printf("rig: refreshed %d schedules for controller %q (%d preserved)", len(clips), ctrl.ID(), preserved)
	r.PushEvent(event.EventSchedulesRebuilt, &event.RebuildPayload{
		ControllerID: ctrl.ID(),
		ClipCount:    len(clips),
		Preserved:    preserved,
	})
	r.Flush()
	return nil
}

// Controller returns the controller bound by the last Refresh
func (r *Rig) Controller() host.Controller {
	return r.controller
}

// Issue reports why the rig is not fully running, nil when it is
func (r *Rig) Issue() error {
	if r.issue != nil {
		return r.issue
	}
	if r.stale {
		return ErrStaleController
	}
	return nil
}

// Stale reports whether the host controller differs from the one schedules were built for
func (r *Rig) Stale() bool {
	return r.stale
}

// SetIndividualLive records whether any schedule classified active; set by readiness classification
func (r *Rig) SetIndividualLive(live bool) {
	r.individual = live
}

// IndividualLive reports whether any schedule classified active
func (r *Rig) IndividualLive() bool {
	return r.individual
}

// IndividualEnabled reports whether per-clip evaluation runs this frame
func (r *Rig) IndividualEnabled() bool {
	return r.issue == nil && !r.stale && r.individual
}

// GlobalEnabled reports whether global overrides run this frame; a stale controller does not stop them
func (r *Rig) GlobalEnabled() bool {
	return r.issue == nil && r.Globals.Enabled
}

// Snapshot is a detached copy of rig data for rendering outside the update
// Targets referenced from several track views are copied independently
type Snapshot struct {
	Frame      int64
	Schedules  []*component.Schedule
	Globals    *component.Globals
	Playback   PlaybackState
	Individual bool
	Issue      error
}

// Snapshot deep copies schedules and globals
func (r *Rig) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{
		Frame:      r.frameNumber,
		Playback:   r.Playback,
		Individual: r.IndividualEnabled(),
		Issue:      r.Issue(),
	}
	if err := deepcopy.Copy(&snap.Schedules, r.Schedules); err != nil {
		return nil, fmt.Errorf("snapshot schedules: %w", err)
	}
	if err := deepcopy.Copy(&snap.Globals, r.Globals); err != nil {
		return nil, fmt.Errorf("snapshot globals: %w", err)
	}
	return snap, nil
}
