package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/event"
	"github.com/lixenwraith/ikrig/host"
	"github.com/lixenwraith/ikrig/parameter"
	"github.com/lixenwraith/ikrig/vmath"
)

func newTestRig(t *testing.T, id string, clips ...string) (*Rig, *host.MemoryScene) {
	t.Helper()
	scene := host.NewMemoryScene()
	r := NewRig(scene, host.NewRecordingAnimator())
	if err := r.Refresh(&host.StaticController{ControllerID: id, ClipNames: clips, Human: true}); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	return r, scene
}

func createNode(t *testing.T, scene *host.MemoryScene, name string, x float64) core.Handle {
	t.Helper()
	h, err := scene.Create(name, vmath.Pose{Position: mgl64.Vec3{x, 0, 0}, Rotation: mgl64.QuatIdent()}, core.NoHandle)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return h
}

type recordingHandler struct {
	types  []event.EventType
	events []event.Event
}

func (h *recordingHandler) HandleEvent(ev event.Event)      { h.events = append(h.events, ev) }
func (h *recordingHandler) EventTypes() []event.EventType { return h.types }

type prioritySystem struct {
	name     string
	priority int
	updates  *[]string
}

func (s *prioritySystem) Name() string  { return s.name }
func (s *prioritySystem) Priority() int { return s.priority }
func (s *prioritySystem) Update()       { *s.updates = append(*s.updates, s.name) }

func TestUpdateWithoutBinding(t *testing.T) {
	r := NewRig(host.NewMemoryScene(), host.NewRecordingAnimator())
	var ran []string
	r.AddSystem(&prioritySystem{name: "only", updates: &ran})

	r.Update(Frame{Clip: "walk", NormalizedTime: 0.5, DeltaTime: 0.016})
	if !errors.Is(r.Issue(), ErrMissingBinding) {
		t.Errorf("Expected missing binding, got %v", r.Issue())
	}
	if len(ran) != 0 || r.Started() {
		t.Error("Unbound rig must not run systems or start")
	}

	if err := r.Refresh(nil); !errors.Is(err, ErrMissingBinding) {
		t.Errorf("Expected missing binding from nil controller, got %v", err)
	}
	err := r.Refresh(&host.StaticController{ControllerID: "quad", ClipNames: []string{"trot"}})
	if !errors.Is(err, ErrNotHumanoid) {
		t.Errorf("Expected not humanoid, got %v", err)
	}
	r.Update(Frame{})
	if len(ran) != 0 {
		t.Error("Non-humanoid rig must not run systems")
	}
}

func TestSystemsRunInPriorityOrder(t *testing.T) {
	r, _ := newTestRig(t, "ctrl", "walk")
	var ran []string
	r.AddSystem(&prioritySystem{name: "c", priority: 30, updates: &ran})
	r.AddSystem(&prioritySystem{name: "a", priority: 10, updates: &ran})
	r.AddSystem(&prioritySystem{name: "b", priority: 20, updates: &ran})

	r.Update(Frame{ControllerID: "ctrl", Clip: "walk", DeltaTime: 0.016})
	want := []string{"a", "b", "c"}
	for i := range want {
		if ran[i] != want[i] {
			t.Fatalf("Expected run order %v, got %v", want, ran)
		}
	}
	if r.FrameNumber() != 1 {
		t.Errorf("Expected frame 1, got %d", r.FrameNumber())
	}
}

type listeningSystem struct {
	prioritySystem
	seen int
}

func (s *listeningSystem) HandleEvent(ev event.Event) { s.seen++ }
func (s *listeningSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventLoopWrapped, event.EventBlendSettled}
}

func TestAddSystemRegistersEventHandlers(t *testing.T) {
	r, _ := newTestRig(t, "ctrl", "walk")
	var ran []string
	r.AddSystem(&prioritySystem{name: "plain", priority: 10, updates: &ran})
	listener := &listeningSystem{prioritySystem: prioritySystem{name: "listener", priority: 20, updates: &ran}}
	r.AddSystem(listener)

	if got := r.router.HandlerCount(event.EventLoopWrapped); got != 1 {
		t.Errorf("Expected 1 loop handler, got %d", got)
	}
	if got := r.router.HandlerCount(event.EventBlendSettled); got != 1 {
		t.Errorf("Expected 1 settle handler, got %d", got)
	}
	if got := r.router.HandlerCount(event.EventTargetActivated); got != 0 {
		t.Errorf("Expected no activation handlers, got %d", got)
	}

	r.PushEvent(event.EventLoopWrapped, &event.LoopPayload{Previous: 0.9, Current: 0.1})
	r.PushEvent(event.EventTargetActivated, nil)
	r.Flush()
	if listener.seen != 1 {
		t.Errorf("Expected listener to see 1 event, got %d", listener.seen)
	}
}

func TestRefreshPreservesSchedules(t *testing.T) {
	r, scene := newTestRig(t, "ctrl-a", "idle", "walk", "run")
	h := createNode(t, scene, "cup", 1)
	if err := r.SetAttachment(DefaultRef(1, core.RightHand), h); err != nil {
		t.Fatal(err)
	}
	if _, err := r.AddTimedTarget(2, core.LeftFoot); err != nil {
		t.Fatal(err)
	}

	// Different controller, same leading clips: kept by index, tail dropped
	if err := r.Refresh(&host.StaticController{ControllerID: "ctrl-b", ClipNames: []string{"idle", "walk"}, Human: true}); err != nil {
		t.Fatal(err)
	}
	if len(r.Schedules) != 2 {
		t.Fatalf("Expected 2 schedules, got %d", len(r.Schedules))
	}
	target, _ := r.Target(DefaultRef(1, core.RightHand))
	if target.Config.Attachment != h {
		t.Error("Schedule at an unchanged index should keep its authored data")
	}

	// Reordered clips on a new controller: nothing matches
	if err := r.Refresh(&host.StaticController{ControllerID: "ctrl-c", ClipNames: []string{"walk", "idle", "jump"}, Human: true}); err != nil {
		t.Fatal(err)
	}
	if len(r.Schedules) != 3 {
		t.Fatalf("Expected 3 schedules, got %d", len(r.Schedules))
	}
	for i, s := range r.Schedules {
		if s.Index != i {
			t.Errorf("Schedule %d has index %d", i, s.Index)
		}
		if !s.Track(core.RightHand).Default.Config.Attachment.IsZero() {
			t.Errorf("Schedule %d should be rebuilt empty", i)
		}
	}
	if _, err := r.Target(TimedRef(2, core.LeftFoot, 0)); !errors.Is(err, ErrNoSuchTarget) {
		t.Errorf("Expected dropped timed target, got %v", err)
	}
}

func TestRefreshSameControllerKeepsByIndex(t *testing.T) {
	r, scene := newTestRig(t, "ctrl", "idle", "walk")
	h := createNode(t, scene, "cup", 1)
	if err := r.SetAttachment(DefaultRef(0, core.LeftHand), h); err != nil {
		t.Fatal(err)
	}

	if err := r.Refresh(&host.StaticController{ControllerID: "ctrl", ClipNames: []string{"rest"}, Human: true}); err != nil {
		t.Fatal(err)
	}
	s, err := r.Schedule(0)
	if err != nil {
		t.Fatal(err)
	}
	if s.Clip != "rest" {
		t.Errorf("Expected clip renamed to rest, got %q", s.Clip)
	}
	if s.Track(core.LeftHand).Default.Config.Attachment != h {
		t.Error("Same controller should keep authored data by index")
	}
	if _, err := r.ScheduleByClip("walk"); !errors.Is(err, ErrNoSuchSchedule) {
		t.Errorf("Expected walk dropped, got %v", err)
	}
}

func TestStaleControllerDetection(t *testing.T) {
	r, _ := newTestRig(t, "ctrl-a", "walk")
	h := &recordingHandler{types: []event.EventType{event.EventControllerStale}}
	r.RegisterEventHandler(h)

	r.Update(Frame{ControllerID: "ctrl-b"})
	r.Update(Frame{ControllerID: "ctrl-b"})
	if !r.Stale() || !errors.Is(r.Issue(), ErrStaleController) {
		t.Fatalf("Expected stale rig, got %v", r.Issue())
	}
	if len(h.events) != 1 {
		t.Errorf("Expected a single stale event, got %d", len(h.events))
	}
	p := h.events[0].Payload.(*event.StalePayload)
	if p.Bound != "ctrl-a" || p.Current != "ctrl-b" {
		t.Errorf("Unexpected payload %+v", p)
	}

	if err := r.Refresh(&host.StaticController{ControllerID: "ctrl-b", ClipNames: []string{"walk"}, Human: true}); err != nil {
		t.Fatal(err)
	}
	if r.Stale() || r.Issue() != nil {
		t.Errorf("Refresh should clear staleness, got %v", r.Issue())
	}
}

func TestAuthoringErrors(t *testing.T) {
	r, _ := newTestRig(t, "ctrl", "walk")

	if _, err := r.Schedule(3); !errors.Is(err, ErrNoSuchSchedule) {
		t.Errorf("Expected ErrNoSuchSchedule, got %v", err)
	}
	if _, err := r.Track(0, core.Limb(9)); !errors.Is(err, ErrInvalidLimb) {
		t.Errorf("Expected ErrInvalidLimb, got %v", err)
	}
	if _, err := r.Target(TimedRef(0, core.RightHand, 0)); !errors.Is(err, ErrNoSuchTarget) {
		t.Errorf("Expected ErrNoSuchTarget, got %v", err)
	}
	if err := r.SetTime(DefaultRef(0, core.RightHand), 0.5); !errors.Is(err, ErrNotTimed) {
		t.Errorf("Expected ErrNotTimed for default, got %v", err)
	}
	if err := r.SetTime(GlobalRef(core.RightHand), 0.5); !errors.Is(err, ErrNotTimed) {
		t.Errorf("Expected ErrNotTimed for global, got %v", err)
	}
	if err := r.RemoveTimedTarget(DefaultRef(0, core.RightHand)); !errors.Is(err, ErrNotTimed) {
		t.Errorf("Expected ErrNotTimed on remove, got %v", err)
	}
}

func TestAuthoringClampsNumbers(t *testing.T) {
	r, _ := newTestRig(t, "ctrl", "walk")
	ref, err := r.AddTimedTarget(0, core.RightFoot)
	if err != nil {
		t.Fatal(err)
	}
	target, _ := r.Target(ref)

	tests := []struct {
		name  string
		set   func() error
		got   func() float64
		check func(float64) bool
	}{
		{"negative time", func() error { return r.SetTime(ref, -0.5) }, func() float64 { return target.Config.Time }, func(v float64) bool { return v == 0 }},
		{"time past loop", func() error { return r.SetTime(ref, 1.5) }, func() float64 { return target.Config.Time }, func(v float64) bool { return v < 1 && v > 0.999 }},
		{"nan time", func() error { return r.SetTime(ref, math.NaN()) }, func() float64 { return target.Config.Time }, func(v float64) bool { return v == 0 }},
		{"negative speed", func() error { return r.SetSpeed(ref, -3) }, func() float64 { return target.Config.Speed }, func(v float64) bool { return v == 0 }},
		{"huge speed", func() error { return r.SetSpeed(ref, 1e9) }, func() float64 { return target.Config.Speed }, func(v float64) bool { return v == parameter.MaxBlendSpeed }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.set(); err != nil {
				t.Fatal(err)
			}
			if v := tt.got(); !tt.check(v) {
				t.Errorf("Unexpected clamped value %v", v)
			}
		})
	}
}

func TestAuthoringEvents(t *testing.T) {
	r, _ := newTestRig(t, "ctrl", "walk", "run")
	h := &recordingHandler{types: []event.EventType{event.EventAuthoringChanged}}
	r.RegisterEventHandler(h)

	if err := r.SetDynamic(1, core.LeftFoot, true); err != nil {
		t.Fatal(err)
	}
	r.SetGlobalEnabled(true)
	r.Flush()

	if len(h.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(h.events))
	}
	p := h.events[0].Payload.(*event.AuthoringPayload)
	if p.Schedule != 1 || p.Limb != core.LeftFoot {
		t.Errorf("Unexpected payload %+v", p)
	}
	if g := h.events[1].Payload.(*event.AuthoringPayload); g.Schedule != event.GlobalSchedule {
		t.Errorf("Expected global schedule marker, got %d", g.Schedule)
	}
}

func TestRemoveTimedRestoresCapture(t *testing.T) {
	r, scene := newTestRig(t, "ctrl", "walk")
	r.Start()

	node := createNode(t, scene, "hold", 2)
	first, _ := r.AddTimedTarget(0, core.LeftHand)
	second, _ := r.AddTimedTarget(0, core.LeftHand)
	if err := r.SetAttachment(first, node); err != nil {
		t.Fatal(err)
	}
	scene.SetLocalPose(node, vmath.Pose{Position: mgl64.Vec3{7, 7, 7}, Rotation: mgl64.QuatIdent()})

	if err := r.RemoveTimedTarget(first); err != nil {
		t.Fatal(err)
	}
	if p, _ := scene.LocalPose(node); p.Position != (mgl64.Vec3{2, 0, 0}) {
		t.Errorf("Expected attachment restored, got %v", p.Position)
	}

	track, _ := r.Track(0, core.LeftHand)
	if len(track.Timed) != 1 {
		t.Fatalf("Expected 1 timed target left, got %d", len(track.Timed))
	}
	// Later authoring indices shift down
	if _, err := r.Target(second); !errors.Is(err, ErrNoSuchTarget) {
		t.Errorf("Expected old index 1 gone, got %v", err)
	}
}

func TestClearTimedTargets(t *testing.T) {
	r, scene := newTestRig(t, "ctrl", "walk")
	h := &recordingHandler{types: []event.EventType{event.EventAuthoringChanged}}
	r.RegisterEventHandler(h)

	node := createNode(t, scene, "hold", 2)
	first, _ := r.AddTimedTarget(0, core.LeftHand)
	second, _ := r.AddTimedTarget(0, core.LeftHand)
	for _, ref := range []TargetRef{first, second} {
		if err := r.SetAttachment(ref, node); err != nil {
			t.Fatal(err)
		}
	}
	r.Start()

	// The later target captured the node after it had moved
	scene.SetLocalPose(node, vmath.Pose{Position: mgl64.Vec3{5, 0, 0}, Rotation: mgl64.QuatIdent()})
	target, _ := r.Target(second)
	r.Capture(target)
	scene.SetLocalPose(node, vmath.Pose{Position: mgl64.Vec3{9, 9, 9}, Rotation: mgl64.QuatIdent()})

	r.Flush()
	h.events = nil
	if err := r.ClearTimedTargets(0, core.LeftHand); err != nil {
		t.Fatal(err)
	}

	if p, _ := scene.LocalPose(node); p.Position != (mgl64.Vec3{2, 0, 0}) {
		t.Errorf("Expected earliest capture restored last, got %v", p.Position)
	}
	track, _ := r.Track(0, core.LeftHand)
	if len(track.Timed) != 0 || len(track.Eligible) != 0 {
		t.Errorf("Expected no timed targets left, got %d", len(track.Timed))
	}
	if track.Default == nil {
		t.Error("Default target must survive")
	}

	r.Flush()
	if len(h.events) != 1 {
		t.Fatalf("Expected 1 authoring event, got %d", len(h.events))
	}
	if p := h.events[0].Payload.(*event.AuthoringPayload); p.Schedule != 0 || p.Limb != core.LeftHand {
		t.Errorf("Unexpected payload %+v", p)
	}

	if err := r.ClearTimedTargets(0, core.Limb(7)); !errors.Is(err, ErrInvalidLimb) {
		t.Errorf("Expected ErrInvalidLimb, got %v", err)
	}
	if err := r.ClearTimedTargets(3, core.LeftHand); !errors.Is(err, ErrNoSuchSchedule) {
		t.Errorf("Expected ErrNoSuchSchedule, got %v", err)
	}
}

func TestStopRestoresEveryCapture(t *testing.T) {
	r, scene := newTestRig(t, "ctrl", "walk")
	node := createNode(t, scene, "hold", 4)
	if err := r.SetAttachment(DefaultRef(0, core.RightFoot), node); err != nil {
		t.Fatal(err)
	}
	r.Update(Frame{ControllerID: "ctrl", Clip: "walk", DeltaTime: 0.016})
	if !r.Started() {
		t.Fatal("First update should start the session")
	}

	scene.SetLocalPose(node, vmath.Pose{Position: mgl64.Vec3{0, 9, 0}, Rotation: mgl64.QuatIdent()})
	r.Stop()
	if p, _ := scene.LocalPose(node); p.Position != (mgl64.Vec3{4, 0, 0}) {
		t.Errorf("Expected start pose restored, got %v", p.Position)
	}
	if r.Started() {
		t.Error("Stop should end the session")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	r, scene := newTestRig(t, "ctrl", "walk")
	ref, _ := r.AddTimedTarget(0, core.RightHand)
	if err := r.SetAttachment(ref, createNode(t, scene, "cup", 1)); err != nil {
		t.Fatal(err)
	}

	snap, err := r.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.Schedules[0] == r.Schedules[0] || snap.Globals == r.Globals {
		t.Fatal("Snapshot must not share pointers with the rig")
	}

	snap.Schedules[0].Track(core.RightHand).Timed[0].Config.Speed = 42
	snap.Globals.Enabled = true
	target, _ := r.Target(ref)
	if target.Config.Speed != parameter.DefaultBlendSpeed || r.Globals.Enabled {
		t.Error("Mutating the snapshot leaked into the rig")
	}
}

func TestFrameSanitized(t *testing.T) {
	f := Frame{NormalizedTime: 4.25, DeltaTime: math.Inf(1)}.sanitized()
	if f.NormalizedTime != 0.25 || f.DeltaTime != 0 {
		t.Errorf("Unexpected sanitized frame %+v", f)
	}
	f = Frame{NormalizedTime: math.NaN(), DeltaTime: -1}.sanitized()
	if f.NormalizedTime != 0 || f.DeltaTime != 0 {
		t.Errorf("Unexpected sanitized frame %+v", f)
	}
}
