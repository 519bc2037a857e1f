package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/engine"
	"github.com/lixenwraith/ikrig/host"
	"github.com/lixenwraith/ikrig/vmath"
)

const testController = "ctrl-a"

type fixture struct {
	t         *testing.T
	scene     *host.MemoryScene
	anim      *host.RecordingAnimator
	rig       *engine.Rig
	readiness *ReadinessSystem
}

// newFixture builds a rig with every system installed, bound to a controller with the given clips
func newFixture(t *testing.T, clips ...string) *fixture {
	t.Helper()
	scene := host.NewMemoryScene()
	anim := host.NewRecordingAnimator()
	rig := engine.NewRig(scene, anim)

	f := &fixture{
		t:         t,
		scene:     scene,
		anim:      anim,
		rig:       rig,
		readiness: NewReadinessSystem(rig),
	}
	rig.AddSystem(NewBlendSystem(rig))
	rig.AddSystem(NewPlaybackSystem(rig))
	rig.AddSystem(NewGlobalSystem(rig))

	ctrl := &host.StaticController{ControllerID: testController, ClipNames: clips, Human: true}
	if err := rig.Refresh(ctrl); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	return f
}

func (f *fixture) node(name string, x, y, z float64) core.Handle {
	f.t.Helper()
	h, err := f.scene.Create(name, vmath.Pose{Position: mgl64.Vec3{x, y, z}, Rotation: mgl64.QuatIdent()}, core.NoHandle)
	if err != nil {
		f.t.Fatalf("Create %s failed: %v", name, err)
	}
	return h
}

// target attaches h to ref with location enabled
func (f *fixture) target(ref engine.TargetRef, h core.Handle) {
	f.t.Helper()
	if err := f.rig.SetAttachment(ref, h); err != nil {
		f.t.Fatalf("SetAttachment %v failed: %v", ref, err)
	}
	if err := f.rig.SetUseLocation(ref, true); err != nil {
		f.t.Fatalf("SetUseLocation %v failed: %v", ref, err)
	}
}

// timed adds a located timed target at tm on schedule 0
func (f *fixture) timed(limb core.Limb, tm float64, h core.Handle) engine.TargetRef {
	f.t.Helper()
	ref, err := f.rig.AddTimedTarget(0, limb)
	if err != nil {
		f.t.Fatalf("AddTimedTarget failed: %v", err)
	}
	f.target(ref, h)
	if err := f.rig.SetTime(ref, tm); err != nil {
		f.t.Fatalf("SetTime failed: %v", err)
	}
	return ref
}

func (f *fixture) get(ref engine.TargetRef) *targetView {
	f.t.Helper()
	target, err := f.rig.Target(ref)
	if err != nil {
		f.t.Fatalf("Target %v failed: %v", ref, err)
	}
	return &targetView{weight: target.State.Weight, played: target.State.Played, captured: target.State.Captured}
}

type targetView struct {
	weight   float64
	played   bool
	captured vmath.Pose
}

// step runs one IK pass the way a host does: goals cleared, then the rig updates
func (f *fixture) step(clip string, tm, dt float64) {
	f.anim.Reset()
	f.rig.Update(engine.Frame{
		ControllerID:   testController,
		Clip:           clip,
		NormalizedTime: tm,
		DeltaTime:      dt,
	})
}

func (f *fixture) local(h core.Handle) mgl64.Vec3 {
	f.t.Helper()
	p, ok := f.scene.LocalPose(h)
	if !ok {
		f.t.Fatalf("LocalPose of %v failed", h)
	}
	return p.Position
}
