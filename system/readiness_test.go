package system

import (
	"testing"

	"github.com/lixenwraith/ikrig/component"
	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/engine"
)

func TestClassifyTargetProperty(t *testing.T) {
	live := core.Handle{Index: 0, Generation: 1}
	dead := core.Handle{Index: 1, Generation: 1}
	valid := func(h core.Handle) bool { return h == live }

	for _, att := range []core.Handle{core.NoHandle, live, dead} {
		for _, loc := range []bool{false, true} {
			for _, rot := range []bool{false, true} {
				cfg := component.TargetConfig{Attachment: att, UseLocation: loc, UseRotation: rot}
				got := ClassifyTarget(cfg, valid)

				attached := att == live
				flagged := loc || rot
				want := core.StatusIncomplete
				switch {
				case attached && flagged:
					want = core.StatusActive
				case !attached && !flagged:
					want = core.StatusAbsent
				}
				if got != want {
					t.Errorf("attachment=%v loc=%v rot=%v: expected %v, got %v", att, loc, rot, want, got)
				}
			}
		}
	}
}

func TestClassifyTrackFold(t *testing.T) {
	tests := []struct {
		name  string
		def   core.Status
		timed []core.Status
		want  core.Status
	}{
		{"empty", core.StatusAbsent, nil, core.StatusAbsent},
		{"default active alone", core.StatusActive, []core.Status{core.StatusIncomplete}, core.StatusActive},
		{"incomplete timed", core.StatusAbsent, []core.Status{core.StatusAbsent, core.StatusIncomplete}, core.StatusIncomplete},
		{"active timed", core.StatusIncomplete, []core.Status{core.StatusActive}, core.StatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTrack(tt.def, tt.timed...); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	tracks := [core.LimbCount]core.Status{core.StatusAbsent, core.StatusIncomplete, core.StatusAbsent, core.StatusAbsent}
	if got := ClassifySchedule(tracks); got != core.StatusIncomplete {
		t.Errorf("Expected incomplete schedule, got %v", got)
	}
	if IndividualLive([]core.Status{core.StatusIncomplete, core.StatusAbsent}) {
		t.Error("No active schedule should not be live")
	}
	if !IndividualLive([]core.Status{core.StatusAbsent, core.StatusActive}) {
		t.Error("One active schedule should be live")
	}
}

func TestReadinessReclassifiesOnEdit(t *testing.T) {
	f := newFixture(t, "walk", "wave")
	if f.rig.IndividualLive() {
		t.Fatal("Empty rig should not be live")
	}

	h := f.node("cup", 1, 0, 0)
	ref := engine.DefaultRef(1, core.LeftHand)
	if err := f.rig.SetAttachment(ref, h); err != nil {
		t.Fatal(err)
	}
	f.rig.Flush()

	sched, _ := f.rig.Schedule(1)
	if sched.Status != core.StatusIncomplete {
		t.Errorf("Attachment without flags: expected incomplete, got %v", sched.Status)
	}

	if err := f.rig.SetUseRotation(ref, true); err != nil {
		t.Fatal(err)
	}
	f.rig.Flush()
	if sched.Status != core.StatusActive || !f.rig.IndividualLive() {
		t.Errorf("Expected active live rig, got %v live=%v", sched.Status, f.rig.IndividualLive())
	}

	if err := f.rig.ClearAttachment(ref); err != nil {
		t.Fatal(err)
	}
	f.rig.Flush()
	if sched.Status != core.StatusIncomplete || f.rig.IndividualLive() {
		t.Errorf("Flags without attachment: expected incomplete not live, got %v live=%v", sched.Status, f.rig.IndividualLive())
	}
}

func TestReadinessEligibleExcludesIncomplete(t *testing.T) {
	f := newFixture(t, "walk")
	a := f.timed(core.RightFoot, 0.6, f.node("a", 0, 0, 0))
	b, _ := f.rig.AddTimedTarget(0, core.RightFoot)
	if err := f.rig.SetAttachment(b, f.node("b", 0, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := f.rig.SetTime(b, 0.2); err != nil {
		t.Fatal(err)
	}
	f.rig.Flush()

	track, _ := f.rig.Track(0, core.RightFoot)
	if len(track.ByTime) != 2 || len(track.Eligible) != 1 {
		t.Fatalf("Expected 2 sorted and 1 eligible, got %d and %d", len(track.ByTime), len(track.Eligible))
	}
	want, _ := f.rig.Target(a)
	if track.Eligible[0] != want {
		t.Error("Expected the located target to be the only eligible one")
	}
	if track.Status != core.StatusActive {
		t.Errorf("Expected active track, got %v", track.Status)
	}
}

func TestReadinessGaugeSurvivesSessionStart(t *testing.T) {
	f := newFixture(t, "idle")
	f.target(engine.DefaultRef(0, core.RightHand), f.node("rest", 0, 0, 0))
	f.rig.Flush()

	active := f.rig.Stats.Ints.Get("readiness.active_schedules")
	if got := active.Load(); got != 1 {
		t.Fatalf("Expected 1 active schedule before the first update, got %d", got)
	}

	f.step("idle", 0.1, 0.1)
	if !f.rig.Started() {
		t.Fatal("Expected first update to start the session")
	}
	if got := active.Load(); got != 1 {
		t.Errorf("Expected 1 active schedule after session start, got %d", got)
	}
	if got := f.rig.Stats.Ints.Get("blend.applied").Load(); got != 1 {
		t.Errorf("Expected session counters to count from the start, got %d", got)
	}
}
