package manifest

import (
	"slices"
	"testing"

	"github.com/lixenwraith/ikrig/engine"
	"github.com/lixenwraith/ikrig/host"
	"github.com/lixenwraith/ikrig/registry"
)

func TestInstall(t *testing.T) {
	rig := engine.NewRig(host.NewMemoryScene(), host.NewRecordingAnimator())
	readiness, err := Install(rig)
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if readiness == nil {
		t.Fatal("Expected readiness classifier")
	}

	registered := registry.SystemNames()
	for _, name := range ActiveSystems() {
		if !slices.Contains(registered, name) {
			t.Errorf("Expected %q registered, got %v", name, registered)
		}
	}
	if !slices.IsSorted(registered) {
		t.Errorf("Expected sorted names, got %v", registered)
	}

	var order []string
	for _, s := range rig.Systems() {
		order = append(order, s.Name())
	}
	want := []string{"global", "playback", "blend"}
	if !slices.Equal(order, want) {
		t.Errorf("Expected run order %v, got %v", want, order)
	}
}

func TestInstallTwiceRegistersOnce(t *testing.T) {
	Install(engine.NewRig(host.NewMemoryScene(), host.NewRecordingAnimator()))
	before := len(registry.SystemNames())

	if _, err := Install(engine.NewRig(host.NewMemoryScene(), host.NewRecordingAnimator())); err != nil {
		t.Fatalf("Second Install failed: %v", err)
	}
	if got := len(registry.SystemNames()); got != before {
		t.Errorf("Expected %d registered systems, got %d", before, got)
	}
}
