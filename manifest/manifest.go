package manifest

import (
	"fmt"
	"sync"

	"github.com/lixenwraith/ikrig/engine"
	"github.com/lixenwraith/ikrig/registry"
	"github.com/lixenwraith/ikrig/system"
)

var registerOnce sync.Once

// RegisterSystems registers all system factories with the registry
func RegisterSystems() {
	registerOnce.Do(func() {
		registry.RegisterSystem("global", system.NewGlobalSystem)
		registry.RegisterSystem("playback", system.NewPlaybackSystem)
		registry.RegisterSystem("blend", system.NewBlendSystem)
	})
}

// ActiveSystems returns the systems installed on every rig
// Run order comes from priority, not from this list
func ActiveSystems() []string {
	return []string{
		"global",
		"playback",
		"blend",
	}
}

// Install wires the readiness classifier and every active system into rig
func Install(rig *engine.Rig) (*system.ReadinessSystem, error) {
	RegisterSystems()

	readiness := system.NewReadinessSystem(rig)
	for _, name := range ActiveSystems() {
		factory, ok := registry.GetSystem(name)
		if !ok {
			return nil, fmt.Errorf("system %q not registered", name)
		}
		rig.AddSystem(factory(rig))
	}
	return readiness, nil
}
