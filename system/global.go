package system

import (
	"sync/atomic"

	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/engine"
	"github.com/lixenwraith/ikrig/parameter"
)

// GlobalSystem applies the clip-independent override table at full weight
// Runs ahead of blending so per-clip output overwrites a limb both drive
type GlobalSystem struct {
	rig *engine.Rig

	statApplied *atomic.Int64
}

// NewGlobalSystem creates a new global override system
func NewGlobalSystem(rig *engine.Rig) engine.System {
	return &GlobalSystem{
		rig:         rig,
		statApplied: rig.Stats.Ints.Get("global.applied"),
	}
}

// Name returns system's name
func (s *GlobalSystem) Name() string {
	return "global"
}

// Priority returns the system's priority
func (s *GlobalSystem) Priority() int {
	return parameter.PriorityGlobal
}

// Update writes every active global target
func (s *GlobalSystem) Update() {
	r := s.rig
	if !r.GlobalEnabled() {
		return
	}

	for limb, target := range r.Globals.Targets {
		if target.Status != core.StatusActive {
			continue
		}
		if r.Applier.Apply(core.Limb(limb), target.Config) {
			s.statApplied.Add(1)
		}
	}
}
