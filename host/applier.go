package host

import (
	"github.com/lixenwraith/ikrig/component"
	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/parameter"
)

// Applier writes a resolved target to the host IK goal channels
type Applier struct {
	scene    Scene
	animator Animator
}

// NewApplier binds the applier to a scene for reading attachment world poses
func NewApplier(scene Scene, animator Animator) *Applier {
	return &Applier{scene: scene, animator: animator}
}

// Apply drives limb toward the attachment's current world pose at full weight
// Channels whose flag is off are left untouched; returns false when nothing was written
func (a *Applier) Apply(limb core.Limb, cfg component.TargetConfig) bool {
	if !limb.Valid() || !cfg.HasFlags() {
		return false
	}

	world, ok := a.scene.WorldPose(cfg.Attachment)
	if !ok {
		return false
	}

	if cfg.UseLocation {
		a.animator.SetIKPositionWeight(limb, parameter.FullIKWeight)
		a.animator.SetIKPosition(limb, world.Position)
	}
	if cfg.UseRotation {
		a.animator.SetIKRotationWeight(limb, parameter.FullIKWeight)
		a.animator.SetIKRotation(limb, world.Rotation)
	}
	return true
}
