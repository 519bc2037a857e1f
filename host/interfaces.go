package host

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/vmath"
)

// Scene is the host transform registry; the rig only ever holds weak handles into it
// Every accessor reports ok=false for zero or stale handles
type Scene interface {
	Valid(h core.Handle) bool
	LocalPose(h core.Handle) (vmath.Pose, bool)
	SetLocalPose(h core.Handle, p vmath.Pose) bool
	WorldPose(h core.Handle) (vmath.Pose, bool)
}

// Animator receives IK goal writes, one goal per limb
type Animator interface {
	SetIKPositionWeight(goal core.Limb, weight float64)
	SetIKPosition(goal core.Limb, position mgl64.Vec3)
	SetIKRotationWeight(goal core.Limb, weight float64)
	SetIKRotation(goal core.Limb, rotation mgl64.Quat)
}

// Clip is one animation clip enumerated by a controller
type Clip struct {
	Name  string
	Index int
}

// Controller is the bound animation controller asset
type Controller interface {
	// ID identifies the controller asset; a different ID means the clip list may have changed meaning
	ID() string
	Clips() []Clip
	// IsHuman reports whether the bound skeleton supports humanoid IK goals
	IsHuman() bool
}
