package host

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/vmath"
)

type transformSlot struct {
	name       string
	local      vmath.Pose
	parent     core.Handle
	generation uint32
	alive      bool
}

// MemoryScene is an in-process transform hierarchy standing in for the host scene graph
type MemoryScene struct {
	slots  []transformSlot
	free   []uint32
	byName map[string]core.Handle
}

// NewMemoryScene creates an empty scene
func NewMemoryScene() *MemoryScene {
	return &MemoryScene{
		byName: make(map[string]core.Handle),
	}
}

// Create adds a transform under parent (zero handle for a root) and returns its handle
func (s *MemoryScene) Create(name string, local vmath.Pose, parent core.Handle) (core.Handle, error) {
	if _, exists := s.byName[name]; exists {
		return core.NoHandle, fmt.Errorf("transform %q already exists", name)
	}
	if !parent.IsZero() && !s.Valid(parent) {
		return core.NoHandle, fmt.Errorf("transform %q: parent %v is not valid", name, parent)
	}

	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, transformSlot{})
	}

	slot := &s.slots[idx]
	slot.generation++
	slot.name = name
	slot.local = local
	slot.parent = parent
	slot.alive = true

	h := core.Handle{Index: idx, Generation: slot.generation}
	s.byName[name] = h
	return h, nil
}

// Destroy removes a transform; outstanding handles to it stop resolving
// Children keep their slot but lose their parent and resolve as roots
func (s *MemoryScene) Destroy(h core.Handle) bool {
	slot := s.slot(h)
	if slot == nil {
		return false
	}
	delete(s.byName, slot.name)
	slot.alive = false
	slot.generation++ // invalidate before reuse
	s.free = append(s.free, h.Index)
	return true
}

// Lookup returns the live handle registered under name
func (s *MemoryScene) Lookup(name string) (core.Handle, bool) {
	h, ok := s.byName[name]
	return h, ok
}

// Name returns the transform name for a live handle
func (s *MemoryScene) Name(h core.Handle) string {
	if slot := s.slot(h); slot != nil {
		return slot.name
	}
	return ""
}

func (s *MemoryScene) Valid(h core.Handle) bool {
	return s.slot(h) != nil
}

func (s *MemoryScene) LocalPose(h core.Handle) (vmath.Pose, bool) {
	slot := s.slot(h)
	if slot == nil {
		return vmath.Pose{}, false
	}
	return slot.local, true
}

func (s *MemoryScene) SetLocalPose(h core.Handle, p vmath.Pose) bool {
	slot := s.slot(h)
	if slot == nil {
		return false
	}
	slot.local = p
	return true
}

// WorldPose composes local poses up the parent chain
func (s *MemoryScene) WorldPose(h core.Handle) (vmath.Pose, bool) {
	slot := s.slot(h)
	if slot == nil {
		return vmath.Pose{}, false
	}

	world := slot.local
	// Bounded by slot count so a corrupted cycle cannot spin forever
	parent := slot.parent
	for depth := 0; !parent.IsZero() && depth < len(s.slots); depth++ {
		p := s.slot(parent)
		if p == nil {
			break
		}
		world = vmath.Compose(p.local, world)
		parent = p.parent
	}
	return world, true
}

func (s *MemoryScene) slot(h core.Handle) *transformSlot {
	if h.IsZero() || int(h.Index) >= len(s.slots) {
		return nil
	}
	slot := &s.slots[h.Index]
	if !slot.alive || slot.generation != h.Generation {
		return nil
	}
	return slot
}

// Goal is the last state written to one IK goal
type Goal struct {
	PositionWeight float64
	Position       mgl64.Vec3
	RotationWeight float64
	Rotation       mgl64.Quat

	PositionWrites int
	RotationWrites int
}

// RecordingAnimator keeps the IK goal writes of the current frame for inspection
type RecordingAnimator struct {
	goals [core.LimbCount]Goal
}

// NewRecordingAnimator creates an animator with all goals cleared
func NewRecordingAnimator() *RecordingAnimator {
	a := &RecordingAnimator{}
	a.Reset()
	return a
}

// Reset clears goals; hosts reset IK weights at the start of every IK pass
func (a *RecordingAnimator) Reset() {
	for i := range a.goals {
		a.goals[i] = Goal{Rotation: mgl64.QuatIdent()}
	}
}

// Goal returns the recorded state for limb
func (a *RecordingAnimator) Goal(limb core.Limb) Goal {
	if !limb.Valid() {
		return Goal{}
	}
	return a.goals[limb]
}

func (a *RecordingAnimator) SetIKPositionWeight(goal core.Limb, weight float64) {
	if goal.Valid() {
		a.goals[goal].PositionWeight = weight
	}
}

func (a *RecordingAnimator) SetIKPosition(goal core.Limb, position mgl64.Vec3) {
	if goal.Valid() {
		a.goals[goal].Position = position
		a.goals[goal].PositionWrites++
	}
}

func (a *RecordingAnimator) SetIKRotationWeight(goal core.Limb, weight float64) {
	if goal.Valid() {
		a.goals[goal].RotationWeight = weight
	}
}

func (a *RecordingAnimator) SetIKRotation(goal core.Limb, rotation mgl64.Quat) {
	if goal.Valid() {
		a.goals[goal].Rotation = rotation
		a.goals[goal].RotationWrites++
	}
}

// StaticController is a fixed clip list standing in for a controller asset
type StaticController struct {
	ControllerID string
	ClipNames    []string
	Human        bool
}

func (c *StaticController) ID() string { return c.ControllerID }

func (c *StaticController) IsHuman() bool { return c.Human }

func (c *StaticController) Clips() []Clip {
	clips := make([]Clip, len(c.ClipNames))
	for i, name := range c.ClipNames {
		clips[i] = Clip{Name: name, Index: i}
	}
	return clips
}
