package core

import (
	"fmt"
	"strings"
)

// Limb identifies one of the four humanoid IK goals driven by a rig
type Limb uint8

const (
	RightHand Limb = iota
	LeftHand
	RightFoot
	LeftFoot
)

// LimbCount is the number of IK goals per rig, fixed by the humanoid avatar
const LimbCount = 4

var limbNames = [LimbCount]string{
	"right_hand",
	"left_hand",
	"right_foot",
	"left_foot",
}

// Limbs lists every limb in goal order
var Limbs = [LimbCount]Limb{RightHand, LeftHand, RightFoot, LeftFoot}

func (l Limb) String() string {
	if !l.Valid() {
		return fmt.Sprintf("limb(%d)", uint8(l))
	}
	return limbNames[l]
}

// Valid reports whether l names one of the four goals
func (l Limb) Valid() bool {
	return l < LimbCount
}

// ParseLimb accepts "right_hand", "Right Hand" and "right-hand" spellings
func ParseLimb(s string) (Limb, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	for i, name := range limbNames {
		if name == key {
			return Limb(i), nil
		}
	}
	return 0, fmt.Errorf("unknown limb %q", s)
}
