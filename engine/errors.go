package engine

import "errors"

// Binding issues are reported through Rig.Issue; none of them abort a frame
var (
	ErrMissingBinding  = errors.New("no animation controller bound")
	ErrNotHumanoid     = errors.New("skeleton is not humanoid")
	ErrStaleController = errors.New("controller changed since last refresh")
)

// Authoring errors
var (
	ErrNoSuchSchedule = errors.New("no such schedule")
	ErrNoSuchTarget   = errors.New("no such target")
	ErrInvalidLimb    = errors.New("invalid limb")
	ErrNotTimed       = errors.New("target has no activation time")
)
