package engine

// System is a per-frame stage of the rig update
type System interface {
	Name() string
	Priority() int // Lower values run first
	Update()
}
