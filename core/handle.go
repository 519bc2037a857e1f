package core

import "fmt"

// Handle is a weak reference to a transform owned by the host scene
// The zero Handle means "no attachment"; a destroyed or reassigned slot
// bumps its generation so older handles stop resolving
type Handle struct {
	Index      uint32
	Generation uint32
}

// NoHandle is the empty attachment
var NoHandle = Handle{}

// IsZero reports whether h refers to nothing
func (h Handle) IsZero() bool {
	return h.Generation == 0
}

func (h Handle) String() string {
	if h.IsZero() {
		return "none"
	}
	return fmt.Sprintf("#%d.%d", h.Index, h.Generation)
}
