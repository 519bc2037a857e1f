package status

import "sync/atomic"

// MaxStringLen bounds stored labels such as clip names
const MaxStringLen = 32

// Label is an atomically replaced short string; zero value reads ""
type Label struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, truncating to MaxStringLen bytes
func (s *Label) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

// Load returns the current label
func (s *Label) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
