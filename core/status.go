package core

// Status is the readiness of a descriptor, track or schedule
// Ordered by severity so folding keeps the maximum
type Status uint8

const (
	// StatusAbsent means nothing is authored
	StatusAbsent Status = iota
	// StatusIncomplete means an attachment without flags, or flags without an attachment
	StatusIncomplete
	// StatusActive means an attachment with at least one of location/rotation enabled
	StatusActive
)

func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusIncomplete:
		return "incomplete"
	case StatusActive:
		return "active"
	default:
		return "unknown"
	}
}

// MaxStatus returns the more severe of a and b
func MaxStatus(a, b Status) Status {
	if b > a {
		return b
	}
	return a
}
