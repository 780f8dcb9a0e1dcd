package types

import "strings"

// PriorityClass represents a caller-declared urgency tier
type PriorityClass string

const (
	PriorityEmergency PriorityClass = "emergency"
	PriorityDisabled  PriorityClass = "disabled"
	PrioritySenior    PriorityClass = "senior"
	PriorityNormal    PriorityClass = "normal"
)

// AllPriorities lists every known priority class
var AllPriorities = []PriorityClass{
	PriorityEmergency,
	PriorityDisabled,
	PrioritySenior,
	PriorityNormal,
}

// NormalizePriority maps an arbitrary string to a known priority class.
// Unrecognized values fall back to normal, never an error.
func NormalizePriority(s string) PriorityClass {
	switch PriorityClass(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityEmergency:
		return PriorityEmergency
	case PriorityDisabled:
		return PriorityDisabled
	case PrioritySenior:
		return PrioritySenior
	default:
		return PriorityNormal
	}
}
