// Package priority holds the static per-priority rule tables shared by the
// estimators. Kept as literal maps so they are independently testable and can
// be swapped for learned parameters without touching the estimator code.
package priority

import "github.com/queuewise/mlservice/internal/types"

// WaitMultipliers scales the base wait time per priority class
var WaitMultipliers = map[types.PriorityClass]float64{
	types.PriorityEmergency: 0.2,
	types.PriorityDisabled:  0.5,
	types.PrioritySenior:    0.7,
	types.PriorityNormal:    1.0,
}

// NoShowBaseProbabilities is the starting no-show probability per priority
// class, based on domain knowledge. Emergency cases rarely no-show.
var NoShowBaseProbabilities = map[types.PriorityClass]float64{
	types.PriorityEmergency: 0.02,
	types.PriorityDisabled:  0.05,
	types.PrioritySenior:    0.08,
	types.PriorityNormal:    0.12,
}

// WaitMultiplier returns the wait multiplier for a priority class,
// falling back to normal for unknown values
func WaitMultiplier(p types.PriorityClass) float64 {
	if m, ok := WaitMultipliers[p]; ok {
		return m
	}
	return WaitMultipliers[types.PriorityNormal]
}

// NoShowBase returns the base no-show probability for a priority class,
// falling back to normal for unknown values
func NoShowBase(p types.PriorityClass) float64 {
	if b, ok := NoShowBaseProbabilities[p]; ok {
		return b
	}
	return NoShowBaseProbabilities[types.PriorityNormal]
}
