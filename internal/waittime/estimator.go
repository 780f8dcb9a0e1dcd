package waittime

import (
	"time"

	"github.com/queuewise/mlservice/internal/priority"
	"github.com/queuewise/mlservice/internal/types"
	"github.com/rs/zerolog"
)

const (
	// ModelName identifies the rule-based wait time model
	ModelName = "rule_based_v2"

	defaultPerTokenMinutes = 10
	minWaitMinutes         = 3
	maxWaitMinutes         = 240
)

// hourFactors scales the wait by hour of day. Peak hours run hotter,
// lunch runs cooler. Hours outside the table are off-hours (0.9).
var hourFactors = map[int]float64{
	9:  1.3,
	10: 1.3,
	11: 1.3,
	12: 0.8,
	13: 0.8,
	14: 1.3,
	15: 1.3,
	16: 1.3,
	17: 1.0,
}

// dayFactors scales the wait by Monday-indexed weekday.
// Mondays are the busiest, weekends the quietest.
var dayFactors = map[int]float64{
	0: 1.4, // Monday
	4: 1.2, // Friday
	5: 0.7,
	6: 0.7,
}

// Predictor estimates wait times. The rule-based Estimator is the current
// implementation; a trained model can be dropped in behind the same contract.
type Predictor interface {
	Estimate(serviceID string, queuePosition int, p types.PriorityClass, now time.Time) types.WaitTimeEstimate
}

// Estimator computes expected minutes-to-service from queue position,
// priority, time of day and accumulated per-service calibration
type Estimator struct {
	calibrations *SnapshotStore
	logger       zerolog.Logger
}

// NewEstimator creates a wait time estimator with an empty calibration table
func NewEstimator(logger zerolog.Logger) *Estimator {
	return &Estimator{
		calibrations: NewSnapshotStore(),
		logger:       logger.With().Str("component", "waittime").Logger(),
	}
}

// Calibrations exposes the calibration snapshot store
func (e *Estimator) Calibrations() *SnapshotStore {
	return e.calibrations
}

// Estimate predicts the wait in minutes for a queue position. It never
// fails: unknown services and priorities fall back to defaults.
func (e *Estimator) Estimate(serviceID string, queuePosition int, p types.PriorityClass, now time.Time) types.WaitTimeEstimate {
	cal, hasCal := e.calibrations.Get(serviceID)

	perToken := float64(defaultPerTokenMinutes)
	if hasCal {
		perToken = float64(cal.AverageServiceMinutes)
	}

	factors := types.WaitFactors{
		BaseMinutes:        float64(queuePosition) * perToken,
		PriorityMultiplier: priority.WaitMultiplier(p),
		TimeOfDayFactor:    hourFactor(now.Hour()),
		DayOfWeekFactor:    dayFactor(types.WeekdayIndex(now)),
		HistoryFactor:      1.0,
	}
	if hasCal {
		factors.HistoryFactor = historyFactor(cal)
	}

	wait := factors.BaseMinutes *
		factors.PriorityMultiplier *
		factors.TimeOfDayFactor *
		factors.DayOfWeekFactor *
		factors.HistoryFactor

	minutes := int(wait)
	if minutes < minWaitMinutes {
		minutes = minWaitMinutes
	}
	if minutes > maxWaitMinutes {
		minutes = maxWaitMinutes
	}

	confidence := 0.75
	if queuePosition > 20 {
		confidence -= 0.1
	}
	if queuePosition > 50 {
		confidence -= 0.1
	}
	if hasCal {
		confidence += 0.1
	}
	if confidence < 0.5 {
		confidence = 0.5
	}
	if confidence > 0.95 {
		confidence = 0.95
	}

	return types.WaitTimeEstimate{
		PredictedWaitTime: minutes,
		Confidence:        confidence,
		ModelUsed:         ModelName,
		Factors:           factors,
	}
}

func hourFactor(hour int) float64 {
	if f, ok := hourFactors[hour]; ok {
		return f
	}
	return 0.9
}

func dayFactor(weekday int) float64 {
	if f, ok := dayFactors[weekday]; ok {
		return f
	}
	return 1.0
}

// historyFactor folds the calibration's wait variability into a bounded
// multiplier. A higher coefficient of variation pushes the estimate up,
// capped at [0.9, 1.1] so history can never dominate the formula.
func historyFactor(cal types.ServiceCalibration) float64 {
	if cal.MeanWait <= 0 {
		return 1.0
	}
	cv := cal.StdWait / cal.MeanWait
	if cv > 1.0 {
		cv = 1.0
	}
	return 0.9 + 0.2*cv
}
