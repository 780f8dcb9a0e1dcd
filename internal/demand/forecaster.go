package demand

import (
	"fmt"
	"math"
	"time"

	"github.com/queuewise/mlservice/internal/types"
)

// ModelName identifies the rule-based demand model
const ModelName = "time_series_v2"

// tokensPerCounter is the hourly volume one open counter absorbs
const tokensPerCounter = 15

// hourlyPattern is the base arrival volume per hour of day.
// Hours outside the table default to 10.
var hourlyPattern = map[int]int{
	8:  15,
	9:  35,
	10: 45,
	11: 40,
	12: 25,
	13: 20,
	14: 38,
	15: 42,
	16: 35,
	17: 20,
	18: 10,
	19: 5,
	20: 3,
}

// dayMultipliers scales volume by Monday-indexed weekday
var dayMultipliers = map[int]float64{
	0: 1.4, // Monday
	1: 1.1, // Tuesday
	2: 1.0,
	3: 1.0,
	4: 1.2, // Friday
	5: 0.6,
	6: 0.4,
}

// Forecaster produces hour-by-hour demand forecasts. RuleForecaster is the
// current implementation; a fitted time-series model can replace it behind
// the same contract.
type Forecaster interface {
	Forecast(serviceID string, hoursAhead int, now time.Time) types.DemandForecast
}

// RuleForecaster predicts arrival volume from static hourly and weekday
// profiles. Stateless; the tables are the whole model.
type RuleForecaster struct{}

// NewRuleForecaster creates a rule-based demand forecaster
func NewRuleForecaster() *RuleForecaster {
	return &RuleForecaster{}
}

// Forecast predicts arrival volume for each of the next hoursAhead hours,
// in strictly increasing offset order, plus aggregate insights
func (f *RuleForecaster) Forecast(serviceID string, hoursAhead int, now time.Time) types.DemandForecast {
	points := make([]types.ForecastPoint, 0, hoursAhead)

	for offset := 1; offset <= hoursAhead; offset++ {
		t := now.Add(time.Duration(offset) * time.Hour)
		hour := t.Hour()
		weekday := types.WeekdayIndex(t)

		predicted := predictHour(serviceID, hour, weekday)

		level := types.DemandHigh
		if predicted < 20 {
			level = types.DemandLow
		} else if predicted < 35 {
			level = types.DemandModerate
		}

		counters := int(math.Ceil(float64(predicted) / tokensPerCounter))
		if counters < 1 {
			counters = 1
		}

		points = append(points, types.ForecastPoint{
			Timestamp:           t,
			OffsetHours:         offset,
			Hour:                hour,
			Weekday:             weekday,
			PredictedTokens:     predicted,
			LowerBound:          int(float64(predicted) * 0.75),
			UpperBound:          int(float64(predicted) * 1.25),
			DemandLevel:         level,
			RecommendedCounters: counters,
		})
	}

	peak := points[0]
	total := 0
	for _, p := range points {
		total += p.PredictedTokens
		if p.PredictedTokens > peak.PredictedTokens {
			peak = p
		}
	}

	insights := []string{
		fmt.Sprintf("Peak demand at %s with ~%d customers",
			peak.Timestamp.Format("03:04 PM"), peak.PredictedTokens),
		fmt.Sprintf("Recommend opening %d counters during peak", peak.RecommendedCounters),
	}

	return types.DemandForecast{
		Forecast:   points,
		Insights:   insights,
		Confidence: "medium",
		ModelUsed:  ModelName,
		Summary: types.ForecastSummary{
			TotalPredictedTokens:  total,
			PeakDemand:            peak.PredictedTokens,
			RecommendedTotalStaff: peak.RecommendedCounters,
		},
	}
}

// predictHour computes volume for a single hour/weekday cell.
// serviceID is reserved for per-service profiles.
func predictHour(serviceID string, hour, weekday int) int {
	base, ok := hourlyPattern[hour]
	if !ok {
		base = 10
	}

	mult, ok := dayMultipliers[weekday]
	if !ok {
		mult = 1.0
	}

	predicted := int(float64(base) * mult)
	if predicted < 1 {
		predicted = 1
	}
	return predicted
}
