package insights

import (
	"fmt"
	"time"

	"github.com/queuewise/mlservice/internal/demand"
	"github.com/queuewise/mlservice/internal/noshow"
	"github.com/queuewise/mlservice/internal/types"
	"github.com/rs/zerolog"
)

// riskNotes are the standing monitoring thresholds shown on the dashboard.
// The overview prepends one note scored against the forecast peak.
var riskNotes = []string{
	"Monitor tokens with queue position > 15 for elevated no-show risk",
	"Send backup reminders when estimated wait exceeds 60 minutes",
	"Expect higher no-show rates after 17:00 and during lunch hours",
}

// shiftWindows are the fixed staffing shifts the plan is broken into
var shiftWindows = []struct {
	Name     string
	FromHour int
	ToHour   int
}{
	{"Morning shift (08:00-12:00)", 8, 12},
	{"Afternoon shift (12:00-17:00)", 12, 17},
	{"Evening shift (17:00-20:00)", 17, 20},
}

// Overview is the dashboard-level summary composed from the forecast
type Overview struct {
	ServiceID       string                `json:"service_id"`
	GeneratedAt     time.Time             `json:"generated_at"`
	Summary         types.ForecastSummary `json:"summary"`
	PeakHour        int                   `json:"peak_hour"`
	PeakTime        time.Time             `json:"peak_time"`
	Forecast        []types.ForecastPoint `json:"forecast"`
	Insights        []string              `json:"insights"`
	RiskNotes       []string              `json:"risk_notes"`
	Recommendations []string              `json:"recommendations"`
}

// HourStaffing is a single hour in the staffing plan
type HourStaffing struct {
	Hour                int               `json:"hour"`
	PredictedTokens     int               `json:"predicted_tokens"`
	RecommendedCounters int               `json:"recommended_counters"`
	DemandLevel         types.DemandLevel `json:"demand_level"`
}

// StaffPlan is the per-hour staffing recommendation for the next day
type StaffPlan struct {
	ServiceID        string         `json:"service_id"`
	GeneratedAt      time.Time      `json:"generated_at"`
	Hours            []HourStaffing `json:"hours"`
	TotalTokens      int            `json:"total_tokens"`
	PeakCounters     int            `json:"peak_counters"`
	ShiftSuggestions []string       `json:"shift_suggestions"`
}

// Aggregator composes forecaster and scorer output into dashboard summaries.
// Read-only; it owns no state beyond its collaborators.
type Aggregator struct {
	forecaster     demand.Forecaster
	scorer         noshow.Scorer
	overviewHours  int
	staffPlanHours int
	logger         zerolog.Logger
}

// NewAggregator creates an insights aggregator
func NewAggregator(forecaster demand.Forecaster, scorer noshow.Scorer, overviewHours, staffPlanHours int, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		forecaster:     forecaster,
		scorer:         scorer,
		overviewHours:  overviewHours,
		staffPlanHours: staffPlanHours,
		logger:         logger.With().Str("component", "insights").Logger(),
	}
}

// Overview builds the dashboard overview from a short-horizon forecast
func (a *Aggregator) Overview(serviceID string, now time.Time) Overview {
	fc := a.forecaster.Forecast(serviceID, a.overviewHours, now)

	peak := fc.Forecast[0]
	for _, p := range fc.Forecast {
		if p.PredictedTokens > peak.PredictedTokens {
			peak = p
		}
	}

	recommendations := []string{
		fmt.Sprintf("Staff %d counters by %02d:00 to absorb the peak",
			peak.RecommendedCounters, peak.Hour),
	}
	if fc.Summary.TotalPredictedTokens > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Expect roughly %d arrivals over the next %d hours",
				fc.Summary.TotalPredictedTokens, a.overviewHours))
	}

	// Score a representative deep-queue ticket at the peak hour so the
	// dashboard shows the risk level the staff should plan around
	peakRisk := a.scorer.Score(types.PriorityNormal, 16, peak.Weekday, peak.Hour, 60)
	notes := make([]string, 0, len(riskNotes)+1)
	notes = append(notes,
		fmt.Sprintf("Deep-queue tokens at the %02d:00 peak carry %s no-show risk",
			peak.Hour, peakRisk.RiskLevel))
	notes = append(notes, riskNotes...)

	return Overview{
		ServiceID:       serviceID,
		GeneratedAt:     now,
		Summary:         fc.Summary,
		PeakHour:        peak.Hour,
		PeakTime:        peak.Timestamp,
		Forecast:        fc.Forecast,
		Insights:        fc.Insights,
		RiskNotes:       notes,
		Recommendations: recommendations,
	}
}

// StaffPlan builds the per-hour staffing plan from a day-long forecast
func (a *Aggregator) StaffPlan(serviceID string, now time.Time) StaffPlan {
	fc := a.forecaster.Forecast(serviceID, a.staffPlanHours, now)

	hours := make([]HourStaffing, 0, len(fc.Forecast))
	total := 0
	peakCounters := 1
	for _, p := range fc.Forecast {
		hours = append(hours, HourStaffing{
			Hour:                p.Hour,
			PredictedTokens:     p.PredictedTokens,
			RecommendedCounters: p.RecommendedCounters,
			DemandLevel:         p.DemandLevel,
		})
		total += p.PredictedTokens
		if p.RecommendedCounters > peakCounters {
			peakCounters = p.RecommendedCounters
		}
	}

	suggestions := make([]string, 0, len(shiftWindows))
	for _, shift := range shiftWindows {
		counters := 1
		for _, p := range fc.Forecast {
			if p.Hour >= shift.FromHour && p.Hour < shift.ToHour && p.RecommendedCounters > counters {
				counters = p.RecommendedCounters
			}
		}
		suggestions = append(suggestions,
			fmt.Sprintf("%s: staff %d counters", shift.Name, counters))
	}

	return StaffPlan{
		ServiceID:        serviceID,
		GeneratedAt:      now,
		Hours:            hours,
		TotalTokens:      total,
		PeakCounters:     peakCounters,
		ShiftSuggestions: suggestions,
	}
}
