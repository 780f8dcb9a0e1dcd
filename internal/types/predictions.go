package types

import "time"

// RiskLevel classifies a no-show probability
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// DemandLevel classifies a predicted hourly volume
type DemandLevel string

const (
	DemandLow      DemandLevel = "low"
	DemandModerate DemandLevel = "moderate"
	DemandHigh     DemandLevel = "high"
)

// WaitFactors is the per-factor breakdown of a wait time estimate,
// returned for explainability
type WaitFactors struct {
	BaseMinutes        float64 `json:"base_minutes"`
	PriorityMultiplier float64 `json:"priority_multiplier"`
	TimeOfDayFactor    float64 `json:"time_of_day_factor"`
	DayOfWeekFactor    float64 `json:"day_of_week_factor"`
	HistoryFactor      float64 `json:"history_factor"`
}

// WaitTimeEstimate is the result of a wait time prediction
type WaitTimeEstimate struct {
	PredictedWaitTime int         `json:"predicted_wait_time"` // minutes, in [3, 240]
	Confidence        float64     `json:"confidence"`          // in [0.5, 0.95]
	ModelUsed         string      `json:"model_used"`
	Factors           WaitFactors `json:"factors"`
}

// NoShowEstimate is the result of a no-show risk prediction
type NoShowEstimate struct {
	NoShowProbability float64   `json:"no_show_probability"` // in [0.01, 0.70]
	Confidence        float64   `json:"confidence"`
	RiskLevel         RiskLevel `json:"risk_level"`
	ModelUsed         string    `json:"model_used"`
	Recommendations   []string  `json:"recommendations"`
}

// ForecastPoint is the predicted arrival volume for a single future hour
type ForecastPoint struct {
	Timestamp           time.Time   `json:"timestamp"`
	OffsetHours         int         `json:"offset_hours"` // >= 1, strictly increasing
	Hour                int         `json:"hour"`         // 0-23
	Weekday             int         `json:"weekday"`      // 0=Monday .. 6=Sunday
	PredictedTokens     int         `json:"predicted_tokens"`
	LowerBound          int         `json:"lower_bound"`
	UpperBound          int         `json:"upper_bound"`
	DemandLevel         DemandLevel `json:"demand_level"`
	RecommendedCounters int         `json:"recommended_counters"`
}

// ForecastSummary aggregates a demand forecast
type ForecastSummary struct {
	TotalPredictedTokens  int `json:"total_predicted_tokens"`
	PeakDemand            int `json:"peak_demand"`
	RecommendedTotalStaff int `json:"recommended_total_staff"`
}

// DemandForecast is a full hour-by-hour forecast with aggregate insights
type DemandForecast struct {
	Forecast   []ForecastPoint `json:"forecast"`
	Insights   []string        `json:"insights"`
	Confidence string          `json:"confidence"`
	ModelUsed  string          `json:"model_used"`
	Summary    ForecastSummary `json:"summary"`
}
