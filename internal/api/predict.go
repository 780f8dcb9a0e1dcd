package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/queuewise/mlservice/internal/demand"
	"github.com/queuewise/mlservice/internal/metrics"
	"github.com/queuewise/mlservice/internal/noshow"
	"github.com/queuewise/mlservice/internal/types"
	"github.com/queuewise/mlservice/internal/waittime"
	"github.com/rs/zerolog"
)

// maxForecastHours bounds a single demand forecast request
const maxForecastHours = 168

// PredictHandler exposes the estimators over HTTP. All range validation
// happens here; the estimators themselves assume validated inputs.
type PredictHandler struct {
	waitTime   waittime.Predictor
	noShow     noshow.Scorer
	forecaster demand.Forecaster
	logger     zerolog.Logger
}

// NewPredictHandler creates a new PredictHandler
func NewPredictHandler(waitTime waittime.Predictor, noShow noshow.Scorer, forecaster demand.Forecaster, logger zerolog.Logger) *PredictHandler {
	return &PredictHandler{
		waitTime:   waitTime,
		noShow:     noShow,
		forecaster: forecaster,
		logger:     logger.With().Str("component", "predict").Logger(),
	}
}

// waitTimeRequest is the JSON body for POST /predict/wait-time
type waitTimeRequest struct {
	ServiceID     string `json:"service_id"`
	QueuePosition int    `json:"queue_position"`
	CurrentTime   string `json:"current_time"`
	Priority      string `json:"priority"`
}

// HandleWaitTime handles POST /predict/wait-time
func (h *PredictHandler) HandleWaitTime(w http.ResponseWriter, r *http.Request) {
	var req waitTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ServiceID == "" {
		writeError(w, http.StatusBadRequest, "missing service_id")
		return
	}
	if req.QueuePosition < 1 {
		writeError(w, http.StatusBadRequest, "queue_position must be >= 1")
		return
	}

	// An unparsable timestamp degrades to server time rather than failing
	now, err := types.ParseTimestamp(req.CurrentTime)
	if err != nil {
		now = time.Now()
	}

	estimate := h.waitTime.Estimate(req.ServiceID, req.QueuePosition, types.NormalizePriority(req.Priority), now)
	metrics.Get().RecordPrediction(estimate.ModelUsed)

	writeJSON(w, http.StatusOK, estimate)
}

// noShowRequest is the JSON body for POST /predict/no-show
type noShowRequest struct {
	TokenID       string `json:"token_id"`
	ServiceID     string `json:"service_id"`
	Priority      string `json:"priority"`
	QueuePosition int    `json:"queue_position"`
	DayOfWeek     int    `json:"day_of_week"`
	HourOfDay     int    `json:"hour_of_day"`
	EstimatedWait int    `json:"estimated_wait"`
}

// HandleNoShow handles POST /predict/no-show
func (h *PredictHandler) HandleNoShow(w http.ResponseWriter, r *http.Request) {
	var req noShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.QueuePosition < 1 {
		writeError(w, http.StatusBadRequest, "queue_position must be >= 1")
		return
	}
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		writeError(w, http.StatusBadRequest, "day_of_week must be 0-6")
		return
	}
	if req.HourOfDay < 0 || req.HourOfDay > 23 {
		writeError(w, http.StatusBadRequest, "hour_of_day must be 0-23")
		return
	}
	if req.EstimatedWait < 0 {
		writeError(w, http.StatusBadRequest, "estimated_wait must be >= 0")
		return
	}

	estimate := h.noShow.Score(types.NormalizePriority(req.Priority),
		req.QueuePosition, req.DayOfWeek, req.HourOfDay, req.EstimatedWait)
	metrics.Get().RecordPrediction(estimate.ModelUsed)

	writeJSON(w, http.StatusOK, estimate)
}

// demandRequest is the JSON body for POST /predict/demand
type demandRequest struct {
	ServiceID   string `json:"service_id"`
	HoursAhead  int    `json:"hours_ahead"`
	CurrentTime string `json:"current_time"`
}

// HandleDemand handles POST /predict/demand
func (h *PredictHandler) HandleDemand(w http.ResponseWriter, r *http.Request) {
	var req demandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ServiceID == "" {
		writeError(w, http.StatusBadRequest, "missing service_id")
		return
	}
	if req.HoursAhead < 1 {
		writeError(w, http.StatusBadRequest, "hours_ahead must be >= 1")
		return
	}
	if req.HoursAhead > maxForecastHours {
		req.HoursAhead = maxForecastHours
	}

	now, err := types.ParseTimestamp(req.CurrentTime)
	if err != nil {
		now = time.Now()
	}

	forecast := h.forecaster.Forecast(req.ServiceID, req.HoursAhead, now)
	metrics.Get().RecordPrediction(forecast.ModelUsed)

	writeJSON(w, http.StatusOK, forecast)
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
