package api

import (
	"net/http"
	"time"

	"github.com/queuewise/mlservice/internal/demand"
	"github.com/queuewise/mlservice/internal/noshow"
	"github.com/queuewise/mlservice/internal/waittime"
)

// serviceName identifies this service in status payloads
const serviceName = "queuewise-ml-service"

// InfoHandler serves the status, health and model metadata endpoints
type InfoHandler struct {
	estimator *waittime.Estimator
}

// NewInfoHandler creates a new InfoHandler
func NewInfoHandler(estimator *waittime.Estimator) *InfoHandler {
	return &InfoHandler{estimator: estimator}
}

// HandleRoot handles GET /
func (h *InfoHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "running",
		"service":   serviceName,
		"version":   "1.0.0",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// HandleHealth handles GET /health
func (h *InfoHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	calibrated := len(h.estimator.Calibrations().All())

	waitStatus := "loaded (defaults)"
	if calibrated > 0 {
		waitStatus = "loaded (calibrated)"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"models": map[string]string{
			"wait_time":            waitStatus,
			"no_show":              "loaded",
			"demand_forecast":      "loaded",
			"emergency_classifier": "loaded",
		},
		"calibrated_services": calibrated,
		"timestamp":           time.Now().Format(time.RFC3339),
	})
}

// HandleModelsInfo handles GET /models/info
func (h *InfoHandler) HandleModelsInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"models": []map[string]interface{}{
			{
				"name":        "wait_time",
				"type":        "Rule-based estimator",
				"model_id":    waittime.ModelName,
				"description": "Predicts wait time from queue position, priority, time of day and per-service calibration",
				"features":    []string{"queue_position", "service_id", "priority", "hour_of_day", "day_of_week"},
			},
			{
				"name":        "no_show",
				"type":        "Rule-based classifier",
				"model_id":    noshow.ModelName,
				"description": "Predicts probability of no-show",
				"features":    []string{"queue_position", "priority", "hour_of_day", "day_of_week", "estimated_wait"},
			},
			{
				"name":        "demand_forecast",
				"type":        "Profile-based forecaster",
				"model_id":    demand.ModelName,
				"description": "Forecasts arrival volume for upcoming hours",
				"features":    []string{"hour_of_day", "day_of_week"},
			},
			{
				"name":        "emergency_classifier",
				"type":        "Keyword classifier",
				"model_id":    emergencyModelName,
				"description": "Classifies emergency claims as genuine, suspicious or false",
				"features":    []string{"reason_text", "emergency_type"},
			},
		},
		"note": "All models are rule-based. Calibrate the wait time model with historical data via the admin API.",
	})
}
