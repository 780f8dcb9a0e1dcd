package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/queuewise/mlservice/internal/auth"
	"github.com/queuewise/mlservice/internal/metrics"
	"github.com/queuewise/mlservice/internal/storage"
	"github.com/queuewise/mlservice/internal/types"
	"github.com/queuewise/mlservice/internal/waittime"
	"github.com/rs/zerolog"
)

// AdminHandler handles calibration training and model management.
// Training runs out of the prediction path.
type AdminHandler struct {
	estimator *waittime.Estimator
	store     storage.Store
	logger    zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(estimator *waittime.Estimator, store storage.Store, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		estimator: estimator,
		store:     store,
		logger:    logger.With().Str("component", "admin").Logger(),
	}
}

// RequireAdmin middleware — only admin role allowed
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.GetUserFromContext(r.Context())
		if !ok || !auth.HasRole(claims, "admin") {
			w.Header().Set("Content-Type", "application/json")
			http.Error(w, `{"error":"admin role required"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// trainRequest is the JSON body for POST /admin/train/wait-time.
// Records may be supplied inline or loaded from the store by date keys.
type trainRequest struct {
	Records  []types.WaitHistoryRecord `json:"records"`
	DateKeys []string                  `json:"date_keys"`
}

// HandleTrainWaitTime handles POST /admin/train/wait-time
func (h *AdminHandler) HandleTrainWaitTime(w http.ResponseWriter, r *http.Request) {
	m := metrics.Get()

	var req trainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	records := req.Records
	if len(records) == 0 {
		dateKeys := req.DateKeys
		if len(dateKeys) == 0 {
			dateKeys = []string{time.Now().Format("2006-01-02")}
		}
		for _, key := range dateKeys {
			loaded, err := h.store.GetWaitHistory(key)
			if err != nil {
				h.logger.Error().Err(err).Str("date_key", key).Msg("failed to load wait history")
				m.RecordTrainingError()
				writeError(w, http.StatusInternalServerError, "failed to load wait history")
				return
			}
			records = append(records, loaded...)
		}
	}

	services, err := h.estimator.Train(records)
	if err != nil {
		m.RecordTrainingError()
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	m.RecordTrainingRun()

	h.logger.Info().
		Int("records", len(records)).
		Int("services", services).
		Msg("wait time model trained via admin")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "wait time model trained",
		"records":  len(records),
		"services": services,
		"version":  h.estimator.Calibrations().Version(),
	})
}

// HandleGetCalibration handles GET /admin/calibration
func (h *AdminHandler) HandleGetCalibration(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version":  h.estimator.Calibrations().Version(),
		"services": h.estimator.Calibrations().All(),
	})
}

// HandleResetCalibration handles DELETE /admin/calibration
func (h *AdminHandler) HandleResetCalibration(w http.ResponseWriter, r *http.Request) {
	h.estimator.Calibrations().Reset()

	h.logger.Info().Msg("wait time calibration reset via admin")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "calibration reset",
		"version": h.estimator.Calibrations().Version(),
	})
}

// HandleGetFeedbackEvents handles GET /admin/feedback/events
func (h *AdminHandler) HandleGetFeedbackEvents(w http.ResponseWriter, r *http.Request) {
	dateKey := r.URL.Query().Get("date_key")
	if dateKey == "" {
		dateKey = time.Now().Format("2006-01-02")
	}

	events, err := h.store.GetFeedbackEvents(dateKey)
	if err != nil {
		h.logger.Error().Err(err).Str("date_key", dateKey).Msg("failed to load feedback events")
		writeError(w, http.StatusInternalServerError, "failed to load feedback events")
		return
	}
	if events == nil {
		events = []types.FeedbackEvent{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date_key": dateKey,
		"count":    len(events),
		"events":   events,
	})
}

// HandleResetData handles DELETE /admin/data — truncates all stored
// feedback events and wait history
func (h *AdminHandler) HandleResetData(w http.ResponseWriter, r *http.Request) {
	if err := h.store.TruncateAll(); err != nil {
		h.logger.Error().Err(err).Msg("failed to truncate stored data")
		writeError(w, http.StatusInternalServerError, "failed to truncate stored data")
		return
	}

	h.logger.Info().Msg("stored feedback and wait history truncated via admin")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "stored data truncated",
	})
}
