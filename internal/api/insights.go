package api

import (
	"net/http"
	"time"

	"github.com/queuewise/mlservice/internal/insights"
	"github.com/rs/zerolog"
)

// InsightsHandler exposes the composed dashboard views
type InsightsHandler struct {
	aggregator       *insights.Aggregator
	defaultServiceID string
	logger           zerolog.Logger
}

// NewInsightsHandler creates a new InsightsHandler
func NewInsightsHandler(aggregator *insights.Aggregator, defaultServiceID string, logger zerolog.Logger) *InsightsHandler {
	return &InsightsHandler{
		aggregator:       aggregator,
		defaultServiceID: defaultServiceID,
		logger:           logger.With().Str("component", "insights-api").Logger(),
	}
}

// serviceID resolves the service_id query parameter, falling back to the
// configured default
func (h *InsightsHandler) serviceID(r *http.Request) string {
	if id := r.URL.Query().Get("service_id"); id != "" {
		return id
	}
	return h.defaultServiceID
}

// HandleOverview handles GET /insights/overview
func (h *InsightsHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	overview := h.aggregator.Overview(h.serviceID(r), time.Now())
	writeJSON(w, http.StatusOK, overview)
}

// HandleStaffPlan handles GET /insights/staff-plan
func (h *InsightsHandler) HandleStaffPlan(w http.ResponseWriter, r *http.Request) {
	plan := h.aggregator.StaffPlan(h.serviceID(r), time.Now())
	writeJSON(w, http.StatusOK, plan)
}
