package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/queuewise/mlservice/internal/emergency"
	"github.com/queuewise/mlservice/internal/metrics"
	"github.com/rs/zerolog"
)

// emergencyModelName identifies the claim classifier in metrics
const emergencyModelName = "emergency_classifier_v1"

// EmergencyHandler exposes claim classification and identity checks
type EmergencyHandler struct {
	classifier emergency.Classifier
	logger     zerolog.Logger
}

// NewEmergencyHandler creates a new EmergencyHandler
func NewEmergencyHandler(classifier emergency.Classifier, logger zerolog.Logger) *EmergencyHandler {
	return &EmergencyHandler{
		classifier: classifier,
		logger:     logger.With().Str("component", "emergency").Logger(),
	}
}

// classifyRequest is the JSON body for POST /classify/emergency
type classifyRequest struct {
	Reason        string `json:"reason"`
	EmergencyType string `json:"emergency_type"`
}

// HandleClassify handles POST /classify/emergency
func (h *EmergencyHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result := h.classifier.Classify(req.Reason, req.EmergencyType)
	metrics.Get().RecordPrediction(emergencyModelName)

	writeJSON(w, http.StatusOK, result)
}

// verifySeniorRequest is the JSON body for POST /verify/senior
type verifySeniorRequest struct {
	DateOfBirth string `json:"date_of_birth"`
	ClaimedAge  *int   `json:"claimed_age"`
}

// HandleVerifySenior handles POST /verify/senior
func (h *EmergencyHandler) HandleVerifySenior(w http.ResponseWriter, r *http.Request) {
	var req verifySeniorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// An unparsable date of birth yields a zero-confidence verification,
	// not an HTTP error
	result := emergency.VerifySenior(req.DateOfBirth, req.ClaimedAge, time.Now())

	writeJSON(w, http.StatusOK, result)
}

// validateIDRequest is the JSON body for POST /validate/id
type validateIDRequest struct {
	IDNumber string `json:"id_number"`
}

// HandleValidateID handles POST /validate/id
func (h *EmergencyHandler) HandleValidateID(w http.ResponseWriter, r *http.Request) {
	var req validateIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{
		"valid": emergency.ValidateIDFormat(req.IDNumber),
	})
}
