package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/queuewise/mlservice/internal/emergency"
	"github.com/queuewise/mlservice/internal/types"
	"github.com/rs/zerolog"
)

func newTestEmergencyHandler() *EmergencyHandler {
	return NewEmergencyHandler(emergency.NewRuleClassifier(), zerolog.Nop())
}

func TestHandleClassify(t *testing.T) {
	h := newTestEmergencyHandler()

	tests := []struct {
		name         string
		reason       string
		want         types.ClaimLabel
		wantReview   bool
		wantPriority string
	}{
		{
			name:         "genuine medical claim",
			reason:       "My father had a heart attack and is in the hospital emergency ward with severe chest pain",
			want:         types.ClaimGenuine,
			wantReview:   false,
			wantPriority: "EMERGENCY",
		},
		{
			name:         "empty reason",
			reason:       "",
			want:         types.ClaimFalse,
			wantReview:   false,
			wantPriority: "NORMAL",
		},
		{
			name:         "vague urgency",
			reason:       "I have an urgent matter today and need this appointment now please",
			want:         types.ClaimSuspicious,
			wantReview:   true,
			wantPriority: "NORMAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.HandleClassify, "/classify/emergency", map[string]interface{}{
				"reason":         tt.reason,
				"emergency_type": "medical",
			})

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}

			var got types.ClaimClassification
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			if got.Classification != tt.want {
				t.Errorf("expected %s, got %s (%s)", tt.want, got.Classification, got.Reasoning)
			}
			if got.RequiresReview != tt.wantReview {
				t.Errorf("expected requires_admin_review=%v, got %v", tt.wantReview, got.RequiresReview)
			}
			if got.SuggestedPriority != tt.wantPriority {
				t.Errorf("expected priority %s, got %s", tt.wantPriority, got.SuggestedPriority)
			}
		})
	}
}

func TestHandleVerifySenior(t *testing.T) {
	h := newTestEmergencyHandler()

	rec := postJSON(t, h.HandleVerifySenior, "/verify/senior", map[string]interface{}{
		"date_of_birth": "1950-01-01",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got types.AgeVerification
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !got.IsSenior {
		t.Error("expected senior verification for 1950 birth date")
	}
	if got.RequiresDocument {
		t.Error("clear senior should not need a document")
	}
}

func TestHandleVerifySeniorBadDate(t *testing.T) {
	h := newTestEmergencyHandler()

	rec := postJSON(t, h.HandleVerifySenior, "/verify/senior", map[string]interface{}{
		"date_of_birth": "not-a-date",
	})

	// Still 200: the verification result carries the failure
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got types.AgeVerification
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.IsSenior {
		t.Error("unverifiable date must not verify")
	}
	if got.Confidence != 0.0 {
		t.Errorf("expected zero confidence, got %v", got.Confidence)
	}
	if !got.RequiresDocument {
		t.Error("unverifiable claims require a document")
	}
}

func TestHandleValidateID(t *testing.T) {
	h := newTestEmergencyHandler()

	tests := []struct {
		idNumber string
		want     bool
	}{
		{"123456789012", true},
		{"12345", false},
		{"12345678901a", false},
	}

	for _, tt := range tests {
		rec := postJSON(t, h.HandleValidateID, "/validate/id", map[string]interface{}{
			"id_number": tt.idNumber,
		})

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var got map[string]bool
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if got["valid"] != tt.want {
			t.Errorf("id %q: expected valid=%v, got %v", tt.idNumber, tt.want, got["valid"])
		}
	}
}
