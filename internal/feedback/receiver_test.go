package feedback

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/queuewise/mlservice/internal/types"
	"github.com/rs/zerolog"
)

// recordingStore captures async saves on channels so tests can wait for them
type recordingStore struct {
	events  chan types.FeedbackEvent
	records chan types.WaitHistoryRecord
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		events:  make(chan types.FeedbackEvent, 10),
		records: make(chan types.WaitHistoryRecord, 10),
	}
}

func (s *recordingStore) SaveFeedbackEvent(event types.FeedbackEvent) error {
	s.events <- event
	return nil
}

func (s *recordingStore) SaveWaitHistoryRecord(record types.WaitHistoryRecord) error {
	s.records <- record
	return nil
}

func (s *recordingStore) GetWaitHistory(_ string) ([]types.WaitHistoryRecord, error) {
	return nil, nil
}

func (s *recordingStore) GetFeedbackEvents(_ string) ([]types.FeedbackEvent, error) {
	return nil, nil
}

func (s *recordingStore) TruncateAll() error { return nil }

func postFeedback(t *testing.T, r *Receiver, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/feedback", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	r.HandleFeedback(rec, req)
	return rec
}

func TestHandleFeedback(t *testing.T) {
	store := newRecordingStore()
	r := NewReceiver(store, zerolog.Nop())

	rec := postFeedback(t, r, map[string]interface{}{
		"event_type": "token_completed",
		"data":       map[string]interface{}{"token_id": "tok-1"},
		"timestamp":  "2025-01-08T10:00:00Z",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["status"] != "received" {
		t.Errorf("expected status received, got %s", resp["status"])
	}

	select {
	case event := <-store.events:
		if event.EventType != "token_completed" {
			t.Errorf("expected event type token_completed, got %s", event.EventType)
		}
		if event.EventID == "" {
			t.Error("expected a generated event id")
		}
		if event.DateKey == "" {
			t.Error("expected a date key")
		}
	case <-time.After(time.Second):
		t.Fatal("feedback event was not persisted")
	}
}

func TestHandleFeedbackMissingEventType(t *testing.T) {
	r := NewReceiver(newRecordingStore(), zerolog.Nop())

	rec := postFeedback(t, r, map[string]interface{}{
		"data": map[string]interface{}{"token_id": "tok-1"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleFeedbackInvalidJSON(t *testing.T) {
	r := NewReceiver(newRecordingStore(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/feedback", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	r.HandleFeedback(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestWaitRecordedFeedsHistory(t *testing.T) {
	store := newRecordingStore()
	r := NewReceiver(store, zerolog.Nop())

	rec := postFeedback(t, r, map[string]interface{}{
		"event_type": EventTypeWaitRecorded,
		"data": map[string]interface{}{
			"service_id":       "general",
			"queue_position":   12,
			"actual_wait_time": 85.5,
			"priority":         "normal",
		},
		"timestamp": "2025-01-08T10:00:00Z",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	select {
	case record := <-store.records:
		if record.ServiceID != "general" {
			t.Errorf("expected service general, got %s", record.ServiceID)
		}
		if record.QueuePosition != 12 {
			t.Errorf("expected position 12, got %d", record.QueuePosition)
		}
		if record.ActualWaitTime != 85.5 {
			t.Errorf("expected wait 85.5, got %v", record.ActualWaitTime)
		}
		if record.Priority != "normal" {
			t.Errorf("expected priority normal, got %s", record.Priority)
		}
	case <-time.After(time.Second):
		t.Fatal("wait history record was not persisted")
	}
}

func TestWaitRecordFromData(t *testing.T) {
	base := types.FeedbackEvent{
		EventID: "ev-1",
		DateKey: "2025-01-08",
	}

	tests := []struct {
		name   string
		data   map[string]interface{}
		wantOK bool
	}{
		{
			name: "complete payload",
			data: map[string]interface{}{
				"service_id":       "general",
				"queue_position":   float64(5),
				"actual_wait_time": float64(40),
			},
			wantOK: true,
		},
		{
			name: "missing service",
			data: map[string]interface{}{
				"queue_position":   float64(5),
				"actual_wait_time": float64(40),
			},
			wantOK: false,
		},
		{
			name: "missing wait",
			data: map[string]interface{}{
				"service_id":     "general",
				"queue_position": float64(5),
			},
			wantOK: false,
		},
		{
			name: "position below one",
			data: map[string]interface{}{
				"service_id":       "general",
				"queue_position":   float64(0),
				"actual_wait_time": float64(40),
			},
			wantOK: false,
		},
		{
			name: "non-numeric position",
			data: map[string]interface{}{
				"service_id":       "general",
				"queue_position":   "five",
				"actual_wait_time": float64(40),
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := base
			event.Data = tt.data

			record, ok := waitRecordFromData(event)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && record.RecordID != "ev-1" {
				t.Errorf("record should reuse the event id, got %s", record.RecordID)
			}
		})
	}
}

func TestGetStats(t *testing.T) {
	store := newRecordingStore()
	r := NewReceiver(store, zerolog.Nop())

	for i := 0; i < 3; i++ {
		postFeedback(t, r, map[string]interface{}{
			"event_type": "token_completed",
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/feedback/stats", nil)
	rec := httptest.NewRecorder()
	r.GetStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats struct {
		EventsReceived int64 `json:"events_received"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if stats.EventsReceived != 3 {
		t.Errorf("expected 3 events received, got %d", stats.EventsReceived)
	}
}
