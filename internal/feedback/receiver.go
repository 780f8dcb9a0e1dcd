package feedback

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/queuewise/mlservice/internal/metrics"
	"github.com/queuewise/mlservice/internal/storage"
	"github.com/queuewise/mlservice/internal/types"
	"github.com/rs/zerolog"
)

// EventTypeWaitRecorded marks feedback carrying an observed wait outcome,
// which doubles as calibration training data
const EventTypeWaitRecorded = "wait_recorded"

// Receiver handles incoming feedback events from the queue backend
type Receiver struct {
	store          storage.Store
	logger         zerolog.Logger
	eventsReceived int64
	lastReceived   time.Time
	mu             sync.RWMutex
}

// NewReceiver creates a new feedback receiver
func NewReceiver(store storage.Store, logger zerolog.Logger) *Receiver {
	return &Receiver{
		store:  store,
		logger: logger.With().Str("component", "feedback").Logger(),
	}
}

// feedbackRequest is the JSON body for POST /feedback
type feedbackRequest struct {
	EventType string                 `json:"event_type"`
	Data      map[string]interface{} `json:"data"`
	Timestamp string                 `json:"timestamp"`
}

// HandleFeedback receives and persists a feedback event
func (r *Receiver) HandleFeedback(w http.ResponseWriter, req *http.Request) {
	m := metrics.Get()

	var body feedbackRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode feedback")
		m.RecordFeedbackError()
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if body.EventType == "" {
		m.RecordFeedbackError()
		http.Error(w, `{"error":"missing event_type"}`, http.StatusBadRequest)
		return
	}

	event := types.FeedbackEvent{
		EventID:   uuid.New().String(),
		DateKey:   time.Now().Format("2006-01-02"),
		EventType: body.EventType,
		Data:      body.Data,
		Timestamp: body.Timestamp,
	}

	// Persist asynchronously, off the request path
	go func() {
		if err := r.store.SaveFeedbackEvent(event); err != nil {
			r.logger.Error().Err(err).Str("event_id", event.EventID).Msg("failed to save feedback event")
		}
	}()

	// Wait outcomes also feed the calibration history
	if body.EventType == EventTypeWaitRecorded {
		if record, ok := waitRecordFromData(event); ok {
			go func() {
				if err := r.store.SaveWaitHistoryRecord(record); err != nil {
					r.logger.Error().Err(err).Str("record_id", record.RecordID).Msg("failed to save wait history record")
				}
			}()
		}
	}

	m.RecordFeedback()
	atomic.AddInt64(&r.eventsReceived, 1)
	r.mu.Lock()
	r.lastReceived = time.Now()
	r.mu.Unlock()

	count := atomic.LoadInt64(&r.eventsReceived)
	if count%1000 == 0 {
		r.logger.Info().Int64("total_received", count).Msg("feedback events received")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":     "received",
		"event_type": body.EventType,
		"timestamp":  body.Timestamp,
	})
}

// GetStats returns receiver statistics
func (r *Receiver) GetStats(w http.ResponseWriter, req *http.Request) {
	r.mu.RLock()
	lastReceived := r.lastReceived
	r.mu.RUnlock()

	stats := map[string]interface{}{
		"events_received": atomic.LoadInt64(&r.eventsReceived),
		"last_received":   lastReceived,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// waitRecordFromData extracts a wait history record from a feedback payload.
// Returns false when the payload is missing the required fields.
func waitRecordFromData(event types.FeedbackEvent) (types.WaitHistoryRecord, bool) {
	serviceID, _ := event.Data["service_id"].(string)
	queuePos, posOK := toFloat(event.Data["queue_position"])
	actualWait, waitOK := toFloat(event.Data["actual_wait_time"])
	if serviceID == "" || !posOK || !waitOK || queuePos < 1 {
		return types.WaitHistoryRecord{}, false
	}

	priority, _ := event.Data["priority"].(string)

	return types.WaitHistoryRecord{
		RecordID:       event.EventID,
		DateKey:        event.DateKey,
		ServiceID:      serviceID,
		QueuePosition:  int(queuePos),
		ActualWaitTime: actualWait,
		Priority:       priority,
		RecordedAt:     event.Timestamp,
	}, true
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
