package types

// ServiceCalibration holds per-service statistics derived from historical
// records, used to bias the wait time formula. Immutable once published.
type ServiceCalibration struct {
	ServiceID             string  `json:"service_id"`
	AverageServiceMinutes int     `json:"average_service_minutes"`
	SampleCount           int     `json:"sample_count"`
	MeanWait              float64 `json:"mean_wait"`
	StdWait               float64 `json:"std_wait"`
}

// WaitHistoryRecord is a single observed wait, used for calibration training.
// DateKey is the partition key, RecordID the sort key.
type WaitHistoryRecord struct {
	RecordID        string  `json:"record_id" dynamodbav:"RecordID"`
	DateKey         string  `json:"date_key" dynamodbav:"DateKey"`
	ServiceID       string  `json:"service_id" dynamodbav:"ServiceID"`
	QueuePosition   int     `json:"queue_position" dynamodbav:"QueuePosition"`
	ActualWaitTime  float64 `json:"actual_wait_time" dynamodbav:"ActualWaitTime"` // minutes
	Priority        string  `json:"priority" dynamodbav:"Priority"`
	RecordedAt      string  `json:"recorded_at" dynamodbav:"RecordedAt"`
}

// FeedbackEvent is an outcome event reported by the queue backend,
// stored for later model calibration
type FeedbackEvent struct {
	EventID   string                 `json:"event_id" dynamodbav:"EventID"`
	DateKey   string                 `json:"date_key" dynamodbav:"DateKey"`
	EventType string                 `json:"event_type" dynamodbav:"EventType"`
	Data      map[string]interface{} `json:"data" dynamodbav:"Data"`
	Timestamp string                 `json:"timestamp" dynamodbav:"Timestamp"`
}
