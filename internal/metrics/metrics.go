package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Metrics holds all application metrics
type Metrics struct {
	mu sync.RWMutex

	// Prediction metrics
	predictionsTotal    map[string]int64 // model -> count
	predictionErrors    int64
	lastPredictionTimes map[string]time.Time

	// Feedback metrics
	FeedbackReceivedTotal int64
	FeedbackErrorsTotal   int64

	// Training metrics
	TrainingRunsTotal   int64
	TrainingErrorsTotal int64

	// WebSocket metrics
	WebSocketConnectionsTotal    int64
	WebSocketDisconnectionsTotal int64
	activeConnections            int64

	// Broadcast metrics
	BroadcastsTotal int64

	// HTTP metrics
	httpRequestsTotal map[string]map[int]int64 // endpoint -> status -> count

	// Timing
	startTime time.Time
}

// Global metrics instance
var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			predictionsTotal:    make(map[string]int64),
			lastPredictionTimes: make(map[string]time.Time),
			httpRequestsTotal:   make(map[string]map[int]int64),
			startTime:           time.Now(),
		}
	})
	return instance
}

// RecordPrediction increments the prediction counter for a model
func (m *Metrics) RecordPrediction(model string) {
	m.mu.Lock()
	m.predictionsTotal[model]++
	m.lastPredictionTimes[model] = time.Now()
	m.mu.Unlock()
}

// RecordPredictionError increments the prediction error counter
func (m *Metrics) RecordPredictionError() {
	m.mu.Lock()
	m.predictionErrors++
	m.mu.Unlock()
}

// RecordFeedback increments the feedback received counter
func (m *Metrics) RecordFeedback() {
	m.mu.Lock()
	m.FeedbackReceivedTotal++
	m.mu.Unlock()
}

// RecordFeedbackError increments the feedback error counter
func (m *Metrics) RecordFeedbackError() {
	m.mu.Lock()
	m.FeedbackErrorsTotal++
	m.mu.Unlock()
}

// RecordTrainingRun increments the training run counter
func (m *Metrics) RecordTrainingRun() {
	m.mu.Lock()
	m.TrainingRunsTotal++
	m.mu.Unlock()
}

// RecordTrainingError increments the training error counter
func (m *Metrics) RecordTrainingError() {
	m.mu.Lock()
	m.TrainingErrorsTotal++
	m.mu.Unlock()
}

// RecordWebSocketConnect increments connection counters
func (m *Metrics) RecordWebSocketConnect() {
	m.mu.Lock()
	m.WebSocketConnectionsTotal++
	m.activeConnections++
	m.mu.Unlock()
}

// RecordWebSocketDisconnect increments disconnection counter
func (m *Metrics) RecordWebSocketDisconnect() {
	m.mu.Lock()
	m.WebSocketDisconnectionsTotal++
	m.activeConnections--
	m.mu.Unlock()
}

// RecordBroadcast increments the broadcast counter
func (m *Metrics) RecordBroadcast() {
	m.mu.Lock()
	m.BroadcastsTotal++
	m.mu.Unlock()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(endpoint string, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.httpRequestsTotal[endpoint] == nil {
		m.httpRequestsTotal[endpoint] = make(map[int]int64)
	}
	m.httpRequestsTotal[endpoint][statusCode]++
}

// PredictionCount returns the prediction count for a model
func (m *Metrics) PredictionCount(model string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.predictionsTotal[model]
}

// GetActiveConnections returns current WebSocket connections
func (m *Metrics) GetActiveConnections() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeConnections
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		// Helper to write metric
		write := func(name string, value interface{}, labels ...string) {
			labelStr := ""
			if len(labels) > 0 {
				labelStr = "{"
				for i := 0; i < len(labels); i += 2 {
					if i > 0 {
						labelStr += ","
					}
					labelStr += labels[i] + "=\"" + labels[i+1] + "\""
				}
				labelStr += "}"
			}

			switch v := value.(type) {
			case int:
				w.Write([]byte(name + labelStr + " " + strconv.Itoa(v) + "\n"))
			case int64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatInt(v, 10) + "\n"))
			case float64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatFloat(v, 'f', 6, 64) + "\n"))
			}
		}

		// System metrics
		write("qwise_uptime_seconds", time.Since(m.startTime).Seconds())

		// Prediction metrics
		var totalPredictions int64
		for model, count := range m.predictionsTotal {
			write("qwise_predictions_total", count, "model", model)
			totalPredictions += count
		}
		write("qwise_prediction_errors_total", m.predictionErrors)

		uptimeSeconds := time.Since(m.startTime).Seconds()
		if uptimeSeconds > 0 {
			write("qwise_predictions_per_second", float64(totalPredictions)/uptimeSeconds)
		}

		// Feedback metrics
		write("qwise_feedback_received_total", m.FeedbackReceivedTotal)
		write("qwise_feedback_errors_total", m.FeedbackErrorsTotal)

		// Training metrics
		write("qwise_training_runs_total", m.TrainingRunsTotal)
		write("qwise_training_errors_total", m.TrainingErrorsTotal)

		// WebSocket metrics
		write("qwise_websocket_connections_total", m.WebSocketConnectionsTotal)
		write("qwise_websocket_disconnections_total", m.WebSocketDisconnectionsTotal)
		write("qwise_websocket_active_connections", m.activeConnections)
		write("qwise_broadcasts_total", m.BroadcastsTotal)

		// HTTP metrics
		for endpoint, statusCodes := range m.httpRequestsTotal {
			for status, count := range statusCodes {
				write("qwise_http_requests_total", count, "endpoint", endpoint, "status", strconv.Itoa(status))
			}
		}
	}
}
