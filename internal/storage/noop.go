package storage

import "github.com/queuewise/mlservice/internal/types"

// Store defines the storage interface
type Store interface {
	SaveFeedbackEvent(event types.FeedbackEvent) error
	SaveWaitHistoryRecord(record types.WaitHistoryRecord) error
	GetWaitHistory(dateKey string) ([]types.WaitHistoryRecord, error)
	GetFeedbackEvents(dateKey string) ([]types.FeedbackEvent, error)
	TruncateAll() error
}

// NoopStore is a no-op implementation when DynamoDB is disabled
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (s *NoopStore) SaveFeedbackEvent(_ types.FeedbackEvent) error              { return nil }
func (s *NoopStore) SaveWaitHistoryRecord(_ types.WaitHistoryRecord) error      { return nil }
func (s *NoopStore) GetWaitHistory(_ string) ([]types.WaitHistoryRecord, error) { return nil, nil }
func (s *NoopStore) GetFeedbackEvents(_ string) ([]types.FeedbackEvent, error)  { return nil, nil }
func (s *NoopStore) TruncateAll() error                                         { return nil }
