package insights

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// Sender pushes messages to connected dashboard clients
type Sender interface {
	Broadcast(message []byte)
	ClientCount() int
}

// Broadcaster periodically pushes the insights overview to the hub so
// dashboards stay live without polling
type Broadcaster struct {
	aggregator *Aggregator
	sender     Sender
	serviceID  string
	interval   time.Duration
	logger     zerolog.Logger
}

// NewBroadcaster creates a Broadcaster
func NewBroadcaster(aggregator *Aggregator, sender Sender, serviceID string, interval time.Duration, logger zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		aggregator: aggregator,
		sender:     sender,
		serviceID:  serviceID,
		interval:   interval,
		logger:     logger.With().Str("component", "broadcaster").Logger(),
	}
}

// Start begins broadcasting overview updates until the context is cancelled
func (b *Broadcaster) Start(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.logger.Info().Dur("interval", b.interval).Msg("insights broadcaster started")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("insights broadcaster stopped")
			return

		case now := <-ticker.C:
			if b.sender.ClientCount() == 0 {
				continue
			}

			overview := b.aggregator.Overview(b.serviceID, now)
			data, err := json.Marshal(overview)
			if err != nil {
				b.logger.Error().Err(err).Msg("failed to marshal insights overview")
				continue
			}

			b.sender.Broadcast(data)
			b.logger.Debug().
				Int("clients", b.sender.ClientCount()).
				Int("peak_hour", overview.PeakHour).
				Msg("broadcasted insights overview")
		}
	}
}
