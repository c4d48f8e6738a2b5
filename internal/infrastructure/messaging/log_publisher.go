// Package messaging holds event publishers that do not need a broker.
package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scatauk/nela-api/pkg/events"
)

// LogPublisher implements port.EventPublisher by logging each event
// envelope. It is used when no Kafka brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
	topic  string
}

// NewLogPublisher creates a new logging event publisher.
func NewLogPublisher(topic string, logger *slog.Logger) *LogPublisher {
	return &LogPublisher{
		topic:  topic,
		logger: logger,
	}
}

// Publish logs domain events.
func (p *LogPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	for _, evt := range domainEvents {
		eventType := evt.EventType()

		payload, err := events.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
		}

		p.logger.InfoContext(ctx, "publishing event",
			slog.String("event_type", eventType),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(payload)),
		)
		p.logger.DebugContext(ctx, "event payload",
			slog.String("event_type", eventType),
			slog.String("payload", string(payload)),
		)
	}

	return nil
}
