package port

import (
	"context"
	"time"

	"github.com/scatauk/nela-api/pkg/events"
)

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...events.DomainEvent) error
}

// CalculationMetrics records calculation outcomes. Implementations must not
// receive patient data.
type CalculationMetrics interface {
	// RecordCalculation records a successful calculation.
	RecordCalculation(ctx context.Context, riskBand string, predictedRisk float64, elapsed time.Duration)

	// RecordFailure records a rejected or failed calculation by reason.
	RecordFailure(ctx context.Context, reason string, elapsed time.Duration)
}
