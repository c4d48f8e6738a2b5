// Package metrics records calculation outcomes as OpenTelemetry instruments.
package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names.
const (
	CalculationsTotal   = "nela_calculations_total"
	FailuresTotal       = "nela_calculation_failures_total"
	PredictedRisk       = "nela_predicted_risk_percent"
	CalculationDuration = "nela_calculation_duration_seconds"
)

// riskBuckets follow the risk band boundaries.
var riskBuckets = []float64{0.5, 1, 2, 5, 10, 20, 50, 100}

// Recorder implements port.CalculationMetrics. Only outcome attributes are
// recorded; patient values never reach an instrument.
type Recorder struct {
	calculations metric.Int64Counter
	failures     metric.Int64Counter
	risk         metric.Float64Histogram
	duration     metric.Float64Histogram
}

// NewRecorder creates the instruments on the given meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	calculations, err := meter.Int64Counter(CalculationsTotal,
		metric.WithDescription("Successful risk calculations by risk band."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", CalculationsTotal, err)
	}

	failures, err := meter.Int64Counter(FailuresTotal,
		metric.WithDescription("Rejected or failed risk calculations by reason."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", FailuresTotal, err)
	}

	risk, err := meter.Float64Histogram(PredictedRisk,
		metric.WithDescription("Predicted 30-day mortality risk in percent."),
		metric.WithUnit("%"),
		metric.WithExplicitBucketBoundaries(riskBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", PredictedRisk, err)
	}

	duration, err := meter.Float64Histogram(CalculationDuration,
		metric.WithDescription("Time spent validating and scoring a record."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", CalculationDuration, err)
	}

	return &Recorder{
		calculations: calculations,
		failures:     failures,
		risk:         risk,
		duration:     duration,
	}, nil
}

// RecordCalculation records a successful calculation.
func (r *Recorder) RecordCalculation(ctx context.Context, riskBand string, predictedRisk float64, elapsed time.Duration) {
	band := metric.WithAttributes(attribute.String("risk_band", riskBand))
	r.calculations.Add(ctx, 1, band)
	r.risk.Record(ctx, predictedRisk)
	r.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("outcome", "success")))
}

// RecordFailure records a failed calculation.
func (r *Recorder) RecordFailure(ctx context.Context, reason string, elapsed time.Duration) {
	r.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	r.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("outcome", "failure")))
}
