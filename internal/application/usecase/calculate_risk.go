package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/scatauk/nela-api/internal/application/dto"
	"github.com/scatauk/nela-api/internal/domain/model"
	"github.com/scatauk/nela-api/internal/domain/port"
	"github.com/scatauk/nela-api/internal/domain/schema"
	"github.com/scatauk/nela-api/internal/domain/service"
)

const tracerName = "github.com/scatauk/nela-api/internal/application/usecase"

// Failure reasons reported to metrics.
const (
	ReasonSchema            = "schema"
	ReasonComputation       = "computation"
	ReasonOutOfRange        = "out_of_range"
	ReasonSchemaUnavailable = "schema_unavailable"
)

// CalculateRisk is the use case for computing one patient's predicted risk.
type CalculateRisk struct {
	calculator service.Calculator
	publisher  port.EventPublisher
	metrics    port.CalculationMetrics
	logger     *slog.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// NewCalculateRisk creates a new CalculateRisk use case.
func NewCalculateRisk(
	calculator service.Calculator,
	publisher port.EventPublisher,
	metrics port.CalculationMetrics,
	logger *slog.Logger,
) *CalculateRisk {
	return &CalculateRisk{
		calculator: calculator,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
		now:        time.Now,
	}
}

// Execute runs the calculation, records metrics and publishes a
// RiskCalculated event. Calculator errors are returned unwrapped so callers
// can report their messages verbatim. A publishing failure is logged and
// does not fail the calculation.
func (uc *CalculateRisk) Execute(ctx context.Context, req dto.CalculateRiskRequest) (dto.CalculateRiskResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "CalculateRisk.Execute")
	defer span.End()

	start := uc.now()

	// 1. Validate and evaluate the model.
	result, err := uc.calculator.Calculate(req.Record)
	if err != nil {
		reason := FailureReason(err)
		uc.metrics.RecordFailure(ctx, reason, uc.now().Sub(start))
		span.SetStatus(codes.Error, reason)
		span.RecordError(err)
		uc.logger.InfoContext(ctx, "risk calculation rejected",
			slog.String("request_id", req.RequestID),
			slog.String("reason", reason),
			slog.String("error", err.Error()),
		)
		return dto.CalculateRiskResponse{}, err
	}

	// 2. Build the aggregate; this classifies the result and raises events.
	assessment, err := model.NewRiskAssessment(result, uc.now())
	if err != nil {
		uc.metrics.RecordFailure(ctx, ReasonOutOfRange, uc.now().Sub(start))
		span.SetStatus(codes.Error, ReasonOutOfRange)
		return dto.CalculateRiskResponse{}, fmt.Errorf("%w: %v", service.ErrRiskOutOfRange, err)
	}

	uc.metrics.RecordCalculation(ctx, assessment.Band().String(), assessment.PredictedRisk(), uc.now().Sub(start))
	span.SetAttributes(
		attribute.String("nela.calculation_id", assessment.ID().String()),
		attribute.String("nela.risk_band", assessment.Band().String()),
	)

	// 3. Publish domain events.
	if evts := assessment.ClearEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			span.RecordError(err)
			uc.logger.WarnContext(ctx, "failed to publish risk events",
				slog.String("request_id", req.RequestID),
				slog.String("calculation_id", assessment.ID().String()),
				slog.String("error", err.Error()),
			)
		}
	}

	uc.logger.DebugContext(ctx, "risk calculated",
		slog.String("request_id", req.RequestID),
		slog.String("calculation_id", assessment.ID().String()),
		slog.String("risk_band", assessment.Band().String()),
	)

	return dto.FromModel(assessment), nil
}

// FailureReason classifies a calculator error for metrics and logs.
func FailureReason(err error) string {
	var computation *service.ComputationError
	switch {
	case errors.Is(err, schema.ErrSchemaUnavailable):
		return ReasonSchemaUnavailable
	case errors.As(err, &computation):
		return ReasonComputation
	case errors.Is(err, service.ErrRiskOutOfRange):
		return ReasonOutOfRange
	default:
		return ReasonSchema
	}
}
