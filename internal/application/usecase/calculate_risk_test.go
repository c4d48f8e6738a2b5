package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scatauk/nela-api/internal/application/dto"
	"github.com/scatauk/nela-api/internal/application/usecase"
	"github.com/scatauk/nela-api/internal/domain/event"
	"github.com/scatauk/nela-api/internal/domain/model"
	"github.com/scatauk/nela-api/internal/domain/schema"
	"github.com/scatauk/nela-api/internal/domain/service"
	"github.com/scatauk/nela-api/pkg/events"
	"github.com/scatauk/nela-api/pkg/testutil"
)

// --- Mock implementations ---

type mockCalculator struct {
	calculateFunc func(r schema.Record) (model.RiskResult, error)
}

func (m *mockCalculator) Calculate(r schema.Record) (model.RiskResult, error) {
	return m.calculateFunc(r)
}

type mockEventPublisher struct {
	mu              sync.Mutex
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockMetrics struct {
	bands    []string
	failures []string
}

func (m *mockMetrics) RecordCalculation(_ context.Context, band string, _ float64, _ time.Duration) {
	m.bands = append(m.bands, band)
}

func (m *mockMetrics) RecordFailure(_ context.Context, reason string, _ time.Duration) {
	m.failures = append(m.failures, reason)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func realCalculator(t *testing.T) *service.RiskCalculator {
	t.Helper()
	v, err := schema.Default()
	require.NoError(t, err)
	return service.NewRiskCalculator(v)
}

// --- Tests ---

func TestCalculateRisk_Execute(t *testing.T) {
	t.Run("calculates the golden record and publishes an event", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		metrics := &mockMetrics{}
		uc := usecase.NewCalculateRisk(realCalculator(t), publisher, metrics, discardLogger())

		resp, err := uc.Execute(context.Background(), dto.CalculateRiskRequest{
			Record:    testutil.GoldenPatientRecord(),
			RequestID: "req-1",
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.CalculationID)
		assert.Equal(t, 22.151, resp.PredictedRisk)
		assert.Equal(t, "22.151", resp.RiskText)
		assert.Equal(t, "VERY_HIGH", resp.RiskBand)
		assert.Equal(t, []string{"VERY_HIGH"}, metrics.bands)
		assert.Empty(t, metrics.failures)

		require.Len(t, publisher.publishedEvents, 1)
		evt, ok := publisher.publishedEvents[0].(event.RiskCalculated)
		require.True(t, ok)
		assert.Equal(t, resp.CalculationID, evt.CalculationID)
		assert.Equal(t, 22.151, evt.PredictedRisk)
	})

	t.Run("returns schema errors unwrapped", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		metrics := &mockMetrics{}
		uc := usecase.NewCalculateRisk(realCalculator(t), publisher, metrics, discardLogger())

		_, err := uc.Execute(context.Background(), dto.CalculateRiskRequest{
			Record: schema.NewRecord(schema.Field{Name: "age", Value: 65.0}),
		})

		require.Error(t, err)
		assert.Equal(t, schema.ErrKeyCountMismatch, err)
		assert.Equal(t, []string{usecase.ReasonSchema}, metrics.failures)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("publisher failure does not fail the calculation", func(t *testing.T) {
		publisher := &mockEventPublisher{
			publishFunc: func(_ context.Context, _ ...events.DomainEvent) error {
				return errors.New("broker unavailable")
			},
		}
		uc := usecase.NewCalculateRisk(realCalculator(t), publisher, &mockMetrics{}, discardLogger())

		resp, err := uc.Execute(context.Background(), dto.CalculateRiskRequest{
			Record: testutil.BaselinePatientRecord(),
		})

		require.NoError(t, err)
		assert.Equal(t, 1.112, resp.PredictedRisk)
	})

	t.Run("out of range result from the calculator", func(t *testing.T) {
		calc := &mockCalculator{
			calculateFunc: func(_ schema.Record) (model.RiskResult, error) {
				return model.RiskResult{}, service.ErrRiskOutOfRange
			},
		}
		metrics := &mockMetrics{}
		uc := usecase.NewCalculateRisk(calc, &mockEventPublisher{}, metrics, discardLogger())

		_, err := uc.Execute(context.Background(), dto.CalculateRiskRequest{})

		assert.ErrorIs(t, err, service.ErrRiskOutOfRange)
		assert.Equal(t, []string{usecase.ReasonOutOfRange}, metrics.failures)
	})

	t.Run("aggregate rejects an impossible result", func(t *testing.T) {
		calc := &mockCalculator{
			calculateFunc: func(_ schema.Record) (model.RiskResult, error) {
				return model.RiskResult{PredictedRisk: 140}, nil
			},
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewCalculateRisk(calc, publisher, &mockMetrics{}, discardLogger())

		_, err := uc.Execute(context.Background(), dto.CalculateRiskRequest{})

		assert.ErrorIs(t, err, service.ErrRiskOutOfRange)
		assert.Empty(t, publisher.publishedEvents)
	})
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{schema.ErrKeyCountMismatch, usecase.ReasonSchema},
		{&schema.TypeMismatchError{Field: "age"}, usecase.ReasonSchema},
		{&service.ComputationError{Err: errors.New("urea")}, usecase.ReasonComputation},
		{service.ErrRiskOutOfRange, usecase.ReasonOutOfRange},
		{schema.ErrSchemaUnavailable, usecase.ReasonSchemaUnavailable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, usecase.FailureReason(tt.err), tt.err.Error())
	}
}
