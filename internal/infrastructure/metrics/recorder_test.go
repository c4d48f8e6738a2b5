package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/scatauk/nela-api/internal/infrastructure/metrics"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func newRecorder(t *testing.T) (*metrics.Recorder, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	rec, err := metrics.NewRecorder(provider.Meter("test"))
	require.NoError(t, err)
	return rec, reader
}

func TestRecorder_RecordCalculation(t *testing.T) {
	rec, reader := newRecorder(t)
	ctx := context.Background()

	rec.RecordCalculation(ctx, "VERY_HIGH", 22.151, 2*time.Millisecond)
	rec.RecordCalculation(ctx, "VERY_HIGH", 30.0, time.Millisecond)
	rec.RecordCalculation(ctx, "MODERATE", 1.112, time.Millisecond)

	got := collect(t, reader)

	sum, ok := got[metrics.CalculationsTotal].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	counts := make(map[string]int64)
	for _, dp := range sum.DataPoints {
		band, _ := dp.Attributes.Value(attribute.Key("risk_band"))
		counts[band.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"VERY_HIGH": 2, "MODERATE": 1}, counts)

	hist, ok := got[metrics.PredictedRisk].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(3), hist.DataPoints[0].Count)
	assert.InDelta(t, 53.263, hist.DataPoints[0].Sum, 1e-9)

	_, ok = got[metrics.CalculationDuration]
	assert.True(t, ok)
	_, ok = got[metrics.FailuresTotal]
	assert.False(t, ok)
}

func TestRecorder_RecordFailure(t *testing.T) {
	rec, reader := newRecorder(t)

	rec.RecordFailure(context.Background(), "schema", time.Millisecond)

	got := collect(t, reader)
	sum, ok := got[metrics.FailuresTotal].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)

	reason, _ := sum.DataPoints[0].Attributes.Value(attribute.Key("reason"))
	assert.Equal(t, "schema", reason.AsString())
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)
}
