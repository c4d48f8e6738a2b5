package messaging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scatauk/nela-api/internal/domain/event"
	"github.com/scatauk/nela-api/internal/infrastructure/messaging"
)

func TestLogPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pub := messaging.NewLogPublisher("nela.risk.calculated", logger)

	evt, err := event.NewRiskCalculated(uuid.New(), 1.112, "MODERATE", -4.487, time.Now())
	require.NoError(t, err)

	require.NoError(t, pub.Publish(context.Background(), evt))

	out := buf.String()
	assert.Contains(t, out, "publishing event")
	assert.Contains(t, out, "event_type=nela.risk.calculated")
	assert.Contains(t, out, "topic=nela.risk.calculated")
	assert.Contains(t, out, evt.EventID().String())
}

func TestLogPublisher_NoEvents(t *testing.T) {
	var buf bytes.Buffer
	pub := messaging.NewLogPublisher("topic", slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, pub.Publish(context.Background()))
	assert.Empty(t, buf.String())
}
