package kafka

import (
	"context"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:       []string{"localhost:9092", "localhost:9093"},
		ConsumerGroup: "test-group",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, p.brokers)
	assert.NotNil(t, p.writers)
	assert.Empty(t, p.writers)
	assert.Nil(t, p.transport.TLS)
	assert.Nil(t, p.transport.SASL)
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(Config{})
	assert.Error(t, err)
}

func TestNewProducer_TLSAndSASL(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:      []string{"kafka:9093"},
		TLS:          true,
		SASLEnabled:  true,
		SASLUsername: "nela",
		SASLPassword: "secret",
	})
	require.NoError(t, err)

	require.NotNil(t, p.transport.TLS)
	assert.Equal(t, plain.Mechanism{Username: "nela", Password: "secret"}, p.transport.SASL)
}

func TestConfig_SASLMechanisms(t *testing.T) {
	tests := []struct {
		mechanism string
		wantName  string
		wantErr   bool
	}{
		{"", "PLAIN", false},
		{"PLAIN", "PLAIN", false},
		{"SCRAM-SHA-256", "SCRAM-SHA-256", false},
		{"SCRAM-SHA-512", "SCRAM-SHA-512", false},
		{"GSSAPI", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.mechanism, func(t *testing.T) {
			m, err := Config{SASLEnabled: true, SASLMechanism: tt.mechanism, SASLUsername: "u", SASLPassword: "p"}.saslMechanism()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, m.Name())
		})
	}
}

func TestGetOrCreateWriter(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	w1, err := p.getOrCreateWriter("topic-a")
	require.NoError(t, err)
	w2, err := p.getOrCreateWriter("topic-a")
	require.NoError(t, err)
	w3, err := p.getOrCreateWriter("topic-b")
	require.NoError(t, err)

	assert.Same(t, w1, w2)
	assert.NotSame(t, w1, w3)
	assert.Equal(t, kafkago.RequireAll, w1.RequiredAcks)
	assert.Len(t, p.writers, 2)
}

func TestProducerClose(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	_, _ = p.getOrCreateWriter("topic-a")
	_, _ = p.getOrCreateWriter("topic-b")

	require.NoError(t, p.Close())
	assert.Empty(t, p.writers)

	err = p.Publish(context.Background(), "topic-a", Message{Value: []byte("x")})
	assert.ErrorIs(t, err, ErrProducerClosed)
}

func TestPublish_NoMessagesIsNoop(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	assert.NoError(t, p.Publish(context.Background(), "topic-a"))
	assert.Empty(t, p.writers)
}

func TestFromKafkaMessage(t *testing.T) {
	msg := fromKafkaMessage(kafkago.Message{
		Key:   []byte("calc-1"),
		Value: []byte(`{"a":1}`),
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("nela.risk.calculated")},
		},
	})

	assert.Equal(t, "calc-1", string(msg.Key))
	assert.Equal(t, "nela.risk.calculated", msg.Headers["event_type"])
}

func TestPing_NoBrokers(t *testing.T) {
	assert.Error(t, Ping(context.Background(), Config{}))
}

func TestPing_Unreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Ping(ctx, Config{Brokers: []string{"127.0.0.1:1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
