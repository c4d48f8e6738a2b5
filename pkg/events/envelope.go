package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContentType is the media type of a marshalled Envelope.
const ContentType = "application/vnd.nela.event+json"

// Envelope is the wire form of a DomainEvent. The event's own payload is
// carried verbatim.
type Envelope struct {
	OccurredAt    time.Time       `json:"occurred_at"`
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	Payload       json.RawMessage `json:"payload"`
	ID            uuid.UUID       `json:"event_id"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
}

// NewEnvelope wraps a DomainEvent. The payload must be valid JSON.
func NewEnvelope(event DomainEvent) (Envelope, error) {
	payload := event.Payload()
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	if !json.Valid(payload) {
		return Envelope{}, fmt.Errorf("event %s: payload is not valid JSON", event.EventType())
	}
	return Envelope{
		ID:            event.EventID(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
	}, nil
}

// Marshal encodes a DomainEvent as an Envelope.
func Marshal(event DomainEvent) ([]byte, error) {
	env, err := NewEnvelope(event)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshalling event %s: %w", event.EventType(), err)
	}
	return data, nil
}

// Unmarshal decodes an Envelope produced by Marshal.
func Unmarshal(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshalling event envelope: %w", err)
	}
	if env.ID == uuid.Nil || env.EventType == "" {
		return Envelope{}, errors.New("event envelope is missing id or type")
	}
	return env, nil
}
