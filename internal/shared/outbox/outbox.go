package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	contractsv1 "provenance/contracts/gen/events/v1"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"
)

var ErrMessageNotFound = errors.New("outbox message not found")

// Message is an outbox row written in the same unit of work as the state
// change it describes. Payload holds the JSON encoded envelope.
type Message struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

func FromEnvelope(envelope contractsv1.Envelope) (Message, error) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return Message{}, err
	}
	return Message{
		OutboxID:     envelope.EventID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}, nil
}

func (m Message) Envelope() (contractsv1.Envelope, error) {
	var envelope contractsv1.Envelope
	if err := json.Unmarshal(m.Payload, &envelope); err != nil {
		return contractsv1.Envelope{}, err
	}
	return envelope, nil
}

// Writer appends envelopes inside the caller's unit of work.
type Writer interface {
	Append(ctx context.Context, envelope contractsv1.Envelope) error
}

// Store is the relay side of an outbox: polling and acknowledgement.
type Store interface {
	ListPending(ctx context.Context, limit int) ([]Message, error)
	MarkSent(ctx context.Context, outboxID string, sentAt time.Time) error
}
