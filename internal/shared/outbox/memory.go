package outbox

import (
	"context"
	"sync"
	"time"

	contractsv1 "provenance/contracts/gen/events/v1"
)

// Buffer is the in-memory outbox used by memory adapters. It takes part in
// txn.Memory units of work through Snapshot.
type Buffer struct {
	mu   sync.Mutex
	rows []bufferRow
}

type bufferRow struct {
	Message
	SentAt *time.Time
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Append(_ context.Context, envelope contractsv1.Envelope) error {
	message, err := FromEnvelope(envelope)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rows = append(b.rows, bufferRow{Message: message})
	return nil
}

func (b *Buffer) ListPending(_ context.Context, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 100
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	items := make([]Message, 0, limit)
	for _, row := range b.rows {
		if row.SentAt != nil {
			continue
		}
		items = append(items, row.Message)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (b *Buffer) MarkSent(_ context.Context, outboxID string, sentAt time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.rows {
		if b.rows[i].OutboxID == outboxID {
			at := sentAt.UTC()
			b.rows[i].SentAt = &at
			return nil
		}
	}
	return ErrMessageNotFound
}

// Messages returns every appended message, sent or not, in append order.
func (b *Buffer) Messages() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := make([]Message, 0, len(b.rows))
	for _, row := range b.rows {
		items = append(items, row.Message)
	}
	return items
}

func (b *Buffer) Snapshot() func() {
	b.mu.Lock()
	saved := append([]bufferRow(nil), b.rows...)
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		b.rows = saved
		b.mu.Unlock()
	}
}
