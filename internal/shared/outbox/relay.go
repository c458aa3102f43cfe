package outbox

import (
	"context"
	"log/slog"
	"time"

	contractsv1 "provenance/contracts/gen/events/v1"
	"provenance/internal/platform/metrics"
)

// Publisher delivers one envelope to the event bus.
type Publisher interface {
	Publish(ctx context.Context, topic string, event contractsv1.Envelope) error
}

// Source names one module outbox for logs and metrics.
type Source struct {
	Name  string
	Store Store
}

// Relay drains pending outbox rows of every source and publishes them on
// topic = event type. A row is marked sent only after a successful publish,
// so delivery is at least once.
type Relay struct {
	Sources   []Source
	Publisher Publisher
	Now       func() time.Time
	BatchSize int
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

func (r Relay) RunOnce(ctx context.Context) (int, error) {
	logger := r.logger()
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	published := 0
	for _, source := range r.Sources {
		pending, err := source.Store.ListPending(ctx, limit)
		if err != nil {
			r.Metrics.ObserveRelayFailure(source.Name, "list")
			logger.Error("outbox list failed",
				"event", "outbox_list_failed",
				"module", "internal/shared/outbox",
				"layer", "worker",
				"source", source.Name,
				"error", err.Error(),
			)
			return published, err
		}

		for _, row := range pending {
			envelope, err := row.Envelope()
			if err != nil {
				r.Metrics.ObserveRelayFailure(source.Name, "decode")
				return published, err
			}
			if err := r.Publisher.Publish(ctx, row.EventType, envelope); err != nil {
				r.Metrics.ObserveRelayFailure(source.Name, "publish")
				logger.Error("outbox publish failed",
					"event", "outbox_publish_failed",
					"module", "internal/shared/outbox",
					"layer", "worker",
					"source", source.Name,
					"outbox_id", row.OutboxID,
					"error", err.Error(),
				)
				return published, err
			}
			if err := source.Store.MarkSent(ctx, row.OutboxID, r.now()); err != nil {
				r.Metrics.ObserveRelayFailure(source.Name, "mark_sent")
				return published, err
			}
			r.Metrics.ObservePublished(source.Name, row.EventType)
			published++
		}
	}
	return published, nil
}

// Run polls every interval until ctx is done.
func (r Relay) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
			r.logger().Warn("outbox relay pass failed",
				"event", "outbox_relay_pass_failed",
				"module", "internal/shared/outbox",
				"layer", "worker",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (r Relay) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}

func (r Relay) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}
