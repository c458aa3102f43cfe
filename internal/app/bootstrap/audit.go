package bootstrap

import (
	"context"
	"log/slog"

	contractsv1 "provenance/contracts/gen/events/v1"
	"provenance/internal/platform/messaging"
	"provenance/internal/platform/metrics"
)

const auditConsumerGroup = "provenance-audit"

// AuditConsumer records every published ledger event in the structured log
// and the ledger event counter.
type AuditConsumer struct {
	Bus     *messaging.Kafka
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Start subscribes to all ledger topics. Subscriptions end with ctx.
func (c AuditConsumer) Start(ctx context.Context) error {
	for _, topic := range contractsv1.LedgerEventTypes {
		if err := c.Bus.Subscribe(ctx, topic, auditConsumerGroup, c.handle); err != nil {
			return err
		}
	}
	return nil
}

func (c AuditConsumer) handle(_ context.Context, event contractsv1.Envelope) error {
	c.Metrics.ObserveLedgerEvent(event.EventType)
	c.logger().Info("ledger event",
		"event", "ledger_event_observed",
		"module", "internal/app/bootstrap",
		"layer", "worker",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"source_service", event.SourceService,
		"partition_key", event.PartitionKey,
		"occurred_at", event.OccurredAt,
	)
	return nil
}

func (c AuditConsumer) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
