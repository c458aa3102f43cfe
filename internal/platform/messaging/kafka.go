package messaging

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	contractsv1 "provenance/contracts/gen/events/v1"
)

var ErrBusClosed = errors.New("event bus closed")

// Kafka is the event bus adapter used by the outbox relay and consumers.
// Delivery is in-process publish/subscribe; brokers are accepted for
// configuration parity with an external cluster.
type Kafka struct {
	mu          sync.RWMutex
	subscribers map[string][]chan contractsv1.Envelope
	brokers     []string
	logger      *slog.Logger

	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewKafka(brokers []string, logger *slog.Logger) (*Kafka, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return &Kafka{
		subscribers: make(map[string][]chan contractsv1.Envelope),
		brokers:     append([]string(nil), brokers...),
		logger:      logger,
		done:        make(chan struct{}),
	}, nil
}

func (k *Kafka) Publish(ctx context.Context, topic string, event contractsv1.Envelope) error {
	k.mu.RLock()
	if k.closed {
		k.mu.RUnlock()
		return ErrBusClosed
	}
	subs := append([]chan contractsv1.Envelope(nil), k.subscribers[topic]...)
	k.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- event:
		default:
			k.logger.Warn("dropping event for slow subscriber",
				"event", "kafka_publish_drop",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"event_id", event.EventID,
			)
		}
	}

	k.logger.Debug("event published",
		"event", "kafka_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"partition_key", event.PartitionKey,
	)
	return nil
}

// Subscribe registers handler for topic until ctx is cancelled or the bus is
// closed. Handler errors are logged; delivery is at most once.
func (k *Kafka) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, contractsv1.Envelope) error,
) error {
	ch := make(chan contractsv1.Envelope, 128)

	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return ErrBusClosed
	}
	k.subscribers[topic] = append(k.subscribers[topic], ch)
	k.wg.Add(1)
	k.mu.Unlock()

	go func() {
		defer k.wg.Done()
		defer k.removeSubscriber(topic, ch)
		for {
			select {
			case <-ctx.Done():
				return
			case <-k.done:
				return
			case event := <-ch:
				if err := handler(ctx, event); err != nil {
					k.logger.Error("consumer handler failed",
						"event", "kafka_consume_failed",
						"module", "internal/platform/messaging",
						"layer", "platform",
						"topic", topic,
						"consumer_group", consumerGroup,
						"event_id", event.EventID,
						"event_type", event.EventType,
						"error", err.Error(),
					)
				}
			}
		}
	}()
	return nil
}

// Close stops every subscriber and waits for their goroutines to exit.
func (k *Kafka) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	close(k.done)
	k.mu.Unlock()

	k.wg.Wait()
	return nil
}

func (k *Kafka) removeSubscriber(topic string, target chan contractsv1.Envelope) {
	k.mu.Lock()
	defer k.mu.Unlock()

	items := k.subscribers[topic]
	if len(items) == 0 {
		return
	}
	filtered := make([]chan contractsv1.Envelope, 0, len(items))
	for _, item := range items {
		if item != target {
			filtered = append(filtered, item)
		}
	}
	k.subscribers[topic] = filtered
}
