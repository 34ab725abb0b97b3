package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// ErrPublisherClosed is returned by Publish after Close has run.
var ErrPublisherClosed = errors.New("sync: publisher is closed")

const publishTimeout = 5 * time.Second

// Publisher publishes RegisterEvents to a Kafka topic, one message per
// event with its idempotency key as the message key. The kafka.LeastBytes
// balancer does not use that key, so messages for the same page are not
// guaranteed to land on the same partition.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
	closed bool
}

// NewPublisher creates a Publisher writing to topic across brokers.
// Uses kafka.LeastBytes balancing and synchronous acknowledgement from
// all in-sync replicas, trading latency for not losing an event if the
// register API process crashes right after a successful merge.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
		logger: logger,
	}
}

// Publish serialises event as JSON and writes it to the configured
// topic, keyed by the event's idempotency key.
func (p *Publisher) Publish(ctx context.Context, event RegisterEvent) error {
	if p.closed {
		return ErrPublisherClosed
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("sync: marshal register event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.IdempotencyKey),
		Value: payload,
	})
	if err != nil {
		p.logger.Error("failed to publish register event",
			slog.String("project_id", event.ProjectID),
			slog.String("dataset_id", event.DatasetID),
			slog.String("page_id", event.PageID),
			slog.String("error", err.Error()),
		)

		return fmt.Errorf("sync: publish register event: %w", err)
	}

	p.logger.Info("published register event",
		slog.String("type", string(event.Type)),
		slog.String("project_id", event.ProjectID),
		slog.String("dataset_id", event.DatasetID),
		slog.String("page_id", event.PageID),
		slog.String("idempotency_key", event.IdempotencyKey),
	)

	return nil
}

// Close flushes and closes the underlying Kafka writer.
func (p *Publisher) Close() error {
	p.closed = true

	return p.writer.Close()
}
