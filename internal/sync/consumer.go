package sync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// Consumer reads RegisterEvents from a Kafka topic as part of a consumer
// group, for downstream services (search indexing, notifications) that
// react to register merges.
type Consumer struct {
	reader *kafka.Reader
}

// NewConsumer creates a Consumer reading topic within consumer group
// groupID, so multiple replicas of the same downstream service split
// the partitions instead of each seeing every event.
func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
	}
}

// Next blocks until the next RegisterEvent is available, ctx is
// cancelled, or the read fails.
func (c *Consumer) Next(ctx context.Context) (RegisterEvent, error) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return RegisterEvent{}, fmt.Errorf("sync: read register event: %w", err)
	}

	var event RegisterEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return RegisterEvent{}, fmt.Errorf("sync: unmarshal register event: %w", err)
	}

	return event, nil
}

// Close closes the underlying Kafka reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
