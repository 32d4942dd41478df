// Package kafka bridges the broker to the in-process pipeline: a consumer
// that decodes match completed events into the bounded queue, and a
// publisher the registry uses when a match completes. Both are optional;
// the service runs HTTP-only when no brokers are configured.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/segmentio/kafka-go"

	"github.com/fermano/TennisPulse/internal/domain/model"
	"github.com/fermano/TennisPulse/pkg/logger"
	"github.com/fermano/TennisPulse/pkg/metrics"
)

// Enqueuer is where decoded events land.
type Enqueuer interface {
	Enqueue(ctx context.Context, event model.MatchCompletedEvent) bool
}

// Consumer reads match completed events off a topic and feeds the queue.
type Consumer struct {
	reader *kafka.Reader
	queue  Enqueuer
	logger logger.Logger
}

// NewConsumer creates a consumer for the given brokers and topic.
func NewConsumer(brokers []string, topic, groupID string, queue Enqueuer) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})
	return &Consumer{
		reader: reader,
		queue:  queue,
		logger: logger.Get().Named("kafka-consumer"),
	}
}

// Run reads messages until ctx is canceled or the reader is closed.
// Malformed messages are dropped and logged; backpressure from a full
// queue drops the event the same way an HTTP 429 would.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("kafka read: %w", err)
		}

		c.handle(ctx, msg)
	}
}

// handle decodes and enqueues one message.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) {
	var event model.MatchCompletedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Warn(ctx, "dropping malformed message",
			logger.Int("offset", int(msg.Offset)),
			logger.Error(err),
		)
		metrics.RecordEventDropped()
		return
	}
	if event.MatchID == "" {
		c.logger.Warn(ctx, "dropping event without match id",
			logger.Int("offset", int(msg.Offset)),
		)
		metrics.RecordEventDropped()
		return
	}

	if !c.queue.Enqueue(ctx, event) {
		c.logger.Warn(ctx, "queue full, dropping event",
			logger.String("matchID", event.MatchID),
		)
		metrics.RecordEventDropped()
		return
	}
	metrics.RecordEventConsumed()
}

// Close closes the underlying reader, which unblocks Run.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// Publisher writes match completed events to the topic.
type Publisher struct {
	writer *kafka.Writer
	logger logger.Logger
}

// NewPublisher creates a publisher, or nil when not configured so callers
// can pass it straight through as an optional dependency.
func NewPublisher(brokers []string, topic string) *Publisher {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{
		writer: writer,
		logger: logger.Get().Named("kafka-publisher"),
	}
}

// PublishMatchCompleted writes one event, keyed by match id so replays of
// the same match land in the same partition.
func (p *Publisher) PublishMatchCompleted(ctx context.Context, event model.MatchCompletedEvent) error {
	if p == nil || p.writer == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.MatchID),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

// Close closes the underlying writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
