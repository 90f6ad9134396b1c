package infra

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/rachapay/platform/internal/domain"
	"github.com/segmentio/kafka-go"
)

// KafkaProducer wraps a kafka-go writer for publishing domain events.
type KafkaProducer struct {
	writer  *kafka.Writer
	topic   string
	logger  *slog.Logger
	enabled bool
}

// NewKafkaProducer creates a Kafka producer. If brokers is empty or disabled,
// publishes are no-ops.
func NewKafkaProducer(brokers, topic string, enabled bool, logger *slog.Logger) *KafkaProducer {
	if !enabled || brokers == "" {
		logger.Info("kafka producer disabled")
		return &KafkaProducer{enabled: false, logger: logger}
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("kafka producer initialized", "brokers", brokers, "topic", topic)
	return &KafkaProducer{writer: w, topic: topic, logger: logger, enabled: true}
}

// PublishEvent sends a domain event keyed by game id. Failures are logged and
// swallowed: events are best-effort notifications, never part of the request
// contract.
func (p *KafkaProducer) PublishEvent(ctx context.Context, evt domain.Event) {
	if !p.enabled {
		return
	}

	value, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("marshal event", "event_type", evt.EventType, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(evt.PartitionKey()),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("publish event", "event_type", evt.EventType, "error", err)
		return
	}

	p.logger.Debug("event published", "event_type", evt.EventType, "game_id", evt.GameID)
}

// Close flushes and closes the underlying writer.
func (p *KafkaProducer) Close() error {
	if !p.enabled {
		return nil
	}
	return p.writer.Close()
}
