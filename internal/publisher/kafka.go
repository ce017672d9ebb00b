package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SergeyBogomolovv/water-sales-service/internal/config"
	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Event is the wire format of order lifecycle events.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	Status     string    `json:"status"`
	NetTotal   string    `json:"net_total"`
	OccurredAt time.Time `json:"occurred_at"`
}

type kafkaPublisher struct {
	logger *slog.Logger
	writer messageWriter
}

func NewKafkaPublisher(logger *slog.Logger, cfg config.Kafka) *kafkaPublisher {
	return newKafkaPublisher(logger, &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.EventsTopic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequireAll,
	})
}

func newKafkaPublisher(logger *slog.Logger, w messageWriter) *kafkaPublisher {
	return &kafkaPublisher{
		logger: logger.With(slog.String("publisher", "kafka")),
		writer: w,
	}
}

// Publish keys messages by order id so events of one order stay ordered
// within a partition.
func (p *kafkaPublisher) Publish(ctx context.Context, e entities.OrderEvent) error {
	value, err := json.Marshal(Event{
		ID:         e.ID,
		Type:       string(e.Type),
		OrderID:    e.OrderID,
		CustomerID: e.CustomerID,
		Status:     string(e.Status),
		NetTotal:   e.NetTotal.StringFixed(entities.MoneyScale),
		OccurredAt: e.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(e.OrderID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
			{Key: "event_id", Value: []byte(e.ID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		eventsFailed.Inc()
		return fmt.Errorf("failed to write event: %w", err)
	}

	eventsPublished.WithLabelValues(string(e.Type)).Inc()
	p.logger.Debug("event published", slog.String("type", string(e.Type)), slog.Int64("order_id", e.OrderID))
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
