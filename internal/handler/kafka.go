package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/SergeyBogomolovv/water-sales-service/internal/config"
	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

type OrderCreator interface {
	CreateOrder(ctx context.Context, in entities.CreateOrder) (entities.Order, error)
}

// ProcessedKeys помнит ключи уже обработанных сообщений
type ProcessedKeys interface {
	SetIfAbsent(key string, value []byte) bool
	Delete(key string)
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaHandler struct {
	dlq       messageWriter
	reader    messageReader
	logger    *slog.Logger
	validate  *validator.Validate
	creator   OrderCreator
	processed ProcessedKeys
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, creator OrderCreator, processed ProcessedKeys) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.IntakeTopic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		dlq: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
		validate:  validator.New(),
		creator:   creator,
		processed: processed,
	}
}

func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		h.process(ctx, m)

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

// process создаёт заказ из сообщения. Повторно доставленное сообщение
// пропускается, ошибочное уходит в DLQ
func (h *kafkaHandler) process(ctx context.Context, m kafka.Message) {
	intakeInProgress.Inc()
	defer intakeInProgress.Dec()
	start := time.Now()
	defer func() { intakeDuration.Observe(time.Since(start).Seconds()) }()

	key := messageKey(m)
	if !h.processed.SetIfAbsent(key, nil) {
		intakeDuplicates.Inc()
		h.logger.Debug("duplicate message skipped", slog.String("key", key))
		return
	}

	order, err := h.handleCreateOrder(ctx, m)
	if err != nil {
		h.processed.Delete(key)
		intakeFailed.Inc()
		h.logger.Error("failed to handle message", slog.Any("error", err), slog.String("key", key))

		// kafka.Writer сам повторяет запись
		if err := h.WriteToDLQ(ctx, m); err != nil {
			h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
			return
		}
		intakeDLQ.Inc()
		return
	}

	intakeProcessed.Inc()
	h.logger.Info("order received", slog.Int64("order_id", order.ID), slog.String("key", key))
}

func (h *kafkaHandler) handleCreateOrder(ctx context.Context, m kafka.Message) (entities.Order, error) {
	var in IntakeOrder
	if err := json.Unmarshal(m.Value, &in); err != nil {
		return entities.Order{}, fmt.Errorf("failed to unmarshal order: %w", err)
	}

	if err := h.validate.Struct(in); err != nil {
		return entities.Order{}, fmt.Errorf("invalid order data: %w", err)
	}

	return h.creator.CreateOrder(ctx, IntakeOrderToEntity(in))
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	return h.dlq.WriteMessages(ctx, kafka.Message{
		Topic:   fmt.Sprintf("%s-dlq", m.Topic),
		Key:     m.Key,
		Value:   m.Value,
		Headers: m.Headers,
	})
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}

// messageKey ключ идемпотентности. Без ключа сообщения используется его позиция в топике
func messageKey(m kafka.Message) string {
	if len(m.Key) > 0 {
		return "intake:" + string(m.Key)
	}
	return "intake:" + m.Topic + "/" + strconv.Itoa(m.Partition) + "/" + strconv.FormatInt(m.Offset, 10)
}
