package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	occurred := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	event := entities.OrderEvent{
		ID:         "6f1c7f0e-4a7e-4b8e-9a57-3b1f0b6f3e21",
		Type:       entities.EventOrderPaid,
		OrderID:    42,
		CustomerID: 7,
		Status:     entities.StatusPaid,
		NetTotal:   decimal.RequireFromString("55"),
		OccurredAt: occurred,
	}

	t.Run("success", func(t *testing.T) {
		w := &fakeWriter{}
		p := newKafkaPublisher(logger, w)

		require.NoError(t, p.Publish(context.Background(), event))
		require.Len(t, w.msgs, 1)

		msg := w.msgs[0]
		assert.Equal(t, "42", string(msg.Key))
		assert.Contains(t, msg.Headers, kafka.Header{Key: "event_type", Value: []byte("order.paid")})

		var got Event
		require.NoError(t, json.Unmarshal(msg.Value, &got))
		assert.Equal(t, Event{
			ID:         event.ID,
			Type:       "order.paid",
			OrderID:    42,
			CustomerID: 7,
			Status:     "PAID",
			NetTotal:   "55.00",
			OccurredAt: occurred,
		}, got)

		require.NoError(t, p.Close())
		assert.True(t, w.closed)
	})

	t.Run("writer error", func(t *testing.T) {
		w := &fakeWriter{err: errors.New("leader not available")}
		p := newKafkaPublisher(logger, w)

		err := p.Publish(context.Background(), event)
		assert.ErrorIs(t, err, w.err)
	})
}
