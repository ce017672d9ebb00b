package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"
	"github.com/SergeyBogomolovv/water-sales-service/internal/handler/mocks"
	"github.com/SergeyBogomolovv/water-sales-service/pkg/cache"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	msgs      []kafka.Message
	committed []kafka.Message
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

type fakeWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

const validIntake = `{"customer_id":1,"salesperson_id":5,"payment_method":"CASH","items":[{"product_id":10,"quantity":2,"expiry_date":"2026-06-30"}]}`

func newTestKafkaHandler(t *testing.T, msgs ...kafka.Message) (*kafkaHandler, *fakeReader, *fakeWriter, *mocks.MockOrderCreator, *cache.LRUCache) {
	reader := &fakeReader{msgs: msgs}
	dlq := &fakeWriter{}
	creator := mocks.NewMockOrderCreator(t)
	processed := cache.NewLRUCache(100, time.Hour)

	h := &kafkaHandler{
		dlq:       dlq,
		reader:    reader,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		validate:  validator.New(),
		creator:   creator,
		processed: processed,
	}
	return h, reader, dlq, creator, processed
}

func TestKafkaHandler_Consume(t *testing.T) {
	testCases := []struct {
		name         string
		msgs         []kafka.Message
		mockBehavior func(creator *mocks.MockOrderCreator)
		wantDLQ      int
		wantKeys     []string
		wantNoKeys   []string
	}{
		{
			name: "creates order",
			msgs: []kafka.Message{{Topic: "sales-orders", Key: []byte("a-1"), Value: []byte(validIntake)}},
			mockBehavior: func(creator *mocks.MockOrderCreator) {
				creator.EXPECT().
					CreateOrder(mock.Anything, mock.MatchedBy(func(in entities.CreateOrder) bool {
						return in.CustomerID == 1 && in.SalespersonID == 5 &&
							*in.PaymentMethod == entities.PaymentCash &&
							len(in.Items) == 1 && in.Items[0].ExpiryDate != nil
					})).
					Return(entities.Order{ID: 1}, nil).Once()
			},
			wantKeys: []string{"intake:a-1"},
		},
		{
			name: "redelivered message is skipped",
			msgs: []kafka.Message{
				{Topic: "sales-orders", Key: []byte("a-1"), Value: []byte(validIntake), Offset: 1},
				{Topic: "sales-orders", Key: []byte("a-1"), Value: []byte(validIntake), Offset: 2},
			},
			mockBehavior: func(creator *mocks.MockOrderCreator) {
				creator.EXPECT().CreateOrder(mock.Anything, mock.Anything).Return(entities.Order{ID: 1}, nil).Once()
			},
			wantKeys: []string{"intake:a-1"},
		},
		{
			name:         "invalid json goes to DLQ",
			msgs:         []kafka.Message{{Topic: "sales-orders", Key: []byte("a-2"), Value: []byte(`{`)}},
			mockBehavior: func(creator *mocks.MockOrderCreator) {},
			wantDLQ:      1,
			wantNoKeys:   []string{"intake:a-2"},
		},
		{
			name:         "order without items goes to DLQ",
			msgs:         []kafka.Message{{Topic: "sales-orders", Key: []byte("a-3"), Value: []byte(`{"customer_id":1,"salesperson_id":5,"items":[]}`)}},
			mockBehavior: func(creator *mocks.MockOrderCreator) {},
			wantDLQ:      1,
			wantNoKeys:   []string{"intake:a-3"},
		},
		{
			name: "service error releases key",
			msgs: []kafka.Message{{Topic: "sales-orders", Partition: 2, Offset: 9, Value: []byte(validIntake)}},
			mockBehavior: func(creator *mocks.MockOrderCreator) {
				creator.EXPECT().CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, entities.ErrCustomerNotFound).Once()
			},
			wantDLQ:    1,
			wantNoKeys: []string{"intake:sales-orders/2/9"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, reader, dlq, creator, processed := newTestKafkaHandler(t, tc.msgs...)
			tc.mockBehavior(creator)

			h.Consume(context.Background())

			assert.Len(t, reader.committed, len(tc.msgs))
			require.Len(t, dlq.msgs, tc.wantDLQ)
			for _, m := range dlq.msgs {
				assert.Equal(t, "sales-orders-dlq", m.Topic)
			}
			for _, key := range tc.wantKeys {
				_, ok := processed.Get(key)
				assert.True(t, ok, key)
			}
			for _, key := range tc.wantNoKeys {
				_, ok := processed.Get(key)
				assert.False(t, ok, key)
			}
		})
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestKafkaHandler_DuplicateMetric(t *testing.T) {
	msg := kafka.Message{Topic: "sales-orders", Key: []byte("dup"), Value: []byte(validIntake)}
	h, _, _, creator, _ := newTestKafkaHandler(t, msg, msg, msg)
	creator.EXPECT().CreateOrder(mock.Anything, mock.Anything).Return(entities.Order{ID: 3}, nil).Once()

	before := counterValue(t, intakeDuplicates)
	h.Consume(context.Background())

	assert.Equal(t, before+2, counterValue(t, intakeDuplicates))
}

func TestKafkaHandler_RetryAfterFailure(t *testing.T) {
	msg := kafka.Message{Topic: "sales-orders", Key: []byte("retry"), Value: []byte(validIntake)}
	h, _, dlq, creator, _ := newTestKafkaHandler(t, msg, msg)
	creator.EXPECT().CreateOrder(mock.Anything, mock.Anything).Return(entities.Order{}, errors.New("db down")).Once()
	creator.EXPECT().CreateOrder(mock.Anything, mock.Anything).Return(entities.Order{ID: 4}, nil).Once()

	h.Consume(context.Background())

	assert.Len(t, dlq.msgs, 1)
}

func TestKafkaHandler_Close(t *testing.T) {
	h, reader, dlq, _, _ := newTestKafkaHandler(t)

	require.NoError(t, h.Close())
	assert.True(t, reader.closed)
	assert.True(t, dlq.closed)
}

func TestMessageKey(t *testing.T) {
	assert.Equal(t, "intake:abc", messageKey(kafka.Message{Key: []byte("abc")}))
	assert.Equal(t, "intake:t/0/15", messageKey(kafka.Message{Topic: "t", Offset: 15}))
}
