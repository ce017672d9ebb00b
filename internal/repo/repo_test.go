package repo

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFKViolation(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		wantRef bool
	}{
		{
			name:    "foreign key violation",
			err:     &pq.Error{Code: "23503", Constraint: "order_items_product_id_fkey"},
			wantRef: true,
		},
		{
			name:    "wrapped violation",
			err:     errors.Join(errors.New("insert"), &pq.Error{Code: "23503"}),
			wantRef: true,
		},
		{
			name: "unique violation",
			err:  &pq.Error{Code: "23505"},
		},
		{
			name: "other error",
			err:  sql.ErrConnDone,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := mapFKViolation(tc.err)
			if tc.wantRef {
				assert.ErrorIs(t, err, entities.ErrReferenceNotFound)
				return
			}
			assert.Equal(t, tc.err, err)
		})
	}
}

func TestOrderFilterWhere(t *testing.T) {
	customer := int64(3)
	status := entities.StatusPaid
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)

	testCases := []struct {
		name     string
		filter   entities.OrderFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "customer and status",
			filter:   entities.OrderFilter{CustomerID: &customer, Status: &status},
			wantSQL:  "SELECT id FROM orders WHERE (customer_id = $1 AND status = $2)",
			wantArgs: []any{customer, "PAID"},
		},
		{
			name:     "date range",
			filter:   entities.OrderFilter{DateFrom: &from, DateTo: &to},
			wantSQL:  "SELECT id FROM orders WHERE (created_at >= $1 AND created_at <= $2)",
			wantArgs: []any{from, to},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, args, err := sq.Select("id").
				From("orders").
				Where(orderFilterWhere(tc.filter)).
				PlaceholderFormat(sq.Dollar).
				ToSql()
			require.NoError(t, err)
			assert.Equal(t, tc.wantSQL, query)
			assert.Equal(t, tc.wantArgs, args)
		})
	}

	assert.Empty(t, orderFilterWhere(entities.OrderFilter{}))
}

func TestModelsToEntity(t *testing.T) {
	created := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	order := OrderToEntity(Order{
		ID:            1,
		CustomerID:    2,
		SalespersonID: 3,
		Status:        "PAID",
		PaymentMethod: sql.NullString{String: "PIX", Valid: true},
		GrossTotal:    decimal.RequireFromString("60"),
		Discount:      decimal.RequireFromString("5"),
		NetTotal:      decimal.RequireFromString("55"),
		CreatedAt:     created,
	})
	require.NotNil(t, order.PaymentMethod)
	assert.Equal(t, entities.PaymentPix, *order.PaymentMethod)
	assert.Equal(t, entities.StatusPaid, order.Status)
	assert.Nil(t, order.Observation)

	open := OrderToEntity(Order{Status: "OPEN"})
	assert.Nil(t, open.PaymentMethod)

	item := ItemToEntity(Item{
		ID:          7,
		ProductID:   10,
		Quantity:    2,
		ExpiryDate:  sql.NullTime{Time: expiry, Valid: true},
		Observation: sql.NullString{String: "lote 12", Valid: true},
	})
	require.NotNil(t, item.ExpiryDate)
	assert.Equal(t, expiry, *item.ExpiryDate)
	require.NotNil(t, item.Observation)
	assert.Equal(t, "lote 12", *item.Observation)

	delivery := DeliveryToEntity(Delivery{OrderID: 1, Status: "EN_ROUTE", DriverID: sql.NullInt64{Int64: 9, Valid: true}})
	require.NotNil(t, delivery.DriverID)
	assert.Equal(t, int64(9), *delivery.DriverID)
	assert.Equal(t, entities.DeliveryEnRoute, delivery.Status)
	assert.Nil(t, delivery.DeliveredTime)

	assert.Nil(t, DeliveryToEntity(Delivery{Status: "PENDING"}).DriverID)
}

func TestNullHelpers(t *testing.T) {
	s := "x"
	i := int64(4)
	q := 3
	now := time.Now()

	assert.Equal(t, sql.NullString{String: "x", Valid: true}, nullString(&s))
	assert.False(t, nullString(nil).Valid)
	assert.Equal(t, sql.NullInt64{Int64: 4, Valid: true}, nullInt64(&i))
	assert.False(t, nullInt64(nil).Valid)
	assert.Equal(t, sql.NullInt32{Int32: 3, Valid: true}, nullInt32(&q))
	assert.False(t, nullInt32(nil).Valid)
	assert.Equal(t, sql.NullTime{Time: now, Valid: true}, nullTime(&now))
	assert.False(t, nullTime(nil).Valid)
}

func TestStockStatements(t *testing.T) {
	r := newBase(nil)

	query, args, err := r.stockQuery(10).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT stock_quantity FROM products WHERE id = $1 FOR UPDATE", query)
	assert.Equal(t, []any{int64(10)}, args)

	query, args, err = r.decrementStockQuery(10, 3).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE products SET stock_quantity = stock_quantity - $1 WHERE id = $2 AND stock_quantity >= $3", query)
	assert.Equal(t, []any{3, int64(10), 3}, args)
}

func TestOrderQuery(t *testing.T) {
	r := newBase(nil)

	query, _, err := r.orderQuery(1, false).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "FOR UPDATE")

	query, args, err := r.orderQuery(1, true).ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(query, "WHERE id = $1 FOR UPDATE"), query)
	assert.Equal(t, []any{int64(1)}, args)
}

func TestUpsertStatements(t *testing.T) {
	r := newBase(nil)
	driver := int64(9)

	query, args, err := r.saveDeliveryQuery(entities.Delivery{OrderID: 1, DriverID: &driver, Status: entities.DeliveryEnRoute}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO deliveries")
	assert.Contains(t, query, "ON CONFLICT (order_id) DO UPDATE SET")
	assert.Contains(t, query, "status = EXCLUDED.status")
	require.Len(t, args, len(deliveryColumns))
	assert.Equal(t, "EN_ROUTE", args[2])

	query, args, err = r.upsertExpiryQuery(entities.CustomerProductExpiry{CustomerID: 1, ProductID: 10}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO customer_product_expiry")
	assert.Contains(t, query, "ON CONFLICT (customer_id, product_id) DO UPDATE SET")
	assert.Contains(t, query, "expiry_date = EXCLUDED.expiry_date")
	assert.Len(t, args, 6)
}

func TestDecrementMiss(t *testing.T) {
	err := decrementMiss(10, true)
	assert.ErrorIs(t, err, entities.ErrInsufficientStock)
	assert.NotErrorIs(t, err, entities.ErrProductNotFound)

	err = decrementMiss(10, false)
	assert.ErrorIs(t, err, entities.ErrProductNotFound)
	assert.NotErrorIs(t, err, entities.ErrInsufficientStock)
}
