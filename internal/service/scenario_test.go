package service_test

import (
	"context"
	"testing"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSaleLifecycle walks one sale from creation to delivery.
func TestSaleLifecycle(t *testing.T) {
	ctx := context.Background()
	l := seeded()
	orders, deliveries := newServices(t, l)

	order, err := orders.CreateOrder(ctx, entities.CreateOrder{
		CustomerID:    1,
		SalespersonID: 5,
		Items: []entities.ItemInput{
			{ProductID: 10, Quantity: 2, UnitPrice: moneyPtr("25.00"), ExpiryDate: date("2026-12-31")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusOpen, order.Status)
	assertMoney(t, "50.00", order.GrossTotal)
	assertMoney(t, "0", order.Discount)
	assertMoney(t, "50.00", order.NetTotal)

	order, err = orders.AddItem(ctx, order.ID, entities.ItemInput{ProductID: 11, Quantity: 1, UnitPrice: moneyPtr("10.00")})
	require.NoError(t, err)
	assertMoney(t, "60.00", order.GrossTotal)
	assertMoney(t, "60.00", order.NetTotal)

	order, err = orders.ConfirmPayment(ctx, order.ID, entities.PaymentPix, moneyPtr("5.00"))
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPaid, order.Status)
	assertMoney(t, "55.00", order.NetTotal)

	l.setStock(10, 1)
	_, err = deliveries.ConfirmDelivery(ctx, order.ID)
	assert.ErrorIs(t, err, entities.ErrConflict)
	assert.Equal(t, 1, l.stock(10))
	stored, err := l.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPaid, stored.Status)

	l.setStock(10, 5)
	l.setStock(11, 5)
	order, err = deliveries.ConfirmDelivery(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, l.stock(10))
	assert.Equal(t, 4, l.stock(11))
	assert.Equal(t, entities.StatusDelivered, order.Status)
	_, ok := l.expiry[[2]int64{1, 10}]
	assert.True(t, ok)

	_, err = orders.CancelOrder(ctx, order.ID)
	assert.ErrorIs(t, err, entities.ErrInvalidState)

	_, err = orders.ConfirmPayment(ctx, order.ID, entities.PaymentCash, nil)
	assert.ErrorIs(t, err, entities.ErrInvalidState)

	open := createOrder(t, orders, entities.ItemInput{ProductID: 10, Quantity: 1})
	open, err = orders.CancelOrder(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCancelled, open.Status)
	assert.Equal(t, 3, l.stock(10))
}
