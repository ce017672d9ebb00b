package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"

	"github.com/google/uuid"
)

// hydrator attaches items, delivery, customer and salesperson to order rows
// with one query per relation.
type hydrator struct {
	orders     OrderRepo
	deliveries DeliveryRepo
	customers  Customers
	users      Users
}

func (h hydrator) hydrate(ctx context.Context, orders []entities.Order) error {
	if len(orders) == 0 {
		return nil
	}

	orderIDs := make([]int64, 0, len(orders))
	customerIDs := make([]int64, 0, len(orders))
	userIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		customerIDs = append(customerIDs, o.CustomerID)
		userIDs = append(userIDs, o.SalespersonID)
	}

	items, err := h.orders.ListItems(ctx, orderIDs...)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}
	itemsMap := make(map[int64][]entities.OrderItem, len(orders))
	for _, it := range items {
		itemsMap[it.OrderID] = append(itemsMap[it.OrderID], it)
	}

	deliveries, err := h.deliveries.ListDeliveries(ctx, orderIDs...)
	if err != nil {
		return fmt.Errorf("failed to load deliveries: %w", err)
	}
	deliveryMap := make(map[int64]entities.Delivery, len(deliveries))
	for _, d := range deliveries {
		deliveryMap[d.OrderID] = d
	}

	customers, err := h.customers.GetCustomers(ctx, customerIDs...)
	if err != nil {
		return fmt.Errorf("failed to load customers: %w", err)
	}
	customerMap := make(map[int64]entities.Customer, len(customers))
	for _, c := range customers {
		customerMap[c.ID] = c
	}

	users, err := h.users.GetUsers(ctx, userIDs...)
	if err != nil {
		return fmt.Errorf("failed to load salespeople: %w", err)
	}
	userMap := make(map[int64]entities.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	for i := range orders {
		o := &orders[i]
		o.Items = itemsMap[o.ID]
		if o.Items == nil {
			o.Items = []entities.OrderItem{}
		}
		if d, ok := deliveryMap[o.ID]; ok {
			o.Delivery = &d
		}
		if c, ok := customerMap[o.CustomerID]; ok {
			o.Customer = &c
		}
		if u, ok := userMap[o.SalespersonID]; ok {
			o.Salesperson = &u
		}
	}
	return nil
}

func (h hydrator) getOrder(ctx context.Context, id int64) (entities.Order, error) {
	order, err := h.orders.GetOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	orders := []entities.Order{order}
	if err := h.hydrate(ctx, orders); err != nil {
		return entities.Order{}, err
	}
	return orders[0], nil
}

// publish runs after commit, detached from request cancellation. A lost
// event never undoes the transaction.
func publish(ctx context.Context, logger *slog.Logger, p EventPublisher, t entities.EventType, o entities.Order) {
	e := entities.OrderEvent{
		ID:         uuid.NewString(),
		Type:       t,
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		NetTotal:   o.NetTotal,
		OccurredAt: time.Now().UTC(),
	}
	if err := p.Publish(context.WithoutCancel(ctx), e); err != nil {
		logger.ErrorContext(ctx, "failed to publish order event",
			slog.String("type", string(t)), slog.Int64("order_id", o.ID), slog.Any("error", err))
	}
}
