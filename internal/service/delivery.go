package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"
	"github.com/SergeyBogomolovv/water-sales-service/pkg/trm"
)

type deliveryService struct {
	hydrator
	logger     *slog.Logger
	txManager  trm.Manager
	orders     OrderRepo
	deliveries DeliveryRepo
	catalog    Catalog
	customers  Customers
	users      Users
	publisher  EventPublisher
	now        func() time.Time
}

func NewDeliveryService(logger *slog.Logger, deps Deps) *deliveryService {
	return &deliveryService{
		hydrator:   deps.hydrator(),
		logger:     logger.With(slog.String("service", "delivery")),
		txManager:  deps.TxManager,
		orders:     deps.Orders,
		deliveries: deps.Deliveries,
		catalog:    deps.Catalog,
		customers:  deps.Customers,
		users:      deps.Users,
		publisher:  deps.Publisher,
		now:        time.Now,
	}
}

// UpsertDelivery creates the delivery of an order or updates the supplied
// fields of the existing one. It does not depend on the order status.
func (s *deliveryService) UpsertDelivery(ctx context.Context, orderID int64, patch entities.DeliveryPatch) (entities.Delivery, error) {
	if err := patch.Validate(); err != nil {
		return entities.Delivery{}, err
	}

	var delivery entities.Delivery
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.orders.LockOrder(ctx, orderID); err != nil {
			return err
		}

		current, err := s.deliveries.GetDelivery(ctx, orderID)
		if errors.Is(err, entities.ErrDeliveryNotFound) {
			current = entities.Delivery{OrderID: orderID, Status: entities.DeliveryPending}
		} else if err != nil {
			return err
		}
		if current.Status == entities.DeliveryDelivered && patch.Status.Value != nil {
			return entities.ErrDeliveryCompleted
		}

		if id := patch.DriverID.Value; id != nil {
			ok, err := s.users.UserExists(ctx, *id)
			if err != nil {
				return err
			}
			if !ok {
				return entities.Wrap(entities.ErrDriverNotFound, "user %d", *id)
			}
		}

		delivery = patch.Merge(current)
		return s.deliveries.SaveDelivery(ctx, delivery)
	})
	if err != nil {
		return entities.Delivery{}, err
	}

	s.logger.Debug("delivery saved", slog.Int64("order_id", orderID), slog.String("status", string(delivery.Status)))
	return delivery, nil
}

// ConfirmDelivery checks stock for every item first and only then decrements
// it, posts expiry dates to the customer ledger and marks the order and its
// delivery as delivered. Everything happens in one transaction.
func (s *deliveryService) ConfirmDelivery(ctx context.Context, orderID int64) (entities.Order, error) {
	var delivered []entities.OrderItem
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.orders.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(entities.StatusDelivered) {
			return statusError(order.Status)
		}

		items, err := s.orders.ListItems(ctx, orderID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return entities.Wrap(entities.ErrOrderHasNoItems, "order %d", orderID)
		}

		demand, productIDs := stockDemand(items)

		// lock rows in id order so concurrent deliveries cannot deadlock
		for _, productID := range productIDs {
			stock, err := s.catalog.GetStock(ctx, productID)
			if err != nil {
				return err
			}
			if stock < demand[productID] {
				stockConflicts.Inc()
				return entities.Wrap(entities.ErrInsufficientStock,
					"product %d: available %d, required %d", productID, stock, demand[productID])
			}
		}

		for _, productID := range productIDs {
			if err := s.catalog.DecrementStock(ctx, productID, demand[productID]); err != nil {
				return err
			}
		}

		now := s.now().UTC()
		for _, it := range items {
			if it.ExpiryDate == nil {
				continue
			}
			quantity := it.Quantity
			err := s.customers.UpsertExpiry(ctx, entities.CustomerProductExpiry{
				CustomerID:  order.CustomerID,
				ProductID:   it.ProductID,
				ExpiryDate:  *it.ExpiryDate,
				Quantity:    &quantity,
				Observation: it.Observation,
				UpdatedAt:   now,
			})
			if err != nil {
				return err
			}
		}

		if err := s.orders.UpdateStatus(ctx, orderID, entities.StatusDelivered); err != nil {
			return err
		}

		delivery, err := s.deliveries.GetDelivery(ctx, orderID)
		if errors.Is(err, entities.ErrDeliveryNotFound) {
			delivery = entities.Delivery{OrderID: orderID}
		} else if err != nil {
			return err
		}
		delivery.Status = entities.DeliveryDelivered
		delivery.DeliveredTime = &now
		if err := s.deliveries.SaveDelivery(ctx, delivery); err != nil {
			return err
		}

		delivered = items
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	ordersDelivered.Inc()
	for _, it := range delivered {
		unitsDelivered.WithLabelValues(strconv.FormatInt(it.ProductID, 10)).Add(float64(it.Quantity))
	}
	s.logger.Debug("delivery confirmed", slog.Int64("order_id", orderID), slog.Int("items", len(delivered)))
	publish(ctx, s.logger, s.publisher, entities.EventOrderDelivered, order)
	return order, nil
}

// stockDemand sums item quantities per product and returns the product ids
// in ascending order.
func stockDemand(items []entities.OrderItem) (map[int64]int, []int64) {
	demand := make(map[int64]int, len(items))
	for _, it := range items {
		demand[it.ProductID] += it.Quantity
	}
	ids := make([]int64, 0, len(demand))
	for id := range demand {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return demand, ids
}
