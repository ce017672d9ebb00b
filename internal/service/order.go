package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"
	"github.com/SergeyBogomolovv/water-sales-service/pkg/trm"

	"github.com/shopspring/decimal"
)

// Deps groups the collaborators shared by the services.
type Deps struct {
	TxManager  trm.Manager
	Orders     OrderRepo
	Deliveries DeliveryRepo
	Catalog    Catalog
	Customers  Customers
	Users      Users
	Publisher  EventPublisher
}

func (d Deps) hydrator() hydrator {
	return hydrator{orders: d.Orders, deliveries: d.Deliveries, customers: d.Customers, users: d.Users}
}

type orderService struct {
	hydrator
	logger    *slog.Logger
	txManager trm.Manager
	orders    OrderRepo
	catalog   Catalog
	customers Customers
	users     Users
	publisher EventPublisher
}

func NewOrderService(logger *slog.Logger, deps Deps) *orderService {
	return &orderService{
		hydrator:  deps.hydrator(),
		logger:    logger.With(slog.String("service", "order")),
		txManager: deps.TxManager,
		orders:    deps.Orders,
		catalog:   deps.Catalog,
		customers: deps.Customers,
		users:     deps.Users,
		publisher: deps.Publisher,
	}
}

// CreateOrder inserts the order and its items in one transaction.
func (s *orderService) CreateOrder(ctx context.Context, in entities.CreateOrder) (entities.Order, error) {
	if err := in.Validate(); err != nil {
		return entities.Order{}, err
	}

	discount := decimal.Zero
	if in.Discount != nil {
		discount = entities.Money(*in.Discount)
	}

	var orderID int64
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		ok, err := s.customers.CustomerExists(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if !ok {
			return entities.Wrap(entities.ErrCustomerNotFound, "customer %d", in.CustomerID)
		}

		ok, err = s.users.UserExists(ctx, in.SalespersonID)
		if err != nil {
			return err
		}
		if !ok {
			return entities.Wrap(entities.ErrSalespersonNotFound, "user %d", in.SalespersonID)
		}

		orderID, err = s.orders.CreateOrder(ctx, entities.Order{
			CustomerID:    in.CustomerID,
			SalespersonID: in.SalespersonID,
			Status:        entities.StatusOpen,
			PaymentMethod: in.PaymentMethod,
			GrossTotal:    decimal.Zero,
			Discount:      discount,
			NetTotal:      decimal.Zero,
			Observation:   in.Observation,
		})
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range in.Items {
			if _, err := s.addItem(ctx, orderID, item); err != nil {
				return err
			}
		}

		_, err = s.recalculateTotals(ctx, orderID, discount)
		return err
	})
	if err != nil {
		return entities.Order{}, err
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	ordersCreated.Inc()
	s.logger.Debug("order created", slog.Int64("order_id", orderID), slog.Int("items", len(order.Items)))
	publish(ctx, s.logger, s.publisher, entities.EventOrderCreated, order)
	return order, nil
}

func (s *orderService) AddItem(ctx context.Context, orderID int64, in entities.ItemInput) (entities.Order, error) {
	if err := in.Validate(); err != nil {
		return entities.Order{}, err
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.lockOpenOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if _, err := s.addItem(ctx, orderID, in); err != nil {
			return err
		}
		_, err = s.recalculateTotals(ctx, orderID, order.Discount)
		return err
	})
	if err != nil {
		return entities.Order{}, err
	}

	s.logger.Debug("item added", slog.Int64("order_id", orderID), slog.Int64("product_id", in.ProductID))
	return s.getOrder(ctx, orderID)
}

// UpdateItem merges the patch into the stored item and recomputes its subtotal.
func (s *orderService) UpdateItem(ctx context.Context, orderID, itemID int64, patch entities.ItemPatch) (entities.Order, error) {
	if err := patch.Validate(); err != nil {
		return entities.Order{}, err
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.lockOpenOrder(ctx, orderID)
		if err != nil {
			return err
		}
		item, err := s.orderItem(ctx, orderID, itemID)
		if err != nil {
			return err
		}

		if p := patch.ProductID.Value; p != nil && *p != item.ProductID {
			if err := s.checkProduct(ctx, *p); err != nil {
				return err
			}
		}

		if err := s.orders.UpdateItem(ctx, patch.Merge(item)); err != nil {
			return err
		}
		_, err = s.recalculateTotals(ctx, orderID, order.Discount)
		return err
	})
	if err != nil {
		return entities.Order{}, err
	}

	s.logger.Debug("item updated", slog.Int64("order_id", orderID), slog.Int64("item_id", itemID))
	return s.getOrder(ctx, orderID)
}

func (s *orderService) RemoveItem(ctx context.Context, orderID, itemID int64) (entities.Order, error) {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.lockOpenOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if _, err := s.orderItem(ctx, orderID, itemID); err != nil {
			return err
		}
		if err := s.orders.RemoveItem(ctx, itemID); err != nil {
			return err
		}
		_, err = s.recalculateTotals(ctx, orderID, order.Discount)
		return err
	})
	if err != nil {
		return entities.Order{}, err
	}

	s.logger.Debug("item removed", slog.Int64("order_id", orderID), slog.Int64("item_id", itemID))
	return s.getOrder(ctx, orderID)
}

// ConfirmPayment may be repeated while the order is PAID to change the
// payment method or the discount.
func (s *orderService) ConfirmPayment(ctx context.Context, orderID int64, method entities.PaymentMethod, discount *decimal.Decimal) (entities.Order, error) {
	if !method.Valid() {
		return entities.Order{}, entities.Errorf(entities.ErrValidation, "unknown payment method %q", method)
	}
	if discount != nil && discount.IsNegative() {
		return entities.Order{}, entities.Errorf(entities.ErrValidation, "discount must not be negative")
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.orders.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(entities.StatusPaid) {
			return statusError(order.Status)
		}

		d := order.Discount
		if discount != nil {
			d = entities.Money(*discount)
		}
		if _, err := s.recalculateTotals(ctx, orderID, d); err != nil {
			return err
		}
		return s.orders.UpdatePayment(ctx, orderID, entities.StatusPaid, method)
	})
	if err != nil {
		return entities.Order{}, err
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	ordersPaid.Inc()
	s.logger.Debug("payment confirmed", slog.Int64("order_id", orderID), slog.String("method", string(method)))
	publish(ctx, s.logger, s.publisher, entities.EventOrderPaid, order)
	return order, nil
}

// CancelOrder never reverses stock or payments.
func (s *orderService) CancelOrder(ctx context.Context, orderID int64) (entities.Order, error) {
	var changed bool
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.orders.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		switch order.Status {
		case entities.StatusDelivered:
			return entities.ErrOrderDelivered
		case entities.StatusCancelled:
			return nil
		}
		changed = true
		return s.orders.UpdateStatus(ctx, orderID, entities.StatusCancelled)
	})
	if err != nil {
		return entities.Order{}, err
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	if changed {
		ordersCancelled.Inc()
		s.logger.Debug("order cancelled", slog.Int64("order_id", orderID))
		publish(ctx, s.logger, s.publisher, entities.EventOrderCancelled, order)
	}
	return order, nil
}

func (s *orderService) lockOpenOrder(ctx context.Context, orderID int64) (entities.Order, error) {
	order, err := s.orders.LockOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.Status != entities.StatusOpen {
		return entities.Order{}, entities.Wrap(entities.ErrOrderNotOpen, "order %d is %s", orderID, order.Status)
	}
	return order, nil
}

func (s *orderService) orderItem(ctx context.Context, orderID, itemID int64) (entities.OrderItem, error) {
	item, err := s.orders.GetItem(ctx, itemID)
	if err != nil {
		return entities.OrderItem{}, err
	}
	if item.OrderID != orderID {
		return entities.OrderItem{}, entities.Wrap(entities.ErrItemNotInOrder, "item %d, order %d", itemID, orderID)
	}
	return item, nil
}

func (s *orderService) checkProduct(ctx context.Context, productID int64) error {
	ok, err := s.catalog.ProductExists(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return entities.Wrap(entities.ErrProductNotFound, "product %d", productID)
	}
	return nil
}

// addItem snapshots the unit price: the supplied one or the current catalog price.
func (s *orderService) addItem(ctx context.Context, orderID int64, in entities.ItemInput) (entities.OrderItem, error) {
	var unitPrice decimal.Decimal
	if in.UnitPrice != nil {
		if err := s.checkProduct(ctx, in.ProductID); err != nil {
			return entities.OrderItem{}, err
		}
		unitPrice = entities.Money(*in.UnitPrice)
	} else {
		product, err := s.catalog.GetProduct(ctx, in.ProductID)
		if err != nil {
			return entities.OrderItem{}, err
		}
		unitPrice = entities.Money(product.Price)
	}

	item := entities.OrderItem{
		OrderID:     orderID,
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		UnitPrice:   unitPrice,
		Subtotal:    entities.Subtotal(unitPrice, in.Quantity),
		ExpiryDate:  in.ExpiryDate,
		Observation: in.Observation,
	}

	id, err := s.orders.AddItem(ctx, item)
	if err != nil {
		return entities.OrderItem{}, err
	}
	item.ID = id
	return item, nil
}

// recalculateTotals is the last step of every change to items, discount or
// payment, inside the caller's transaction.
func (s *orderService) recalculateTotals(ctx context.Context, orderID int64, discount decimal.Decimal) (entities.Totals, error) {
	items, err := s.orders.ListItems(ctx, orderID)
	if err != nil {
		return entities.Totals{}, err
	}
	totals, err := entities.CalculateTotals(items, discount)
	if err != nil {
		return entities.Totals{}, err
	}
	if err := s.orders.UpdateTotals(ctx, orderID, totals); err != nil {
		return entities.Totals{}, err
	}
	return totals, nil
}

func statusError(status entities.OrderStatus) error {
	switch status {
	case entities.StatusDelivered:
		return entities.ErrOrderDelivered
	case entities.StatusCancelled:
		return entities.ErrOrderCancelled
	case entities.StatusOpen:
		return entities.ErrOrderNotPaid
	default:
		return entities.Errorf(entities.ErrInvalidState, "unexpected order status %q", status)
	}
}
