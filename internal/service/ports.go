package service

import (
	"context"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"
)

// OrderRepo is the ledger store for orders and their items.
type OrderRepo interface {
	CreateOrder(ctx context.Context, o entities.Order) (int64, error)
	GetOrder(ctx context.Context, id int64) (entities.Order, error)
	LockOrder(ctx context.Context, id int64) (entities.Order, error)
	ListOrders(ctx context.Context, f entities.OrderFilter) ([]entities.Order, int, error)
	UpdateTotals(ctx context.Context, id int64, t entities.Totals) error
	UpdatePayment(ctx context.Context, id int64, status entities.OrderStatus, method entities.PaymentMethod) error
	UpdateStatus(ctx context.Context, id int64, status entities.OrderStatus) error

	ListItems(ctx context.Context, orderIDs ...int64) ([]entities.OrderItem, error)
	GetItem(ctx context.Context, id int64) (entities.OrderItem, error)
	AddItem(ctx context.Context, it entities.OrderItem) (int64, error)
	UpdateItem(ctx context.Context, it entities.OrderItem) error
	RemoveItem(ctx context.Context, id int64) error
}

type DeliveryRepo interface {
	GetDelivery(ctx context.Context, orderID int64) (entities.Delivery, error)
	ListDeliveries(ctx context.Context, orderIDs ...int64) ([]entities.Delivery, error)
	SaveDelivery(ctx context.Context, d entities.Delivery) error
}

// Catalog owns products. GetStock locks the product row for the rest of
// the transaction.
type Catalog interface {
	ProductExists(ctx context.Context, id int64) (bool, error)
	GetProduct(ctx context.Context, id int64) (entities.Product, error)
	GetStock(ctx context.Context, id int64) (int, error)
	DecrementStock(ctx context.Context, id int64, amount int) error
}

type Customers interface {
	CustomerExists(ctx context.Context, id int64) (bool, error)
	GetCustomers(ctx context.Context, ids ...int64) ([]entities.Customer, error)
	UpsertExpiry(ctx context.Context, e entities.CustomerProductExpiry) error
}

type Users interface {
	UserExists(ctx context.Context, id int64) (bool, error)
	GetUsers(ctx context.Context, ids ...int64) ([]entities.User, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, e entities.OrderEvent) error
}
