package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventOrderCreated   EventType = "order.created"
	EventOrderPaid      EventType = "order.paid"
	EventOrderDelivered EventType = "order.delivered"
	EventOrderCancelled EventType = "order.cancelled"
)

// OrderEvent is emitted after a committed status change.
type OrderEvent struct {
	ID         string
	Type       EventType
	OrderID    int64
	CustomerID int64
	Status     OrderStatus
	NetTotal   decimal.Decimal
	OccurredAt time.Time
}
