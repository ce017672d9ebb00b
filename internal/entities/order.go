package entities

import (
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusOpen      OrderStatus = "OPEN"
	StatusPaid      OrderStatus = "PAID"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

var transitions = map[OrderStatus][]OrderStatus{
	StatusOpen: {StatusPaid, StatusCancelled},
	// re-confirming payment keeps the order PAID
	StatusPaid:      {StatusPaid, StatusDelivered, StatusCancelled},
	StatusDelivered: nil,
	StatusCancelled: nil,
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return slices.Contains(transitions[s], next)
}

func (s OrderStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

type PaymentMethod string

const (
	PaymentPix        PaymentMethod = "PIX"
	PaymentCash       PaymentMethod = "CASH"
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentBankSlip   PaymentMethod = "BANK_SLIP"
	PaymentOnAccount  PaymentMethod = "ON_ACCOUNT"
)

var paymentMethods = []PaymentMethod{
	PaymentPix, PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentBankSlip, PaymentOnAccount,
}

func (m PaymentMethod) Valid() bool {
	return slices.Contains(paymentMethods, m)
}

type Order struct {
	ID            int64
	CustomerID    int64
	SalespersonID int64
	Status        OrderStatus
	PaymentMethod *PaymentMethod
	GrossTotal    decimal.Decimal
	Discount      decimal.Decimal
	NetTotal      decimal.Decimal
	Observation   *string
	CreatedAt     time.Time

	// hydrated on reads
	Items       []OrderItem
	Customer    *Customer
	Salesperson *User
	Delivery    *Delivery
}

type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	ExpiryDate  *time.Time
	Observation *string
}

// ItemInput describes a new line. A nil UnitPrice snapshots the catalog price.
type ItemInput struct {
	ProductID   int64
	Quantity    int
	UnitPrice   *decimal.Decimal
	ExpiryDate  *time.Time
	Observation *string
}

func (in ItemInput) Validate() error {
	if in.ProductID <= 0 {
		return Errorf(ErrValidation, "product id must be positive")
	}
	if err := validateQuantity(in.Quantity); err != nil {
		return err
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return Errorf(ErrValidation, "unit price must not be negative")
	}
	return nil
}

// quantity and stock_quantity are INTEGER columns
func validateQuantity(q int) error {
	if q <= 0 {
		return Errorf(ErrValidation, "quantity must be positive")
	}
	if q > math.MaxInt32 {
		return Errorf(ErrValidation, "quantity is too large")
	}
	return nil
}

// ItemPatch is a partial item update. Omitted fields keep their value;
// nullable fields (ExpiryDate, Observation) are cleared by an explicit null.
type ItemPatch struct {
	ProductID   Optional[int64]
	Quantity    Optional[int]
	UnitPrice   Optional[decimal.Decimal]
	ExpiryDate  Optional[time.Time]
	Observation Optional[string]
}

func (p ItemPatch) Validate() error {
	if p.ProductID.IsNull() || p.Quantity.IsNull() || p.UnitPrice.IsNull() {
		return Errorf(ErrValidation, "product id, quantity and unit price cannot be null")
	}
	if p.ProductID.Value != nil && *p.ProductID.Value <= 0 {
		return Errorf(ErrValidation, "product id must be positive")
	}
	if p.Quantity.Value != nil {
		if err := validateQuantity(*p.Quantity.Value); err != nil {
			return err
		}
	}
	if p.UnitPrice.Value != nil && p.UnitPrice.Value.IsNegative() {
		return Errorf(ErrValidation, "unit price must not be negative")
	}
	return nil
}

// Merge returns the item with the patch applied and its subtotal recomputed.
func (p ItemPatch) Merge(it OrderItem) OrderItem {
	if p.ProductID.Value != nil {
		it.ProductID = *p.ProductID.Value
	}
	if p.Quantity.Value != nil {
		it.Quantity = *p.Quantity.Value
	}
	if p.UnitPrice.Value != nil {
		it.UnitPrice = Money(*p.UnitPrice.Value)
	}
	p.ExpiryDate.Apply(&it.ExpiryDate)
	p.Observation.Apply(&it.Observation)
	it.Subtotal = Subtotal(it.UnitPrice, it.Quantity)
	return it
}

type CreateOrder struct {
	CustomerID    int64
	SalespersonID int64
	Items         []ItemInput
	PaymentMethod *PaymentMethod
	Discount      *decimal.Decimal
	Observation   *string
}

func (c CreateOrder) Validate() error {
	if c.CustomerID <= 0 {
		return Errorf(ErrValidation, "customer id must be positive")
	}
	if c.SalespersonID <= 0 {
		return Errorf(ErrValidation, "salesperson id must be positive")
	}
	if c.PaymentMethod != nil && !c.PaymentMethod.Valid() {
		return Errorf(ErrValidation, "unknown payment method %q", *c.PaymentMethod)
	}
	if c.Discount != nil && c.Discount.IsNegative() {
		return Errorf(ErrValidation, "discount must not be negative")
	}
	for _, it := range c.Items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type OrderFilter struct {
	CustomerID *int64
	Status     *OrderStatus
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PerPage    int
}

type OrderPage struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
	Data       []Order
}
