package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Receipt struct {
	Number        string
	Date          time.Time
	Customer      Customer
	Salesperson   User
	Items         []ReceiptItem
	GrossTotal    decimal.Decimal
	Discount      decimal.Decimal
	NetTotal      decimal.Decimal
	PaymentMethod *PaymentMethod
	Status        OrderStatus
}

type ReceiptItem struct {
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	ExpiryDate  *time.Time
}

func ReceiptNumber(orderID int64) string {
	return fmt.Sprintf("%06d", orderID)
}

// NewReceipt projects a hydrated order.
func NewReceipt(o Order) Receipt {
	r := Receipt{
		Number:        ReceiptNumber(o.ID),
		Date:          o.CreatedAt,
		Items:         make([]ReceiptItem, 0, len(o.Items)),
		GrossTotal:    o.GrossTotal,
		Discount:      o.Discount,
		NetTotal:      o.NetTotal,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
	}
	if o.Customer != nil {
		r.Customer = *o.Customer
	} else {
		r.Customer = Customer{ID: o.CustomerID}
	}
	if o.Salesperson != nil {
		r.Salesperson = *o.Salesperson
	} else {
		r.Salesperson = User{ID: o.SalespersonID}
	}
	for _, it := range o.Items {
		r.Items = append(r.Items, ReceiptItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
			ExpiryDate:  it.ExpiryDate,
		})
	}
	return r
}
