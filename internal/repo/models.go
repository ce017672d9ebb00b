package repo

import (
	"database/sql"
	"time"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"

	"github.com/shopspring/decimal"
)

var (
	orderColumns = []string{
		"id", "customer_id", "salesperson_id", "status", "payment_method",
		"gross_total", "discount", "net_total", "observation", "created_at",
	}
	itemColumns = []string{
		"oi.id", "oi.order_id", "oi.product_id", "p.name AS product_name", "oi.quantity",
		"oi.unit_price", "oi.subtotal", "oi.expiry_date", "oi.observation",
	}
	deliveryColumns = []string{
		"order_id", "driver_id", "status", "departure_time",
		"expected_time", "delivered_time", "observation",
	}
)

type Order struct {
	ID            int64           `db:"id"`
	CustomerID    int64           `db:"customer_id"`
	SalespersonID int64           `db:"salesperson_id"`
	Status        string          `db:"status"`
	PaymentMethod sql.NullString  `db:"payment_method"`
	GrossTotal    decimal.Decimal `db:"gross_total"`
	Discount      decimal.Decimal `db:"discount"`
	NetTotal      decimal.Decimal `db:"net_total"`
	Observation   sql.NullString  `db:"observation"`
	CreatedAt     time.Time       `db:"created_at"`
}

type Item struct {
	ID          int64           `db:"id"`
	OrderID     int64           `db:"order_id"`
	ProductID   int64           `db:"product_id"`
	ProductName string          `db:"product_name"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Subtotal    decimal.Decimal `db:"subtotal"`
	ExpiryDate  sql.NullTime    `db:"expiry_date"`
	Observation sql.NullString  `db:"observation"`
}

type Delivery struct {
	OrderID       int64          `db:"order_id"`
	DriverID      sql.NullInt64  `db:"driver_id"`
	Status        string         `db:"status"`
	DepartureTime sql.NullTime   `db:"departure_time"`
	ExpectedTime  sql.NullTime   `db:"expected_time"`
	DeliveredTime sql.NullTime   `db:"delivered_time"`
	Observation   sql.NullString `db:"observation"`
}

type Customer struct {
	ID    int64          `db:"id"`
	Name  string         `db:"name"`
	TaxID sql.NullString `db:"tax_id"`
}

type User struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Role string `db:"role"`
}

type Product struct {
	ID            int64           `db:"id"`
	Name          string          `db:"name"`
	Price         decimal.Decimal `db:"price"`
	StockQuantity int             `db:"stock_quantity"`
}

func OrderToEntity(o Order) entities.Order {
	order := entities.Order{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		SalespersonID: o.SalespersonID,
		Status:        entities.OrderStatus(o.Status),
		GrossTotal:    o.GrossTotal,
		Discount:      o.Discount,
		NetTotal:      o.NetTotal,
		Observation:   nullStringToPtr(o.Observation),
		CreatedAt:     o.CreatedAt,
	}
	if o.PaymentMethod.Valid {
		m := entities.PaymentMethod(o.PaymentMethod.String)
		order.PaymentMethod = &m
	}
	return order
}

func ItemToEntity(i Item) entities.OrderItem {
	return entities.OrderItem{
		ID:          i.ID,
		OrderID:     i.OrderID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		Subtotal:    i.Subtotal,
		ExpiryDate:  nullTimeToPtr(i.ExpiryDate),
		Observation: nullStringToPtr(i.Observation),
	}
}

func DeliveryToEntity(d Delivery) entities.Delivery {
	delivery := entities.Delivery{
		OrderID:       d.OrderID,
		Status:        entities.DeliveryStatus(d.Status),
		DepartureTime: nullTimeToPtr(d.DepartureTime),
		ExpectedTime:  nullTimeToPtr(d.ExpectedTime),
		DeliveredTime: nullTimeToPtr(d.DeliveredTime),
		Observation:   nullStringToPtr(d.Observation),
	}
	if d.DriverID.Valid {
		id := d.DriverID.Int64
		delivery.DriverID = &id
	}
	return delivery
}

func CustomerToEntity(c Customer) entities.Customer {
	return entities.Customer{ID: c.ID, Name: c.Name, TaxID: c.TaxID.String}
}

func UserToEntity(u User) entities.User {
	return entities.User{ID: u.ID, Name: u.Name, Role: entities.Role(u.Role)}
}

func ProductToEntity(p Product) entities.Product {
	return entities.Product{ID: p.ID, Name: p.Name, Price: p.Price, StockQuantity: p.StockQuantity}
}

func nullStringToPtr(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

func nullTimeToPtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		return &nt.Time
	}
	return nil
}
