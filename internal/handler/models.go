package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"

	"github.com/shopspring/decimal"
)

// Date календарная дата в формате YYYY-MM-DD
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

// parseDate принимает дату или полный RFC 3339 timestamp
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), nil
}

func dateToJSON(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: *t}
}

func dateToEntity(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func moneyToJSON(d decimal.Decimal) string {
	return d.StringFixed(entities.MoneyScale)
}

// CreateOrderRequest новый заказ
type CreateOrderRequest struct {
	CustomerID    int64            `json:"customer_id" validate:"required,gt=0"`
	SalespersonID *int64           `json:"salesperson_id,omitempty" validate:"omitempty,gt=0"`
	PaymentMethod *string          `json:"payment_method,omitempty" validate:"omitempty,oneof=PIX CASH CREDIT_CARD DEBIT_CARD BANK_SLIP ON_ACCOUNT"`
	Discount      *decimal.Decimal `json:"discount,omitempty" swaggertype:"string"`
	Observation   *string          `json:"observation,omitempty" validate:"omitempty,max=500"`
	Items         []ItemRequest    `json:"items" validate:"dive"`
}

// ItemRequest позиция заказа. Если unit_price не указан, берётся цена из каталога
type ItemRequest struct {
	ProductID   int64            `json:"product_id" validate:"required,gt=0"`
	Quantity    int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty" swaggertype:"string"`
	ExpiryDate  *Date            `json:"expiry_date,omitempty" swaggertype:"string" format:"date"`
	Observation *string          `json:"observation,omitempty" validate:"omitempty,max=500"`
}

// UpdateItemRequest частичное обновление позиции: отсутствующее поле не меняется,
// null очищает expiry_date и observation
type UpdateItemRequest struct {
	ProductID   entities.Optional[int64]           `json:"product_id" swaggertype:"integer"`
	Quantity    entities.Optional[int]             `json:"quantity" swaggertype:"integer"`
	UnitPrice   entities.Optional[decimal.Decimal] `json:"unit_price" swaggertype:"string"`
	ExpiryDate  entities.Optional[Date]            `json:"expiry_date" swaggertype:"string" format:"date"`
	Observation entities.Optional[string]          `json:"observation" swaggertype:"string"`
}

// PaymentRequest подтверждение оплаты
type PaymentRequest struct {
	PaymentMethod string           `json:"payment_method" validate:"required,oneof=PIX CASH CREDIT_CARD DEBIT_CARD BANK_SLIP ON_ACCOUNT"`
	Discount      *decimal.Decimal `json:"discount,omitempty" swaggertype:"string"`
}

// DeliveryRequest создание или частичное обновление доставки
type DeliveryRequest struct {
	DriverID      entities.Optional[int64]     `json:"driver_id" swaggertype:"integer"`
	Status        entities.Optional[string]    `json:"status" swaggertype:"string" enums:"PENDING,EN_ROUTE,FAILED"`
	DepartureTime entities.Optional[time.Time] `json:"departure_time" swaggertype:"string" format:"date-time"`
	ExpectedTime  entities.Optional[time.Time] `json:"expected_time" swaggertype:"string" format:"date-time"`
	Observation   entities.Optional[string]    `json:"observation" swaggertype:"string"`
}

// IntakeOrder заказ из топика приёма заказов
type IntakeOrder struct {
	CustomerID    int64            `json:"customer_id" validate:"required,gt=0"`
	SalespersonID int64            `json:"salesperson_id" validate:"required,gt=0"`
	PaymentMethod *string          `json:"payment_method,omitempty" validate:"omitempty,oneof=PIX CASH CREDIT_CARD DEBIT_CARD BANK_SLIP ON_ACCOUNT"`
	Discount      *decimal.Decimal `json:"discount,omitempty"`
	Observation   *string          `json:"observation,omitempty" validate:"omitempty,max=500"`
	Items         []ItemRequest    `json:"items" validate:"required,min=1,dive"`
}

// Order заказ
type Order struct {
	ID            int64     `json:"id"`
	CustomerID    int64     `json:"customer_id"`
	Customer      *Customer `json:"customer,omitempty"`
	SalespersonID int64     `json:"salesperson_id"`
	Salesperson   *User     `json:"salesperson,omitempty"`
	Status        string    `json:"status"`
	PaymentMethod *string   `json:"payment_method"`
	GrossTotal    string    `json:"gross_total" example:"60.00"`
	Discount      string    `json:"discount" example:"5.00"`
	NetTotal      string    `json:"net_total" example:"55.00"`
	Observation   *string   `json:"observation"`
	CreatedAt     time.Time `json:"created_at"`
	Items         []Item    `json:"items"`
	Delivery      *Delivery `json:"delivery"`
}

// Item позиция заказа
type Item struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   string  `json:"unit_price" example:"25.00"`
	Subtotal    string  `json:"subtotal" example:"50.00"`
	ExpiryDate  *Date   `json:"expiry_date" swaggertype:"string" format:"date"`
	Observation *string `json:"observation"`
}

// Delivery информация о доставке
type Delivery struct {
	DriverID      *int64     `json:"driver_id"`
	Status        string     `json:"status"`
	DepartureTime *time.Time `json:"departure_time"`
	ExpectedTime  *time.Time `json:"expected_time"`
	DeliveredTime *time.Time `json:"delivered_time"`
	Observation   *string    `json:"observation"`
}

type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
}

type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrderPage страница списка заказов
type OrderPage struct {
	Page       int     `json:"page"`
	PerPage    int     `json:"per_page"`
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Data       []Order `json:"data"`
}

// Receipt чек заказа
type Receipt struct {
	Number        string        `json:"number" example:"000042"`
	Date          time.Time     `json:"date"`
	Customer      Customer      `json:"customer"`
	Salesperson   User          `json:"salesperson"`
	Items         []ReceiptItem `json:"items"`
	GrossTotal    string        `json:"gross_total"`
	Discount      string        `json:"discount"`
	NetTotal      string        `json:"net_total"`
	PaymentMethod *string       `json:"payment_method"`
	Status        string        `json:"status"`
}

type ReceiptItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
	ExpiryDate  *Date  `json:"expiry_date" swaggertype:"string" format:"date"`
}

func ItemRequestToEntity(it ItemRequest) entities.ItemInput {
	return entities.ItemInput{
		ProductID:   it.ProductID,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		ExpiryDate:  dateToEntity(it.ExpiryDate),
		Observation: it.Observation,
	}
}

func itemsToEntity(items []ItemRequest) []entities.ItemInput {
	res := make([]entities.ItemInput, 0, len(items))
	for _, it := range items {
		res = append(res, ItemRequestToEntity(it))
	}
	return res
}

func paymentMethodToEntity(m *string) *entities.PaymentMethod {
	if m == nil {
		return nil
	}
	pm := entities.PaymentMethod(*m)
	return &pm
}

func CreateOrderRequestToEntity(r CreateOrderRequest, salespersonID int64) entities.CreateOrder {
	return entities.CreateOrder{
		CustomerID:    r.CustomerID,
		SalespersonID: salespersonID,
		Items:         itemsToEntity(r.Items),
		PaymentMethod: paymentMethodToEntity(r.PaymentMethod),
		Discount:      r.Discount,
		Observation:   r.Observation,
	}
}

func IntakeOrderToEntity(o IntakeOrder) entities.CreateOrder {
	return entities.CreateOrder{
		CustomerID:    o.CustomerID,
		SalespersonID: o.SalespersonID,
		Items:         itemsToEntity(o.Items),
		PaymentMethod: paymentMethodToEntity(o.PaymentMethod),
		Discount:      o.Discount,
		Observation:   o.Observation,
	}
}

func UpdateItemRequestToEntity(r UpdateItemRequest) entities.ItemPatch {
	patch := entities.ItemPatch{
		ProductID:   r.ProductID,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		Observation: r.Observation,
	}
	if r.ExpiryDate.Set {
		patch.ExpiryDate = entities.Optional[time.Time]{Set: true}
		if r.ExpiryDate.Value != nil {
			t := r.ExpiryDate.Value.Time
			patch.ExpiryDate.Value = &t
		}
	}
	return patch
}

func DeliveryRequestToEntity(r DeliveryRequest) entities.DeliveryPatch {
	patch := entities.DeliveryPatch{
		DriverID:      r.DriverID,
		DepartureTime: r.DepartureTime,
		ExpectedTime:  r.ExpectedTime,
		Observation:   r.Observation,
	}
	if r.Status.Set {
		patch.Status = entities.Optional[entities.DeliveryStatus]{Set: true}
		if r.Status.Value != nil {
			s := entities.DeliveryStatus(*r.Status.Value)
			patch.Status.Value = &s
		}
	}
	return patch
}

func ItemEntityToJSON(it entities.OrderItem) Item {
	return Item{
		ID:          it.ID,
		ProductID:   it.ProductID,
		ProductName: it.ProductName,
		Quantity:    it.Quantity,
		UnitPrice:   moneyToJSON(it.UnitPrice),
		Subtotal:    moneyToJSON(it.Subtotal),
		ExpiryDate:  dateToJSON(it.ExpiryDate),
		Observation: it.Observation,
	}
}

func DeliveryEntityToJSON(d entities.Delivery) Delivery {
	return Delivery{
		DriverID:      d.DriverID,
		Status:        string(d.Status),
		DepartureTime: d.DepartureTime,
		ExpectedTime:  d.ExpectedTime,
		DeliveredTime: d.DeliveredTime,
		Observation:   d.Observation,
	}
}

func paymentMethodToJSON(m *entities.PaymentMethod) *string {
	if m == nil {
		return nil
	}
	s := string(*m)
	return &s
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]Item, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemEntityToJSON(it))
	}

	res := Order{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		SalespersonID: o.SalespersonID,
		Status:        string(o.Status),
		PaymentMethod: paymentMethodToJSON(o.PaymentMethod),
		GrossTotal:    moneyToJSON(o.GrossTotal),
		Discount:      moneyToJSON(o.Discount),
		NetTotal:      moneyToJSON(o.NetTotal),
		Observation:   o.Observation,
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}
	if o.Customer != nil {
		res.Customer = &Customer{ID: o.Customer.ID, Name: o.Customer.Name, TaxID: o.Customer.TaxID}
	}
	if o.Salesperson != nil {
		res.Salesperson = &User{ID: o.Salesperson.ID, Name: o.Salesperson.Name}
	}
	if o.Delivery != nil {
		d := DeliveryEntityToJSON(*o.Delivery)
		res.Delivery = &d
	}
	return res
}

func OrderPageEntityToJSON(p entities.OrderPage) OrderPage {
	data := make([]Order, 0, len(p.Data))
	for _, o := range p.Data {
		data = append(data, OrderEntityToJSON(o))
	}
	return OrderPage{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		Data:       data,
	}
}

func ReceiptEntityToJSON(r entities.Receipt) Receipt {
	items := make([]ReceiptItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, ReceiptItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   moneyToJSON(it.UnitPrice),
			Subtotal:    moneyToJSON(it.Subtotal),
			ExpiryDate:  dateToJSON(it.ExpiryDate),
		})
	}
	return Receipt{
		Number:        r.Number,
		Date:          r.Date,
		Customer:      Customer{ID: r.Customer.ID, Name: r.Customer.Name, TaxID: r.Customer.TaxID},
		Salesperson:   User{ID: r.Salesperson.ID, Name: r.Salesperson.Name},
		Items:         items,
		GrossTotal:    moneyToJSON(r.GrossTotal),
		Discount:      moneyToJSON(r.Discount),
		NetTotal:      moneyToJSON(r.NetTotal),
		PaymentMethod: paymentMethodToJSON(r.PaymentMethod),
		Status:        string(r.Status),
	}
}
