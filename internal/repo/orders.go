package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type orderRepo struct {
	base
}

func NewOrderRepo(db *sqlx.DB) *orderRepo {
	return &orderRepo{base: newBase(db)}
}

func (r *orderRepo) CreateOrder(ctx context.Context, o entities.Order) (int64, error) {
	var method *string
	if o.PaymentMethod != nil {
		m := string(*o.PaymentMethod)
		method = &m
	}

	query, args := r.qb.Insert("orders").
		Columns("customer_id", "salesperson_id", "status", "payment_method",
			"gross_total", "discount", "net_total", "observation").
		Values(o.CustomerID, o.SalespersonID, string(o.Status), nullString(method),
			o.GrossTotal, o.Discount, o.NetTotal, nullString(o.Observation)).
		Suffix("RETURNING id").
		MustSql()

	var id int64
	if err := r.getContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", mapFKViolation(err))
	}
	return id, nil
}

func (r *orderRepo) GetOrder(ctx context.Context, id int64) (entities.Order, error) {
	return r.getOrder(ctx, id, false)
}

// LockOrder reads the order row with FOR UPDATE, serializing mutations of the
// same order until the surrounding transaction ends.
func (r *orderRepo) LockOrder(ctx context.Context, id int64) (entities.Order, error) {
	return r.getOrder(ctx, id, true)
}

func (r *orderRepo) getOrder(ctx context.Context, id int64, lock bool) (entities.Order, error) {
	query, args := r.orderQuery(id, lock).MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	return OrderToEntity(order), nil
}

func (r base) orderQuery(id int64, lock bool) sq.SelectBuilder {
	q := r.qb.Select(orderColumns...).From("orders").Where(sq.Eq{"id": id})
	if lock {
		q = q.Suffix("FOR UPDATE")
	}
	return q
}

func (r *orderRepo) ListOrders(ctx context.Context, f entities.OrderFilter) ([]entities.Order, int, error) {
	where := orderFilterWhere(f)

	query, args := r.qb.Select("COUNT(*)").From("orders").Where(where).MustSql()
	var total int
	if err := r.getContext(ctx, &total, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	if total == 0 {
		return []entities.Order{}, 0, nil
	}

	query, args = r.qb.Select(orderColumns...).
		From("orders").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(f.PerPage)).
		Offset(uint64((f.Page - 1) * f.PerPage)).
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to select orders: %w", err)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o))
	}
	return result, total, nil
}

func orderFilterWhere(f entities.OrderFilter) sq.And {
	where := sq.And{}
	if f.CustomerID != nil {
		where = append(where, sq.Eq{"customer_id": *f.CustomerID})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": string(*f.Status)})
	}
	if f.DateFrom != nil {
		where = append(where, sq.GtOrEq{"created_at": *f.DateFrom})
	}
	if f.DateTo != nil {
		where = append(where, sq.LtOrEq{"created_at": *f.DateTo})
	}
	return where
}

func (r *orderRepo) UpdateTotals(ctx context.Context, id int64, t entities.Totals) error {
	query, args := r.qb.Update("orders").
		Set("gross_total", t.Gross).
		Set("discount", t.Discount).
		Set("net_total", t.Net).
		Where(sq.Eq{"id": id}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update totals: %w", err)
	}
	return nil
}

func (r *orderRepo) UpdatePayment(ctx context.Context, id int64, status entities.OrderStatus, method entities.PaymentMethod) error {
	query, args := r.qb.Update("orders").
		Set("status", string(status)).
		Set("payment_method", string(method)).
		Where(sq.Eq{"id": id}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, status entities.OrderStatus) error {
	query, args := r.qb.Update("orders").
		Set("status", string(status)).
		Where(sq.Eq{"id": id}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return nil
}

// ListItems returns the items of the given orders in insertion order.
func (r *orderRepo) ListItems(ctx context.Context, orderIDs ...int64) ([]entities.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []entities.OrderItem{}, nil
	}

	query, args := r.qb.Select(itemColumns...).
		From("order_items oi").
		Join("products p ON p.id = oi.product_id").
		Where(sq.Eq{"oi.order_id": orderIDs}).
		OrderBy("oi.id").
		MustSql()

	var items []Item
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}

	result := make([]entities.OrderItem, 0, len(items))
	for _, it := range items {
		result = append(result, ItemToEntity(it))
	}
	return result, nil
}

func (r *orderRepo) GetItem(ctx context.Context, id int64) (entities.OrderItem, error) {
	query, args := r.qb.Select(itemColumns...).
		From("order_items oi").
		Join("products p ON p.id = oi.product_id").
		Where(sq.Eq{"oi.id": id}).
		MustSql()

	var item Item
	err := r.getContext(ctx, &item, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.OrderItem{}, entities.ErrItemNotFound
	}
	if err != nil {
		return entities.OrderItem{}, fmt.Errorf("failed to get item: %w", err)
	}
	return ItemToEntity(item), nil
}

func (r *orderRepo) AddItem(ctx context.Context, it entities.OrderItem) (int64, error) {
	query, args := r.qb.Insert("order_items").
		Columns("order_id", "product_id", "quantity", "unit_price", "subtotal", "expiry_date", "observation").
		Values(it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal,
			nullTime(it.ExpiryDate), nullString(it.Observation)).
		Suffix("RETURNING id").
		MustSql()

	var id int64
	if err := r.getContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", mapFKViolation(err))
	}
	return id, nil
}

func (r *orderRepo) UpdateItem(ctx context.Context, it entities.OrderItem) error {
	query, args := r.qb.Update("order_items").
		Set("product_id", it.ProductID).
		Set("quantity", it.Quantity).
		Set("unit_price", it.UnitPrice).
		Set("subtotal", it.Subtotal).
		Set("expiry_date", nullTime(it.ExpiryDate)).
		Set("observation", nullString(it.Observation)).
		Where(sq.Eq{"id": it.ID, "order_id": it.OrderID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", mapFKViolation(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entities.ErrItemNotFound
	}
	return nil
}

func (r *orderRepo) RemoveItem(ctx context.Context, id int64) error {
	query, args := r.qb.Delete("order_items").Where(sq.Eq{"id": id}).MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entities.ErrItemNotFound
	}
	return nil
}

func (r *orderRepo) GetDelivery(ctx context.Context, orderID int64) (entities.Delivery, error) {
	query, args := r.qb.Select(deliveryColumns...).
		From("deliveries").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var delivery Delivery
	err := r.getContext(ctx, &delivery, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Delivery{}, entities.ErrDeliveryNotFound
	}
	if err != nil {
		return entities.Delivery{}, fmt.Errorf("failed to get delivery: %w", err)
	}
	return DeliveryToEntity(delivery), nil
}

func (r *orderRepo) ListDeliveries(ctx context.Context, orderIDs ...int64) ([]entities.Delivery, error) {
	if len(orderIDs) == 0 {
		return []entities.Delivery{}, nil
	}

	query, args := r.qb.Select(deliveryColumns...).
		From("deliveries").
		Where(sq.Eq{"order_id": orderIDs}).
		MustSql()

	var deliveries []Delivery
	if err := r.selectContext(ctx, &deliveries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select deliveries: %w", err)
	}

	result := make([]entities.Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		result = append(result, DeliveryToEntity(d))
	}
	return result, nil
}

// SaveDelivery inserts the delivery or overwrites the existing row of the order.
func (r *orderRepo) SaveDelivery(ctx context.Context, d entities.Delivery) error {
	query, args := r.saveDeliveryQuery(d).MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save delivery: %w", mapFKViolation(err))
	}
	return nil
}

func (r base) saveDeliveryQuery(d entities.Delivery) sq.InsertBuilder {
	return r.qb.Insert("deliveries").
		Columns(deliveryColumns...).
		Values(d.OrderID, nullInt64(d.DriverID), string(d.Status), nullTime(d.DepartureTime),
			nullTime(d.ExpectedTime), nullTime(d.DeliveredTime), nullString(d.Observation)).
		Suffix(`ON CONFLICT (order_id) DO UPDATE SET
			driver_id = EXCLUDED.driver_id,
			status = EXCLUDED.status,
			departure_time = EXCLUDED.departure_time,
			expected_time = EXCLUDED.expected_time,
			delivered_time = EXCLUDED.delivered_time,
			observation = EXCLUDED.observation`)
}
