package service_test

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"
	"github.com/SergeyBogomolovv/water-sales-service/internal/service"
	mocks "github.com/SergeyBogomolovv/water-sales-service/internal/service/mocks"
	txMocks "github.com/SergeyBogomolovv/water-sales-service/pkg/trm/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// ledger is an in-memory store behind every service port. The mocked
// transaction manager snapshots it before a callback and restores it on
// error, so rollback is observable in tests.
type ledger struct {
	mu sync.Mutex

	nextOrderID int64
	nextItemID  int64
	clock       time.Time

	orders     map[int64]entities.Order
	items      map[int64]entities.OrderItem
	deliveries map[int64]entities.Delivery
	products   map[int64]entities.Product
	customers  map[int64]entities.Customer
	users      map[int64]entities.User
	expiry     map[[2]int64]entities.CustomerProductExpiry

	// decrementErr fails DecrementStock for the given product
	decrementErr map[int64]error
}

type ledgerState struct {
	nextOrderID, nextItemID int64
	orders                  map[int64]entities.Order
	items                   map[int64]entities.OrderItem
	deliveries              map[int64]entities.Delivery
	products                map[int64]entities.Product
	expiry                  map[[2]int64]entities.CustomerProductExpiry
}

func newLedger() *ledger {
	return &ledger{
		clock:        time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		orders:       map[int64]entities.Order{},
		items:        map[int64]entities.OrderItem{},
		deliveries:   map[int64]entities.Delivery{},
		products:     map[int64]entities.Product{},
		customers:    map[int64]entities.Customer{},
		users:        map[int64]entities.User{},
		expiry:       map[[2]int64]entities.CustomerProductExpiry{},
		decrementErr: map[int64]error{},
	}
}

// seeded returns a ledger with customer 1, salesperson 5, driver 7 and
// products 10 and 11 with plenty of stock.
func seeded() *ledger {
	l := newLedger()
	l.customers[1] = entities.Customer{ID: 1, Name: "Padaria Central", TaxID: "12.345.678/0001-90"}
	l.customers[2] = entities.Customer{ID: 2, Name: "Academia Forte", TaxID: "98.765.432/0001-10"}
	l.users[5] = entities.User{ID: 5, Name: "Marina", Role: entities.RoleStaff}
	l.users[7] = entities.User{ID: 7, Name: "Jonas", Role: entities.RoleDriver}
	l.products[10] = entities.Product{ID: 10, Name: "Galão 20L", Price: decimal.RequireFromString("25.00"), StockQuantity: 100}
	l.products[11] = entities.Product{ID: 11, Name: "Garrafa 1,5L", Price: decimal.RequireFromString("10.00"), StockQuantity: 100}
	return l
}

func (l *ledger) snapshot() ledgerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ledgerState{
		nextOrderID: l.nextOrderID,
		nextItemID:  l.nextItemID,
		orders:      maps.Clone(l.orders),
		items:       maps.Clone(l.items),
		deliveries:  maps.Clone(l.deliveries),
		products:    maps.Clone(l.products),
		expiry:      maps.Clone(l.expiry),
	}
}

func (l *ledger) restore(s ledgerState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextOrderID, l.nextItemID = s.nextOrderID, s.nextItemID
	l.orders, l.items, l.deliveries, l.products, l.expiry = s.orders, s.items, s.deliveries, s.products, s.expiry
}

func (l *ledger) stock(id int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.products[id].StockQuantity
}

func (l *ledger) setStock(id int64, stock int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p := l.products[id]
	p.StockQuantity = stock
	l.products[id] = p
}

func (l *ledger) setStatus(id int64, status entities.OrderStatus) {
	l.mu.Lock()
	defer l.mu.Unlock()
	o := l.orders[id]
	o.Status = status
	l.orders[id] = o
}

func (l *ledger) orderCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}

// CreateOrder and the rest implement the service ports.

func (l *ledger) CreateOrder(_ context.Context, o entities.Order) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextOrderID++
	l.clock = l.clock.Add(time.Minute)
	o.ID = l.nextOrderID
	o.CreatedAt = l.clock
	l.orders[o.ID] = o
	return o.ID, nil
}

func (l *ledger) GetOrder(_ context.Context, id int64) (entities.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.orders[id]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return o, nil
}

func (l *ledger) LockOrder(ctx context.Context, id int64) (entities.Order, error) {
	return l.GetOrder(ctx, id)
}

func (l *ledger) ListOrders(_ context.Context, f entities.OrderFilter) ([]entities.Order, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var matched []entities.Order
	for _, o := range l.orders {
		if f.CustomerID != nil && o.CustomerID != *f.CustomerID {
			continue
		}
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		if f.DateFrom != nil && o.CreatedAt.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && o.CreatedAt.After(*f.DateTo) {
			continue
		}
		matched = append(matched, o)
	}
	slices.SortFunc(matched, func(a, b entities.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	total := len(matched)
	from := min((f.Page-1)*f.PerPage, total)
	to := min(from+f.PerPage, total)
	return slices.Clone(matched[from:to]), total, nil
}

func (l *ledger) UpdateTotals(_ context.Context, id int64, t entities.Totals) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	o := l.orders[id]
	o.GrossTotal, o.Discount, o.NetTotal = t.Gross, t.Discount, t.Net
	l.orders[id] = o
	return nil
}

func (l *ledger) UpdatePayment(_ context.Context, id int64, status entities.OrderStatus, method entities.PaymentMethod) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	o := l.orders[id]
	o.Status = status
	o.PaymentMethod = &method
	l.orders[id] = o
	return nil
}

func (l *ledger) UpdateStatus(_ context.Context, id int64, status entities.OrderStatus) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	o := l.orders[id]
	o.Status = status
	l.orders[id] = o
	return nil
}

func (l *ledger) ListItems(_ context.Context, orderIDs ...int64) ([]entities.OrderItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := []entities.OrderItem{}
	for _, it := range l.items {
		if slices.Contains(orderIDs, it.OrderID) {
			it.ProductName = l.products[it.ProductID].Name
			result = append(result, it)
		}
	}
	slices.SortFunc(result, func(a, b entities.OrderItem) int { return cmp.Compare(a.ID, b.ID) })
	return result, nil
}

func (l *ledger) GetItem(_ context.Context, id int64) (entities.OrderItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	it, ok := l.items[id]
	if !ok {
		return entities.OrderItem{}, entities.ErrItemNotFound
	}
	it.ProductName = l.products[it.ProductID].Name
	return it, nil
}

func (l *ledger) AddItem(_ context.Context, it entities.OrderItem) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextItemID++
	it.ID = l.nextItemID
	l.items[it.ID] = it
	return it.ID, nil
}

func (l *ledger) UpdateItem(_ context.Context, it entities.OrderItem) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.items[it.ID]; !ok {
		return entities.ErrItemNotFound
	}
	l.items[it.ID] = it
	return nil
}

func (l *ledger) RemoveItem(_ context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.items[id]; !ok {
		return entities.ErrItemNotFound
	}
	delete(l.items, id)
	return nil
}

func (l *ledger) GetDelivery(_ context.Context, orderID int64) (entities.Delivery, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	d, ok := l.deliveries[orderID]
	if !ok {
		return entities.Delivery{}, entities.ErrDeliveryNotFound
	}
	return d, nil
}

func (l *ledger) ListDeliveries(_ context.Context, orderIDs ...int64) ([]entities.Delivery, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := []entities.Delivery{}
	for _, id := range orderIDs {
		if d, ok := l.deliveries[id]; ok {
			result = append(result, d)
		}
	}
	return result, nil
}

func (l *ledger) SaveDelivery(_ context.Context, d entities.Delivery) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.deliveries[d.OrderID] = d
	return nil
}

func (l *ledger) ProductExists(_ context.Context, id int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.products[id]
	return ok, nil
}

func (l *ledger) GetProduct(_ context.Context, id int64) (entities.Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.products[id]
	if !ok {
		return entities.Product{}, entities.ErrProductNotFound
	}
	return p, nil
}

func (l *ledger) GetStock(_ context.Context, id int64) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.products[id]
	if !ok {
		return 0, entities.ErrProductNotFound
	}
	return p.StockQuantity, nil
}

func (l *ledger) DecrementStock(_ context.Context, id int64, amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.decrementErr[id]; err != nil {
		return err
	}
	p, ok := l.products[id]
	if !ok {
		return entities.ErrProductNotFound
	}
	if p.StockQuantity < amount {
		return entities.ErrInsufficientStock
	}
	p.StockQuantity -= amount
	l.products[id] = p
	return nil
}

func (l *ledger) CustomerExists(_ context.Context, id int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.customers[id]
	return ok, nil
}

func (l *ledger) GetCustomers(_ context.Context, ids ...int64) ([]entities.Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := []entities.Customer{}
	for _, id := range ids {
		if c, ok := l.customers[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func (l *ledger) UpsertExpiry(_ context.Context, e entities.CustomerProductExpiry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expiry[[2]int64{e.CustomerID, e.ProductID}] = e
	return nil
}

func (l *ledger) UserExists(_ context.Context, id int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.users[id]
	return ok, nil
}

func (l *ledger) GetUsers(_ context.Context, ids ...int64) ([]entities.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := []entities.User{}
	for _, id := range ids {
		if u, ok := l.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

// newDeps wires the ledger behind a transaction manager mock that rolls the
// ledger back when the callback fails.
func newDeps(t *testing.T, l *ledger) (service.Deps, *mocks.MockEventPublisher) {
	tx := txMocks.NewMockManager(t)
	tx.EXPECT().
		Do(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, cb func(ctx context.Context) error) error {
			state := l.snapshot()
			if err := cb(ctx); err != nil {
				l.restore(state)
				return err
			}
			return nil
		}).Maybe()

	publisher := mocks.NewMockEventPublisher(t)

	return service.Deps{
		TxManager:  tx,
		Orders:     l,
		Deliveries: l,
		Catalog:    l,
		Customers:  l,
		Users:      l,
		Publisher:  publisher,
	}, publisher
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func moneyPtr(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

func date(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}
