package handler_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"
	"github.com/SergeyBogomolovv/water-sales-service/internal/handler"
	mocks "github.com/SergeyBogomolovv/water-sales-service/internal/handler/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type services struct {
	orders     *mocks.MockOrderService
	deliveries *mocks.MockDeliveryService
	query      *mocks.MockQueryService
}

func newRouter(t *testing.T) (chi.Router, services) {
	svc := services{
		orders:     mocks.NewMockOrderService(t),
		deliveries: mocks.NewMockDeliveryService(t),
		query:      mocks.NewMockQueryService(t),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewHTTPHandler(logger, svc.orders, svc.deliveries, svc.query)

	r := chi.NewRouter()
	h.Init(r)
	return r, svc
}

func doRequest(r http.Handler, method, target, body, role string) (*http.Response, string) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if role != "" {
		req.Header.Set("X-User-ID", "5")
		req.Header.Set("X-User-Role", role)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	res := rr.Result()
	defer res.Body.Close()
	data, _ := io.ReadAll(res.Body)
	return res, string(data)
}

func sampleOrder() entities.Order {
	expiry := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	return entities.Order{
		ID:            42,
		CustomerID:    1,
		SalespersonID: 5,
		Status:        entities.StatusOpen,
		GrossTotal:    decimal.RequireFromString("50"),
		Discount:      decimal.Zero,
		NetTotal:      decimal.RequireFromString("50"),
		CreatedAt:     time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		Items: []entities.OrderItem{{
			ID:          7,
			OrderID:     42,
			ProductID:   10,
			ProductName: "Galão 20L",
			Quantity:    2,
			UnitPrice:   decimal.RequireFromString("25"),
			Subtotal:    decimal.RequireFromString("50"),
			ExpiryDate:  &expiry,
		}},
		Customer: &entities.Customer{ID: 1, Name: "Padaria Central"},
	}
}

func TestHTTPHandler_CreateOrder(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		role         string
		mockBehavior func(svc services)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "success, salesperson from identity",
			body: `{"customer_id":1,"items":[{"product_id":10,"quantity":2,"unit_price":"25.00","expiry_date":"2026-06-30"}]}`,
			role: "STAFF",
			mockBehavior: func(svc services) {
				svc.orders.EXPECT().
					CreateOrder(mock.Anything, mock.MatchedBy(func(in entities.CreateOrder) bool {
						return in.CustomerID == 1 && in.SalespersonID == 5 &&
							len(in.Items) == 1 && in.Items[0].UnitPrice.Equal(decimal.RequireFromString("25")) &&
							in.Items[0].ExpiryDate.Format(time.DateOnly) == "2026-06-30"
					})).
					Return(sampleOrder(), nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"gross_total":"50.00"`,
		},
		{
			name: "explicit salesperson",
			body: `{"customer_id":1,"salesperson_id":9,"items":[]}`,
			role: "ADMIN",
			mockBehavior: func(svc services) {
				svc.orders.EXPECT().
					CreateOrder(mock.Anything, mock.MatchedBy(func(in entities.CreateOrder) bool { return in.SalespersonID == 9 })).
					Return(sampleOrder(), nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:         "staff cannot create on behalf of another salesperson",
			body:         `{"customer_id":1,"salesperson_id":9,"items":[]}`,
			role:         "STAFF",
			mockBehavior: func(svc services) {},
			wantStatus:   http.StatusForbidden,
			wantBody:     `"forbidden"`,
		},
		{
			name: "staff may name themselves",
			body: `{"customer_id":1,"salesperson_id":5,"items":[]}`,
			role: "STAFF",
			mockBehavior: func(svc services) {
				svc.orders.EXPECT().
					CreateOrder(mock.Anything, mock.MatchedBy(func(in entities.CreateOrder) bool { return in.SalespersonID == 5 })).
					Return(sampleOrder(), nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:         "validation error",
			body:         `{"customer_id":0,"items":[{"product_id":10,"quantity":0}]}`,
			role:         "STAFF",
			mockBehavior: func(svc services) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"fields"`,
		},
		{
			name:         "unparseable date",
			body:         `{"customer_id":1,"items":[{"product_id":10,"quantity":1,"expiry_date":"30/06/2026"}]}`,
			role:         "STAFF",
			mockBehavior: func(svc services) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `invalid date`,
		},
		{
			name: "customer not found",
			body: `{"customer_id":99,"items":[]}`,
			role: "STAFF",
			mockBehavior: func(svc services) {
				svc.orders.EXPECT().
					CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, entities.ErrCustomerNotFound).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"customer not found"`,
		},
		{
			name:         "driver cannot create orders",
			body:         `{"customer_id":1,"items":[]}`,
			role:         "DRIVER",
			mockBehavior: func(svc services) {},
			wantStatus:   http.StatusForbidden,
		},
		{
			name:         "unauthenticated",
			body:         `{"customer_id":1,"items":[]}`,
			mockBehavior: func(svc services) {},
			wantStatus:   http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := newRouter(t)
			tc.mockBehavior(svc)

			res, body := doRequest(r, http.MethodPost, "/orders", tc.body, tc.role)

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Contains(t, body, tc.wantBody)
		})
	}
}

func TestHTTPHandler_GetOrder(t *testing.T) {
	testCases := []struct {
		name         string
		target       string
		mockBehavior func(svc services)
		wantStatus   int
		wantBody     string
	}{
		{
			name:   "success",
			target: "/orders/42",
			mockBehavior: func(svc services) {
				svc.query.EXPECT().GetOrder(mock.Anything, int64(42)).Return(sampleOrder(), nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"id":42`,
		},
		{
			name:   "not found",
			target: "/orders/404",
			mockBehavior: func(svc services) {
				svc.query.EXPECT().GetOrder(mock.Anything, int64(404)).Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
		{
			name:         "invalid id",
			target:       "/orders/abc",
			mockBehavior: func(svc services) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid id"`,
		},
		{
			name:   "internal error",
			target: "/orders/42",
			mockBehavior: func(svc services) {
				svc.query.EXPECT().GetOrder(mock.Anything, int64(42)).Return(entities.Order{}, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal server error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := newRouter(t)
			tc.mockBehavior(svc)

			res, body := doRequest(r, http.MethodGet, tc.target, "", "DRIVER")

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Contains(t, body, tc.wantBody)

			if tc.wantStatus == http.StatusOK {
				var resp handler.Order
				require.NoError(t, json.Unmarshal([]byte(body), &resp))
				assert.Equal(t, int64(42), resp.ID)
				require.Len(t, resp.Items, 1)
				assert.Equal(t, "25.00", resp.Items[0].UnitPrice)
				require.NotNil(t, resp.Items[0].ExpiryDate)
				assert.Equal(t, "2026-06-30", resp.Items[0].ExpiryDate.Format(time.DateOnly))
				assert.Nil(t, resp.Delivery)
			}
		})
	}
}

func TestHTTPHandler_ListOrders(t *testing.T) {
	testCases := []struct {
		name         string
		query        string
		mockBehavior func(svc services)
		wantStatus   int
	}{
		{
			name:  "filters",
			query: "?customer_id=1&status=PAID&date_from=2026-01-01&date_to=2026-01-31&page=2&per_page=10",
			mockBehavior: func(svc services) {
				svc.query.EXPECT().
					ListOrders(mock.Anything, mock.MatchedBy(func(f entities.OrderFilter) bool {
						return *f.CustomerID == 1 && *f.Status == entities.StatusPaid &&
							f.DateFrom.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) &&
							f.DateTo.Format(time.DateOnly) == "2026-01-31" && f.DateTo.Hour() == 23 &&
							f.Page == 2 && f.PerPage == 10
					})).
					Return(entities.OrderPage{Page: 2, PerPage: 10, Total: 11, TotalPages: 2, Data: []entities.Order{sampleOrder()}}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "defaults",
			query: "",
			mockBehavior: func(svc services) {
				svc.query.EXPECT().ListOrders(mock.Anything, entities.OrderFilter{}).Return(entities.OrderPage{Page: 1, PerPage: 20}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:         "bad page",
			query:        "?page=0",
			mockBehavior: func(svc services) {},
			wantStatus:   http.StatusBadRequest,
		},
		{
			name:         "bad date",
			query:        "?date_from=yesterday",
			mockBehavior: func(svc services) {},
			wantStatus:   http.StatusBadRequest,
		},
		{
			name:  "service validation",
			query: "?status=LOST",
			mockBehavior: func(svc services) {
				svc.query.EXPECT().ListOrders(mock.Anything, mock.Anything).
					Return(entities.OrderPage{}, entities.Errorf(entities.ErrValidation, "unknown status")).Once()
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := newRouter(t)
			tc.mockBehavior(svc)

			res, body := doRequest(r, http.MethodGet, "/orders"+tc.query, "", "STAFF")
			assert.Equal(t, tc.wantStatus, res.StatusCode, body)

			if tc.wantStatus == http.StatusOK {
				var page handler.OrderPage
				require.NoError(t, json.Unmarshal([]byte(body), &page))
				assert.NotNil(t, page.Data)
			}
		})
	}
}

func TestHTTPHandler_UpdateItem(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc services)
		wantStatus   int
	}{
		{
			name: "omitted and null fields are distinguished",
			body: `{"quantity":3,"expiry_date":null}`,
			mockBehavior: func(svc services) {
				svc.orders.EXPECT().
					UpdateItem(mock.Anything, int64(42), int64(7), mock.MatchedBy(func(p entities.ItemPatch) bool {
						return p.Quantity.Set && *p.Quantity.Value == 3 &&
							p.ExpiryDate.IsNull() &&
							!p.Observation.Set && !p.UnitPrice.Set && !p.ProductID.Set
					})).
					Return(sampleOrder(), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "new expiry date",
			body: `{"expiry_date":"2026-09-01"}`,
			mockBehavior: func(svc services) {
				svc.orders.EXPECT().
					UpdateItem(mock.Anything, int64(42), int64(7), mock.MatchedBy(func(p entities.ItemPatch) bool {
						return p.ExpiryDate.Value != nil && p.ExpiryDate.Value.Format(time.DateOnly) == "2026-09-01"
					})).
					Return(sampleOrder(), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "item of another order",
			body: `{"quantity":3}`,
			mockBehavior: func(svc services) {
				svc.orders.EXPECT().UpdateItem(mock.Anything, int64(42), int64(7), mock.Anything).
					Return(entities.Order{}, entities.ErrItemNotInOrder).Once()
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "order not open",
			body: `{"quantity":3}`,
			mockBehavior: func(svc services) {
				svc.orders.EXPECT().UpdateItem(mock.Anything, int64(42), int64(7), mock.Anything).
					Return(entities.Order{}, entities.ErrOrderNotOpen).Once()
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:         "malformed body",
			body:         `{"quantity":"three"}`,
			mockBehavior: func(svc services) {},
			wantStatus:   http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := newRouter(t)
			tc.mockBehavior(svc)

			res, body := doRequest(r, http.MethodPatch, "/orders/42/items/7", tc.body, "STAFF")
			assert.Equal(t, tc.wantStatus, res.StatusCode, body)
		})
	}
}

func TestHTTPHandler_ConfirmPayment(t *testing.T) {
	r, svc := newRouter(t)
	paid := sampleOrder()
	paid.Status = entities.StatusPaid

	svc.orders.EXPECT().
		ConfirmPayment(mock.Anything, int64(42), entities.PaymentPix, mock.MatchedBy(func(d *decimal.Decimal) bool {
			return d != nil && d.Equal(decimal.RequireFromString("5"))
		})).
		Return(paid, nil).Once()

	res, body := doRequest(r, http.MethodPost, "/orders/42/payment", `{"payment_method":"PIX","discount":"5.00"}`, "STAFF")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"status":"PAID"`)

	res, body = doRequest(r, http.MethodPost, "/orders/42/payment", `{"payment_method":"BITCOIN"}`, "STAFF")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, `"PaymentMethod":"oneof"`)
}

func TestHTTPHandler_ConfirmDelivery(t *testing.T) {
	testCases := []struct {
		name         string
		role         string
		mockBehavior func(svc services)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "success",
			role: "DRIVER",
			mockBehavior: func(svc services) {
				delivered := sampleOrder()
				delivered.Status = entities.StatusDelivered
				svc.deliveries.EXPECT().ConfirmDelivery(mock.Anything, int64(42)).Return(delivered, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"DELIVERED"`,
		},
		{
			name: "insufficient stock",
			role: "ADMIN",
			mockBehavior: func(svc services) {
				svc.deliveries.EXPECT().ConfirmDelivery(mock.Anything, int64(42)).
					Return(entities.Order{}, entities.Wrap(entities.ErrInsufficientStock, "product 10: available 1, required 2")).Once()
			},
			wantStatus: http.StatusConflict,
			wantBody:   `insufficient stock: product 10`,
		},
		{
			name: "not paid",
			role: "DRIVER",
			mockBehavior: func(svc services) {
				svc.deliveries.EXPECT().ConfirmDelivery(mock.Anything, int64(42)).Return(entities.Order{}, entities.ErrOrderNotPaid).Once()
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:         "staff cannot confirm",
			role:         "STAFF",
			mockBehavior: func(svc services) {},
			wantStatus:   http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := newRouter(t)
			tc.mockBehavior(svc)

			res, body := doRequest(r, http.MethodPost, "/orders/42/delivery/confirm", "", tc.role)
			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Contains(t, body, tc.wantBody)
		})
	}
}

func TestHTTPHandler_UpsertDelivery(t *testing.T) {
	r, svc := newRouter(t)
	driver := int64(7)

	svc.deliveries.EXPECT().
		UpsertDelivery(mock.Anything, int64(42), mock.MatchedBy(func(p entities.DeliveryPatch) bool {
			return *p.DriverID.Value == 7 && *p.Status.Value == entities.DeliveryEnRoute && p.Observation.IsNull() && !p.ExpectedTime.Set
		})).
		Return(entities.Delivery{OrderID: 42, DriverID: &driver, Status: entities.DeliveryEnRoute}, nil).Once()

	res, body := doRequest(r, http.MethodPut, "/orders/42/delivery", `{"driver_id":7,"status":"EN_ROUTE","observation":null}`, "DRIVER")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"driver_id":7`)
}

func TestHTTPHandler_ItemRoutes(t *testing.T) {
	r, svc := newRouter(t)

	svc.orders.EXPECT().AddItem(mock.Anything, int64(42), entities.ItemInput{ProductID: 11, Quantity: 1}).Return(sampleOrder(), nil).Once()
	svc.orders.EXPECT().RemoveItem(mock.Anything, int64(42), int64(7)).Return(sampleOrder(), nil).Once()
	svc.orders.EXPECT().CancelOrder(mock.Anything, int64(42)).Return(entities.Order{}, entities.ErrOrderDelivered).Once()
	svc.query.EXPECT().GetReceipt(mock.Anything, int64(42)).Return(entities.NewReceipt(sampleOrder()), nil).Once()

	res, _ := doRequest(r, http.MethodPost, "/orders/42/items", `{"product_id":11,"quantity":1}`, "STAFF")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = doRequest(r, http.MethodDelete, "/orders/42/items/7", "", "ADMIN")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body := doRequest(r, http.MethodPost, "/orders/42/cancel", "", "STAFF")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "order already delivered")

	res, body = doRequest(r, http.MethodGet, "/orders/42/receipt", "", "DRIVER")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"number":"000042"`)

	res, _ = doRequest(r, http.MethodPost, "/orders/42/items", `{"product_id":11,"quantity":1}`, "DRIVER")
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
