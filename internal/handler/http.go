package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"
	"github.com/SergeyBogomolovv/water-sales-service/internal/middleware"
	"github.com/SergeyBogomolovv/water-sales-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	CreateOrder(ctx context.Context, in entities.CreateOrder) (entities.Order, error)
	AddItem(ctx context.Context, orderID int64, in entities.ItemInput) (entities.Order, error)
	UpdateItem(ctx context.Context, orderID, itemID int64, patch entities.ItemPatch) (entities.Order, error)
	RemoveItem(ctx context.Context, orderID, itemID int64) (entities.Order, error)
	ConfirmPayment(ctx context.Context, orderID int64, method entities.PaymentMethod, discount *decimal.Decimal) (entities.Order, error)
	CancelOrder(ctx context.Context, orderID int64) (entities.Order, error)
}

type DeliveryService interface {
	UpsertDelivery(ctx context.Context, orderID int64, patch entities.DeliveryPatch) (entities.Delivery, error)
	ConfirmDelivery(ctx context.Context, orderID int64) (entities.Order, error)
}

type QueryService interface {
	GetOrder(ctx context.Context, orderID int64) (entities.Order, error)
	ListOrders(ctx context.Context, f entities.OrderFilter) (entities.OrderPage, error)
	GetReceipt(ctx context.Context, orderID int64) (entities.Receipt, error)
}

type HTTPHandler struct {
	logger     *slog.Logger
	validate   *validator.Validate
	orders     OrderService
	deliveries DeliveryService
	query      QueryService
}

func NewHTTPHandler(logger *slog.Logger, orders OrderService, deliveries DeliveryService, query QueryService) *HTTPHandler {
	return &HTTPHandler{
		logger:     logger.With(slog.String("handler", "http")),
		validate:   validator.New(),
		orders:     orders,
		deliveries: deliveries,
		query:      query,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	sales := middleware.RequireRole(entities.RoleAdmin, entities.RoleStaff)
	drivers := middleware.RequireRole(entities.RoleAdmin, entities.RoleDriver)

	r.Route("/orders", func(r chi.Router) {
		r.Use(middleware.Authenticate)

		r.Get("/", h.ListOrders)
		r.With(sales).Post("/", h.CreateOrder)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetOrder)
			r.Get("/receipt", h.GetReceipt)

			r.Group(func(r chi.Router) {
				r.Use(sales)
				r.Post("/items", h.AddItem)
				r.Patch("/items/{itemId}", h.UpdateItem)
				r.Delete("/items/{itemId}", h.RemoveItem)
				r.Post("/payment", h.ConfirmPayment)
				r.Post("/cancel", h.CancelOrder)
			})

			r.Put("/delivery", h.UpsertDelivery)
			r.With(drivers).Post("/delivery/confirm", h.ConfirmDelivery)
		})
	})
}

// CreateOrder создаёт заказ.
// @Summary      Создать заказ
// @Description  Создаёт заказ в статусе OPEN. Если salesperson_id не указан, продавцом становится текущий пользователь. Указать другого продавца может только ADMIN
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-User-ID    header    int                 true  "Идентификатор пользователя"
// @Param        X-User-Role  header    string              true  "Роль пользователя" Enums(ADMIN, STAFF)
// @Param        order        body      CreateOrderRequest  true  "Заказ"
// @Success      201  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      403  {object}  utils.ErrorResponse "Недостаточно прав"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	caller := h.identity(r)
	salespersonID := caller.UserID
	if req.SalespersonID != nil && *req.SalespersonID != caller.UserID {
		// оформить заказ на другого продавца может только администратор
		if caller.Role != entities.RoleAdmin {
			utils.WriteError(w, "forbidden", http.StatusForbidden)
			return
		}
		salespersonID = *req.SalespersonID
	}

	order, err := h.orders.CreateOrder(r.Context(), CreateOrderRequestToEntity(req, salespersonID))
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create order")
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// ListOrders возвращает страницу заказов.
// @Summary      Список заказов
// @Description  Заказы от новых к старым с фильтрами по клиенту, статусу и дате создания
// @Tags         orders
// @Produce      json
// @Param        X-User-ID    header  int     true   "Идентификатор пользователя"
// @Param        X-User-Role  header  string  true   "Роль пользователя"
// @Param        customer_id  query   int     false  "Клиент"
// @Param        status       query   string  false  "Статус" Enums(OPEN, PAID, DELIVERED, CANCELLED)
// @Param        date_from    query   string  false  "Начиная с даты (YYYY-MM-DD)"
// @Param        date_to      query   string  false  "По дату включительно (YYYY-MM-DD)"
// @Param        page         query   int     false  "Страница" default(1)
// @Param        per_page     query   int     false  "Размер страницы" default(20)
// @Success      200  {object}  OrderPage
// @Failure      400  {object}  utils.ErrorResponse "Ошибка валидации"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [get]
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	f, err := parseOrderFilter(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.query.ListOrders(r.Context(), f)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list orders")
		return
	}

	utils.WriteJSON(w, OrderPageEntityToJSON(page), http.StatusOK)
}

// GetOrder возвращает заказ по ID.
// @Summary      Получить заказ
// @Description  Заказ с позициями, клиентом, продавцом и доставкой
// @Tags         orders
// @Produce      json
// @Param        X-User-ID    header  int     true  "Идентификатор пользователя"
// @Param        X-User-Role  header  string  true  "Роль пользователя"
// @Param        id           path    int     true  "Идентификатор заказа"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ErrorResponse "Некорректный идентификатор"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{id} [get]
func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.query.GetOrder(r.Context(), orderID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to get order")
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// GetReceipt возвращает чек заказа.
// @Summary      Чек заказа
// @Tags         orders
// @Produce      json
// @Param        X-User-ID    header  int     true  "Идентификатор пользователя"
// @Param        X-User-Role  header  string  true  "Роль пользователя"
// @Param        id           path    int     true  "Идентификатор заказа"
// @Success      200  {object}  Receipt
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{id}/receipt [get]
func (h *HTTPHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	receipt, err := h.query.GetReceipt(r.Context(), orderID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to get receipt")
		return
	}

	utils.WriteJSON(w, ReceiptEntityToJSON(receipt), http.StatusOK)
}

// AddItem добавляет позицию в открытый заказ.
// @Summary      Добавить позицию
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        X-User-ID    header  int          true  "Идентификатор пользователя"
// @Param        X-User-Role  header  string       true  "Роль пользователя" Enums(ADMIN, STAFF)
// @Param        id           path    int          true  "Идентификатор заказа"
// @Param        item         body    ItemRequest  true  "Позиция"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ErrorResponse "Заказ не в статусе OPEN или ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Router       /orders/{id}/items [post]
func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req ItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.orders.AddItem(r.Context(), orderID, ItemRequestToEntity(req))
	if err != nil {
		h.writeServiceError(w, r, err, "failed to add item")
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// UpdateItem частично обновляет позицию.
// @Summary      Изменить позицию
// @Description  Отсутствующие поля не меняются, null очищает expiry_date и observation
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        X-User-ID    header  int                true  "Идентификатор пользователя"
// @Param        X-User-Role  header  string             true  "Роль пользователя" Enums(ADMIN, STAFF)
// @Param        id           path    int                true  "Идентификатор заказа"
// @Param        itemId       path    int                true  "Идентификатор позиции"
// @Param        item         body    UpdateItemRequest  true  "Изменения"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ErrorResponse "Позиция из другого заказа, заказ не в статусе OPEN или ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ или позиция не найдены"
// @Router       /orders/{id}/items/{itemId} [patch]
func (h *HTTPHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}
	var req UpdateItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.orders.UpdateItem(r.Context(), orderID, itemID, UpdateItemRequestToEntity(req))
	if err != nil {
		h.writeServiceError(w, r, err, "failed to update item")
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// RemoveItem удаляет позицию.
// @Summary      Удалить позицию
// @Tags         items
// @Produce      json
// @Param        X-User-ID    header  int     true  "Идентификатор пользователя"
// @Param        X-User-Role  header  string  true  "Роль пользователя" Enums(ADMIN, STAFF)
// @Param        id           path    int     true  "Идентификатор заказа"
// @Param        itemId       path    int     true  "Идентификатор позиции"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ErrorResponse "Позиция из другого заказа или заказ не в статусе OPEN"
// @Failure      404  {object}  utils.ErrorResponse "Заказ или позиция не найдены"
// @Router       /orders/{id}/items/{itemId} [delete]
func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	order, err := h.orders.RemoveItem(r.Context(), orderID, itemID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to remove item")
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// ConfirmPayment подтверждает оплату.
// @Summary      Подтвердить оплату
// @Description  Повторный вызов для оплаченного заказа меняет способ оплаты или скидку
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-User-ID    header  int             true  "Идентификатор пользователя"
// @Param        X-User-Role  header  string          true  "Роль пользователя" Enums(ADMIN, STAFF)
// @Param        id           path    int             true  "Идентификатор заказа"
// @Param        payment      body    PaymentRequest  true  "Оплата"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ErrorResponse "Заказ доставлен или отменён, ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Router       /orders/{id}/payment [post]
func (h *HTTPHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req PaymentRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.orders.ConfirmPayment(r.Context(), orderID, entities.PaymentMethod(req.PaymentMethod), req.Discount)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to confirm payment")
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// CancelOrder отменяет заказ.
// @Summary      Отменить заказ
// @Description  Остатки и оплата не возвращаются. Повторная отмена ничего не меняет
// @Tags         orders
// @Produce      json
// @Param        X-User-ID    header  int     true  "Идентификатор пользователя"
// @Param        X-User-Role  header  string  true  "Роль пользователя" Enums(ADMIN, STAFF)
// @Param        id           path    int     true  "Идентификатор заказа"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ErrorResponse "Заказ уже доставлен"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Router       /orders/{id}/cancel [post]
func (h *HTTPHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.orders.CancelOrder(r.Context(), orderID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to cancel order")
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// UpsertDelivery создаёт или обновляет доставку.
// @Summary      Доставка заказа
// @Description  Создаёт доставку в статусе PENDING или меняет переданные поля существующей
// @Tags         delivery
// @Accept       json
// @Produce      json
// @Param        X-User-ID    header  int              true  "Идентификатор пользователя"
// @Param        X-User-Role  header  string           true  "Роль пользователя"
// @Param        id           path    int              true  "Идентификатор заказа"
// @Param        delivery     body    DeliveryRequest  true  "Доставка"
// @Success      200  {object}  Delivery
// @Failure      400  {object}  utils.ErrorResponse "Водитель не найден или ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Router       /orders/{id}/delivery [put]
func (h *HTTPHandler) UpsertDelivery(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req DeliveryRequest
	if !h.decode(w, r, &req) {
		return
	}

	delivery, err := h.deliveries.UpsertDelivery(r.Context(), orderID, DeliveryRequestToEntity(req))
	if err != nil {
		h.writeServiceError(w, r, err, "failed to save delivery")
		return
	}

	utils.WriteJSON(w, DeliveryEntityToJSON(delivery), http.StatusOK)
}

// ConfirmDelivery подтверждает доставку и списывает остатки.
// @Summary      Подтвердить доставку
// @Description  Проверяет остатки по всем позициям, списывает их, записывает сроки годности клиенту и переводит заказ в DELIVERED
// @Tags         delivery
// @Produce      json
// @Param        X-User-ID    header  int     true  "Идентификатор пользователя"
// @Param        X-User-Role  header  string  true  "Роль пользователя" Enums(ADMIN, DRIVER)
// @Param        id           path    int     true  "Идентификатор заказа"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ErrorResponse "Заказ не оплачен или пуст"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409  {object}  utils.ErrorResponse "Недостаточно товара на складе"
// @Router       /orders/{id}/delivery/confirm [post]
func (h *HTTPHandler) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.deliveries.ConfirmDelivery(r.Context(), orderID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to confirm delivery")
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

func (h *HTTPHandler) identity(r *http.Request) middleware.Identity {
	id, _ := middleware.IdentityFromContext(r.Context())
	return id
}

// decode читает тело запроса и валидирует его. При ошибке ответ уже записан
func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := utils.DecodeBody(r, v); err != nil {
		utils.WriteError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			utils.WriteValidationError(w, err)
			return false
		}
	}
	return true
}

// writeServiceError переводит вид доменной ошибки в HTTP статус
func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFromError(err)
	requestErrors.WithLabelValues(strconv.Itoa(status)).Inc()

	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), msg,
			slog.Any("error", err),
			slog.String("order_id", chi.URLParam(r, "id")),
		)
		utils.WriteError(w, "internal server error", status)
		return
	}

	utils.WriteError(w, err.Error(), status)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, entities.ErrReferenceNotFound),
		errors.Is(err, entities.ErrInvalidState),
		errors.Is(err, entities.ErrInvalidReference),
		errors.Is(err, entities.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		utils.WriteError(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func parseOrderFilter(r *http.Request) (entities.OrderFilter, error) {
	q := r.URL.Query()
	var f entities.OrderFilter

	if v := q.Get("customer_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return f, errors.New("invalid customer_id")
		}
		f.CustomerID = &id
	}
	if v := q.Get("status"); v != "" {
		status := entities.OrderStatus(v)
		f.Status = &status
	}
	if v := q.Get("date_from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, errors.New("invalid date_from")
		}
		f.DateFrom = &t
	}
	if v := q.Get("date_to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, errors.New("invalid date_to")
		}
		// конец дня включительно
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.DateTo = &end
	}

	var err error
	if f.Page, err = queryInt(q.Get("page")); err != nil {
		return f, errors.New("invalid page")
	}
	if f.PerPage, err = queryInt(q.Get("per_page")); err != nil {
		return f, errors.New("invalid per_page")
	}
	return f, nil
}

func queryInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, errors.New("must be a positive integer")
	}
	return n, nil
}
