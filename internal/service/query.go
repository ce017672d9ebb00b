package service

import (
	"context"
	"log/slog"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"
)

const defaultPerPage = 20

type queryService struct {
	hydrator
	logger     *slog.Logger
	orders     OrderRepo
	maxPerPage int
}

func NewQueryService(logger *slog.Logger, deps Deps, maxPerPage int) *queryService {
	return &queryService{
		hydrator:   deps.hydrator(),
		logger:     logger.With(slog.String("service", "query")),
		orders:     deps.Orders,
		maxPerPage: maxPerPage,
	}
}

func (s *queryService) GetOrder(ctx context.Context, orderID int64) (entities.Order, error) {
	return s.getOrder(ctx, orderID)
}

// ListOrders returns a page of hydrated orders, newest first.
func (s *queryService) ListOrders(ctx context.Context, f entities.OrderFilter) (entities.OrderPage, error) {
	if f.Page == 0 {
		f.Page = 1
	}
	if f.PerPage == 0 {
		f.PerPage = defaultPerPage
	}
	if f.Page < 1 || f.PerPage < 1 {
		return entities.OrderPage{}, entities.Errorf(entities.ErrValidation, "page and per page must be at least 1")
	}
	if s.maxPerPage > 0 && f.PerPage > s.maxPerPage {
		f.PerPage = s.maxPerPage
	}
	if f.Status != nil && !f.Status.Valid() {
		return entities.OrderPage{}, entities.Errorf(entities.ErrValidation, "unknown status %q", *f.Status)
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return entities.OrderPage{}, entities.Errorf(entities.ErrValidation, "date from is after date to")
	}

	orders, total, err := s.orders.ListOrders(ctx, f)
	if err != nil {
		return entities.OrderPage{}, err
	}
	if err := s.hydrate(ctx, orders); err != nil {
		return entities.OrderPage{}, err
	}

	return entities.OrderPage{
		Page:       f.Page,
		PerPage:    f.PerPage,
		Total:      total,
		TotalPages: (total + f.PerPage - 1) / f.PerPage,
		Data:       orders,
	}, nil
}

// GetReceipt renders the receipt from the current order state on every call.
func (s *queryService) GetReceipt(ctx context.Context, orderID int64) (entities.Receipt, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return entities.Receipt{}, err
	}
	return entities.NewReceipt(order), nil
}
