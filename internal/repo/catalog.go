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

type catalogRepo struct {
	base
}

func NewCatalogRepo(db *sqlx.DB) *catalogRepo {
	return &catalogRepo{base: newBase(db)}
}

func (r *catalogRepo) ProductExists(ctx context.Context, id int64) (bool, error) {
	ok, err := r.exists(ctx, "products", id)
	if err != nil {
		return false, fmt.Errorf("failed to check product: %w", err)
	}
	return ok, nil
}

func (r *catalogRepo) GetProduct(ctx context.Context, id int64) (entities.Product, error) {
	query, args := r.qb.Select("id", "name", "price", "stock_quantity").
		From("products").
		Where(sq.Eq{"id": id}).
		MustSql()

	var product Product
	err := r.getContext(ctx, &product, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return ProductToEntity(product), nil
}

// GetStock reads the stock row with FOR UPDATE. Inside a transaction the
// row stays locked until commit.
func (r *catalogRepo) GetStock(ctx context.Context, id int64) (int, error) {
	query, args := r.stockQuery(id).MustSql()

	var stock int
	err := r.getContext(ctx, &stock, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, entities.ErrProductNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get stock: %w", err)
	}
	return stock, nil
}

// DecrementStock never lets stock go below zero.
func (r *catalogRepo) DecrementStock(ctx context.Context, id int64, amount int) error {
	query, args := r.decrementStockQuery(id, amount).MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if n > 0 {
		return nil
	}

	ok, err := r.ProductExists(ctx, id)
	if err != nil {
		return err
	}
	return decrementMiss(id, ok)
}

func (r base) stockQuery(id int64) sq.SelectBuilder {
	return r.qb.Select("stock_quantity").
		From("products").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE")
}

func (r base) decrementStockQuery(id int64, amount int) sq.UpdateBuilder {
	return r.qb.Update("products").
		Set("stock_quantity", sq.Expr("stock_quantity - ?", amount)).
		Where(sq.Eq{"id": id}).
		Where(sq.GtOrEq{"stock_quantity": amount})
}

// decrementMiss explains a decrement that matched no row.
func decrementMiss(id int64, exists bool) error {
	if !exists {
		return entities.ErrProductNotFound
	}
	return entities.Wrap(entities.ErrInsufficientStock, "product %d", id)
}
