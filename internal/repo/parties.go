package repo

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type customerRepo struct {
	base
}

func NewCustomerRepo(db *sqlx.DB) *customerRepo {
	return &customerRepo{base: newBase(db)}
}

func (r *customerRepo) CustomerExists(ctx context.Context, id int64) (bool, error) {
	ok, err := r.exists(ctx, "customers", id)
	if err != nil {
		return false, fmt.Errorf("failed to check customer: %w", err)
	}
	return ok, nil
}

func (r *customerRepo) GetCustomers(ctx context.Context, ids ...int64) ([]entities.Customer, error) {
	if len(ids) == 0 {
		return []entities.Customer{}, nil
	}

	query, args := r.qb.Select("id", "name", "tax_id").
		From("customers").
		Where(sq.Eq{"id": ids}).
		MustSql()

	var customers []Customer
	if err := r.selectContext(ctx, &customers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select customers: %w", err)
	}

	result := make([]entities.Customer, 0, len(customers))
	for _, c := range customers {
		result = append(result, CustomerToEntity(c))
	}
	return result, nil
}

// UpsertExpiry keeps one row per (customer, product); the latest write wins.
func (r *customerRepo) UpsertExpiry(ctx context.Context, e entities.CustomerProductExpiry) error {
	query, args := r.upsertExpiryQuery(e).MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert expiry: %w", mapFKViolation(err))
	}
	return nil
}

func (r base) upsertExpiryQuery(e entities.CustomerProductExpiry) sq.InsertBuilder {
	return r.qb.Insert("customer_product_expiry").
		Columns("customer_id", "product_id", "expiry_date", "quantity", "observation", "updated_at").
		Values(e.CustomerID, e.ProductID, e.ExpiryDate, nullInt32(e.Quantity), nullString(e.Observation), e.UpdatedAt).
		Suffix(`ON CONFLICT (customer_id, product_id) DO UPDATE SET
			expiry_date = EXCLUDED.expiry_date,
			quantity = EXCLUDED.quantity,
			observation = EXCLUDED.observation,
			updated_at = EXCLUDED.updated_at`)
}

type userRepo struct {
	base
}

func NewUserRepo(db *sqlx.DB) *userRepo {
	return &userRepo{base: newBase(db)}
}

func (r *userRepo) UserExists(ctx context.Context, id int64) (bool, error) {
	ok, err := r.exists(ctx, "users", id)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return ok, nil
}

func (r *userRepo) GetUsers(ctx context.Context, ids ...int64) ([]entities.User, error) {
	if len(ids) == 0 {
		return []entities.User{}, nil
	}

	query, args := r.qb.Select("id", "name", "role").
		From("users").
		Where(sq.Eq{"id": ids}).
		MustSql()

	var users []User
	if err := r.selectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}

	result := make([]entities.User, 0, len(users))
	for _, u := range users {
		result = append(result, UserToEntity(u))
	}
	return result, nil
}
