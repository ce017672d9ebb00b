package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer, User and Product are owned by their collaborators; the ledger
// only reads them (and decrements product stock).

type Customer struct {
	ID    int64
	Name  string
	TaxID string
}

type User struct {
	ID   int64
	Name string
	Role Role
}

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleStaff  Role = "STAFF"
	RoleDriver Role = "DRIVER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff || r == RoleDriver
}

type Product struct {
	ID            int64
	Name          string
	Price         decimal.Decimal
	StockQuantity int
}

// CustomerProductExpiry is keyed by (CustomerID, ProductID), latest write wins.
type CustomerProductExpiry struct {
	CustomerID  int64
	ProductID   int64
	ExpiryDate  time.Time
	Quantity    *int
	Observation *string
	UpdatedAt   time.Time
}
