package entities

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services unwraps to one of them.
var (
	ErrNotFound          = errors.New("not found")
	ErrReferenceNotFound = errors.New("reference not found")
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidReference  = errors.New("invalid reference")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation error")
)

var (
	ErrOrderNotFound    = NewError(ErrNotFound, "order not found")
	ErrItemNotFound     = NewError(ErrNotFound, "order item not found")
	ErrDeliveryNotFound = NewError(ErrNotFound, "delivery not found")

	ErrCustomerNotFound    = NewError(ErrReferenceNotFound, "customer not found")
	ErrSalespersonNotFound = NewError(ErrReferenceNotFound, "salesperson not found")
	ErrDriverNotFound      = NewError(ErrReferenceNotFound, "driver not found")
	ErrProductNotFound     = NewError(ErrReferenceNotFound, "product not found")

	ErrOrderNotOpen      = NewError(ErrInvalidState, "order is not open")
	ErrOrderDelivered    = NewError(ErrInvalidState, "order already delivered")
	ErrOrderCancelled    = NewError(ErrInvalidState, "order is cancelled")
	ErrOrderNotPaid      = NewError(ErrInvalidState, "order is not paid")
	ErrOrderHasNoItems   = NewError(ErrInvalidState, "order has no items")
	ErrDeliveryCompleted = NewError(ErrInvalidState, "delivery already completed")
	ErrItemNotInOrder    = NewError(ErrInvalidReference, "item does not belong to order")
	ErrInsufficientStock = NewError(ErrConflict, "insufficient stock")

	ErrNegativeTotal = NewError(ErrValidation, "discount exceeds order total")
)

// Error is a domain error with a human readable message and a kind.
type Error struct {
	kind error
	msg  string
}

func NewError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Errorf builds a domain error of the given kind.
func Errorf(kind error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

// Wrap attaches details to a domain error keeping its identity:
// errors.Is matches both the original error and its kind.
func Wrap(err *Error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
}
