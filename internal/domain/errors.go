package domain

import (
	"errors"
	"fmt"
)

// Domain errors. Use cases return these (possibly wrapped); the HTTP layer
// maps them to status codes with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidTenant      = errors.New("invalid or missing tenant")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	ErrNotFound         = errors.New("resource not found")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrRoleNotFound     = errors.New("role not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrDuplicate = errors.New("duplicate resource")
	ErrConflict  = errors.New("conflict with current state")
	// ErrInUse the row is still referenced (restrict-on-delete).
	ErrInUse = errors.New("resource still referenced")
)

// Reference reports a missing record that the request refers to (the customer
// of a new invoice, the role of a user) as invalid input. errors.Is still
// matches the original not-found error.
func Reference(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
