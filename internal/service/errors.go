package service

import "errors"

// Core error kinds. All are terminal from the caller's perspective; the
// HTTP layer maps them to status codes.
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrOrderNotFound      = errors.New("order not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrUserNotFound       = errors.New("user not found")

	ErrEmptyOrder           = errors.New("no items provided")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrUnknownStatus        = errors.New("unknown status value")
	ErrIllegalTransition    = errors.New("illegal status transition")
	ErrInvalidDateRange     = errors.New("from date is after to date")
	ErrMissingCredentials   = errors.New("name, email and password are required")

	ErrNotOrderOwner          = errors.New("not authorized for this order")
	ErrRefundAlreadyRequested = errors.New("refund already requested")
	ErrConflict               = errors.New("conflicting concurrent update")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
