package services

import "errors"

// Service-level error taxonomy, translated to HTTP statuses at the handlers.
// Ownership failures surface as ErrNotFound rather than ErrForbidden so that
// non-owners cannot confirm a resource exists.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrPaymentRequired = errors.New("payment required")
	ErrInvalid         = errors.New("invalid input")
	ErrUpstream        = errors.New("AI provider unavailable")
)
