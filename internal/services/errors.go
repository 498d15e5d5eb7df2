package services

import "errors"

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrOrderNotFound       = errors.New("order not found")
	ErrIdempotencyConflict = errors.New("idempotency key already used by another session")
	ErrEmptyMessage        = errors.New("message is empty")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInboxUnavailable    = errors.New("inbox is unavailable")
)
