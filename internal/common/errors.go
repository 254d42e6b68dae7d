// Package common defines shared constants and sentinel errors used across
// client and server layers of Unbox. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Creation-time validation failures. Wrapped errors carry the field name,
	// e.g. fmt.Errorf("%w: sender name must not be empty", common.ErrValidation).
	ErrValidation = errors.New("validation error")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
