// Package apperr defines the sentinel errors the domain services raise.
// The response package translates them to HTTP statuses at the boundary.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks an unknown event or membership.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an ownership or role authorization failure.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict marks a duplicate membership or owner-as-member attempt.
	ErrConflict = errors.New("conflict")
	// ErrValidation marks a malformed request or domain invariant violation.
	ErrValidation = errors.New("validation failed")
	// ErrUpstream marks an identity-service network or 5xx failure.
	ErrUpstream = errors.New("upstream unavailable")
)

// NotFound wraps ErrNotFound with a formatted message.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Forbidden wraps ErrForbidden with a formatted message.
func Forbidden(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrForbidden)
}

// Conflict wraps ErrConflict with a formatted message.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

// Validation wraps ErrValidation with a formatted message.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// Upstream wraps ErrUpstream with a formatted message.
func Upstream(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUpstream)
}
