// Package common defines shared constants and sentinel errors used across
// the repository, service and HTTP layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Token failures. The access gate treats all of them the same way.
	ErrEmptyToken     = errors.New("empty token")
	ErrExpiredToken   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
)

// IsTokenFailure reports whether err is one of the recognised token
// validation failures.
func IsTokenFailure(err error) bool {
	return errors.Is(err, ErrEmptyToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrMalformedToken)
}
