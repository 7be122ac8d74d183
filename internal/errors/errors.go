package errors

import "errors"

// Centralized sentinel errors for the application. Services return these
// (possibly wrapped) instead of HTTP status codes; the API layer maps them
// with errors.Is in one place.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client input failed validation.
	// Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrBusy signifies that a thread already has a completion in flight and
	// cannot accept another send. Mapped to 409 Conflict.
	ErrBusy = errors.New("completion already in flight")

	// ErrUpstream signifies that the completion upstream failed or returned
	// a malformed response. Mapped to 502 Bad Gateway.
	ErrUpstream = errors.New("upstream completion failed")

	// ErrInternal signifies an unexpected server-side failure. The original
	// cause is logged; clients get a generic message. Mapped to 500.
	ErrInternal = errors.New("internal server error")
)
