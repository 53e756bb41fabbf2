package errors

import "errors"

// This package defines the centralized set of sentinel errors for the
// application. Services return these (wrapped with context via fmt.Errorf and
// %w) without knowing anything about HTTP; the API layer checks them with
// errors.Is and maps each one to a status code.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client-provided input failed validation.
	// Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation conflicts with existing state,
	// e.g. registering an email that is already taken.
	// Mapped to 409 Conflict.
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized signifies missing or invalid credentials.
	// Mapped to 401 Unauthorized.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPermission signifies that the authenticated user may not act on the
	// requested resource (e.g. someone else's conversation).
	// Mapped to 403 Forbidden.
	ErrPermission = errors.New("permission denied")

	// ErrBadGateway signifies that an upstream AI provider call failed or
	// returned an unusable response.
	// Mapped to 502 Bad Gateway.
	ErrBadGateway = errors.New("upstream provider failure")

	// ErrInternal signifies an unexpected server-side error. The generic
	// message prevents leaking implementation details to the client.
	// Mapped to 500 Internal Server Error.
	ErrInternal = errors.New("internal server error")
)
