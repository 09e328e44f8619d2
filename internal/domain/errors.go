package domain

import (
	"errors"
)

// Sentinel errors for the service error taxonomy - use with errors.Is().
// Repositories, the catalog, and the gateway wrap these so handlers can map
// failures to HTTP status codes without knowing about storage or gateway
// internals.
var (
	// ErrValidation indicates a missing or malformed required input field
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an unknown chat id or client name
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a data-integrity failure, e.g. the catalog
	// contains more than one client with the same display name
	ErrConflict = errors.New("conflict")

	// ErrGateway indicates the completion backend was unreachable, returned
	// unusable data, or has no configured credential
	ErrGateway = errors.New("completion gateway failed")

	// ErrStorage indicates the durable store is unavailable or corrupted
	ErrStorage = errors.New("storage unavailable")
)
