package model

import "accounts/internal/model/sql"

// Typed store errors. Implementations translate engine-specific signals
// into these so callers never match on driver error values.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = sql.ErrNotFound

	// ErrDuplicateKey is returned when an insert violates a unique
	// constraint (email, activation key).
	ErrDuplicateKey = sql.ErrDuplicateKey
)
