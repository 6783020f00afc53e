package tracking

import "errors"

var (
	// ErrInvalidInput marks rejected input (missing name, bad reference).
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a lookup that matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation (duplicate client name,
	// duplicate assignment).
	ErrConflict = errors.New("conflict")
)
