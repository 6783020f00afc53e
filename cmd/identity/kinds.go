package identity

import "errors"

// Sentinel error kinds (stable for errors.Is and for mapping to API status codes).
var (
	ErrInvalidInput = errors.New("invalid_input")
	ErrNotFound     = errors.New("not_found")
	ErrConflict     = errors.New("conflict")

	// ErrInvalidCredentials covers unknown email, wrong password, and inactive
	// account alike. The three cases are deliberately indistinguishable to the
	// caller to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid_credentials")
)
