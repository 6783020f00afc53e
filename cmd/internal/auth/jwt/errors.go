package jwt

import "errors"

var (
	// ErrConfig indicates invalid or missing token configuration.
	ErrConfig = errors.New("jwt: invalid config")

	// ErrInvalidToken covers every verification failure: bad signature,
	// malformed token, wrong issuer, expired, not yet valid. Callers must
	// not distinguish the cases toward clients.
	ErrInvalidToken = errors.New("jwt: invalid token")
)
