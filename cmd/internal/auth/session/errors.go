package session

import "errors"

var (
	// ErrTokenInvalid is returned when a refresh token fails signature
	// verification or matches no stored record.
	ErrTokenInvalid = errors.New("refresh token invalid")

	// ErrTokenNotFound is returned by stores when no record matches.
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrTokenExpired is returned when the stored record is past its expiry.
	ErrTokenExpired = errors.New("refresh token expired")

	// ErrTokenRevoked is returned when the record was revoked without a
	// replacement (logout, account deactivation, family revocation).
	ErrTokenRevoked = errors.New("refresh token revoked")

	// ErrTokenReused is returned when an already-rotated token is presented
	// again. By the time the caller sees this error the whole token family
	// has been revoked.
	ErrTokenReused = errors.New("refresh token reuse detected")

	// ErrAccountInactive is returned when the record's account has been
	// deactivated. All tokens for the account are revoked first.
	ErrAccountInactive = errors.New("account inactive")

	// ErrRotationConflict is returned by stores when the conditional rotation
	// update matched no live row, meaning a concurrent rotation won.
	ErrRotationConflict = errors.New("rotation conflict")
)
