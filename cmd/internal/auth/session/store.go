package session

import (
	"context"
	"time"
)

// Record mirrors a trb.refresh_tokens row.
//
// A rotated record keeps RevokedAt set and ReplacedByID pointing at its
// successor; following ReplacedByID forward and PredecessorOf backward walks
// the whole token family.
type Record struct {
	ID           string
	AccountID    string
	TokenHash    string
	IssuedAt     time.Time
	ExpiresAt    time.Time
	RevokedAt    *time.Time
	ReplacedByID *string
}

// Live reports whether the record can still be rotated: not revoked and not
// replaced. Expiry is checked separately against the caller's clock.
func (r Record) Live() bool {
	return r.RevokedAt == nil && r.ReplacedByID == nil
}

// Store abstracts persistence for refresh-token state.
//
// Rotate is the linchpin: implementations must replace a record only if it is
// still live at the moment of the write, and report ErrRotationConflict
// otherwise. Everything else in the reuse-detection model builds on that
// guarantee.
type Store interface {
	// Insert creates a new record.
	Insert(ctx context.Context, rec Record) error

	// GetByTokenHash loads a record by token hash.
	GetByTokenHash(ctx context.Context, tokenHash string) (Record, error)

	// GetByID loads a record by ID.
	GetByID(ctx context.Context, id string) (Record, error)

	// PredecessorOf loads the record whose ReplacedByID points at id.
	// Returns ErrTokenNotFound for the root of a family.
	PredecessorOf(ctx context.Context, id string) (Record, error)

	// Rotate inserts next and marks the old record as replaced by it, in one
	// atomic step. Returns ErrRotationConflict when the old record is no
	// longer live, leaving next uninserted.
	Rotate(ctx context.Context, now time.Time, oldID string, next Record) error

	// Revoke revokes a single record by ID (idempotent).
	Revoke(ctx context.Context, now time.Time, id string, reason string) error

	// RevokeByTokenHash revokes a single record by token hash (idempotent).
	// Returns ErrTokenNotFound when no record matches.
	RevokeByTokenHash(ctx context.Context, now time.Time, tokenHash string, reason string) error

	// RevokeAllForAccount revokes every record for an account (idempotent).
	RevokeAllForAccount(ctx context.Context, now time.Time, accountID string, reason string) error
}
