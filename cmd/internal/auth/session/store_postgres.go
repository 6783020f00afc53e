package session

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store using PostgreSQL (trb.refresh_tokens).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed refresh-token store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const recordColumns = `
	id, account_id, token_hash,
	issued_at, expires_at, revoked_at, replaced_by_token_id
`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID,
		&rec.AccountID,
		&rec.TokenHash,
		&rec.IssuedAt,
		&rec.ExpiresAt,
		&rec.RevokedAt,
		&rec.ReplacedByID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrTokenNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Insert creates a new refresh-token record.
func (s *PostgresStore) Insert(ctx context.Context, rec Record) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO trb.refresh_tokens (
			id, account_id, token_hash,
			issued_at, expires_at, revoked_at,
			replaced_by_token_id, revocation_reason
		) VALUES ($1, $2, $3, $4, $5, NULL, NULL, NULL)
	`, rec.ID, rec.AccountID, rec.TokenHash, rec.IssuedAt, rec.ExpiresAt)
	return err
}

// GetByTokenHash loads a record by token hash.
func (s *PostgresStore) GetByTokenHash(ctx context.Context, tokenHash string) (Record, error) {
	return scanRecord(s.pool.QueryRow(ctx, `
		SELECT `+recordColumns+`
		FROM trb.refresh_tokens
		WHERE token_hash = $1
	`, tokenHash))
}

// GetByID loads a record by ID.
func (s *PostgresStore) GetByID(ctx context.Context, id string) (Record, error) {
	return scanRecord(s.pool.QueryRow(ctx, `
		SELECT `+recordColumns+`
		FROM trb.refresh_tokens
		WHERE id = $1
	`, id))
}

// PredecessorOf loads the record that was replaced by id.
func (s *PostgresStore) PredecessorOf(ctx context.Context, id string) (Record, error) {
	return scanRecord(s.pool.QueryRow(ctx, `
		SELECT `+recordColumns+`
		FROM trb.refresh_tokens
		WHERE replaced_by_token_id = $1
	`, id))
}

// Rotate inserts the replacement record and retires the old one in a single
// transaction. The update is conditional on the old record still being live;
// zero rows affected means a concurrent rotation won and nothing is written.
func (s *PostgresStore) Rotate(ctx context.Context, now time.Time, oldID string, next Record) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertTx(ctx, tx, next); err != nil {
		return err
	}

	replaced, err := markReplacedTx(ctx, tx, now, oldID, next.ID)
	if err != nil {
		return err
	}
	if !replaced {
		return ErrRotationConflict
	}

	return tx.Commit(ctx)
}

// Revoke revokes a single record (idempotent).
func (s *PostgresStore) Revoke(ctx context.Context, now time.Time, id string, reason string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE trb.refresh_tokens
		SET revoked_at = COALESCE(revoked_at, $2),
		    revocation_reason = COALESCE(revocation_reason, $3)
		WHERE id = $1
	`, id, now, reason)
	return err
}

// RevokeByTokenHash revokes a single record by token hash (idempotent).
func (s *PostgresStore) RevokeByTokenHash(ctx context.Context, now time.Time, tokenHash string, reason string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE trb.refresh_tokens
		SET revoked_at = COALESCE(revoked_at, $2),
		    revocation_reason = COALESCE(revocation_reason, $3)
		WHERE token_hash = $1
	`, tokenHash, now, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// RevokeAllForAccount revokes every record for an account (idempotent).
func (s *PostgresStore) RevokeAllForAccount(ctx context.Context, now time.Time, accountID string, reason string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE trb.refresh_tokens
		SET revoked_at = COALESCE(revoked_at, $2),
		    revocation_reason = COALESCE(revocation_reason, $3)
		WHERE account_id = $1
	`, accountID, now, reason)
	return err
}
