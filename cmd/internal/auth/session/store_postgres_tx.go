package session

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

func insertTx(ctx context.Context, tx pgx.Tx, rec Record) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO trb.refresh_tokens (
			id, account_id, token_hash,
			issued_at, expires_at, revoked_at,
			replaced_by_token_id, revocation_reason
		) VALUES ($1, $2, $3, $4, $5, NULL, NULL, NULL)
	`, rec.ID, rec.AccountID, rec.TokenHash, rec.IssuedAt, rec.ExpiresAt)
	return err
}

// markReplacedTx retires the old record only if it is still live. The WHERE
// clause is the concurrency guard: two racing rotations both reach this
// update, exactly one matches a row.
func markReplacedTx(ctx context.Context, tx pgx.Tx, now time.Time, oldID string, newID string) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE trb.refresh_tokens
		SET revoked_at = $2,
		    replaced_by_token_id = $3,
		    revocation_reason = 'rotation'
		WHERE id = $1
		  AND revoked_at IS NULL
		  AND replaced_by_token_id IS NULL
	`, oldID, now, newID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
