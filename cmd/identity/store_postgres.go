package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"trb/cmd/identity/ids"
)

const pgUniqueViolation = "23505"

// PostgresStore implements Store over trb.accounts / trb.professionals.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed account store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("identity: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

const accountColumns = `
	a.id, a.email, a.password_hash, a.role, a.active,
	p.id, a.created_at, a.updated_at
`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	var role string
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&role,
		&a.Active,
		&a.ProfessionalID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return Account{}, err
	}
	a.Role = Role(role)
	return a, nil
}

// GetAccountByEmail loads an account by normalized email.
func (s *PostgresStore) GetAccountByEmail(ctx context.Context, email string) (Account, error) {
	a, err := scanAccount(s.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM trb.accounts a
		LEFT JOIN trb.professionals p ON p.account_id = a.id
		WHERE a.email = $1
	`, NormalizeEmail(email)))
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, OpError{Op: "identity.GetAccountByEmail", Kind: ErrNotFound}
	}
	if err != nil {
		return Account{}, err
	}
	return a, nil
}

// GetAccountByID loads an account by id.
func (s *PostgresStore) GetAccountByID(ctx context.Context, id string) (Account, error) {
	a, err := scanAccount(s.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM trb.accounts a
		LEFT JOIN trb.professionals p ON p.account_id = a.id
		WHERE a.id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, OpError{Op: "identity.GetAccountByID", Kind: ErrNotFound}
	}
	if err != nil {
		return Account{}, err
	}
	return a, nil
}

// CreateAccount inserts an account and its professional profile in one
// transaction. A duplicate email surfaces as ConflictError.
func (s *PostgresStore) CreateAccount(ctx context.Context, in CreateAccountInput) (Account, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.FirstName == "" || in.LastName == "" {
		return Account{}, OpError{Op: "identity.CreateAccount", Kind: ErrInvalidInput}
	}
	if _, ok := ParseRole(string(in.Role)); !ok {
		return Account{}, OpError{Op: "identity.CreateAccount", Kind: ErrInvalidInput, Msg: "unknown role"}
	}

	hash, err := HashPassword(in.Password, DefaultBcryptCost)
	if err != nil {
		return Account{}, OpError{Op: "identity.CreateAccount", Kind: ErrInvalidInput, Msg: err.Error()}
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	accountID, err := ids.NewULID(now)
	if err != nil {
		return Account{}, err
	}
	professionalID, err := ids.NewULID(now)
	if err != nil {
		return Account{}, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Account{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO trb.accounts (id, email, password_hash, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`, accountID, email, hash, string(in.Role), in.Active, now)
	if err != nil {
		if isUniqueViolation(err) {
			return Account{}, ConflictError{Op: "identity.CreateAccount", Field: "email"}
		}
		return Account{}, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO trb.professionals (id, account_id, first_name, last_name, phone, address, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $7)
	`, professionalID, accountID, in.FirstName, in.LastName, in.Phone, in.Address, now)
	if err != nil {
		return Account{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Account{}, err
	}

	return Account{
		ID:             accountID,
		Email:          email,
		PasswordHash:   hash,
		Role:           in.Role,
		Active:         in.Active,
		ProfessionalID: &professionalID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// UpdateAccount applies the non-nil fields and returns the updated account.
func (s *PostgresStore) UpdateAccount(ctx context.Context, id string, in UpdateAccountInput) (Account, error) {
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if in.Role != nil {
		if _, ok := ParseRole(string(*in.Role)); !ok {
			return Account{}, OpError{Op: "identity.UpdateAccount", Kind: ErrInvalidInput, Msg: "unknown role"}
		}
	}
	var email *string
	if in.Email != nil {
		e := NormalizeEmail(*in.Email)
		if e == "" {
			return Account{}, OpError{Op: "identity.UpdateAccount", Kind: ErrInvalidInput, Msg: "empty email"}
		}
		email = &e
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Account{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE trb.accounts
		SET email      = COALESCE($2, email),
		    role       = COALESCE($3, role),
		    active     = COALESCE($4, active),
		    updated_at = $5
		WHERE id = $1
	`, id, email, roleOrNil(in.Role), in.Active, now)
	if err != nil {
		if isUniqueViolation(err) {
			return Account{}, ConflictError{Op: "identity.UpdateAccount", Field: "email"}
		}
		return Account{}, err
	}
	if tag.RowsAffected() == 0 {
		return Account{}, OpError{Op: "identity.UpdateAccount", Kind: ErrNotFound}
	}

	if in.FirstName != nil || in.LastName != nil || in.Phone != nil || in.Address != nil {
		_, err = tx.Exec(ctx, `
			UPDATE trb.professionals
			SET first_name = COALESCE($2, first_name),
			    last_name  = COALESCE($3, last_name),
			    phone      = COALESCE($4, phone),
			    address    = COALESCE($5, address),
			    updated_at = $6
			WHERE account_id = $1
		`, id, in.FirstName, in.LastName, in.Phone, in.Address, now)
		if err != nil {
			return Account{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Account{}, err
	}

	return s.GetAccountByID(ctx, id)
}

// ListAccounts returns a page of accounts, active only unless asked otherwise.
func (s *PostgresStore) ListAccounts(ctx context.Context, in ListAccountsInput) (AccountPage, error) {
	where := `WHERE a.active`
	if in.IncludeInactive {
		where = ``
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM trb.accounts a
		LEFT JOIN trb.professionals p ON p.account_id = a.id
		`+where+`
		ORDER BY a.created_at DESC
		OFFSET $1 LIMIT $2
	`, in.Offset, in.Limit)
	if err != nil {
		return AccountPage{}, err
	}
	defer rows.Close()

	var page AccountPage
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return AccountPage{}, err
		}
		page.Accounts = append(page.Accounts, a)
	}
	if err := rows.Err(); err != nil {
		return AccountPage{}, err
	}

	err = s.pool.QueryRow(ctx, `SELECT count(*) FROM trb.accounts a `+where).Scan(&page.Total)
	if err != nil {
		return AccountPage{}, err
	}
	return page, nil
}

// DeactivateAccount clears the active flag (idempotent).
func (s *PostgresStore) DeactivateAccount(ctx context.Context, id string, now time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE trb.accounts
		SET active = FALSE, updated_at = $2
		WHERE id = $1
	`, id, now)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return OpError{Op: "identity.DeactivateAccount", Kind: ErrNotFound}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func roleOrNil(r *Role) *string {
	if r == nil {
		return nil
	}
	s := string(*r)
	return &s
}
