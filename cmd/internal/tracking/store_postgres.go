package tracking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"trb/cmd/identity/ids"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PostgresStore implements Store over the trb schema.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed tracking store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func storeErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrConflict
		case pgForeignKeyViolation:
			return ErrInvalidInput
		}
	}
	return err
}

func newID(now time.Time) (string, error) {
	return ids.NewULID(now)
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

// ---- clients ----

const clientColumns = `id, name, address, phone, email, active, created_at, updated_at`

func scanClient(row pgx.Row) (Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Client{}, storeErr(err)
	}
	return c, nil
}

func (s *PostgresStore) CreateClient(ctx context.Context, in CreateClientInput) (Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Client{}, ErrInvalidInput
	}
	now := orNow(in.Now)
	id, err := newID(now)
	if err != nil {
		return Client{}, err
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO trb.clients (id, name, address, phone, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $6)
		RETURNING `+clientColumns+`
	`, id, name, in.Address, in.Phone, in.Email, now)
	return scanClient(row)
}

func (s *PostgresStore) GetClient(ctx context.Context, id string) (Client, error) {
	return scanClient(s.pool.QueryRow(ctx, `
		SELECT `+clientColumns+` FROM trb.clients WHERE id = $1
	`, id))
}

func (s *PostgresStore) ListClients(ctx context.Context, page Page, sort Sort) (ClientPage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+clientColumns+`
		FROM trb.clients
		WHERE active
		ORDER BY `+sort.orderBy()+`
		OFFSET $1 LIMIT $2
	`, page.Offset, page.Limit)
	if err != nil {
		return ClientPage{}, err
	}
	defer rows.Close()

	var out ClientPage
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return ClientPage{}, err
		}
		out.Clients = append(out.Clients, c)
	}
	if err := rows.Err(); err != nil {
		return ClientPage{}, err
	}

	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM trb.clients WHERE active`).Scan(&out.Total); err != nil {
		return ClientPage{}, err
	}
	return out, nil
}

func (s *PostgresStore) UpdateClient(ctx context.Context, id string, in UpdateClientInput) (Client, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE trb.clients
		SET name       = COALESCE($2, name),
		    address    = COALESCE($3, address),
		    phone      = COALESCE($4, phone),
		    email      = COALESCE($5, email),
		    active     = COALESCE($6, active),
		    updated_at = $7
		WHERE id = $1
		RETURNING `+clientColumns+`
	`, id, in.Name, in.Address, in.Phone, in.Email, in.Active, orNow(in.Now))
	return scanClient(row)
}

func (s *PostgresStore) DeactivateClient(ctx context.Context, id string, now time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE trb.clients SET active = FALSE, updated_at = $2 WHERE id = $1
	`, id, orNow(now))
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- projects ----

const projectColumns = `id, client_id, name, description, active, created_at, updated_at`

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.ClientID, &p.Name, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Project{}, storeErr(err)
	}
	return p, nil
}

func (s *PostgresStore) CreateProject(ctx context.Context, in CreateProjectInput) (Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.ClientID == "" {
		return Project{}, ErrInvalidInput
	}
	now := orNow(in.Now)
	id, err := newID(now)
	if err != nil {
		return Project{}, err
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO trb.projects (id, client_id, name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, $5)
		RETURNING `+projectColumns+`
	`, id, in.ClientID, name, in.Description, now)
	return scanProject(row)
}

func (s *PostgresStore) GetProject(ctx context.Context, id string) (Project, error) {
	return scanProject(s.pool.QueryRow(ctx, `
		SELECT `+projectColumns+` FROM trb.projects WHERE id = $1
	`, id))
}

func (s *PostgresStore) ListProjects(ctx context.Context, in ListProjectsInput) (ProjectPage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+projectColumns+`
		FROM trb.projects
		WHERE ($1::text IS NULL OR client_id = $1)
		  AND ($2::boolean IS NULL OR active = $2)
		ORDER BY `+in.Sort.orderBy()+`
		OFFSET $3 LIMIT $4
	`, in.ClientID, in.Active, in.Page.Offset, in.Page.Limit)
	if err != nil {
		return ProjectPage{}, err
	}
	defer rows.Close()

	var out ProjectPage
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return ProjectPage{}, err
		}
		out.Projects = append(out.Projects, p)
	}
	if err := rows.Err(); err != nil {
		return ProjectPage{}, err
	}

	err = s.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM trb.projects
		WHERE ($1::text IS NULL OR client_id = $1)
		  AND ($2::boolean IS NULL OR active = $2)
	`, in.ClientID, in.Active).Scan(&out.Total)
	if err != nil {
		return ProjectPage{}, err
	}
	return out, nil
}

func (s *PostgresStore) UpdateProject(ctx context.Context, id string, in UpdateProjectInput) (Project, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE trb.projects
		SET client_id   = COALESCE($2, client_id),
		    name        = COALESCE($3, name),
		    description = COALESCE($4, description),
		    active      = COALESCE($5, active),
		    updated_at  = $6
		WHERE id = $1
		RETURNING `+projectColumns+`
	`, id, in.ClientID, in.Name, in.Description, in.Active, orNow(in.Now))
	return scanProject(row)
}

func (s *PostgresStore) DeactivateProject(ctx context.Context, id string, now time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE trb.projects SET active = FALSE, updated_at = $2 WHERE id = $1
	`, id, orNow(now))
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
