package tracking

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// ---- hours ----

const hourColumns = `id, professional_id, date, hours, minutes, client_id, project_id, task_id, description, created_at, updated_at`

const hourColumnsAliased = `h.id, h.professional_id, h.date, h.hours, h.minutes, h.client_id, h.project_id, h.task_id, h.description, h.created_at, h.updated_at`

func scanHour(row pgx.Row) (Hour, error) {
	var h Hour
	err := row.Scan(
		&h.ID, &h.ProfessionalID, &h.Date, &h.Hours, &h.Minutes,
		&h.ClientID, &h.ProjectID, &h.TaskID, &h.Description,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return Hour{}, storeErr(err)
	}
	return h, nil
}

func (s *PostgresStore) CreateHour(ctx context.Context, in CreateHourInput) (Hour, error) {
	if in.ProfessionalID == "" || in.Date.IsZero() {
		return Hour{}, ErrInvalidInput
	}
	if in.Hours < 0 || in.Hours > 24 || in.Minutes < 0 || in.Minutes > 59 {
		return Hour{}, ErrInvalidInput
	}
	now := orNow(in.Now)
	id, err := newID(now)
	if err != nil {
		return Hour{}, err
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO trb.hours (
			id, professional_id, date, hours, minutes,
			client_id, project_id, task_id, description,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING `+hourColumns+`
	`, id, in.ProfessionalID, in.Date, in.Hours, in.Minutes,
		in.ClientID, in.ProjectID, in.TaskID, in.Description, now)
	return scanHour(row)
}

func (s *PostgresStore) GetHour(ctx context.Context, id string) (Hour, error) {
	return scanHour(s.pool.QueryRow(ctx, `
		SELECT `+hourColumns+` FROM trb.hours WHERE id = $1
	`, id))
}

// ListHours applies the caller's visibility scope in SQL. The assignment
// scope joins through trb.project_assignments so a supervisor only sees
// entries on projects they are assigned to.
func (s *PostgresStore) ListHours(ctx context.Context, in ListHoursInput) (HourPage, error) {
	where := `
		WHERE ($1::text IS NULL OR h.professional_id = $1)
		  AND ($2::text IS NULL OR h.project_id IN (
			SELECT pa.project_id FROM trb.project_assignments pa
			WHERE pa.professional_id = $2
		  ))
		  AND ($3::text IS NULL OR h.project_id = $3)
		  AND ($4::timestamptz IS NULL OR h.date >= $4)
		  AND ($5::timestamptz IS NULL OR h.date <= $5)
	`
	args := []any{in.ProfessionalID, in.AssignedToProfessionalID, in.ProjectID, in.From, in.To}

	rows, err := s.pool.Query(ctx, `
		SELECT `+hourColumnsAliased+`
		FROM trb.hours h
		`+where+`
		ORDER BY h.`+in.Sort.orderBy()+`
		OFFSET $6 LIMIT $7
	`, append(args, in.Page.Offset, in.Page.Limit)...)
	if err != nil {
		return HourPage{}, err
	}
	defer rows.Close()

	var out HourPage
	for rows.Next() {
		h, err := scanHour(rows)
		if err != nil {
			return HourPage{}, err
		}
		out.Hours = append(out.Hours, h)
	}
	if err := rows.Err(); err != nil {
		return HourPage{}, err
	}

	err = s.pool.QueryRow(ctx, `
		SELECT count(*) FROM trb.hours h `+where, args...).Scan(&out.Total)
	if err != nil {
		return HourPage{}, err
	}
	return out, nil
}

func (s *PostgresStore) UpdateHour(ctx context.Context, id string, in UpdateHourInput) (Hour, error) {
	if in.Hours != nil && (*in.Hours < 0 || *in.Hours > 24) {
		return Hour{}, ErrInvalidInput
	}
	if in.Minutes != nil && (*in.Minutes < 0 || *in.Minutes > 59) {
		return Hour{}, ErrInvalidInput
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE trb.hours
		SET date        = COALESCE($2, date),
		    hours       = COALESCE($3, hours),
		    minutes     = COALESCE($4, minutes),
		    client_id   = COALESCE($5, client_id),
		    project_id  = COALESCE($6, project_id),
		    task_id     = COALESCE($7, task_id),
		    description = COALESCE($8, description),
		    updated_at  = $9
		WHERE id = $1
		RETURNING `+hourColumns+`
	`, id, in.Date, in.Hours, in.Minutes, in.ClientID, in.ProjectID, in.TaskID, in.Description, orNow(in.Now))
	return scanHour(row)
}

func (s *PostgresStore) DeleteHour(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM trb.hours WHERE id = $1`, id)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
