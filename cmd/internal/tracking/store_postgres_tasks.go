package tracking

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ---- tasks ----

const taskColumns = `id, project_id, name, description, active, created_at, updated_at`

func scanTask(row pgx.Row) (Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.ProjectID, &t.Name, &t.Description, &t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return Task{}, storeErr(err)
	}
	return t, nil
}

func (s *PostgresStore) CreateTask(ctx context.Context, in CreateTaskInput) (Task, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.ProjectID == "" {
		return Task{}, ErrInvalidInput
	}
	now := orNow(in.Now)
	id, err := newID(now)
	if err != nil {
		return Task{}, err
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO trb.tasks (id, project_id, name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, $5)
		RETURNING `+taskColumns+`
	`, id, in.ProjectID, name, in.Description, now)
	return scanTask(row)
}

func (s *PostgresStore) GetTask(ctx context.Context, id string) (Task, error) {
	return scanTask(s.pool.QueryRow(ctx, `
		SELECT `+taskColumns+` FROM trb.tasks WHERE id = $1
	`, id))
}

func (s *PostgresStore) ListTasksByProject(ctx context.Context, projectID string) ([]Task, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM trb.tasks
		WHERE project_id = $1
		ORDER BY created_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *PostgresStore) ListAllTasks(ctx context.Context, page Page) ([]Task, int, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM trb.tasks
		ORDER BY created_at
		OFFSET $1 LIMIT $2
	`, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM trb.tasks`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (s *PostgresStore) UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (Task, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE trb.tasks
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    active      = COALESCE($4, active),
		    updated_at  = $5
		WHERE id = $1
		RETURNING `+taskColumns+`
	`, id, in.Name, in.Description, in.Active, orNow(in.Now))
	return scanTask(row)
}

func (s *PostgresStore) DeleteTask(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM trb.tasks WHERE id = $1`, id)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- assignments ----

const assignmentColumns = `id, project_id, professional_id, task_id, created_at`

func scanAssignment(row pgx.Row) (Assignment, error) {
	var a Assignment
	err := row.Scan(&a.ID, &a.ProjectID, &a.ProfessionalID, &a.TaskID, &a.CreatedAt)
	if err != nil {
		return Assignment{}, storeErr(err)
	}
	return a, nil
}

func (s *PostgresStore) CreateAssignment(ctx context.Context, in CreateAssignmentInput) (Assignment, error) {
	if in.ProjectID == "" || in.ProfessionalID == "" {
		return Assignment{}, ErrInvalidInput
	}
	now := orNow(in.Now)
	id, err := newID(now)
	if err != nil {
		return Assignment{}, err
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO trb.project_assignments (id, project_id, professional_id, task_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+assignmentColumns+`
	`, id, in.ProjectID, in.ProfessionalID, in.TaskID, now)
	return scanAssignment(row)
}

func (s *PostgresStore) DeleteAssignment(ctx context.Context, projectID, assignmentID string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM trb.project_assignments WHERE id = $1 AND project_id = $2
	`, assignmentID, projectID)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListAssignmentsByProject(ctx context.Context, projectID string) ([]Assignment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+assignmentColumns+`
		FROM trb.project_assignments
		WHERE project_id = $1
		ORDER BY created_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) IsAssigned(ctx context.Context, professionalID, projectID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM trb.project_assignments
			WHERE professional_id = $1 AND project_id = $2
		)
	`, professionalID, projectID).Scan(&exists)
	return exists, err
}
