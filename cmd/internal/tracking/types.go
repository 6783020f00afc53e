package tracking

import "time"

// Client is a billable customer. Clients are soft-deleted: deactivated
// clients keep their history but drop out of default listings.
type Client struct {
	ID        string
	Name      string
	Address   *string
	Phone     *string
	Email     *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Project belongs to a client. Project names are unique per client.
type Project struct {
	ID          string
	ClientID    string
	Name        string
	Description *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Task is a unit of work inside a project.
type Task struct {
	ID          string
	ProjectID   string
	Name        string
	Description *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Assignment links a professional to a project, optionally pinned to a task.
// The (project, professional, task) triple is unique.
type Assignment struct {
	ID             string
	ProjectID      string
	ProfessionalID string
	TaskID         *string
	CreatedAt      time.Time
}

// Hour is one logged time entry. Client, project and task references are all
// optional; entries are hard-deleted.
type Hour struct {
	ID             string
	ProfessionalID string
	Date           time.Time
	Hours          int
	Minutes        int
	ClientID       *string
	ProjectID      *string
	TaskID         *string
	Description    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
