package tracking

import (
	"context"
	"time"
)

// Page bounds a listing.
type Page struct {
	Offset int
	Limit  int
}

// Sort is a whitelisted sort column plus direction.
type Sort struct {
	Field string
	Desc  bool
}

type CreateClientInput struct {
	Name    string
	Address *string
	Phone   *string
	Email   *string
	Now     time.Time
}

type UpdateClientInput struct {
	Name    *string
	Address *string
	Phone   *string
	Email   *string
	Active  *bool
	Now     time.Time
}

type ClientPage struct {
	Clients []Client
	Total   int
}

type CreateProjectInput struct {
	ClientID    string
	Name        string
	Description *string
	Now         time.Time
}

type UpdateProjectInput struct {
	ClientID    *string
	Name        *string
	Description *string
	Active      *bool
	Now         time.Time
}

type ListProjectsInput struct {
	Page     Page
	Sort     Sort
	ClientID *string
	Active   *bool
}

type ProjectPage struct {
	Projects []Project
	Total    int
}

type CreateTaskInput struct {
	ProjectID   string
	Name        string
	Description *string
	Now         time.Time
}

type UpdateTaskInput struct {
	Name        *string
	Description *string
	Active      *bool
	Now         time.Time
}

type CreateAssignmentInput struct {
	ProjectID      string
	ProfessionalID string
	TaskID         *string
	Now            time.Time
}

type CreateHourInput struct {
	ProfessionalID string
	Date           time.Time
	Hours          int
	Minutes        int
	ClientID       *string
	ProjectID      *string
	TaskID         *string
	Description    *string
	Now            time.Time
}

type UpdateHourInput struct {
	Date        *time.Time
	Hours       *int
	Minutes     *int
	ClientID    *string
	ProjectID   *string
	TaskID      *string
	Description *string
	Now         time.Time
}

// ListHoursInput narrows a listing to what the caller may see.
// ProfessionalID restricts to entries owned by that professional;
// AssignedToProfessionalID restricts to entries on projects that professional
// is assigned to. Both nil means unrestricted (admin).
type ListHoursInput struct {
	Page Page
	Sort Sort

	ProfessionalID           *string
	AssignedToProfessionalID *string
	ProjectID                *string
	From                     *time.Time
	To                       *time.Time
}

type HourPage struct {
	Hours []Hour
	Total int
}

// Store abstracts persistence for the tracking domain.
type Store interface {
	CreateClient(ctx context.Context, in CreateClientInput) (Client, error)
	GetClient(ctx context.Context, id string) (Client, error)
	ListClients(ctx context.Context, page Page, sort Sort) (ClientPage, error)
	UpdateClient(ctx context.Context, id string, in UpdateClientInput) (Client, error)
	DeactivateClient(ctx context.Context, id string, now time.Time) error

	CreateProject(ctx context.Context, in CreateProjectInput) (Project, error)
	GetProject(ctx context.Context, id string) (Project, error)
	ListProjects(ctx context.Context, in ListProjectsInput) (ProjectPage, error)
	UpdateProject(ctx context.Context, id string, in UpdateProjectInput) (Project, error)
	DeactivateProject(ctx context.Context, id string, now time.Time) error

	CreateTask(ctx context.Context, in CreateTaskInput) (Task, error)
	GetTask(ctx context.Context, id string) (Task, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]Task, error)
	ListAllTasks(ctx context.Context, page Page) ([]Task, int, error)
	UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (Task, error)
	DeleteTask(ctx context.Context, id string) error

	CreateAssignment(ctx context.Context, in CreateAssignmentInput) (Assignment, error)
	DeleteAssignment(ctx context.Context, projectID, assignmentID string) error
	ListAssignmentsByProject(ctx context.Context, projectID string) ([]Assignment, error)
	IsAssigned(ctx context.Context, professionalID, projectID string) (bool, error)

	CreateHour(ctx context.Context, in CreateHourInput) (Hour, error)
	GetHour(ctx context.Context, id string) (Hour, error)
	ListHours(ctx context.Context, in ListHoursInput) (HourPage, error)
	UpdateHour(ctx context.Context, id string, in UpdateHourInput) (Hour, error)
	DeleteHour(ctx context.Context, id string) error
}
