package tracking

import "time"

type clientRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Active  *bool   `json:"active"`
}

type clientView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type projectRequest struct {
	ClientID    *string `json:"client_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type projectView struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type taskRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type taskView struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type assignmentRequest struct {
	ProfessionalID string  `json:"professional_id"`
	TaskID         *string `json:"task_id"`
}

type assignmentView struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	ProfessionalID string    `json:"professional_id"`
	TaskID         *string   `json:"task_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type hourRequest struct {
	Date        *string `json:"date"`
	Hours       *int    `json:"hours"`
	Minutes     *int    `json:"minutes"`
	ClientID    *string `json:"client_id"`
	ProjectID   *string `json:"project_id"`
	TaskID      *string `json:"task_id"`
	Description *string `json:"description"`
}

type hourView struct {
	ID             string    `json:"id"`
	ProfessionalID string    `json:"professional_id"`
	Date           time.Time `json:"date"`
	Hours          int       `json:"hours"`
	Minutes        int       `json:"minutes"`
	ClientID       *string   `json:"client_id,omitempty"`
	ProjectID      *string   `json:"project_id,omitempty"`
	TaskID         *string   `json:"task_id,omitempty"`
	Description    *string   `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type pageMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type listResponse[T any] struct {
	Data []T      `json:"data"`
	Page pageMeta `json:"pagination"`
}

func toClientView(c Client) clientView {
	return clientView{
		ID: c.ID, Name: c.Name, Address: c.Address, Phone: c.Phone, Email: c.Email,
		Active: c.Active, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func toProjectView(p Project) projectView {
	return projectView{
		ID: p.ID, ClientID: p.ClientID, Name: p.Name, Description: p.Description,
		Active: p.Active, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func toTaskView(t Task) taskView {
	return taskView{
		ID: t.ID, ProjectID: t.ProjectID, Name: t.Name, Description: t.Description,
		Active: t.Active, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

func toAssignmentView(a Assignment) assignmentView {
	return assignmentView{
		ID: a.ID, ProjectID: a.ProjectID, ProfessionalID: a.ProfessionalID,
		TaskID: a.TaskID, CreatedAt: a.CreatedAt,
	}
}

func toHourView(h Hour) hourView {
	return hourView{
		ID: h.ID, ProfessionalID: h.ProfessionalID, Date: h.Date,
		Hours: h.Hours, Minutes: h.Minutes,
		ClientID: h.ClientID, ProjectID: h.ProjectID, TaskID: h.TaskID,
		Description: h.Description, CreatedAt: h.CreatedAt, UpdatedAt: h.UpdatedAt,
	}
}
