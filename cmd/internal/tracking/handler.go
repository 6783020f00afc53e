package tracking

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"trb/cmd/identity"
	authapi "trb/cmd/internal/auth/api"
	"trb/cmd/internal/httpx"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	maxBodyBytes     = 1 << 20
)

// Middleware wraps a handler; the app passes RequireAuth here.
type Middleware = func(http.Handler) http.Handler

// Handler serves the tracking endpoints.
type Handler struct {
	log   *slog.Logger
	store Store
}

// NewHandler constructs a tracking Handler.
func NewHandler(log *slog.Logger, store Store) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{log: log, store: store}
}

// Register mounts the tracking routes. Clients, projects, tasks and
// assignments are staff-only; hours are open to every role and scoped
// per caller inside the handlers.
func (h *Handler) Register(mux *http.ServeMux, auth Middleware) {
	if h == nil || mux == nil {
		return
	}
	if auth == nil {
		auth = func(next http.Handler) http.Handler { return next }
	}

	staff := authapi.RequireRoles(identity.RoleAdmin, identity.RoleSupervisor)
	anyRole := authapi.RequireRoles(identity.RoleUser, identity.RoleSupervisor, identity.RoleAdmin)

	route := func(pattern string, guard Middleware, fn http.HandlerFunc) {
		mux.Handle(pattern, auth(guard(fn)))
	}

	route("POST /api/clients", staff, h.createClient)
	route("GET /api/clients", staff, h.listClients)
	route("GET /api/clients/{id}", staff, h.getClient)
	route("PUT /api/clients/{id}", staff, h.updateClient)
	route("DELETE /api/clients/{id}", staff, h.deactivateClient)

	route("POST /api/projects", staff, h.createProject)
	route("GET /api/projects", staff, h.listProjects)
	route("GET /api/projects/{id}", staff, h.getProject)
	route("PUT /api/projects/{id}", staff, h.updateProject)
	route("DELETE /api/projects/{id}", staff, h.deactivateProject)

	route("POST /api/projects/{projectID}/tasks", staff, h.createTask)
	route("GET /api/projects/{projectID}/tasks", staff, h.listProjectTasks)
	route("GET /api/tasks", staff, h.listAllTasks)
	route("GET /api/tasks/{id}", staff, h.getTask)
	route("PUT /api/tasks/{id}", staff, h.updateTask)
	route("DELETE /api/tasks/{id}", staff, h.deleteTask)

	route("POST /api/projects/{projectID}/assignments", staff, h.createAssignment)
	route("GET /api/projects/{projectID}/assignments", staff, h.listAssignments)
	route("DELETE /api/projects/{projectID}/assignments/{id}", staff, h.deleteAssignment)

	route("POST /api/hours", anyRole, h.createHour)
	route("GET /api/hours", anyRole, h.listHours)
	route("GET /api/hours/{id}", anyRole, h.getHour)
	route("PUT /api/hours/{id}", anyRole, h.updateHour)
	route("DELETE /api/hours/{id}", anyRole, h.deleteHour)
}

// caller is the authenticated identity attached by RequireAuth.
type caller struct {
	AccountID      string
	Role           identity.Role
	ProfessionalID *string
}

func callerFrom(r *http.Request) (caller, bool) {
	claims, ok := authapi.ClaimsFromContext(r.Context())
	if !ok {
		return caller{}, false
	}
	role, ok := identity.ParseRole(claims.Role)
	if !ok {
		return caller{}, false
	}
	return caller{
		AccountID:      claims.Subject,
		Role:           role,
		ProfessionalID: claims.ProfessionalID,
	}, true
}

func (h *Handler) writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, ErrConflict):
		httpx.WriteError(w, http.StatusConflict, "conflict", "resource already exists")
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid input")
	default:
		h.log.Error(op+".fail", "err", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, "server_busy", "please retry later")
	}
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
