package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	authapi "trb/cmd/internal/auth/api"
	"trb/cmd/internal/auth/jwt"
)

// memoryStore is a Store backed by maps, used by the handler tests.
type memoryStore struct {
	mu          sync.Mutex
	seq         int
	clients     map[string]Client
	projects    map[string]Project
	tasks       map[string]Task
	assignments map[string]Assignment
	hours       map[string]Hour
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		clients:     map[string]Client{},
		projects:    map[string]Project{},
		tasks:       map[string]Task{},
		assignments: map[string]Assignment{},
		hours:       map[string]Hour{},
	}
}

func (m *memoryStore) nextID() string {
	m.seq++
	return fmt.Sprintf("id-%04d", m.seq)
}

func (m *memoryStore) CreateClient(_ context.Context, in CreateClientInput) (Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.clients {
		if c.Name == in.Name {
			return Client{}, ErrConflict
		}
	}
	c := Client{
		ID: m.nextID(), Name: in.Name, Address: in.Address, Phone: in.Phone,
		Email: in.Email, Active: true, CreatedAt: in.Now, UpdatedAt: in.Now,
	}
	m.clients[c.ID] = c
	return c, nil
}

func (m *memoryStore) GetClient(_ context.Context, id string) (Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return Client{}, ErrNotFound
	}
	return c, nil
}

func (m *memoryStore) ListClients(_ context.Context, page Page, _ Sort) (ClientPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out ClientPage
	for _, c := range m.clients {
		if c.Active {
			out.Clients = append(out.Clients, c)
		}
	}
	out.Total = len(out.Clients)
	return out, nil
}

func (m *memoryStore) UpdateClient(_ context.Context, id string, in UpdateClientInput) (Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return Client{}, ErrNotFound
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Address != nil {
		c.Address = in.Address
	}
	if in.Phone != nil {
		c.Phone = in.Phone
	}
	if in.Email != nil {
		c.Email = in.Email
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	c.UpdatedAt = in.Now
	m.clients[id] = c
	return c, nil
}

func (m *memoryStore) DeactivateClient(_ context.Context, id string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return ErrNotFound
	}
	c.Active = false
	c.UpdatedAt = now
	m.clients[id] = c
	return nil
}

func (m *memoryStore) CreateProject(_ context.Context, in CreateProjectInput) (Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[in.ClientID]; !ok {
		return Project{}, ErrInvalidInput
	}
	for _, p := range m.projects {
		if p.ClientID == in.ClientID && p.Name == in.Name {
			return Project{}, ErrConflict
		}
	}
	p := Project{
		ID: m.nextID(), ClientID: in.ClientID, Name: in.Name,
		Description: in.Description, Active: true, CreatedAt: in.Now, UpdatedAt: in.Now,
	}
	m.projects[p.ID] = p
	return p, nil
}

func (m *memoryStore) GetProject(_ context.Context, id string) (Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return Project{}, ErrNotFound
	}
	return p, nil
}

func (m *memoryStore) ListProjects(_ context.Context, in ListProjectsInput) (ProjectPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out ProjectPage
	for _, p := range m.projects {
		if in.ClientID != nil && p.ClientID != *in.ClientID {
			continue
		}
		if in.Active != nil && p.Active != *in.Active {
			continue
		}
		out.Projects = append(out.Projects, p)
	}
	out.Total = len(out.Projects)
	return out, nil
}

func (m *memoryStore) UpdateProject(_ context.Context, id string, in UpdateProjectInput) (Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return Project{}, ErrNotFound
	}
	if in.ClientID != nil {
		p.ClientID = *in.ClientID
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = in.Now
	m.projects[id] = p
	return p, nil
}

func (m *memoryStore) DeactivateProject(_ context.Context, id string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return ErrNotFound
	}
	p.Active = false
	p.UpdatedAt = now
	m.projects[id] = p
	return nil
}

func (m *memoryStore) CreateTask(_ context.Context, in CreateTaskInput) (Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[in.ProjectID]; !ok {
		return Task{}, ErrInvalidInput
	}
	t := Task{
		ID: m.nextID(), ProjectID: in.ProjectID, Name: in.Name,
		Description: in.Description, Active: true, CreatedAt: in.Now, UpdatedAt: in.Now,
	}
	m.tasks[t.ID] = t
	return t, nil
}

func (m *memoryStore) GetTask(_ context.Context, id string) (Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (m *memoryStore) ListTasksByProject(_ context.Context, projectID string) ([]Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Task
	for _, t := range m.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryStore) ListAllTasks(_ context.Context, _ Page) ([]Task, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Task
	for _, t := range m.tasks {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (m *memoryStore) UpdateTask(_ context.Context, id string, in UpdateTaskInput) (Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.Active != nil {
		t.Active = *in.Active
	}
	t.UpdatedAt = in.Now
	m.tasks[id] = t
	return t, nil
}

func (m *memoryStore) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *memoryStore) CreateAssignment(_ context.Context, in CreateAssignmentInput) (Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[in.ProjectID]; !ok {
		return Assignment{}, ErrInvalidInput
	}
	for _, a := range m.assignments {
		if a.ProjectID == in.ProjectID && a.ProfessionalID == in.ProfessionalID && equalPtr(a.TaskID, in.TaskID) {
			return Assignment{}, ErrConflict
		}
	}
	a := Assignment{
		ID: m.nextID(), ProjectID: in.ProjectID, ProfessionalID: in.ProfessionalID,
		TaskID: in.TaskID, CreatedAt: in.Now,
	}
	m.assignments[a.ID] = a
	return a, nil
}

func (m *memoryStore) DeleteAssignment(_ context.Context, projectID, assignmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assignments[assignmentID]
	if !ok || a.ProjectID != projectID {
		return ErrNotFound
	}
	delete(m.assignments, assignmentID)
	return nil
}

func (m *memoryStore) ListAssignmentsByProject(_ context.Context, projectID string) ([]Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Assignment
	for _, a := range m.assignments {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memoryStore) IsAssigned(_ context.Context, professionalID, projectID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assignments {
		if a.ProfessionalID == professionalID && a.ProjectID == projectID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) CreateHour(_ context.Context, in CreateHourInput) (Hour, error) {
	if in.Hours < 0 || in.Hours > 24 || in.Minutes < 0 || in.Minutes > 59 {
		return Hour{}, ErrInvalidInput
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	h := Hour{
		ID: m.nextID(), ProfessionalID: in.ProfessionalID, Date: in.Date,
		Hours: in.Hours, Minutes: in.Minutes,
		ClientID: in.ClientID, ProjectID: in.ProjectID, TaskID: in.TaskID,
		Description: in.Description, CreatedAt: in.Now, UpdatedAt: in.Now,
	}
	m.hours[h.ID] = h
	return h, nil
}

func (m *memoryStore) GetHour(_ context.Context, id string) (Hour, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hours[id]
	if !ok {
		return Hour{}, ErrNotFound
	}
	return h, nil
}

func (m *memoryStore) ListHours(_ context.Context, in ListHoursInput) (HourPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	assigned := map[string]bool{}
	if in.AssignedToProfessionalID != nil {
		for _, a := range m.assignments {
			if a.ProfessionalID == *in.AssignedToProfessionalID {
				assigned[a.ProjectID] = true
			}
		}
	}
	var out HourPage
	for _, h := range m.hours {
		if in.ProfessionalID != nil && h.ProfessionalID != *in.ProfessionalID {
			continue
		}
		if in.AssignedToProfessionalID != nil {
			if h.ProjectID == nil || !assigned[*h.ProjectID] {
				continue
			}
		}
		if in.ProjectID != nil && !equalPtr(h.ProjectID, in.ProjectID) {
			continue
		}
		if in.From != nil && h.Date.Before(*in.From) {
			continue
		}
		if in.To != nil && h.Date.After(*in.To) {
			continue
		}
		out.Hours = append(out.Hours, h)
	}
	out.Total = len(out.Hours)
	return out, nil
}

func (m *memoryStore) UpdateHour(_ context.Context, id string, in UpdateHourInput) (Hour, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hours[id]
	if !ok {
		return Hour{}, ErrNotFound
	}
	if in.Date != nil {
		h.Date = *in.Date
	}
	if in.Hours != nil {
		h.Hours = *in.Hours
	}
	if in.Minutes != nil {
		h.Minutes = *in.Minutes
	}
	if in.ClientID != nil {
		h.ClientID = in.ClientID
	}
	if in.ProjectID != nil {
		h.ProjectID = in.ProjectID
	}
	if in.TaskID != nil {
		h.TaskID = in.TaskID
	}
	if in.Description != nil {
		h.Description = in.Description
	}
	h.UpdatedAt = in.Now
	m.hours[id] = h
	return h, nil
}

func (m *memoryStore) DeleteHour(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hours[id]; !ok {
		return ErrNotFound
	}
	delete(m.hours, id)
	return nil
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// testAuth impersonates callers. The Authorization header carries
// "Test accountID|role|professionalID"; an empty professionalID segment
// means the account has no profile.
func testAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Test ")
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		parts := strings.Split(raw, "|")
		if len(parts) != 3 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		claims := jwt.AccessClaims{
			Role:             parts[1],
			RegisteredClaims: jwtlib.RegisteredClaims{Subject: parts[0]},
		}
		if parts[2] != "" {
			pid := parts[2]
			claims.ProfessionalID = &pid
		}
		next.ServeHTTP(w, r.WithContext(authapi.ContextWithClaims(r.Context(), claims)))
	})
}

type trackingFixture struct {
	store *memoryStore
	srv   *httptest.Server
}

func newTrackingFixture(t *testing.T) *trackingFixture {
	t.Helper()
	store := newMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	NewHandler(log, store).Register(mux, testAuth)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &trackingFixture{store: store, srv: srv}
}

func (f *trackingFixture) do(t *testing.T, method, path, as string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, f.srv.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if as != "" {
		req.Header.Set("Authorization", "Test "+as)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeInto[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

const (
	asAdmin      = "acc-admin|admin|"
	asSupervisor = "acc-sup|supervisor|pro-sup"
	asUser       = "acc-user|user|pro-user"
	asOtherUser  = "acc-other|user|pro-other"
	asNoProfile  = "acc-bare|user|"
)

func TestClientLifecycle(t *testing.T) {
	f := newTrackingFixture(t)

	resp := f.do(t, http.MethodPost, "/api/clients", asAdmin, map[string]any{"name": "Acme"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create client: got %d, want 201", resp.StatusCode)
	}
	created := decodeInto[clientView](t, resp)
	if created.ID == "" || !created.Active {
		t.Fatalf("created client malformed: %+v", created)
	}

	resp = f.do(t, http.MethodPost, "/api/clients", asAdmin, map[string]any{"name": "Acme"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate client: got %d, want 409", resp.StatusCode)
	}

	resp = f.do(t, http.MethodPost, "/api/clients", asAdmin, map[string]any{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing name: got %d, want 400", resp.StatusCode)
	}

	resp = f.do(t, http.MethodGet, "/api/clients/"+created.ID, asSupervisor, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get client: got %d, want 200", resp.StatusCode)
	}

	resp = f.do(t, http.MethodPut, "/api/clients/"+created.ID, asAdmin, map[string]any{"phone": "555-0100"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update client: got %d, want 200", resp.StatusCode)
	}
	updated := decodeInto[clientView](t, resp)
	if updated.Phone == nil || *updated.Phone != "555-0100" {
		t.Fatalf("phone not updated: %+v", updated)
	}

	resp = f.do(t, http.MethodDelete, "/api/clients/"+created.ID, asAdmin, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("deactivate client: got %d, want 204", resp.StatusCode)
	}

	resp = f.do(t, http.MethodGet, "/api/clients", asAdmin, nil)
	listed := decodeInto[listResponse[clientView]](t, resp)
	if len(listed.Data) != 0 {
		t.Fatalf("deactivated client still listed: %+v", listed.Data)
	}

	resp = f.do(t, http.MethodGet, "/api/clients/nope", asAdmin, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown client: got %d, want 404", resp.StatusCode)
	}
}

func TestStaffOnlyRoutesRejectUsers(t *testing.T) {
	f := newTrackingFixture(t)

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/clients"},
		{http.MethodPost, "/api/clients"},
		{http.MethodGet, "/api/projects"},
		{http.MethodGet, "/api/tasks"},
	} {
		resp := f.do(t, tc.method, tc.path, asUser, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("%s %s as user: got %d, want 403", tc.method, tc.path, resp.StatusCode)
		}
	}

	resp := f.do(t, http.MethodGet, "/api/clients", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated: got %d, want 401", resp.StatusCode)
	}
}

func TestProjectTasksAndAssignments(t *testing.T) {
	f := newTrackingFixture(t)

	client := decodeInto[clientView](t, f.do(t, http.MethodPost, "/api/clients", asAdmin, map[string]any{"name": "Acme"}))
	project := decodeInto[projectView](t, f.do(t, http.MethodPost, "/api/projects", asAdmin, map[string]any{
		"client_id": client.ID, "name": "Website",
	}))
	if project.ClientID != client.ID {
		t.Fatalf("project client mismatch: %+v", project)
	}

	resp := f.do(t, http.MethodPost, "/api/projects", asAdmin, map[string]any{
		"client_id": client.ID, "name": "Website",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate project name per client: got %d, want 409", resp.StatusCode)
	}

	task := decodeInto[taskView](t, f.do(t, http.MethodPost, "/api/projects/"+project.ID+"/tasks", asAdmin, map[string]any{"name": "Design"}))
	if task.ProjectID != project.ID {
		t.Fatalf("task project mismatch: %+v", task)
	}

	resp = f.do(t, http.MethodGet, "/api/projects/"+project.ID+"/tasks", asSupervisor, nil)
	tasks := decodeInto[[]taskView](t, resp)
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}

	assignment := decodeInto[assignmentView](t, f.do(t, http.MethodPost, "/api/projects/"+project.ID+"/assignments", asAdmin, map[string]any{
		"professional_id": "pro-user",
	}))
	resp = f.do(t, http.MethodPost, "/api/projects/"+project.ID+"/assignments", asAdmin, map[string]any{
		"professional_id": "pro-user",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate assignment: got %d, want 409", resp.StatusCode)
	}

	resp = f.do(t, http.MethodDelete, "/api/projects/"+project.ID+"/assignments/"+assignment.ID, asAdmin, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete assignment: got %d, want 204", resp.StatusCode)
	}
	resp = f.do(t, http.MethodDelete, "/api/projects/"+project.ID+"/assignments/"+assignment.ID, asAdmin, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("delete missing assignment: got %d, want 404", resp.StatusCode)
	}

	resp = f.do(t, http.MethodDelete, "/api/tasks/"+task.ID, asAdmin, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete task: got %d, want 204", resp.StatusCode)
	}
}

// seedHours creates one project assigned to the supervisor, an hour on it
// owned by pro-user, and an off-project hour owned by pro-other.
func seedHours(t *testing.T, f *trackingFixture) (onProject, offProject hourView, projectID string) {
	t.Helper()
	client := decodeInto[clientView](t, f.do(t, http.MethodPost, "/api/clients", asAdmin, map[string]any{"name": "Acme"}))
	project := decodeInto[projectView](t, f.do(t, http.MethodPost, "/api/projects", asAdmin, map[string]any{
		"client_id": client.ID, "name": "Website",
	}))
	f.do(t, http.MethodPost, "/api/projects/"+project.ID+"/assignments", asAdmin, map[string]any{
		"professional_id": "pro-sup",
	})

	onProject = decodeInto[hourView](t, f.do(t, http.MethodPost, "/api/hours", asUser, map[string]any{
		"date": "2026-08-03", "hours": 6, "minutes": 30, "project_id": project.ID,
	}))
	offProject = decodeInto[hourView](t, f.do(t, http.MethodPost, "/api/hours", asOtherUser, map[string]any{
		"date": "2026-08-04", "hours": 2, "minutes": 0,
	}))
	return onProject, offProject, project.ID
}

func TestHoursVisibilityByRole(t *testing.T) {
	f := newTrackingFixture(t)
	onProject, offProject, _ := seedHours(t, f)

	if onProject.ProfessionalID != "pro-user" {
		t.Fatalf("hour owner not taken from token: %+v", onProject)
	}

	own := decodeInto[listResponse[hourView]](t, f.do(t, http.MethodGet, "/api/hours", asUser, nil))
	if len(own.Data) != 1 || own.Data[0].ID != onProject.ID {
		t.Fatalf("user should see only their own entry, got %+v", own.Data)
	}

	sup := decodeInto[listResponse[hourView]](t, f.do(t, http.MethodGet, "/api/hours", asSupervisor, nil))
	if len(sup.Data) != 1 || sup.Data[0].ID != onProject.ID {
		t.Fatalf("supervisor should see assigned-project entries, got %+v", sup.Data)
	}

	all := decodeInto[listResponse[hourView]](t, f.do(t, http.MethodGet, "/api/hours", asAdmin, nil))
	if len(all.Data) != 2 {
		t.Fatalf("admin should see everything, got %d entries", len(all.Data))
	}

	resp := f.do(t, http.MethodGet, "/api/hours/"+offProject.ID, asUser, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign entry by id: got %d, want 404", resp.StatusCode)
	}
	resp = f.do(t, http.MethodGet, "/api/hours/"+onProject.ID, asSupervisor, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("supervisor reading assigned-project entry: got %d, want 200", resp.StatusCode)
	}
	resp = f.do(t, http.MethodGet, "/api/hours/"+offProject.ID, asSupervisor, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("supervisor reading off-project entry: got %d, want 404", resp.StatusCode)
	}
}

func TestHoursEditRights(t *testing.T) {
	f := newTrackingFixture(t)
	onProject, offProject, _ := seedHours(t, f)

	resp := f.do(t, http.MethodPut, "/api/hours/"+onProject.ID, asUser, map[string]any{"hours": 7})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner update: got %d, want 200", resp.StatusCode)
	}
	updated := decodeInto[hourView](t, resp)
	if updated.Hours != 7 {
		t.Fatalf("hours not updated: %+v", updated)
	}

	resp = f.do(t, http.MethodPut, "/api/hours/"+onProject.ID, asSupervisor, map[string]any{"hours": 1})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("supervisor editing another's entry: got %d, want 403", resp.StatusCode)
	}

	resp = f.do(t, http.MethodDelete, "/api/hours/"+onProject.ID, asOtherUser, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-owner delete: got %d, want 403", resp.StatusCode)
	}

	resp = f.do(t, http.MethodDelete, "/api/hours/"+offProject.ID, asAdmin, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("admin delete: got %d, want 204", resp.StatusCode)
	}

	resp = f.do(t, http.MethodDelete, "/api/hours/"+onProject.ID, asUser, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("owner delete: got %d, want 204", resp.StatusCode)
	}
}

func TestHoursValidation(t *testing.T) {
	f := newTrackingFixture(t)

	resp := f.do(t, http.MethodPost, "/api/hours", asNoProfile, map[string]any{
		"date": "2026-08-03", "hours": 1, "minutes": 0,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("no professional profile: got %d, want 403", resp.StatusCode)
	}

	for _, body := range []map[string]any{
		{"hours": 1, "minutes": 0},
		{"date": "not a date", "hours": 1, "minutes": 0},
		{"date": "2026-08-03", "hours": 25, "minutes": 0},
		{"date": "2026-08-03", "hours": 1, "minutes": 75},
	} {
		resp := f.do(t, http.MethodPost, "/api/hours", asUser, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %v: got %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestHoursDateFilter(t *testing.T) {
	f := newTrackingFixture(t)
	seedHours(t, f)

	early := decodeInto[listResponse[hourView]](t, f.do(t, http.MethodGet, "/api/hours?to=2026-08-03", asAdmin, nil))
	if len(early.Data) != 1 {
		t.Fatalf("to filter: got %d entries, want 1", len(early.Data))
	}
	late := decodeInto[listResponse[hourView]](t, f.do(t, http.MethodGet, "/api/hours?from=2026-08-04", asAdmin, nil))
	if len(late.Data) != 1 {
		t.Fatalf("from filter: got %d entries, want 1", len(late.Data))
	}
	resp := f.do(t, http.MethodGet, "/api/hours?from=garbage", asAdmin, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad from filter: got %d, want 400", resp.StatusCode)
	}
}
