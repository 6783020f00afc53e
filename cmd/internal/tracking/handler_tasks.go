package tracking

import (
	"net/http"
	"time"

	"trb/cmd/internal/httpx"
)

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if req.Name == nil || *req.Name == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	t, err := h.store.CreateTask(r.Context(), CreateTaskInput{
		ProjectID:   r.PathValue("projectID"),
		Name:        *req.Name,
		Description: req.Description,
		Now:         time.Now().UTC(),
	})
	if err != nil {
		h.writeStoreError(w, "tracking.tasks.create", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTaskView(t))
}

func (h *Handler) listProjectTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListTasksByProject(r.Context(), r.PathValue("projectID"))
	if err != nil {
		h.writeStoreError(w, "tracking.tasks.list", err)
		return
	}
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, toTaskView(t))
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) listAllTasks(w http.ResponseWriter, r *http.Request) {
	page := httpx.ParsePage(r, defaultPageLimit, maxPageLimit)
	tasks, total, err := h.store.ListAllTasks(r.Context(), Page{Offset: page.Offset, Limit: page.Limit})
	if err != nil {
		h.writeStoreError(w, "tracking.tasks.list_all", err)
		return
	}
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, toTaskView(t))
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse[taskView]{
		Data: views,
		Page: pageMeta{Total: total, Offset: page.Offset, Limit: page.Limit},
	})
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.store.GetTask(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, "tracking.tasks.get", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTaskView(t))
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	t, err := h.store.UpdateTask(r.Context(), r.PathValue("id"), UpdateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
		Now:         time.Now().UTC(),
	})
	if err != nil {
		h.writeStoreError(w, "tracking.tasks.update", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTaskView(t))
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTask(r.Context(), r.PathValue("id")); err != nil {
		h.writeStoreError(w, "tracking.tasks.delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createAssignment(w http.ResponseWriter, r *http.Request) {
	var req assignmentRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if req.ProfessionalID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "professional_id is required")
		return
	}

	a, err := h.store.CreateAssignment(r.Context(), CreateAssignmentInput{
		ProjectID:      r.PathValue("projectID"),
		ProfessionalID: req.ProfessionalID,
		TaskID:         req.TaskID,
		Now:            time.Now().UTC(),
	})
	if err != nil {
		h.writeStoreError(w, "tracking.assignments.create", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAssignmentView(a))
}

func (h *Handler) listAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.store.ListAssignmentsByProject(r.Context(), r.PathValue("projectID"))
	if err != nil {
		h.writeStoreError(w, "tracking.assignments.list", err)
		return
	}
	views := make([]assignmentView, 0, len(assignments))
	for _, a := range assignments {
		views = append(views, toAssignmentView(a))
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) deleteAssignment(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteAssignment(r.Context(), r.PathValue("projectID"), r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, "tracking.assignments.delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
