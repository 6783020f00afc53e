package tracking

import (
	"net/http"
	"time"

	"trb/cmd/internal/httpx"
)

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if req.ClientID == nil || *req.ClientID == "" || req.Name == nil || *req.Name == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "client_id and name are required")
		return
	}

	p, err := h.store.CreateProject(r.Context(), CreateProjectInput{
		ClientID:    *req.ClientID,
		Name:        *req.Name,
		Description: req.Description,
		Now:         time.Now().UTC(),
	})
	if err != nil {
		h.writeStoreError(w, "tracking.projects.create", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toProjectView(p))
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	page := httpx.ParsePage(r, defaultPageLimit, maxPageLimit)
	sort := ParseSort(r.URL.Query().Get("sort"), Sort{Field: "name"}, ProjectSortFields)

	in := ListProjectsInput{
		Page: Page{Offset: page.Offset, Limit: page.Limit},
		Sort: sort,
	}
	if v := r.URL.Query().Get("client_id"); v != "" {
		in.ClientID = &v
	}
	if v := r.URL.Query().Get("active"); v != "" {
		active := v == "true"
		in.Active = &active
	}

	result, err := h.store.ListProjects(r.Context(), in)
	if err != nil {
		h.writeStoreError(w, "tracking.projects.list", err)
		return
	}

	views := make([]projectView, 0, len(result.Projects))
	for _, p := range result.Projects {
		views = append(views, toProjectView(p))
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse[projectView]{
		Data: views,
		Page: pageMeta{Total: result.Total, Offset: page.Offset, Limit: page.Limit},
	})
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, "tracking.projects.get", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProjectView(p))
}

func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	p, err := h.store.UpdateProject(r.Context(), r.PathValue("id"), UpdateProjectInput{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
		Now:         time.Now().UTC(),
	})
	if err != nil {
		h.writeStoreError(w, "tracking.projects.update", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProjectView(p))
}

func (h *Handler) deactivateProject(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeactivateProject(r.Context(), r.PathValue("id"), time.Now().UTC()); err != nil {
		h.writeStoreError(w, "tracking.projects.deactivate", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
