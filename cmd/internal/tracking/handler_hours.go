package tracking

import (
	"net/http"
	"time"

	"trb/cmd/identity"
	"trb/cmd/internal/httpx"
)

func (h *Handler) createHour(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	if c.ProfessionalID == nil {
		httpx.WriteError(w, http.StatusForbidden, "no_professional", "account has no professional profile")
		return
	}

	var req hourRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if req.Date == nil || req.Hours == nil || req.Minutes == nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "date, hours and minutes are required")
		return
	}
	date, ok := parseDate(*req.Date)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "date must be RFC 3339 or YYYY-MM-DD")
		return
	}

	entry, err := h.store.CreateHour(r.Context(), CreateHourInput{
		ProfessionalID: *c.ProfessionalID,
		Date:           date,
		Hours:          *req.Hours,
		Minutes:        *req.Minutes,
		ClientID:       req.ClientID,
		ProjectID:      req.ProjectID,
		TaskID:         req.TaskID,
		Description:    req.Description,
		Now:            time.Now().UTC(),
	})
	if err != nil {
		h.writeStoreError(w, "tracking.hours.create", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toHourView(entry))
}

func (h *Handler) listHours(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	page := httpx.ParsePage(r, defaultPageLimit, maxPageLimit)
	in := ListHoursInput{
		Page: Page{Offset: page.Offset, Limit: page.Limit},
		Sort: ParseSort(r.URL.Query().Get("sort"), Sort{Field: "date", Desc: true}, HourSortFields),
	}

	switch c.Role {
	case identity.RoleAdmin:
		// unrestricted
	case identity.RoleSupervisor:
		if c.ProfessionalID == nil {
			httpx.WriteJSON(w, http.StatusOK, listResponse[hourView]{Data: []hourView{}, Page: pageMeta{Offset: page.Offset, Limit: page.Limit}})
			return
		}
		in.AssignedToProfessionalID = c.ProfessionalID
	default:
		if c.ProfessionalID == nil {
			httpx.WriteJSON(w, http.StatusOK, listResponse[hourView]{Data: []hourView{}, Page: pageMeta{Offset: page.Offset, Limit: page.Limit}})
			return
		}
		in.ProfessionalID = c.ProfessionalID
	}

	if v := r.URL.Query().Get("project_id"); v != "" {
		in.ProjectID = &v
	}
	if v := r.URL.Query().Get("from"); v != "" {
		t, ok := parseDate(v)
		if !ok {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "from must be RFC 3339 or YYYY-MM-DD")
			return
		}
		in.From = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, ok := parseDate(v)
		if !ok {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "to must be RFC 3339 or YYYY-MM-DD")
			return
		}
		in.To = &t
	}

	result, err := h.store.ListHours(r.Context(), in)
	if err != nil {
		h.writeStoreError(w, "tracking.hours.list", err)
		return
	}

	views := make([]hourView, 0, len(result.Hours))
	for _, entry := range result.Hours {
		views = append(views, toHourView(entry))
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse[hourView]{
		Data: views,
		Page: pageMeta{Total: result.Total, Offset: page.Offset, Limit: page.Limit},
	})
}

func (h *Handler) getHour(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	entry, err := h.store.GetHour(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, "tracking.hours.get", err)
		return
	}
	visible, err := h.canSeeHour(r, c, entry)
	if err != nil {
		h.writeStoreError(w, "tracking.hours.get", err)
		return
	}
	if !visible {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toHourView(entry))
}

func (h *Handler) updateHour(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	entry, err := h.store.GetHour(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, "tracking.hours.update", err)
		return
	}
	if !h.canEditHour(c, entry) {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "cannot modify this entry")
		return
	}

	var req hourRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	in := UpdateHourInput{
		Hours:       req.Hours,
		Minutes:     req.Minutes,
		ClientID:    req.ClientID,
		ProjectID:   req.ProjectID,
		TaskID:      req.TaskID,
		Description: req.Description,
		Now:         time.Now().UTC(),
	}
	if req.Date != nil {
		date, ok := parseDate(*req.Date)
		if !ok {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "date must be RFC 3339 or YYYY-MM-DD")
			return
		}
		in.Date = &date
	}

	updated, err := h.store.UpdateHour(r.Context(), entry.ID, in)
	if err != nil {
		h.writeStoreError(w, "tracking.hours.update", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toHourView(updated))
}

func (h *Handler) deleteHour(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	entry, err := h.store.GetHour(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, "tracking.hours.delete", err)
		return
	}
	if !h.canEditHour(c, entry) {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "cannot delete this entry")
		return
	}

	if err := h.store.DeleteHour(r.Context(), entry.ID); err != nil {
		h.writeStoreError(w, "tracking.hours.delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// canSeeHour reports whether the caller may read the entry. Supervisors
// see their own entries plus entries on projects they are assigned to.
func (h *Handler) canSeeHour(r *http.Request, c caller, entry Hour) (bool, error) {
	if c.Role == identity.RoleAdmin {
		return true, nil
	}
	if c.ProfessionalID == nil {
		return false, nil
	}
	if entry.ProfessionalID == *c.ProfessionalID {
		return true, nil
	}
	if c.Role == identity.RoleSupervisor && entry.ProjectID != nil {
		return h.store.IsAssigned(r.Context(), *c.ProfessionalID, *entry.ProjectID)
	}
	return false, nil
}

// canEditHour is stricter than visibility: only the owner or an admin
// may change or delete an entry.
func (h *Handler) canEditHour(c caller, entry Hour) bool {
	if c.Role == identity.RoleAdmin {
		return true
	}
	return c.ProfessionalID != nil && entry.ProfessionalID == *c.ProfessionalID
}
