package tracking

import (
	"net/http"
	"time"

	"trb/cmd/internal/httpx"
)

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if req.Name == nil || *req.Name == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	c, err := h.store.CreateClient(r.Context(), CreateClientInput{
		Name:    *req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Now:     time.Now().UTC(),
	})
	if err != nil {
		h.writeStoreError(w, "tracking.clients.create", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toClientView(c))
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	page := httpx.ParsePage(r, defaultPageLimit, maxPageLimit)
	sort := ParseSort(r.URL.Query().Get("sort"), Sort{Field: "name"}, ClientSortFields)

	result, err := h.store.ListClients(r.Context(), Page{Offset: page.Offset, Limit: page.Limit}, sort)
	if err != nil {
		h.writeStoreError(w, "tracking.clients.list", err)
		return
	}

	views := make([]clientView, 0, len(result.Clients))
	for _, c := range result.Clients {
		views = append(views, toClientView(c))
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse[clientView]{
		Data: views,
		Page: pageMeta{Total: result.Total, Offset: page.Offset, Limit: page.Limit},
	})
}

func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.GetClient(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, "tracking.clients.get", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClientView(c))
}

func (h *Handler) updateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	c, err := h.store.UpdateClient(r.Context(), r.PathValue("id"), UpdateClientInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Active:  req.Active,
		Now:     time.Now().UTC(),
	})
	if err != nil {
		h.writeStoreError(w, "tracking.clients.update", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClientView(c))
}

func (h *Handler) deactivateClient(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeactivateClient(r.Context(), r.PathValue("id"), time.Now().UTC()); err != nil {
		h.writeStoreError(w, "tracking.clients.deactivate", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
