package accounts

import (
	"context"
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

// SessionRevoker kills every refresh token an account holds;
// *session.Service implements it.
type SessionRevoker interface {
	RevokeAccount(ctx context.Context, now time.Time, accountID string) error
}

// Handler serves the admin account-management endpoints.
type Handler struct {
	log      *slog.Logger
	store    identity.Store
	sessions SessionRevoker
}

// NewHandler constructs an accounts Handler.
func NewHandler(log *slog.Logger, store identity.Store, sessions SessionRevoker) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{log: log, store: store, sessions: sessions}
}

// Register mounts the account routes behind the provided guard, which is
// expected to require an authenticated admin.
func (h *Handler) Register(mux *http.ServeMux, guard func(http.Handler) http.Handler) {
	if h == nil || mux == nil {
		return
	}
	if guard == nil {
		guard = func(next http.Handler) http.Handler { return next }
	}
	mux.Handle("POST /api/accounts", guard(http.HandlerFunc(h.handleCreate)))
	mux.Handle("GET /api/accounts", guard(http.HandlerFunc(h.handleList)))
	mux.Handle("GET /api/accounts/{id}", guard(http.HandlerFunc(h.handleGet)))
	mux.Handle("PUT /api/accounts/{id}", guard(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /api/accounts/{id}", guard(http.HandlerFunc(h.handleDeactivate)))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	role, ok := identity.ParseRole(req.Role)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "unknown role")
		return
	}

	acct, err := h.store.CreateAccount(r.Context(), identity.CreateAccountInput{
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
		Active:    true,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		Now:       time.Now().UTC(),
	})
	if err != nil {
		h.writeStoreError(w, "accounts.create", err)
		return
	}

	h.log.Info("accounts.create.ok", "account_id", acct.ID, "role", acct.Role)
	httpx.WriteJSON(w, http.StatusCreated, toAccountView(acct))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := httpx.ParsePage(r, defaultPageLimit, maxPageLimit)
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	result, err := h.store.ListAccounts(r.Context(), identity.ListAccountsInput{
		Offset:          page.Offset,
		Limit:           page.Limit,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		h.writeStoreError(w, "accounts.list", err)
		return
	}

	views := make([]accountView, 0, len(result.Accounts))
	for _, a := range result.Accounts {
		views = append(views, toAccountView(a))
	}
	httpx.WriteJSON(w, http.StatusOK, accountPageResponse{
		Accounts: views,
		Total:    result.Total,
		Offset:   page.Offset,
		Limit:    page.Limit,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	acct, err := h.store.GetAccountByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, "accounts.get", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountView(acct))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	id := r.PathValue("id")
	target, err := h.store.GetAccountByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, "accounts.update", err)
		return
	}

	// Admins cannot change another admin's role or active flag.
	if target.Role == identity.RoleAdmin && !isSelf(r, target.ID) && (req.Role != nil || req.Active != nil) {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "cannot modify another admin")
		return
	}

	var role *identity.Role
	if req.Role != nil {
		parsed, ok := identity.ParseRole(*req.Role)
		if !ok {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "unknown role")
			return
		}
		role = &parsed
	}

	acct, err := h.store.UpdateAccount(r.Context(), id, identity.UpdateAccountInput{
		Email:     req.Email,
		Role:      role,
		Active:    req.Active,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		Now:       time.Now().UTC(),
	})
	if err != nil {
		h.writeStoreError(w, "accounts.update", err)
		return
	}

	// Flipping active off through update also revokes tokens.
	if req.Active != nil && !*req.Active {
		if err := h.sessions.RevokeAccount(r.Context(), time.Now().UTC(), acct.ID); err != nil {
			h.log.Error("accounts.update.revoke.fail", "err", err, "account_id", acct.ID)
		}
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountView(acct))
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	target, err := h.store.GetAccountByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, "accounts.deactivate", err)
		return
	}

	if target.Role == identity.RoleAdmin && !isSelf(r, target.ID) {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "cannot deactivate another admin")
		return
	}

	now := time.Now().UTC()
	if err := h.store.DeactivateAccount(r.Context(), id, now); err != nil {
		h.writeStoreError(w, "accounts.deactivate", err)
		return
	}
	if err := h.sessions.RevokeAccount(r.Context(), now, id); err != nil {
		// The account is already inactive; rotation will refuse regardless.
		h.log.Error("accounts.deactivate.revoke.fail", "err", err, "account_id", id)
	}

	h.log.Info("accounts.deactivate.ok", "account_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func isSelf(r *http.Request, accountID string) bool {
	claims, ok := authapi.ClaimsFromContext(r.Context())
	return ok && claims.Subject == accountID
}

func (h *Handler) writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case identity.IsNotFound(err):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "account not found")
	case identity.IsConflict(err):
		httpx.WriteError(w, http.StatusConflict, "conflict", "email already in use")
	case identity.IsInvalidInput(err):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid input")
	default:
		h.log.Error(op+".fail", "err", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, "server_busy", "please retry later")
	}
}
