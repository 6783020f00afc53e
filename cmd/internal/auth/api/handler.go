package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"trb/cmd/identity"
	"trb/cmd/internal/auth/session"
	"trb/cmd/internal/metrics"
)

// Handler wires the HTTP auth endpoints to the session service.
type Handler struct {
	log *slog.Logger
	cfg Config

	// pool is used for audit records and login throttling only; nil disables
	// both (tests, degraded mode). Token state always goes through sessions.
	pool *pgxpool.Pool

	sessions *session.Service
}

// NewHandler constructs an auth Handler.
func NewHandler(log *slog.Logger, cfg Config, pool *pgxpool.Pool, sessions *session.Service) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{log: log, cfg: cfg, pool: pool, sessions: sessions}
}

// Register wires auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/api/auth/login", h.handleLogin)
	mux.HandleFunc("/api/auth/refresh", h.handleRefresh)
	mux.HandleFunc("/api/auth/logout", h.handleLogout)
}

// Sessions returns the underlying session service.
func (h *Handler) Sessions() *session.Service {
	if h == nil {
		return nil
	}
	return h.sessions
}

// ---- handlers ----

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	email := identity.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()
	ip := clientIP(r, h.cfg.TrustProxy)
	ua := strings.TrimSpace(r.UserAgent())

	// Throttle before touching credentials.
	if blocked, retryAfter, err := h.checkLoginIPThrottle(ctx, ip, now); err != nil {
		h.log.Error("auth.login.throttle_ip.fail", "err", err)
		writeError(w, http.StatusServiceUnavailable, "server_busy", "please retry later")
		return
	} else if blocked {
		metrics.Logins.WithLabelValues(metrics.ResultRateLimited).Inc()
		h.auditLoginRateLimited(ctx, ip, ua, email)
		writeRateLimited(w, retryAfter)
		return
	}
	if blocked, retryAfter, err := h.checkLoginEmailThrottle(ctx, email, now); err != nil {
		h.log.Error("auth.login.throttle_email.fail", "err", err)
		writeError(w, http.StatusServiceUnavailable, "server_busy", "please retry later")
		return
	} else if blocked {
		metrics.Logins.WithLabelValues(metrics.ResultRateLimited).Inc()
		h.auditLoginRateLimited(ctx, ip, ua, email)
		writeRateLimited(w, retryAfter)
		return
	}

	issued, err := h.sessions.Login(ctx, now, email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			metrics.Logins.WithLabelValues(metrics.ResultInvalid).Inc()
			h.auditLoginFailed(ctx, ip, ua, email, "invalid_credentials")
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
			return
		}
		metrics.Logins.WithLabelValues(metrics.ResultError).Inc()
		h.log.Error("auth.login.fail", "err", err)
		writeError(w, http.StatusServiceUnavailable, "server_busy", "please retry later")
		return
	}

	metrics.Logins.WithLabelValues(metrics.ResultSuccess).Inc()
	h.auditLoginSuccess(ctx, issued.Account.ID, ip, ua)
	h.log.Info("auth.login.ok", "account_id", issued.Account.ID)
	writeJSON(w, http.StatusOK, loginResponse{
		Account: toAccountResponse(issued.Account),
		Tokens:  toTokensResponse(issued),
	})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req refreshRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "refresh_token is required")
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()
	ip := clientIP(r, h.cfg.TrustProxy)
	ua := strings.TrimSpace(r.UserAgent())

	issued, err := h.sessions.Rotate(ctx, now, req.RefreshToken)
	if err != nil {
		reason, result := rotateDenial(err)
		if result == "" {
			metrics.TokenRotations.WithLabelValues(metrics.ResultError).Inc()
			h.log.Error("auth.refresh.fail", "err", err)
			writeError(w, http.StatusServiceUnavailable, "server_busy", "please retry later")
			return
		}

		metrics.TokenRotations.WithLabelValues(result).Inc()
		if errors.Is(err, session.ErrTokenReused) {
			metrics.ReuseDetections.Inc()
			h.auditRefreshReuse(ctx, ip, ua)
			h.log.Warn("auth.refresh.reuse_detected")
		} else {
			h.auditRefreshDenied(ctx, ip, ua, reason)
		}

		// One answer for every denial; the audit log keeps the real reason.
		writeError(w, http.StatusForbidden, "token_invalid", "token invalid or revoked")
		return
	}

	metrics.TokenRotations.WithLabelValues(metrics.ResultSuccess).Inc()
	h.auditRefreshSuccess(ctx, issued.Account.ID, ip, ua)
	writeJSON(w, http.StatusOK, refreshResponse{
		Account: toAccountResponse(issued.Account),
		Tokens:  toTokensResponse(issued),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req logoutRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "refresh_token is required")
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()

	if err := h.sessions.Logout(ctx, now, req.RefreshToken); err != nil {
		h.log.Error("auth.logout.fail", "err", err)
		writeError(w, http.StatusServiceUnavailable, "server_busy", "please retry later")
		return
	}

	h.auditLogout(ctx, clientIP(r, h.cfg.TrustProxy), strings.TrimSpace(r.UserAgent()))
	writeJSON(w, http.StatusOK, logoutResponse{Message: "logged out"})
}

// rotateDenial maps a rotation error to its audit reason and metric label.
// Unmapped errors are infrastructure failures, not denials.
func rotateDenial(err error) (reason, result string) {
	switch {
	case errors.Is(err, session.ErrTokenReused):
		return "reuse_detected", metrics.ResultReused
	case errors.Is(err, session.ErrTokenRevoked):
		return "revoked", metrics.ResultRevoked
	case errors.Is(err, session.ErrTokenExpired):
		return "expired", metrics.ResultExpired
	case errors.Is(err, session.ErrTokenInvalid):
		return "invalid", metrics.ResultInvalid
	case errors.Is(err, session.ErrAccountInactive):
		return "account_inactive", metrics.ResultInactive
	default:
		return "", ""
	}
}
