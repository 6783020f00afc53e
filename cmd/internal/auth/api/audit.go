package authapi

import (
	"context"
	"encoding/json"
	"net"
	"strings"
)

func (h *Handler) auditLoginFailed(ctx context.Context, ip net.IP, ua string, email string, reason string) {
	h.insertAudit(ctx, "auth.login.failed", nil, ip, ua, map[string]any{
		"email":  email,
		"reason": reason,
	})
}

func (h *Handler) auditLoginSuccess(ctx context.Context, accountID string, ip net.IP, ua string) {
	h.insertAudit(ctx, "auth.login.success", &accountID, ip, ua, nil)
}

func (h *Handler) auditLoginRateLimited(ctx context.Context, ip net.IP, ua string, email string) {
	h.insertAudit(ctx, "auth.login.rate_limited", nil, ip, ua, map[string]any{
		"email": email,
	})
}

func (h *Handler) auditRefreshSuccess(ctx context.Context, accountID string, ip net.IP, ua string) {
	h.insertAudit(ctx, "auth.refresh.success", &accountID, ip, ua, nil)
}

func (h *Handler) auditRefreshDenied(ctx context.Context, ip net.IP, ua string, reason string) {
	h.insertAudit(ctx, "auth.refresh.denied", nil, ip, ua, map[string]any{
		"reason": reason,
	})
}

func (h *Handler) auditRefreshReuse(ctx context.Context, ip net.IP, ua string) {
	h.insertAudit(ctx, "auth.refresh.reuse_detected", nil, ip, ua, nil)
}

func (h *Handler) auditLogout(ctx context.Context, ip net.IP, ua string) {
	h.insertAudit(ctx, "auth.logout", nil, ip, ua, nil)
}

func (h *Handler) insertAudit(ctx context.Context, action string, accountID *string, ip net.IP, ua string, meta map[string]any) {
	if h == nil || h.pool == nil {
		return
	}

	action = strings.TrimSpace(action)
	if action == "" {
		return
	}

	var ipVal any
	if ip != nil {
		ipVal = ip.String()
	}

	var metaVal *string
	if len(meta) > 0 {
		if b, err := json.Marshal(meta); err == nil {
			s := string(b)
			metaVal = &s
		}
	}

	_, err := h.pool.Exec(ctx, `
		INSERT INTO trb.audit_log (
			account_id, action, created_at, ip, user_agent, meta
		) VALUES ($1, $2, now(), $3, $4, $5::jsonb)
	`, accountID, action, ipVal, trimOrNil(ua), metaVal)
	if err != nil {
		h.log.Error("auth.audit.insert.fail", "err", err, "action", action)
	}
}

func trimOrNil(s string) any {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	return v
}
