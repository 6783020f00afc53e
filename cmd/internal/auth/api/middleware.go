package authapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"trb/cmd/identity"
	"trb/cmd/internal/auth/jwt"
)

type ctxKey int

const claimsKey ctxKey = iota

// ClaimsFromContext returns the access-token claims attached by RequireAuth.
func ClaimsFromContext(ctx context.Context) (jwt.AccessClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(jwt.AccessClaims)
	return claims, ok
}

// ContextWithClaims returns ctx carrying the given claims, as RequireAuth
// would have attached them. Handler tests use it to impersonate a caller
// without minting tokens.
func ContextWithClaims(ctx context.Context, claims jwt.AccessClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// RequireAuth gates a handler on a valid bearer access token. A missing or
// non-bearer header is 401; a present but unverifiable token is 403 with the
// same generic body every token denial gets.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authorization required")
			return
		}

		claims, err := h.sessions.VerifyAccess(raw, time.Now().UTC())
		if err != nil {
			writeError(w, http.StatusForbidden, "token_invalid", "token invalid or revoked")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// RequireRoles gates a handler on the caller's role. It must run inside
// RequireAuth; without claims in context it fails closed with 401.
func RequireRoles(roles ...identity.Role) func(http.Handler) http.Handler {
	allowed := make(map[identity.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "missing_token", "authorization required")
				return
			}
			role, ok := identity.ParseRole(claims.Role)
			if !ok || !allowed[role] {
				writeError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
