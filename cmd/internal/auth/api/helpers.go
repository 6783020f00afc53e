package authapi

import (
	"net"
	"net/http"
	"strings"

	"trb/cmd/identity"
	"trb/cmd/internal/auth/session"
)

func toAccountResponse(a identity.Account) accountResponse {
	return accountResponse{
		ID:             a.ID,
		Email:          a.Email,
		Role:           string(a.Role),
		ProfessionalID: a.ProfessionalID,
	}
}

func toTokensResponse(issued session.Issued) tokensResponse {
	return tokensResponse{
		AccessToken:      issued.AccessToken,
		AccessExpiresAt:  issued.AccessExp,
		RefreshToken:     issued.RefreshToken,
		RefreshExpiresAt: issued.RefreshExp,
	}
}

// clientIP resolves the caller's IP, honoring X-Forwarded-For only when the
// deployment fronts the server with a trusted proxy.
func clientIP(r *http.Request, trustProxy bool) net.IP {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return net.ParseIP(strings.TrimSpace(r.RemoteAddr))
	}
	return net.ParseIP(host)
}
