package session

import "trb/cmd/security/token"

// Refresh tokens travel as signed JWTs but are looked up by hash; the raw
// token is never persisted.
func hashRefreshTokenHex(s string) string {
	return token.HashRefreshTokenHex(s) // 64 hex chars
}
