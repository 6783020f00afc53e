package identity

import "strings"

// NormalizeEmail performs case-insensitive canonicalization. Lookup and the
// unique constraint both run on the normalized form.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
