package httpx

import (
	"net/http"
	"strconv"
)

// Page is a parsed offset/limit pair.
type Page struct {
	Offset int
	Limit  int
}

// ParsePage reads offset/limit query parameters, clamping the limit to
// [1, maxLimit] and the offset to >= 0. Absent or malformed values fall back
// to the defaults.
func ParsePage(r *http.Request, defaultLimit, maxLimit int) Page {
	p := Page{Limit: defaultLimit}

	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.Offset = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			p.Limit = n
		}
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}
