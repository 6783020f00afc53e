package tracking

import "strings"

// Sort whitelists per listing. Keys are the API-facing field names; values
// are the SQL columns they map to. Anything else falls back to the default.
var (
	ClientSortFields = map[string]string{
		"name":       "name",
		"created_at": "created_at",
	}
	ProjectSortFields = map[string]string{
		"name":       "name",
		"created_at": "created_at",
	}
	HourSortFields = map[string]string{
		"date":       "date",
		"hours":      "hours",
		"created_at": "created_at",
	}
)

// ParseSort parses a "field:direction" pair against a whitelist. Unknown
// fields and directions fall back to the default; the result is safe to
// splice into ORDER BY.
func ParseSort(raw string, def Sort, allowed map[string]string) Sort {
	field, dir, _ := strings.Cut(strings.TrimSpace(raw), ":")
	col, ok := allowed[field]
	if !ok {
		return def
	}
	return Sort{Field: col, Desc: strings.EqualFold(dir, "desc")}
}

func (s Sort) orderBy() string {
	if s.Field == "" {
		return "created_at DESC"
	}
	if s.Desc {
		return s.Field + " DESC"
	}
	return s.Field + " ASC"
}
