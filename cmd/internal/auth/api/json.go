package authapi

import (
	"net/http"

	"trb/cmd/internal/httpx"
)

type apiError = httpx.APIError

type errorResponse = httpx.ErrorResponse

func writeJSON(w http.ResponseWriter, status int, v any) {
	httpx.WriteJSON(w, status, v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	httpx.WriteError(w, status, code, msg)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	return httpx.DecodeJSON(w, r, maxBytes, dst)
}
