package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorResponse is the error envelope every endpoint returns.
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes body as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// respondError writes a JSON error envelope. Server-side errors (>= 500)
// are logged with request context.
func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if status >= http.StatusInternalServerError {
		slog.Error("api error",
			"status", status,
			"message", msg,
			"method", r.Method,
			"path", r.URL.Path,
		)
	}

	respondJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads the request body into dst, limiting the body size to
// keep a hostile client from exhausting memory.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)).Decode(dst)
}
