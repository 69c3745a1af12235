package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("respond: encode payload failed")
	}
}

// Error writes an error response with the shared body structure.
func Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	JSON(w, r, status, ErrorBody{Detail: message})
}

// NoContent writes a bodiless 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
