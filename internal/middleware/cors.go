package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS adds Access-Control headers for allowed origins and answers preflight requests.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
			break
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: !allowAll,
	})
	return c.Handler(next)
}
