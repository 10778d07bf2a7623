package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS lets the web front end call the API from the allowed origins.
// A "*" entry allows any origin.
func CORS(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", "Retry-After"},
		MaxAge:         86400,
	})
}
