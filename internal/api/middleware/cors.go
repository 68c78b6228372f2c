package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS lets the dashboard origins call the API with the developer key headers.
// Retry-After is exposed so the dashboard can back off when rate limited.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-API-Key", "X-Time-Token"},
		ExposedHeaders:   []string{"Content-Type", "Retry-After", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
