package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
)

// corsMaxAge is how long, in seconds, browsers may cache a preflight response.
const corsMaxAge = 300

// NewCORS returns the CORS middleware for the configured origins.
// Credentials are only allowed when no wildcard origin is configured.
// Content-Disposition is exposed so browsers can read the export file name.
func NewCORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", apiKeyHeader, timeTokenHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: !slices.Contains(cfg.AllowedOrigins, "*"),
		MaxAge:           corsMaxAge,
	})
}
