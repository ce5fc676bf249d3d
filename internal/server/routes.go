package server

import (
	"log/slog"
	"net/http"

	"github.com/maauso/clipthumb/internal/metrics"
)

// Config contains server configuration options.
type Config struct {
	// AllowedOrigins is the list of allowed CORS origins.
	AllowedOrigins []string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: []string{"*"},
	}
}

// NewRouter creates a new HTTP router with all routes configured.
// It uses Go 1.22+ ServeMux with method-based routing.
func NewRouter(h *Handlers, logger *slog.Logger, cfg Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /media/duration", h.Duration)
	mux.HandleFunc("POST /media/thumbnail", h.Thumbnail)
	mux.HandleFunc("POST /media/timeline", h.Timeline)
	mux.HandleFunc("POST /images/read", h.ReadImage)
	mux.HandleFunc("POST /files/exclude", h.Exclude)
	mux.Handle("GET /metrics", metrics.Handler())

	chain := ChainMiddleware(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(cfg.AllowedOrigins),
	)

	return chain(mux)
}
