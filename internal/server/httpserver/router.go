package httpserver

import (
	"log/slog"
	"net/http"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Handler serves every route.
	Handler http.Handler

	// Logger for recovery and audit logs.
	Logger *slog.Logger

	// Metrics receives per-request observations. Nil disables them.
	Metrics RequestObserver

	// CORSAllowedOrigins is the list of allowed CORS origins (empty = allow all).
	CORSAllowedOrigins []string

	// MaxBodyBytes bounds request bodies. Zero disables the limit.
	MaxBodyBytes int64

	// EnableAudit enables audit logging for all requests.
	EnableAudit bool
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Logger:       slog.Default(),
		MaxBodyBytes: 1 << 20,
		EnableAudit:  true,
	}
}

// NewRouter wraps cfg.Handler in the middleware chain.
func NewRouter(cfg *RouterConfig) http.Handler {
	if cfg == nil {
		cfg = DefaultRouterConfig()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	h := cfg.Handler
	if h == nil {
		h = http.NotFoundHandler()
	}

	chain := []Middleware{Recover(log), RequestID()}
	if cfg.EnableAudit {
		chain = append(chain, Audit(log))
	}
	chain = append(chain,
		CORS(cfg.CORSAllowedOrigins),
		MaxBody(cfg.MaxBodyBytes),
		Metrics(cfg.Metrics),
	)
	return Chain(h, chain...)
}
