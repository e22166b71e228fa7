package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yndnr/yggauth-go/internal/core/domain"
	"github.com/yndnr/yggauth-go/internal/core/service"
	"github.com/yndnr/yggauth-go/internal/telemetry/logger"
	"github.com/yndnr/yggauth-go/internal/telemetry/metric"
)

// StatusSource reports store sizes for /admin/status.
type StatusSource interface {
	SessionCount(ctx context.Context) (int, error)
	AccountCount() int
}

// Sweeper removes expired sessions on demand.
type Sweeper interface {
	SweepOnce(ctx context.Context) (int, error)
}

// AuthObserver records protocol outcomes.
type AuthObserver interface {
	ObserveAuth(op, outcome string)
}

// Config wires the services behind the handler.
type Config struct {
	Auth          *service.AuthService
	Accounts      *service.AccountService
	Textures      *service.TextureService
	SessionServer *service.SessionServerService

	// Status and Sweeper back the admin routes.
	Status  StatusSource
	Sweeper Sweeper

	// AdminToken guards /admin/*. Empty disables the admin routes.
	AdminToken string

	// Metrics serves /metrics when set.
	Metrics http.Handler

	// Observer records authentication outcomes. Optional.
	Observer AuthObserver

	Logger *slog.Logger
	Clock  func() time.Time
}

// Handler is the main HTTP handler that routes requests to appropriate handlers.
type Handler struct {
	auth          *service.AuthService
	accounts      *service.AccountService
	textures      *service.TextureService
	sessionServer *service.SessionServerService

	status     StatusSource
	sweeper    Sweeper
	adminToken string
	metrics    http.Handler
	observer   AuthObserver

	logger  *slog.Logger
	now     func() time.Time
	started time.Time
	mux     *http.ServeMux
}

// New creates a new Handler with the given services.
func New(cfg *Config) *Handler {
	h := &Handler{
		auth:          cfg.Auth,
		accounts:      cfg.Accounts,
		textures:      cfg.Textures,
		sessionServer: cfg.SessionServer,
		status:        cfg.Status,
		sweeper:       cfg.Sweeper,
		adminToken:    cfg.AdminToken,
		metrics:       cfg.Metrics,
		observer:      cfg.Observer,
		logger:        cfg.Logger,
		now:           cfg.Clock,
		mux:           http.NewServeMux(),
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.now == nil {
		h.now = time.Now
	}
	h.started = h.now()

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	// Yggdrasil authserver
	h.mux.HandleFunc("POST /authserver/authenticate", h.handleAuthenticate)
	h.mux.HandleFunc("POST /authserver/refresh", h.handleRefresh)
	h.mux.HandleFunc("POST /authserver/validate", h.handleValidate)
	h.mux.HandleFunc("POST /authserver/invalidate", h.handleInvalidate)
	h.mux.HandleFunc("POST /authserver/signout", h.handleSignout)

	// Yggdrasil sessionserver
	h.mux.HandleFunc("GET /sessionserver/session/minecraft/profile/{uuid}", h.handleProfile)
	h.mux.HandleFunc("POST /sessionserver/session/minecraft/join", h.handleJoin)
	h.mux.HandleFunc("GET /sessionserver/session/minecraft/hasJoined", h.handleHasJoined)

	// Launcher
	h.mux.HandleFunc("GET /launcher/user/profile/{username}", h.handleLauncherProfile)

	// Account API
	h.mux.HandleFunc("POST /api/register", h.handleRegister)
	h.mux.HandleFunc("GET /api/user/info", h.handleUserInfo)
	h.mux.HandleFunc("POST /api/user/logout", h.handleLogout)
	h.mux.HandleFunc("POST /api/user/change-password", h.handleChangePassword)

	// Textures
	h.mux.HandleFunc("GET /api/user/{kind}", h.handleListTextures)
	h.mux.HandleFunc("POST /api/user/{kind}", h.handleAddTexture)
	h.mux.HandleFunc("POST /api/user/{kind}/{id}/activate", h.handleActivateTexture)
	h.mux.HandleFunc("DELETE /api/user/{kind}/{id}", h.handleDeleteTexture)

	// Operations
	h.mux.HandleFunc("GET /health", h.handleHealth)
	if h.metrics != nil {
		h.mux.Handle("GET /metrics", h.metrics)
	}
	if h.adminToken != "" {
		h.mux.HandleFunc("GET /admin/status", h.requireAdmin(h.handleAdminStatus))
		h.mux.HandleFunc("POST /admin/gc", h.requireAdmin(h.handleGC))
	}
}

// ============================================================================
// Encoding
// ============================================================================

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.ErrInvalidArgument.WithDetails("request body too large")
		}
		return domain.ErrInvalidArgument.WithDetails("malformed JSON body")
	}
}

// writeJSON writes a JSON response.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode response",
			"error", err, "request_id", logger.RequestIDFromContext(r.Context()))
	}
}

// ============================================================================
// Error mapping
// ============================================================================

// writeYggdrasilError answers a protocol route failure.
func (h *Handler) writeYggdrasilError(w http.ResponseWriter, r *http.Request, err error) {
	de := domain.AsDomainError(err)
	body := YggdrasilError{Error: exceptionForbiddenOperation, ErrorMessage: de.Message}
	status := http.StatusForbidden

	switch domain.KindOf(de) {
	case domain.KindInvalidArgument:
		status = http.StatusBadRequest
		body.Error = exceptionIllegalArgument
	case domain.KindInternal:
		h.logInternal(r, de)
		status = http.StatusInternalServerError
		body = YggdrasilError{Error: exceptionInternal, ErrorMessage: "An internal server error occurred."}
	}

	w.Header().Set("X-Error-Code", de.Code)
	h.writeJSON(w, r, status, body)
}

// writeAPIError answers an /api or /launcher route failure.
func (h *Handler) writeAPIError(w http.ResponseWriter, r *http.Request, err error) {
	de := domain.AsDomainError(err)
	status := apiStatus(domain.KindOf(de))
	if status == http.StatusInternalServerError {
		h.logInternal(r, de)
	}

	message := de.Message
	if de.Details != "" && status == http.StatusBadRequest {
		message = de.Message + " " + de.Details
	}

	w.Header().Set("X-Error-Code", de.Code)
	h.writeJSON(w, r, status, APIError{Error: de.Code, Message: message})
}

func apiStatus(kind domain.Kind) int {
	switch kind {
	case domain.KindInvalidArgument:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) logInternal(r *http.Request, err *domain.DomainError) {
	h.logger.ErrorContext(r.Context(), "internal error",
		"error", err,
		"path", r.URL.Path,
		"request_id", logger.RequestIDFromContext(r.Context()),
	)
}

// observe records the outcome of a protocol operation.
func (h *Handler) observe(op string, err error) {
	if h.observer == nil {
		return
	}
	switch {
	case err == nil:
		h.observer.ObserveAuth(op, metric.OutcomeSuccess)
	case domain.KindOf(err) == domain.KindInternal:
		h.observer.ObserveAuth(op, metric.OutcomeError)
	default:
		h.observer.ObserveAuth(op, metric.OutcomeFailure)
	}
}

// bearerToken returns the token of an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) < len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
