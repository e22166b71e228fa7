package handler

import (
	"net/http"

	"github.com/yndnr/yggauth-go/internal/core/domain"
	"github.com/yndnr/yggauth-go/internal/infra/buildinfo"
	"github.com/yndnr/yggauth-go/pkg/token"
)

// handleHealth handles GET /health.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, &HealthResponse{
		Status:    "ok",
		Version:   buildinfo.Version,
		Timestamp: h.now().UnixMilli(),
	})
}

// requireAdmin guards next with the configured admin bearer token.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !token.Equal(bearerToken(r), h.adminToken) {
			h.logger.WarnContext(r.Context(), "admin request rejected", "path", r.URL.Path)
			h.writeAPIError(w, r, domain.ErrUnauthorized)
			return
		}
		next(w, r)
	}
}

// handleAdminStatus handles GET /admin/status.
func (h *Handler) handleAdminStatus(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Get()
	resp := &StatusResponse{
		Version:       info.Version,
		Commit:        info.Commit,
		UptimeSeconds: int64(h.now().Sub(h.started).Seconds()),
	}

	if h.status != nil {
		sessions, err := h.status.SessionCount(r.Context())
		if err != nil {
			h.writeAPIError(w, r, err)
			return
		}
		resp.SessionsActive = sessions
		resp.AccountsTotal = h.status.AccountCount()
	}
	if h.sessionServer != nil {
		resp.JoinTickets = h.sessionServer.TicketCount()
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

// handleGC handles POST /admin/gc.
func (h *Handler) handleGC(w http.ResponseWriter, r *http.Request) {
	if h.sweeper == nil {
		h.writeAPIError(w, r, domain.ErrInternal.WithDetails("sweeper not configured"))
		return
	}

	removed, err := h.sweeper.SweepOnce(r.Context())
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}
	resp := &GCResponse{Removed: removed}
	if h.status != nil {
		if resp.Remaining, err = h.status.SessionCount(r.Context()); err != nil {
			h.writeAPIError(w, r, err)
			return
		}
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}
