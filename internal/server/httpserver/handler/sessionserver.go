package handler

import (
	"errors"
	"net/http"

	"github.com/yndnr/yggauth-go/internal/core/domain"
	"github.com/yndnr/yggauth-go/internal/core/service"
)

// handleProfile handles GET /sessionserver/session/minecraft/profile/{uuid}.
// An unknown profile answers 204 with no body.
func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessionServer.Profile(r.Context(), r.PathValue("uuid"))
	if errors.Is(err, domain.ErrProfileNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.writeYggdrasilError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, view)
}

// handleJoin handles POST /sessionserver/session/minecraft/join.
func (h *Handler) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if err := decodeJSON(r, &req); err != nil {
		h.observe(opJoin, err)
		h.writeYggdrasilError(w, r, err)
		return
	}

	err := h.sessionServer.Join(r.Context(), &service.JoinRequest{
		AccessToken:     req.AccessToken,
		SelectedProfile: req.SelectedProfile,
		ServerID:        req.ServerID,
	})
	h.observe(opJoin, err)
	if err != nil {
		h.writeYggdrasilError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleHasJoined handles GET /sessionserver/session/minecraft/hasJoined.
// A missing ticket answers 204 with no body.
func (h *Handler) handleHasJoined(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.sessionServer.HasJoined(r.Context(), q.Get("username"), q.Get("serverId"))
	h.observe(opHasJoined, err)
	if errors.Is(err, domain.ErrProfileNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.writeYggdrasilError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, view)
}

// handleLauncherProfile handles GET /launcher/user/profile/{username}.
func (h *Handler) handleLauncherProfile(w http.ResponseWriter, r *http.Request) {
	info, err := h.sessionServer.LauncherProfile(r.Context(), r.PathValue("username"))
	if errors.Is(err, domain.ErrAccountNotFound) {
		h.writeJSON(w, r, http.StatusNotFound, APIError{Error: "UserNotFound", Message: "User not found."})
		return
	}
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, launcherProfile(info))
}
