package handler

import (
	"net/http"

	"github.com/yndnr/yggauth-go/internal/core/service"
)

// Protocol operation labels for metrics.
const (
	opAuthenticate = "authenticate"
	opRefresh      = "refresh"
	opValidate     = "validate"
	opInvalidate   = "invalidate"
	opSignout      = "signout"
	opJoin         = "join"
	opHasJoined    = "has_joined"
)

// handleAuthenticate handles POST /authserver/authenticate.
func (h *Handler) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req AuthenticateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.observe(opAuthenticate, err)
		h.writeYggdrasilError(w, r, err)
		return
	}

	resp, err := h.auth.Authenticate(r.Context(), &service.AuthenticateRequest{
		Agent:       req.Agent,
		Username:    req.Username,
		Password:    req.Password,
		ClientToken: req.ClientToken,
		RequestUser: req.RequestUser,
	})
	h.observe(opAuthenticate, err)
	if err != nil {
		h.writeYggdrasilError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, &AuthenticateResponse{
		AccessToken:       resp.AccessToken,
		ClientToken:       resp.ClientToken,
		SelectedProfile:   profileRef(resp.SelectedProfile),
		AvailableProfiles: profileRefs(resp.AvailableProfiles),
		User:              userBlock(resp.User),
	})
}

// handleRefresh handles POST /authserver/refresh.
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		h.observe(opRefresh, err)
		h.writeYggdrasilError(w, r, err)
		return
	}

	var selected string
	if req.SelectedProfile != nil {
		selected = req.SelectedProfile.ID
	}
	resp, err := h.auth.Refresh(r.Context(), &service.RefreshRequest{
		AccessToken:       req.AccessToken,
		ClientToken:       req.ClientToken,
		SelectedProfileID: selected,
		RequestUser:       req.RequestUser,
	})
	h.observe(opRefresh, err)
	if err != nil {
		h.writeYggdrasilError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, &RefreshResponse{
		AccessToken:     resp.AccessToken,
		ClientToken:     resp.ClientToken,
		SelectedProfile: profileRef(resp.SelectedProfile),
		User:            userBlock(resp.User),
	})
}

// handleValidate handles POST /authserver/validate.
func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req TokenPair
	if err := decodeJSON(r, &req); err != nil {
		h.observe(opValidate, err)
		h.writeYggdrasilError(w, r, err)
		return
	}

	err := h.auth.Validate(r.Context(), &service.ValidateRequest{
		AccessToken: req.AccessToken,
		ClientToken: req.ClientToken,
	})
	h.observe(opValidate, err)
	if err != nil {
		h.writeYggdrasilError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleInvalidate handles POST /authserver/invalidate.
func (h *Handler) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	var req TokenPair
	if err := decodeJSON(r, &req); err != nil {
		h.observe(opInvalidate, err)
		h.writeYggdrasilError(w, r, err)
		return
	}

	err := h.auth.Invalidate(r.Context(), &service.InvalidateRequest{
		AccessToken: req.AccessToken,
		ClientToken: req.ClientToken,
	})
	h.observe(opInvalidate, err)
	if err != nil {
		h.writeYggdrasilError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSignout handles POST /authserver/signout.
func (h *Handler) handleSignout(w http.ResponseWriter, r *http.Request) {
	var req SignoutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.observe(opSignout, err)
		h.writeYggdrasilError(w, r, err)
		return
	}

	err := h.auth.Signout(r.Context(), &service.SignoutRequest{
		Username: req.Username,
		Password: req.Password,
	})
	h.observe(opSignout, err)
	if err != nil {
		h.writeYggdrasilError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
