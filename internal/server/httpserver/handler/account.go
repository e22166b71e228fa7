package handler

import (
	"net/http"

	"github.com/yndnr/yggauth-go/internal/core/service"
)

// handleRegister handles POST /api/register.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	resp, err := h.accounts.Register(r.Context(), &service.RegisterRequest{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		ProfileName: req.ProfileName,
	})
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, &RegisterResponse{
		Success:   true,
		Message:   "Account created.",
		UserID:    resp.Account.ID,
		ProfileID: resp.Profile.ID,
	})
}

// handleUserInfo handles GET /api/user/info.
func (h *Handler) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.accounts.UserInfo(r.Context(), bearerToken(r))
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, userInfoResponse(info))
}

// handleLogout handles POST /api/user/logout.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Logout(r.Context(), bearerToken(r)); err != nil {
		h.writeAPIError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, &MessageResponse{Success: true, Message: "Session closed."})
}

// handleChangePassword handles POST /api/user/change-password.
func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	err := h.accounts.ChangePassword(r.Context(), &service.ChangePasswordRequest{
		AccessToken:     bearerToken(r),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, &MessageResponse{Success: true, Message: "Password updated."})
}
