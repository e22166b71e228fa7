package handler

import (
	"github.com/yndnr/yggauth-go/internal/core/domain"
	"github.com/yndnr/yggauth-go/internal/core/service"
)

// ============================================================================
// Error bodies
// ============================================================================

// YggdrasilError is the failure body of the protocol routes.
type YggdrasilError struct {
	Error        string `json:"error"`
	ErrorMessage string `json:"errorMessage"`
}

// APIError is the failure body of the /api and /launcher routes.
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Yggdrasil exception names.
const (
	exceptionIllegalArgument    = "IllegalArgumentException"
	exceptionForbiddenOperation = "ForbiddenOperationException"
	exceptionInternal           = "InternalServerError"
)

// ============================================================================
// authserver
// ============================================================================

// AuthenticateRequest is the body of POST /authserver/authenticate.
type AuthenticateRequest struct {
	Agent       *domain.Agent `json:"agent"`
	Username    string        `json:"username"`
	Password    string        `json:"password"`
	ClientToken string        `json:"clientToken,omitempty"`
	RequestUser bool          `json:"requestUser,omitempty"`
}

// ProfileRef is the {id, name} pair used throughout the protocol.
type ProfileRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserProperty is a user attribute. The list is always empty.
type UserProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// User is the optional user block of authenticate and refresh responses.
type User struct {
	ID         string         `json:"id"`
	Username   string         `json:"username"`
	Properties []UserProperty `json:"properties"`
}

// AuthenticateResponse is the success body of POST /authserver/authenticate.
type AuthenticateResponse struct {
	AccessToken       string       `json:"accessToken"`
	ClientToken       string       `json:"clientToken"`
	SelectedProfile   *ProfileRef  `json:"selectedProfile"`
	AvailableProfiles []ProfileRef `json:"availableProfiles"`
	User              *User        `json:"user,omitempty"`
}

// RefreshRequest is the body of POST /authserver/refresh.
type RefreshRequest struct {
	AccessToken     string      `json:"accessToken"`
	ClientToken     string      `json:"clientToken"`
	SelectedProfile *ProfileRef `json:"selectedProfile,omitempty"`
	RequestUser     bool        `json:"requestUser,omitempty"`
}

// RefreshResponse is the success body of POST /authserver/refresh.
type RefreshResponse struct {
	AccessToken     string      `json:"accessToken"`
	ClientToken     string      `json:"clientToken"`
	SelectedProfile *ProfileRef `json:"selectedProfile"`
	User            *User       `json:"user,omitempty"`
}

// TokenPair is the body of validate and invalidate.
type TokenPair struct {
	AccessToken string `json:"accessToken"`
	ClientToken string `json:"clientToken,omitempty"`
}

// SignoutRequest is the body of POST /authserver/signout.
type SignoutRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ============================================================================
// sessionserver / launcher
// ============================================================================

// JoinRequest is the body of POST /sessionserver/session/minecraft/join.
type JoinRequest struct {
	AccessToken     string `json:"accessToken"`
	SelectedProfile string `json:"selectedProfile"`
	ServerID        string `json:"serverId"`
}

// TextureURL is an entry of the launcher skins and capes lists.
type TextureURL struct {
	URL string `json:"url"`
}

// LauncherProfileEntry is one profile in a LauncherProfile response.
type LauncherProfileEntry struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Skins []TextureURL `json:"skins"`
	Capes []TextureURL `json:"capes"`
}

// LauncherProfile is the body of GET /launcher/user/profile/{username}.
type LauncherProfile struct {
	ID       string                 `json:"id"`
	Username string                 `json:"username"`
	Name     string                 `json:"name"`
	Skins    []TextureURL           `json:"skins"`
	Capes    []TextureURL           `json:"capes"`
	Profiles []LauncherProfileEntry `json:"profiles"`
}

// ============================================================================
// /api
// ============================================================================

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	ProfileName string `json:"profileName"`
}

// RegisterResponse is the success body of POST /api/register.
type RegisterResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	ProfileID string `json:"profileId"`
}

// MessageResponse is a plain success acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AccountInfo is the user block of GET /api/user/info.
type AccountInfo struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
	LastLogin int64  `json:"lastLogin,omitempty"`
}

// ProfileInfo is a profile entry of GET /api/user/info.
type ProfileInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

// TextureInfo is a skin or cape on the /api routes.
type TextureInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	Model      string `json:"model,omitempty"`
	UploadedAt int64  `json:"uploadedAt"`
}

// UserInfoResponse is the success body of GET /api/user/info.
type UserInfoResponse struct {
	Success  bool          `json:"success"`
	User     AccountInfo   `json:"user"`
	Profiles []ProfileInfo `json:"profiles"`
	Skin     *TextureInfo  `json:"skin,omitempty"`
	Cape     *TextureInfo  `json:"cape,omitempty"`
}

// ChangePasswordRequest is the body of POST /api/user/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AddTextureRequest is the body of POST /api/user/{kind}.
type AddTextureRequest struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Model string `json:"model,omitempty"`
}

// AddTextureResponse is the success body of POST /api/user/{kind}.
type AddTextureResponse struct {
	Success bool        `json:"success"`
	Texture TextureInfo `json:"texture"`
	Active  bool        `json:"active"`
}

// TextureListResponse is the success body of GET /api/user/{kind}.
type TextureListResponse struct {
	Success  bool          `json:"success"`
	Textures []TextureInfo `json:"textures"`
	ActiveID string        `json:"activeId,omitempty"`
}

// ============================================================================
// health / admin
// ============================================================================

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp int64  `json:"timestamp"`
}

// StatusResponse is the body of GET /admin/status.
type StatusResponse struct {
	Version        string `json:"version"`
	Commit         string `json:"commit"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	SessionsActive int    `json:"sessions_active"`
	AccountsTotal  int    `json:"accounts_total"`
	JoinTickets    int    `json:"join_tickets"`
}

// GCResponse is the body of POST /admin/gc.
type GCResponse struct {
	Removed   int `json:"removed"`
	Remaining int `json:"remaining"`
}

// ============================================================================
// Conversions
// ============================================================================

func profileRef(p *domain.Profile) *ProfileRef {
	if p == nil {
		return nil
	}
	return &ProfileRef{ID: p.ID, Name: p.Name}
}

func profileRefs(ps []*domain.Profile) []ProfileRef {
	out := make([]ProfileRef, 0, len(ps))
	for _, p := range ps {
		out = append(out, ProfileRef{ID: p.ID, Name: p.Name})
	}
	return out
}

func userBlock(a *domain.Account) *User {
	if a == nil {
		return nil
	}
	return &User{ID: a.ID, Username: a.Username, Properties: []UserProperty{}}
}

func textureInfo(t *domain.Texture) TextureInfo {
	return TextureInfo{
		ID:         t.ID,
		Name:       t.Name,
		URL:        t.URL,
		Model:      t.Model,
		UploadedAt: t.CreatedAt,
	}
}

func optionalTextureInfo(t *domain.Texture) *TextureInfo {
	if t == nil {
		return nil
	}
	info := textureInfo(t)
	return &info
}

func textureURLs(t *domain.Texture) []TextureURL {
	if t == nil {
		return []TextureURL{}
	}
	return []TextureURL{{URL: t.URL}}
}

func launcherProfile(info *service.UserInfo) *LauncherProfile {
	skins := textureURLs(info.Skin)
	capes := textureURLs(info.Cape)

	profiles := make([]LauncherProfileEntry, 0, len(info.Profiles))
	for _, p := range info.Profiles {
		profiles = append(profiles, LauncherProfileEntry{ID: p.ID, Name: p.Name, Skins: skins, Capes: capes})
	}
	return &LauncherProfile{
		ID:       info.Account.ID,
		Username: info.Account.Username,
		Name:     info.Account.Username,
		Skins:    skins,
		Capes:    capes,
		Profiles: profiles,
	}
}

func userInfoResponse(info *service.UserInfo) *UserInfoResponse {
	profiles := make([]ProfileInfo, 0, len(info.Profiles))
	for _, p := range info.Profiles {
		profiles = append(profiles, ProfileInfo{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt})
	}
	return &UserInfoResponse{
		Success: true,
		User: AccountInfo{
			ID:        info.Account.ID,
			Username:  info.Account.Username,
			Email:     info.Account.Email,
			CreatedAt: info.Account.CreatedAt,
			LastLogin: info.Account.LastLogin,
		},
		Profiles: profiles,
		Skin:     optionalTextureInfo(info.Skin),
		Cape:     optionalTextureInfo(info.Cape),
	}
}
