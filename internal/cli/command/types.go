package command

import (
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/yggauth-go/internal/cli/output"
)

// Wire types mirror the server's JSON bodies. Only the fields the CLI reads
// or sends are declared.

type agent struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

var minecraftAgent = &agent{Name: "Minecraft", Version: 1}

type authenticateRequest struct {
	Agent       *agent `json:"agent"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	ClientToken string `json:"clientToken,omitempty"`
	RequestUser bool   `json:"requestUser"`
}

type profileRef struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type userBlock struct {
	ID       string `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
}

type authenticateResponse struct {
	AccessToken       string       `json:"accessToken"`
	ClientToken       string       `json:"clientToken"`
	SelectedProfile   *profileRef  `json:"selectedProfile"`
	AvailableProfiles []profileRef `json:"availableProfiles"`
	User              *userBlock   `json:"user"`
}

type refreshRequest struct {
	AccessToken     string      `json:"accessToken"`
	ClientToken     string      `json:"clientToken"`
	SelectedProfile *profileRef `json:"selectedProfile,omitempty"`
	RequestUser     bool        `json:"requestUser"`
}

type refreshResponse struct {
	AccessToken     string      `json:"accessToken"`
	ClientToken     string      `json:"clientToken"`
	SelectedProfile *profileRef `json:"selectedProfile"`
	User            *userBlock  `json:"user"`
}

type tokenPair struct {
	AccessToken string `json:"accessToken"`
	ClientToken string `json:"clientToken,omitempty"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type joinRequest struct {
	AccessToken     string `json:"accessToken"`
	SelectedProfile string `json:"selectedProfile"`
	ServerID        string `json:"serverId"`
}

type profileProperty struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature,omitempty"`
}

type profileResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Properties []profileProperty `json:"properties"`
}

type texturesPayload struct {
	Timestamp   int64  `json:"timestamp"`
	ProfileID   string `json:"profileId"`
	ProfileName string `json:"profileName"`
	Textures    map[string]struct {
		URL      string `json:"url"`
		Metadata *struct {
			Model string `json:"model"`
		} `json:"metadata"`
	} `json:"textures"`
}

type textureURL struct {
	URL string `json:"url" yaml:"url"`
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	ProfileName string `json:"profileName,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type addTextureRequest struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Model string `json:"model,omitempty"`
}

// ============================================================================
// Rendered views
// ============================================================================

// Result is the document printed for operations without a response body.
type Result struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message" yaml:"message"`
}

// Session is the outcome of authenticate and refresh.
type Session struct {
	AccessToken       string       `json:"accessToken" yaml:"access_token"`
	ClientToken       string       `json:"clientToken" yaml:"client_token"`
	SelectedProfile   *profileRef  `json:"selectedProfile" yaml:"selected_profile"`
	AvailableProfiles []profileRef `json:"availableProfiles,omitempty" yaml:"available_profiles,omitempty"`
	User              *userBlock   `json:"user,omitempty" yaml:"user,omitempty"`
}

// Table implements output.Tabler.
func (s *Session) Table() *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("access token", s.AccessToken)
	t.AddRow("client token", s.ClientToken)
	if s.SelectedProfile != nil {
		t.AddRow("profile", s.SelectedProfile.Name+" ("+s.SelectedProfile.ID+")")
	} else {
		t.AddRow("profile", "-")
	}
	if len(s.AvailableProfiles) > 0 {
		t.AddRow("available", strconv.Itoa(len(s.AvailableProfiles)))
	}
	if s.User != nil {
		t.AddRow("user", s.User.Username+" ("+s.User.ID+")")
	}
	return t
}

// Registration is the outcome of account register.
type Registration struct {
	Message   string `json:"message" yaml:"message"`
	UserID    string `json:"userId" yaml:"user_id"`
	ProfileID string `json:"profileId" yaml:"profile_id"`
}

// Texture is a skin or cape as listed by /api/user/{kind}.
type Texture struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	URL        string `json:"url" yaml:"url"`
	Model      string `json:"model,omitempty" yaml:"model,omitempty"`
	UploadedAt int64  `json:"uploadedAt" yaml:"uploaded_at"`
}

// AccountInfo is the body of GET /api/user/info.
type AccountInfo struct {
	User struct {
		ID        string `json:"id" yaml:"id"`
		Username  string `json:"username" yaml:"username"`
		Email     string `json:"email" yaml:"email"`
		CreatedAt int64  `json:"createdAt" yaml:"created_at"`
		LastLogin int64  `json:"lastLogin,omitempty" yaml:"last_login,omitempty"`
	} `json:"user" yaml:"user"`
	Profiles []struct {
		ID        string `json:"id" yaml:"id"`
		Name      string `json:"name" yaml:"name"`
		CreatedAt int64  `json:"createdAt" yaml:"created_at"`
	} `json:"profiles" yaml:"profiles"`
	Skin *Texture `json:"skin,omitempty" yaml:"skin,omitempty"`
	Cape *Texture `json:"cape,omitempty" yaml:"cape,omitempty"`
}

// Table implements output.Tabler.
func (a *AccountInfo) Table() *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("id", a.User.ID)
	t.AddRow("username", a.User.Username)
	t.AddRow("email", a.User.Email)
	t.AddRow("created", millis(a.User.CreatedAt))
	t.AddRow("last login", millis(a.User.LastLogin))
	for _, p := range a.Profiles {
		t.AddRow("profile", p.Name+" ("+p.ID+")")
	}
	t.AddRow("skin", textureCell(a.Skin))
	t.AddRow("cape", textureCell(a.Cape))
	return t
}

// TextureList is the body of GET /api/user/{kind}.
type TextureList struct {
	Textures []Texture `json:"textures" yaml:"textures"`
	ActiveID string    `json:"activeId,omitempty" yaml:"active_id,omitempty"`
}

// Table implements output.Tabler.
func (l *TextureList) Table() *output.Table {
	t := output.NewTable("ACTIVE", "ID", "NAME", "MODEL", "URL", "UPLOADED")
	for _, tx := range l.Textures {
		active := ""
		if tx.ID == l.ActiveID {
			active = "*"
		}
		t.AddRow(active, tx.ID, tx.Name, output.FormatValue(tx.Model), tx.URL, millis(tx.UploadedAt))
	}
	return t
}

// AddedTexture is the body of POST /api/user/{kind}.
type AddedTexture struct {
	Texture Texture `json:"texture" yaml:"texture"`
	Active  bool    `json:"active" yaml:"active"`
}

// Table implements output.Tabler.
func (a *AddedTexture) Table() *output.Table {
	t := output.NewTable("ID", "NAME", "URL", "ACTIVE")
	t.AddRow(a.Texture.ID, a.Texture.Name, a.Texture.URL, output.FormatValue(a.Active))
	return t
}

// GameProfile is a sessionserver profile with its textures decoded.
type GameProfile struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Skin      string `json:"skin,omitempty" yaml:"skin,omitempty"`
	SkinModel string `json:"skinModel,omitempty" yaml:"skin_model,omitempty"`
	Cape      string `json:"cape,omitempty" yaml:"cape,omitempty"`
	Signed    bool   `json:"signed" yaml:"signed"`
}

// LauncherProfile is the body of GET /launcher/user/profile/{username}.
type LauncherProfile struct {
	ID       string       `json:"id" yaml:"id"`
	Username string       `json:"username" yaml:"username"`
	Name     string       `json:"name" yaml:"name"`
	Skins    []textureURL `json:"skins" yaml:"skins"`
	Capes    []textureURL `json:"capes" yaml:"capes"`
	Profiles []struct {
		ID    string       `json:"id" yaml:"id"`
		Name  string       `json:"name" yaml:"name"`
		Skins []textureURL `json:"skins" yaml:"skins"`
		Capes []textureURL `json:"capes" yaml:"capes"`
	} `json:"profiles" yaml:"profiles"`
}

// Table implements output.Tabler.
func (l *LauncherProfile) Table() *output.Table {
	t := output.NewTable("PROFILE ID", "NAME", "SKIN", "CAPE")
	for _, p := range l.Profiles {
		t.AddRow(p.ID, p.Name, joinURLs(p.Skins), joinURLs(p.Capes))
	}
	return t
}

// Health is the body of GET /health.
type Health struct {
	Status    string `json:"status" yaml:"status"`
	Version   string `json:"version" yaml:"version"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
}

// Status is the body of GET /admin/status.
type Status struct {
	Version        string `json:"version" yaml:"version"`
	Commit         string `json:"commit" yaml:"commit"`
	UptimeSeconds  int64  `json:"uptime_seconds" yaml:"uptime_seconds"`
	SessionsActive int    `json:"sessions_active" yaml:"sessions_active"`
	AccountsTotal  int    `json:"accounts_total" yaml:"accounts_total"`
	JoinTickets    int    `json:"join_tickets" yaml:"join_tickets"`
}

// Table implements output.Tabler.
func (s *Status) Table() *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("version", s.Version+" ("+s.Commit+")")
	t.AddRow("uptime", (time.Duration(s.UptimeSeconds) * time.Second).String())
	t.AddRow("sessions", strconv.Itoa(s.SessionsActive))
	t.AddRow("accounts", strconv.Itoa(s.AccountsTotal))
	t.AddRow("join tickets", strconv.Itoa(s.JoinTickets))
	return t
}

// GCResult is the body of POST /admin/gc.
type GCResult struct {
	Removed   int `json:"removed" yaml:"removed"`
	Remaining int `json:"remaining" yaml:"remaining"`
}

// Version pairs the CLI build with the server it talks to.
type Version struct {
	Client    string `json:"client" yaml:"client"`
	Commit    string `json:"commit" yaml:"commit"`
	GoVersion string `json:"goVersion" yaml:"go_version"`
	Server    string `json:"server,omitempty" yaml:"server,omitempty"`
}

func millis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return output.FormatValue(time.UnixMilli(ms))
}

func textureCell(t *Texture) string {
	if t == nil {
		return "-"
	}
	return t.Name + " " + t.URL
}

func joinURLs(urls []textureURL) string {
	if len(urls) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(urls))
	for _, u := range urls {
		parts = append(parts, u.URL)
	}
	return strings.Join(parts, ", ")
}
