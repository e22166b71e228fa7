package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/yggauth-go/internal/core/service"
	"github.com/yndnr/yggauth-go/pkg/token"
)

func TestProfileRoute(t *testing.T) {
	e := newTestEnv(t)
	reg := e.register(t, "alice", "a@x.com", "secret1", "AliceMC")

	for _, id := range []string{reg.ProfileID, token.MustFormatIdentifier(reg.ProfileID)} {
		rec := e.do(t, http.MethodGet, "/sessionserver/session/minecraft/profile/"+id, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		view := decode[service.ProfileView](t, rec)
		assert.Equal(t, reg.ProfileID, view.ID)
		assert.Equal(t, "AliceMC", view.Name)
		require.Len(t, view.Properties, 1)
		assert.Equal(t, service.TexturesProperty, view.Properties[0].Name)
	}

	rec := e.do(t, http.MethodGet, "/sessionserver/session/minecraft/profile/0123456789abcdef0123456789abcdef", nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = e.do(t, http.MethodGet, "/sessionserver/session/minecraft/profile/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "IllegalArgumentException", decode[YggdrasilError](t, rec).Error)
}

func TestJoinAndHasJoined(t *testing.T) {
	e := newTestEnv(t)
	reg := e.register(t, "alice", "a@x.com", "secret1", "AliceMC")
	other := e.register(t, "carol", "c@x.com", "secret2", "CarolMC")
	auth := e.authenticate(t, "alice", "secret1")

	hasJoined := func(username, serverID string) int {
		q := url.Values{"username": {username}, "serverId": {serverID}}
		return e.do(t, http.MethodGet, "/sessionserver/session/minecraft/hasJoined?"+q.Encode(), nil, "").Code
	}

	assert.Equal(t, http.StatusNoContent, hasJoined("AliceMC", "srv-1"))

	rec := e.do(t, http.MethodPost, "/sessionserver/session/minecraft/join", JoinRequest{
		AccessToken: auth.AccessToken, SelectedProfile: other.ProfileID, ServerID: "srv-1",
	}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodPost, "/sessionserver/session/minecraft/join", JoinRequest{
		AccessToken: auth.AccessToken, SelectedProfile: reg.ProfileID,
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/sessionserver/session/minecraft/join", JoinRequest{
		AccessToken: auth.AccessToken, SelectedProfile: reg.ProfileID, ServerID: "srv-1",
	}, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	q := url.Values{"username": {"AliceMC"}, "serverId": {"srv-1"}}
	rec = e.do(t, http.MethodGet, "/sessionserver/session/minecraft/hasJoined?"+q.Encode(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reg.ProfileID, decode[service.ProfileView](t, rec).ID)

	assert.Equal(t, http.StatusNoContent, hasJoined("AliceMC", "srv-2"))
	assert.Equal(t, http.StatusBadRequest, hasJoined("", "srv-1"))
}

func TestLauncherProfileRoute(t *testing.T) {
	e := newTestEnv(t)
	reg := e.register(t, "alice", "a@x.com", "secret1", "AliceMC")
	auth := e.authenticate(t, "alice", "secret1")

	rec := e.do(t, http.MethodPost, "/api/user/skins", AddTextureRequest{
		Name: "main", URL: "https://cdn.example.com/alice.png",
	}, auth.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodGet, "/launcher/user/profile/alice", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	lp := decode[LauncherProfile](t, rec)
	assert.Equal(t, reg.UserID, lp.ID)
	assert.Equal(t, "alice", lp.Username)
	assert.Equal(t, "alice", lp.Name)
	assert.Equal(t, []TextureURL{{URL: "https://cdn.example.com/alice.png"}}, lp.Skins)
	assert.Empty(t, lp.Capes)
	require.Len(t, lp.Profiles, 1)
	assert.Equal(t, "AliceMC", lp.Profiles[0].Name)

	rec = e.do(t, http.MethodGet, "/launcher/user/profile/nobody", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"UserNotFound","message":"User not found."}`, rec.Body.String())
}
