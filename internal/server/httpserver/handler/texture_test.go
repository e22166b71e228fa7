package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextureRoutes(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice", "a@x.com", "secret1", "AliceMC")
	auth := e.authenticate(t, "alice", "secret1")
	tok := auth.AccessToken

	rec := e.do(t, http.MethodPost, "/api/user/capes", AddTextureRequest{
		Name: "first", URL: "https://cdn.example.com/cape1.png",
	}, tok)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[AddTextureResponse](t, rec)
	assert.True(t, first.Active)

	rec = e.do(t, http.MethodPost, "/api/user/capes", AddTextureRequest{
		Name: "second", URL: "https://cdn.example.com/cape2.png",
	}, tok)
	require.Equal(t, http.StatusCreated, rec.Code)
	second := decode[AddTextureResponse](t, rec)
	assert.False(t, second.Active)

	rec = e.do(t, http.MethodGet, "/api/user/capes", nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[TextureListResponse](t, rec)
	require.Len(t, list.Textures, 2)
	assert.Equal(t, first.Texture.ID, list.ActiveID)

	rec = e.do(t, http.MethodPost, "/api/user/capes/"+second.Texture.ID+"/activate", nil, tok)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/user/info", nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[UserInfoResponse](t, rec)
	require.NotNil(t, info.Cape)
	assert.Equal(t, second.Texture.ID, info.Cape.ID)

	rec = e.do(t, http.MethodDelete, "/api/user/capes/"+first.Texture.ID, nil, tok)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/user/capes/"+first.Texture.ID, nil, tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/user/skins", nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[TextureListResponse](t, rec).Textures)
}

func TestTextureRoutes_Rejections(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice", "a@x.com", "secret1", "AliceMC")
	auth := e.authenticate(t, "alice", "secret1")

	rec := e.do(t, http.MethodGet, "/api/user/hats", nil, auth.AccessToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/user/skins", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/user/skins", AddTextureRequest{Name: "x", URL: "not a url"}, auth.AccessToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
