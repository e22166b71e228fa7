package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yndnr/yggauth-go/internal/core/domain"
	"github.com/yndnr/yggauth-go/internal/telemetry/metric"
	"github.com/yndnr/yggauth-go/pkg/password"
)

func TestAliceScenario(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice", "a@x.com", "secret1", "AliceMC")

	auth := e.authenticate(t, "alice", "secret1")
	require.NotNil(t, auth.SelectedProfile)
	assert.Equal(t, "AliceMC", auth.SelectedProfile.Name)
	assert.Len(t, auth.AccessToken, 64)
	assert.Len(t, auth.ClientToken, 32)
	require.Len(t, auth.AvailableProfiles, 1)
	assert.Nil(t, auth.User)

	rec := e.do(t, http.MethodPost, "/authserver/refresh", RefreshRequest{
		AccessToken: auth.AccessToken,
		ClientToken: auth.ClientToken,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	refreshed := decode[RefreshResponse](t, rec)
	assert.NotEqual(t, auth.AccessToken, refreshed.AccessToken)
	assert.Equal(t, auth.ClientToken, refreshed.ClientToken)
	assert.Equal(t, "AliceMC", refreshed.SelectedProfile.Name)

	rec = e.do(t, http.MethodPost, "/authserver/validate", TokenPair{AccessToken: auth.AccessToken}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decode[YggdrasilError](t, rec)
	assert.Equal(t, "ForbiddenOperationException", body.Error)
	assert.Equal(t, "Invalid token.", body.ErrorMessage)

	rec = e.do(t, http.MethodPost, "/authserver/validate", TokenPair{AccessToken: refreshed.AccessToken}, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	assert.Equal(t, 1, e.observer.count(opAuthenticate, metric.OutcomeSuccess))
	assert.Equal(t, 1, e.observer.count(opValidate, metric.OutcomeFailure))
}

func TestAuthenticate_LoginByEmailWithUser(t *testing.T) {
	e := newTestEnv(t)
	reg := e.register(t, "alice", "a@x.com", "secret1", "AliceMC")

	rec := e.do(t, http.MethodPost, "/authserver/authenticate", map[string]any{
		"agent": minecraftAgent(), "username": "a@x.com", "password": "secret1",
		"clientToken": "launcher-token", "requestUser": true,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[AuthenticateResponse](t, rec)
	assert.Equal(t, "launcher-token", resp.ClientToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, reg.UserID, resp.User.ID)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotNil(t, resp.User.Properties)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthenticate_CredentialErrorsIdentical(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice", "a@x.com", "secret1", "AliceMC")

	wrong := e.do(t, http.MethodPost, "/authserver/authenticate", map[string]any{
		"agent": minecraftAgent(), "username": "alice", "password": "nope",
	}, "")
	unknown := e.do(t, http.MethodPost, "/authserver/authenticate", map[string]any{
		"agent": minecraftAgent(), "username": "mallory", "password": "nope",
	}, "")

	assert.Equal(t, http.StatusForbidden, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.Bytes(), unknown.Body.Bytes())
	assert.JSONEq(t,
		`{"error":"ForbiddenOperationException","errorMessage":"Invalid credentials. Invalid username or password."}`,
		wrong.Body.String())
}

func TestAuthenticate_BadRequests(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"missing agent", map[string]any{"username": "alice", "password": "x"}, "Invalid agent."},
		{"wrong agent version", map[string]any{"agent": map[string]any{"name": "Minecraft", "version": 2}, "username": "alice", "password": "x"}, "Invalid agent."},
		{"missing password", map[string]any{"agent": minecraftAgent(), "username": "alice"}, "Credentials can not be null."},
		{"malformed json", `{"agent":`, "Invalid argument."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(t, http.MethodPost, "/authserver/authenticate", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode[YggdrasilError](t, rec)
			assert.Equal(t, "IllegalArgumentException", body.Error)
			assert.Equal(t, tt.message, body.ErrorMessage)
		})
	}
}

func TestAuthenticate_NoProfiles(t *testing.T) {
	e := newTestEnv(t)
	hash, err := password.NewHasher(bcrypt.MinCost).Hash("secret1")
	require.NoError(t, err)
	require.NoError(t, e.store.Accounts.CreateAccount(context.Background(),
		domain.NewAccount("0000000000000000000000000000000b", "bob", "bob@x.com", hash)))

	rec := e.do(t, http.MethodPost, "/authserver/authenticate", map[string]any{
		"agent": minecraftAgent(), "username": "bob", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "No profiles available for this user.", decode[YggdrasilError](t, rec).ErrorMessage)
}

func TestRefresh_NoProfiles(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, e.store.Accounts.CreateAccount(ctx,
		domain.NewAccount("0000000000000000000000000000000b", "bob", "bob@x.com", "$2a$04$hash")))
	require.NoError(t, e.store.Sessions.Insert(ctx,
		domain.NewSession("0000000000000000000000000000000b", "bob", "bob-access", "bob-client", time.Hour, e.clock.Now())))

	rec := e.do(t, http.MethodPost, "/authserver/refresh", RefreshRequest{
		AccessToken: "bob-access", ClientToken: "bob-client",
	}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decode[YggdrasilError](t, rec)
	assert.Equal(t, "ForbiddenOperationException", body.Error)
	assert.Equal(t, "No profiles available.", body.ErrorMessage)
}

func TestRefresh_Rejections(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice", "a@x.com", "secret1", "AliceMC")
	auth := e.authenticate(t, "alice", "secret1")

	rec := e.do(t, http.MethodPost, "/authserver/refresh", RefreshRequest{AccessToken: auth.AccessToken}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Access token and client token are required.", decode[YggdrasilError](t, rec).ErrorMessage)

	rec = e.do(t, http.MethodPost, "/authserver/refresh", RefreshRequest{
		AccessToken: auth.AccessToken, ClientToken: "someone-else",
	}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid token.", decode[YggdrasilError](t, rec).ErrorMessage)

	e.clock.Advance(testTTL + time.Second)
	rec = e.do(t, http.MethodPost, "/authserver/refresh", RefreshRequest{
		AccessToken: auth.AccessToken, ClientToken: auth.ClientToken,
	}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Token expired.", decode[YggdrasilError](t, rec).ErrorMessage)
}

func TestValidate_ExpiryThenInvalid(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice", "a@x.com", "secret1", "AliceMC")
	auth := e.authenticate(t, "alice", "secret1")

	rec := e.do(t, http.MethodPost, "/authserver/validate", TokenPair{
		AccessToken: auth.AccessToken, ClientToken: auth.ClientToken,
	}, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	e.clock.Advance(testTTL + time.Second)

	rec = e.do(t, http.MethodPost, "/authserver/validate", TokenPair{AccessToken: auth.AccessToken}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Token expired.", decode[YggdrasilError](t, rec).ErrorMessage)

	rec = e.do(t, http.MethodPost, "/authserver/validate", TokenPair{AccessToken: auth.AccessToken}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid token.", decode[YggdrasilError](t, rec).ErrorMessage)
}

func TestValidate_EmptyToken(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/authserver/validate", nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestInvalidateAndSignout(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice", "a@x.com", "secret1", "AliceMC")
	first := e.authenticate(t, "alice", "secret1")
	second := e.authenticate(t, "alice", "secret1")
	third := e.authenticate(t, "alice", "secret1")

	pair := TokenPair{AccessToken: first.AccessToken, ClientToken: first.ClientToken}
	assert.Equal(t, http.StatusNoContent, e.do(t, http.MethodPost, "/authserver/invalidate", pair, "").Code)
	assert.Equal(t, http.StatusNoContent, e.do(t, http.MethodPost, "/authserver/invalidate", pair, "").Code)
	assert.Equal(t, http.StatusForbidden, e.do(t, http.MethodPost, "/authserver/validate", pair, "").Code)

	rec := e.do(t, http.MethodPost, "/authserver/signout", SignoutRequest{Username: "alice", Password: "bad"}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodPost, "/authserver/signout", SignoutRequest{Username: "alice", Password: "secret1"}, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	for _, tok := range []string{second.AccessToken, third.AccessToken} {
		assert.Equal(t, http.StatusForbidden, e.do(t, http.MethodPost, "/authserver/validate", TokenPair{AccessToken: tok}, "").Code)
	}
}

func TestAuthserver_MethodNotAllowed(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/authserver/authenticate", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
