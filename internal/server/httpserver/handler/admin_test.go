package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/yggauth-go/internal/core/domain"
)

func TestHealthRoute(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, e.clock.Now().UnixMilli(), health.Timestamp)
}

func TestMetricsRoute(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# metrics")
}

func TestAdminRoutes(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice", "a@x.com", "secret1", "AliceMC")
	e.authenticate(t, "alice", "secret1")
	e.authenticate(t, "alice", "secret1")

	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodGet, "/admin/status", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodGet, "/admin/status", nil, "wrong").Code)

	e.clock.Advance(time.Minute)
	rec := e.do(t, http.MethodGet, "/admin/status", nil, testAdminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[StatusResponse](t, rec)
	assert.Equal(t, 2, status.SessionsActive)
	assert.Equal(t, 1, status.AccountsTotal)
	assert.Equal(t, int64(60), status.UptimeSeconds)

	e.clock.Advance(testTTL)
	rec = e.do(t, http.MethodPost, "/admin/gc", nil, testAdminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	gc := decode[GCResponse](t, rec)
	assert.Equal(t, 2, gc.Removed)
	assert.Zero(t, gc.Remaining)
}

func TestAdminRoutes_DisabledWithoutToken(t *testing.T) {
	h := New(&Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	e := &testEnv{h: h}

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/admin/status", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/metrics", nil, "").Code)
}

func TestAPIStatus(t *testing.T) {
	tests := []struct {
		err  *domain.DomainError
		want int
	}{
		{domain.ErrInvalidArgument, http.StatusBadRequest},
		{domain.ErrWeakPassword, http.StatusBadRequest},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrInvalidCredentials, http.StatusForbidden},
		{domain.ErrTextureNotFound, http.StatusNotFound},
		{domain.ErrDuplicateIdentifier, http.StatusConflict},
		{domain.ErrInternal, http.StatusInternalServerError},
		{domain.ErrStorage, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			assert.Equal(t, tt.want, apiStatus(domain.KindOf(tt.err)))
		})
	}
}

func TestWriteYggdrasilError_Internal(t *testing.T) {
	e := newTestEnv(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/authserver/authenticate", nil)

	e.h.writeYggdrasilError(rec, req, errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, domain.ErrInternal.Code, rec.Header().Get("X-Error-Code"))
	assert.JSONEq(t, `{"error":"InternalServerError","errorMessage":"An internal server error occurred."}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}
