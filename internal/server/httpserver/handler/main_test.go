package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"

	"github.com/yndnr/yggauth-go/internal/core/service"
	"github.com/yndnr/yggauth-go/internal/storage/memory"
	"github.com/yndnr/yggauth-go/pkg/password"
	"github.com/yndnr/yggauth-go/pkg/token"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	testTTL        = time.Hour
	testAdminToken = "admin-secret"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingObserver struct {
	mu     sync.Mutex
	counts map[string]int
}

func (o *recordingObserver) ObserveAuth(op, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = make(map[string]int)
	}
	o.counts[op+"/"+outcome]++
}

func (o *recordingObserver) count(op, outcome string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.counts[op+"/"+outcome]
}

type testEnv struct {
	h        *Handler
	store    *memory.Store
	clock    *fakeClock
	observer *recordingObserver
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := memory.New()
	clock := &fakeClock{t: time.Now()}
	hasher := password.NewHasher(bcrypt.MinCost)
	repos := service.Repositories{
		Accounts: st.Accounts,
		Profiles: st.Profiles,
		Sessions: st.Sessions,
		Textures: st.Textures,
	}
	observer := &recordingObserver{}

	h := New(&Config{
		Auth: service.NewAuthService(repos, token.Issuer{}, hasher, &service.AuthServiceConfig{
			TokenTTL: testTTL,
			Clock:    clock.Now,
		}),
		Accounts: service.NewAccountService(repos, token.Issuer{}, hasher).WithClock(clock.Now),
		Textures: service.NewTextureService(repos).WithClock(clock.Now),
		SessionServer: service.NewSessionServerService(repos, &service.SessionServerConfig{
			JoinTTL:        time.Minute,
			DefaultSkinURL: "https://textures.example.com/skin/{id}",
			Clock:          clock.Now,
		}),
		Status:     st,
		Sweeper:    service.NewSweeper(st.Sessions, &service.SweeperConfig{Clock: clock.Now}),
		AdminToken: testAdminToken,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "# metrics\n")
		}),
		Observer: observer,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:    clock.Now,
	})
	return &testEnv{h: h, store: st, clock: clock, observer: observer}
}

// do sends body (JSON encoded unless it is a string) and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader).WithContext(context.Background())
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func (e *testEnv) register(t *testing.T, username, email, pw, profile string) RegisterResponse {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/register", RegisterRequest{
		Username: username, Email: email, Password: pw, ProfileName: profile,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[RegisterResponse](t, rec)
}

func minecraftAgent() map[string]any {
	return map[string]any{"name": "Minecraft", "version": 1}
}

func (e *testEnv) authenticate(t *testing.T, username, pw string) AuthenticateResponse {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/authserver/authenticate", map[string]any{
		"agent": minecraftAgent(), "username": username, "password": pw,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[AuthenticateResponse](t, rec)
}
