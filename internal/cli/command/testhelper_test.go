package command

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/yndnr/yggauth-go/internal/core/service"
	"github.com/yndnr/yggauth-go/internal/server/httpserver/handler"
	"github.com/yndnr/yggauth-go/internal/storage/memory"
	"github.com/yndnr/yggauth-go/pkg/password"
	"github.com/yndnr/yggauth-go/pkg/token"
)

const testAdminToken = "ops-token"

// testServer is a real handler over an in-memory store.
type testServer struct {
	*httptest.Server
	store     *memory.Store
	statePath string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st := memory.New()
	hasher := password.NewHasher(bcrypt.MinCost)
	repos := service.Repositories{
		Accounts: st.Accounts,
		Profiles: st.Profiles,
		Sessions: st.Sessions,
		Textures: st.Textures,
	}

	h := handler.New(&handler.Config{
		Auth:     service.NewAuthService(repos, token.Issuer{}, hasher, nil),
		Accounts: service.NewAccountService(repos, token.Issuer{}, hasher),
		Textures: service.NewTextureService(repos),
		SessionServer: service.NewSessionServerService(repos, &service.SessionServerConfig{
			DefaultSkinURL: "https://textures.example.com/skin/{id}",
		}),
		Status:     st,
		Sweeper:    service.NewSweeper(st.Sessions, nil),
		AdminToken: testAdminToken,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return &testServer{
		Server:    srv,
		store:     st,
		statePath: filepath.Join(t.TempDir(), "cli.yaml"),
	}
}

// run executes the CLI against the server and returns stdout.
func (s *testServer) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	app := App()
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut

	full := append([]string{"yggauth-cli", "--server", s.URL, "--state", s.statePath}, args...)
	err := app.Run(full)
	return out.String(), err
}

// mustRun fails the test when the command fails.
func (s *testServer) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := s.run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

// runJSON runs with -o json and decodes stdout into T.
func runJSON[T any](t *testing.T, s *testServer, args ...string) T {
	t.Helper()
	out := s.mustRun(t, append([]string{"-o", "json"}, args...)...)
	var v T
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return v
}

// registerAlice creates the scenario account used across tests.
func (s *testServer) registerAlice(t *testing.T) Registration {
	t.Helper()
	return runJSON[Registration](t, s, "account", "register",
		"-u", "alice", "-e", "a@x.com", "-p", "secret1", "--profile-name", "AliceMC")
}

func (s *testServer) login(t *testing.T) Session {
	t.Helper()
	return runJSON[Session](t, s, "auth", "authenticate", "-u", "alice", "-p", "secret1")
}
