package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.HTTP.Addr != DefaultHTTPAddr {
		t.Errorf("HTTP.Addr = %q, want %q", cfg.Server.HTTP.Addr, DefaultHTTPAddr)
	}
	if cfg.Server.HTTP.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes = %d, want 1MiB", cfg.Server.HTTP.MaxBodyBytes)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Auth.TokenTTL = %v, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.Session.JoinTTL != 30*time.Second {
		t.Errorf("Session.JoinTTL = %v, want 30s", cfg.Session.JoinTTL)
	}
	if cfg.Session.SweepInterval != time.Hour {
		t.Errorf("Session.SweepInterval = %v, want 1h", cfg.Session.SweepInterval)
	}
	if cfg.Storage.DataDir != "" {
		t.Errorf("Storage.DataDir = %q, want memory-only default", cfg.Storage.DataDir)
	}
	if !cfg.Seed.Enabled || cfg.Seed.Username != "admin" || cfg.Seed.ProfileName != "AdminPlayer" {
		t.Errorf("Seed = %+v, want admin/AdminPlayer enabled", cfg.Seed)
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{"bad addr", func(c *ServerConfig) { c.Server.HTTP.Addr = "nope" }, "server.http.addr"},
		{"half tls", func(c *ServerConfig) { c.Server.HTTP.TLSCertFile = "/tmp/cert.pem" }, "tls_key_file"},
		{"short ttl", func(c *ServerConfig) { c.Auth.TokenTTL = time.Second }, "auth.token_ttl"},
		{"bcrypt cost", func(c *ServerConfig) { c.Auth.BcryptCost = 99 }, "auth.bcrypt_cost"},
		{"zero shards", func(c *ServerConfig) { c.Session.Shards = 0 }, "session.shards"},
		{"weak seed", func(c *ServerConfig) { c.Seed.Password = "123" }, "seed.password"},
		{"log level", func(c *ServerConfig) { c.Log.Level = "loud" }, "log.level"},
		{"log format", func(c *ServerConfig) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Verify(cfg)
			if err == nil {
				t.Fatal("Verify() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestVerify_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Session.Shards = 0

	err := Verify(cfg)
	if err == nil {
		t.Fatal("Verify() expected error")
	}
	for _, want := range []string{"log.level", "session.shards"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Verify() error missing %q: %v", want, err)
		}
	}
}

func TestVerify_SeedDisabledSkipsPassword(t *testing.T) {
	cfg := Default()
	cfg.Seed.Enabled = false
	cfg.Seed.Password = ""
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestVerify_CreatesDataDir(t *testing.T) {
	cfg := Default()
	cfg.Storage.DataDir = filepath.Join(t.TempDir(), "nested", "data")

	if err := Verify(cfg); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if _, err := os.Stat(cfg.Storage.DataDir); err != nil {
		t.Errorf("data dir not created: %v", err)
	}
}

func TestSanitize(t *testing.T) {
	cfg := Default()
	cfg.Server.AdminToken = "super-secret-admin-token"
	cfg.Server.CORSOrigins = []string{"https://launcher.example.com"}

	sanitized := Sanitize(cfg)

	if cfg.Server.AdminToken != "super-secret-admin-token" {
		t.Error("original config must not be modified")
	}
	if !strings.HasPrefix(sanitized.Server.AdminToken, "sha256:") || len(sanitized.Server.AdminToken) != len("sha256:")+8 {
		t.Errorf("admin token = %q, want a sha256 fingerprint", sanitized.Server.AdminToken)
	}
	if strings.Contains(sanitized.Server.AdminToken, "secret") {
		t.Error("admin token leaked")
	}
	if sanitized.Seed.Password == cfg.Seed.Password || sanitized.Seed.Password == "" {
		t.Errorf("seed password = %q, want a fingerprint", sanitized.Seed.Password)
	}

	sanitized.Server.CORSOrigins[0] = "changed"
	if cfg.Server.CORSOrigins[0] != "https://launcher.example.com" {
		t.Error("sanitized copy shares the CORS slice")
	}
}

func TestSanitize_StableAndEmpty(t *testing.T) {
	cfg := &ServerConfig{}
	cfg.Server.AdminToken = "abc"

	first, second := Sanitize(cfg), Sanitize(cfg)
	if first.Server.AdminToken != second.Server.AdminToken {
		t.Error("fingerprint should be stable")
	}
	if first.Seed.Password != "" {
		t.Errorf("empty secret = %q, want empty", first.Seed.Password)
	}
}
