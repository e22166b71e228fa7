package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func logJSON(t *testing.T, args ...any) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.Info("entry", args...)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return entry
}

func TestRedactSensitive_Keys(t *testing.T) {
	entry := logJSON(t,
		"password", "hunter2",
		"access_token", "abc",
		"clientToken", "def",
		"password_hash", "$2a$10$x",
		"Authorization", "Bearer x",
		"username", "alice",
	)

	for _, key := range []string{"password", "access_token", "clientToken", "password_hash", "Authorization"} {
		if entry[key] != redactedValue {
			t.Errorf("%s = %v, want redacted", key, entry[key])
		}
	}
	if entry["username"] != "alice" {
		t.Errorf("username = %v, should not be redacted", entry["username"])
	}
}

func TestRedactSensitive_FingerprintKeysKept(t *testing.T) {
	entry := logJSON(t, "token_fp", "a1b2c3d4e5f6")
	if entry["token_fp"] != "a1b2c3d4e5f6" {
		t.Errorf("token_fp = %v, fingerprints must pass through", entry["token_fp"])
	}
}

func TestRedactSensitive_AccessTokenValue(t *testing.T) {
	tok := strings.Repeat("ab", 32)
	entry := logJSON(t, "value", tok)

	if entry["value"] != "aba...bab" {
		t.Errorf("value = %v, want masked access token", entry["value"])
	}
}

func TestRedactSensitive_Group(t *testing.T) {
	var buf bytes.Buffer
	l, _ := New(Config{Level: "info", Format: "json", Output: &buf})
	Slog(l).WithGroup("auth").Info("login", "password", "pw")

	if strings.Contains(buf.String(), `"pw"`) {
		t.Errorf("grouped password leaked: %s", buf.String())
	}
}

func TestRedactString(t *testing.T) {
	tok := strings.Repeat("0f", 32)
	if got := RedactString(tok); got != "0f0...f0f" {
		t.Errorf("RedactString() = %q", got)
	}
	if got := RedactString("alice"); got != "alice" {
		t.Errorf("RedactString(alice) = %q", got)
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := map[string]bool{
		"password":        true,
		"newPassword":     true,
		"accessToken":     true,
		"access_token_fp": false,
		"username":        false,
		"profile":         false,
	}
	for key, want := range tests {
		if got := IsSensitiveKey(key); got != want {
			t.Errorf("IsSensitiveKey(%q) = %v, want %v", key, got, want)
		}
	}
}
