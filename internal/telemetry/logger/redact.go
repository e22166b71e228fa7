package logger

import (
	"log/slog"
	"strings"
)

// Key fragments that mark an attribute as sensitive.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"hash",
	"credential",
	"authorization",
	"bearer",
}

// Keys ending in this suffix carry fingerprints, not secrets.
const fingerprintSuffix = "_fp"

// accessTokenLen is the length of a hex access token.
const accessTokenLen = 64

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}
	val := a.Value.String()
	if val == "" {
		return a
	}

	if IsSensitiveKey(a.Key) {
		return slog.String(a.Key, redactedValue)
	}
	if looksLikeAccessToken(val) {
		return slog.String(a.Key, maskValue(val))
	}
	return a
}

// maskValue keeps the first and last three characters.
func maskValue(value string) string {
	if len(value) <= 6 {
		return "***"
	}
	return value[:3] + "..." + value[len(value)-3:]
}

func looksLikeAccessToken(s string) bool {
	if len(s) != accessTokenLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// RedactString masks s if it looks like an access token.
func RedactString(s string) string {
	if looksLikeAccessToken(s) {
		return maskValue(s)
	}
	return s
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	if strings.HasSuffix(k, fingerprintSuffix) {
		return false
	}
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(k, pattern) {
			return true
		}
	}
	return false
}
