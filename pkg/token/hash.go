package token

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// fingerprintLen is the number of hex characters kept by Fingerprint.
const fingerprintLen = 12

// Equal compares two tokens in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Fingerprint returns a short SHA-256 prefix of a token, suitable for
// correlating log lines without exposing the token.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])[:fingerprintLen]
}
