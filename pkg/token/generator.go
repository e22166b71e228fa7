package token

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// AccessTokenBytes is the amount of entropy in an access token.
const AccessTokenBytes = 32

// NewAccessToken returns a fresh hex-encoded access token.
func NewAccessToken() (string, error) {
	b, err := GenerateBytes(AccessTokenBytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewClientToken returns a fresh client token in compact UUID form.
func NewClientToken() (string, error) {
	return newCompactUUID()
}

// NewID returns a fresh compact identifier for accounts and profiles.
func NewID() (string, error) {
	return newCompactUUID()
}

func newCompactUUID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(u.String(), "-", ""), nil
}

// GenerateBytes generates random bytes.
func GenerateBytes(length int) ([]byte, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return nil, err
	}
	return bytes, nil
}

// Issuer produces access and client tokens. The zero value uses crypto/rand.
type Issuer struct{}

// NewAccessToken implements the service token source.
func (Issuer) NewAccessToken() (string, error) { return NewAccessToken() }

// NewClientToken implements the service token source.
func (Issuer) NewClientToken() (string, error) { return NewClientToken() }

// NewID implements the service token source.
func (Issuer) NewID() (string, error) { return NewID() }
