// Package password hashes and verifies account passwords with bcrypt.
package password

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the cost used by the reference deployment.
const DefaultCost = bcrypt.DefaultCost

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = errors.New("password: cannot be empty")

// Hasher hashes and verifies passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewHasher returns a Hasher. Costs outside bcrypt's range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost returns the bcrypt cost in use.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash produces a salted bcrypt hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. Malformed hashes never match.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerifyDummy burns the same CPU time as Verify against a throwaway hash.
// Call it when the account does not exist so response timing does not
// reveal whether an identifier is registered.
func (h *Hasher) VerifyDummy(password string) {
	h.dummyOnce.Do(func() {
		// Error is impossible for a non-empty password at a valid cost.
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("yggauth-dummy-password"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
