package domain

import (
	"strings"
	"time"
)

// Account constraints.
const (
	MaxUsernameLength = 64
	MaxEmailLength    = 254
	MinPasswordLength = 6
	// MaxPasswordBytes is the most bcrypt will hash.
	MaxPasswordBytes = 72
)

// Account is a registered user. Username and Email are both unique and
// both accepted as a login identifier.
type Account struct {
	// ID is the compact 32-hex identifier.
	ID string `json:"id"`

	// Username matches case-sensitively.
	Username string `json:"username"`

	Email string `json:"email"`

	// PasswordHash is a bcrypt hash. It is never serialised to clients.
	PasswordHash string `json:"password_hash"`

	// CreatedAt is the registration timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`

	// LastLogin is the last successful authentication (Unix milliseconds, 0 if never).
	LastLogin int64 `json:"last_login"`
}

// NewAccount builds an account from an already computed password hash.
func NewAccount(id, username, email, passwordHash string) *Account {
	return &Account{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UnixMilli(),
	}
}

// Validate checks registration constraints. It does not check uniqueness.
func (a *Account) Validate() error {
	var violations []string

	if a.Username == "" {
		violations = append(violations, "username is required")
	}
	if len(a.Username) > MaxUsernameLength {
		violations = append(violations, "username exceeds 64 characters")
	}
	if a.Email == "" {
		violations = append(violations, "email is required")
	} else if !strings.Contains(a.Email, "@") {
		violations = append(violations, "email is malformed")
	}
	if len(a.Email) > MaxEmailLength {
		violations = append(violations, "email exceeds 254 characters")
	}
	if a.PasswordHash == "" {
		violations = append(violations, "password hash is required")
	}

	if len(violations) > 0 {
		return ErrInvalidArgument.WithDetails(strings.Join(violations, "; "))
	}
	return nil
}

// MatchesLogin reports whether identifier is this account's username or email.
func (a *Account) MatchesLogin(identifier string) bool {
	return identifier != "" && (a.Username == identifier || a.Email == identifier)
}

// Clone creates a copy of the account.
func (a *Account) Clone() *Account {
	clone := *a
	return &clone
}

// CreatedAtTime returns CreatedAt as time.Time.
func (a *Account) CreatedAtTime() time.Time {
	return time.UnixMilli(a.CreatedAt)
}

// LastLoginTime returns LastLogin as time.Time, zero if the account never logged in.
func (a *Account) LastLoginTime() time.Time {
	if a.LastLogin == 0 {
		return time.Time{}
	}
	return time.UnixMilli(a.LastLogin)
}

// ValidatePassword enforces the password length bounds.
func ValidatePassword(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return ErrWeakPassword
	case len(password) > MaxPasswordBytes:
		return ErrPasswordTooLong
	}
	return nil
}
