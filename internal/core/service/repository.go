package service

import (
	"context"
	"time"

	"github.com/yndnr/yggauth-go/internal/core/domain"
)

// AccountRepository stores accounts.
type AccountRepository interface {
	// CreateAccount inserts an account. Username and email must both be unused.
	CreateAccount(ctx context.Context, account *domain.Account) error

	// FindByLoginIdentifier matches username or email exactly.
	FindByLoginIdentifier(ctx context.Context, identifier string) (*domain.Account, error)

	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// ProfileRepository stores player profiles.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *domain.Profile) error

	// ReserveName holds an unused name for a later CreateProfile. release
	// frees it if the profile is never created.
	ReserveName(ctx context.Context, name string) (release func(), err error)

	// ListProfilesByOwner returns profiles in creation order.
	ListProfilesByOwner(ctx context.Context, ownerID string) ([]*domain.Profile, error)

	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	GetProfileByName(ctx context.Context, name string) (*domain.Profile, error)
}

// SessionRepository stores sessions keyed by access token.
//
// Lookups return the raw record. Expiry policy is applied by the services.
type SessionRepository interface {
	Insert(ctx context.Context, session *domain.Session) error
	FindByAccessToken(ctx context.Context, accessToken string) (*domain.Session, error)
	Remove(ctx context.Context, accessToken string) error

	// Replace swaps oldAccessToken for next atomically.
	Replace(ctx context.Context, oldAccessToken string, next *domain.Session) error

	// RemoveIfExpired removes the session only if it is expired at now.
	RemoveIfExpired(ctx context.Context, accessToken string, now time.Time) (bool, error)

	RemoveByOwner(ctx context.Context, ownerID string) (int, error)
	SweepExpired(ctx context.Context, now time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}

// TextureRepository stores skin and cape metadata.
type TextureRepository interface {
	AddTexture(ctx context.Context, texture *domain.Texture) (bool, error)
	ListTextures(ctx context.Context, ownerID string, kind domain.TextureKind) ([]*domain.Texture, error)
	ActiveTexture(ctx context.Context, ownerID string, kind domain.TextureKind) (*domain.Texture, error)
	SetActiveTexture(ctx context.Context, ownerID string, kind domain.TextureKind, id string) error
	DeleteTexture(ctx context.Context, ownerID string, kind domain.TextureKind, id string) error
}

// TokenSource mints access tokens, client tokens and identifiers.
// token.Issuer is the production implementation.
type TokenSource interface {
	NewAccessToken() (string, error)
	NewClientToken() (string, error)
	NewID() (string, error)
}

// PasswordHasher hashes and verifies passwords. password.Hasher is the
// production implementation.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool

	// VerifyDummy spends the time of a Verify call without a real hash.
	VerifyDummy(password string)
}

// Clock returns the current time.
type Clock func() time.Time
