package service

import (
	"context"
	"errors"
	"time"

	"github.com/yndnr/yggauth-go/internal/core/domain"
	"github.com/yndnr/yggauth-go/internal/telemetry/logger"
	"github.com/yndnr/yggauth-go/pkg/token"
)

// Repositories groups the storage dependencies shared by the services.
type Repositories struct {
	Accounts AccountRepository
	Profiles ProfileRepository
	Sessions SessionRepository
	Textures TextureRepository
}

// AuthService implements the authserver protocol operations.
type AuthService struct {
	accounts AccountRepository
	profiles ProfileRepository
	sessions SessionRepository
	tokens   TokenSource
	hasher   PasswordHasher
	ttl      time.Duration
	now      Clock
}

// AuthServiceConfig holds configuration for AuthService.
type AuthServiceConfig struct {
	// TokenTTL is the lifetime of a new or refreshed session (default: 24h).
	TokenTTL time.Duration

	// Clock overrides time.Now, mostly for tests.
	Clock Clock
}

// DefaultAuthServiceConfig returns default configuration.
func DefaultAuthServiceConfig() *AuthServiceConfig {
	return &AuthServiceConfig{
		TokenTTL: domain.DefaultSessionTTL,
		Clock:    time.Now,
	}
}

// NewAuthService creates a new AuthService.
func NewAuthService(repos Repositories, tokens TokenSource, hasher PasswordHasher, config *AuthServiceConfig) *AuthService {
	if config == nil {
		config = DefaultAuthServiceConfig()
	}
	ttl := config.TokenTTL
	if ttl <= 0 {
		ttl = domain.DefaultSessionTTL
	}
	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}

	return &AuthService{
		accounts: repos.Accounts,
		profiles: repos.Profiles,
		sessions: repos.Sessions,
		tokens:   tokens,
		hasher:   hasher,
		ttl:      ttl,
		now:      clock,
	}
}

// AuthenticateRequest contains parameters for Authenticate.
type AuthenticateRequest struct {
	Agent       *domain.Agent
	Username    string // username or email
	Password    string
	ClientToken string // optional; minted when empty
	RequestUser bool
}

// AuthenticateResponse contains the result of Authenticate.
type AuthenticateResponse struct {
	AccessToken       string
	ClientToken       string
	SelectedProfile   *domain.Profile
	AvailableProfiles []*domain.Profile

	// User is set only when the request asked for it.
	User *domain.Account
}

// Authenticate verifies credentials and opens a new session.
func (s *AuthService) Authenticate(ctx context.Context, req *AuthenticateRequest) (*AuthenticateResponse, error) {
	// 1. Validate request
	if req.Agent == nil || !req.Agent.IsSupported() {
		return nil, domain.ErrInvalidAgent
	}
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrCredentialsRequired
	}

	// 2. Verify credentials
	account, err := verifyCredentials(ctx, s.accounts, s.hasher, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	// 3. Resolve profiles
	profiles, err := s.profiles.ListProfilesByOwner(ctx, account.ID)
	if err != nil {
		return nil, domain.AsDomainError(err)
	}
	if len(profiles) == 0 {
		return nil, domain.ErrNoProfiles
	}

	// 4. Issue tokens
	accessToken, err := s.tokens.NewAccessToken()
	if err != nil {
		return nil, domain.ErrInternal.WithCause(err)
	}
	clientToken := req.ClientToken
	if clientToken == "" {
		if clientToken, err = s.tokens.NewClientToken(); err != nil {
			return nil, domain.ErrInternal.WithCause(err)
		}
	}

	// 5. Store session
	now := s.now()
	session := domain.NewSession(account.ID, account.Username, accessToken, clientToken, s.ttl, now)
	if err := s.sessions.Insert(ctx, session); err != nil {
		return nil, domain.AsDomainError(err)
	}

	// 6. Record login, best effort
	if err := s.accounts.TouchLastLogin(ctx, account.ID, now); err != nil {
		logger.L(ctx).Warn("failed to record last login", "account_id", account.ID, "error", err)
	} else {
		account.LastLogin = now.UnixMilli()
	}

	resp := &AuthenticateResponse{
		AccessToken:       accessToken,
		ClientToken:       clientToken,
		SelectedProfile:   profiles[0],
		AvailableProfiles: profiles,
	}
	if req.RequestUser {
		resp.User = account
	}
	return resp, nil
}

// RefreshRequest contains parameters for Refresh.
type RefreshRequest struct {
	AccessToken string
	ClientToken string

	// SelectedProfileID is optional and accepted in either identifier form.
	SelectedProfileID string

	RequestUser bool
}

// RefreshResponse contains the result of Refresh.
type RefreshResponse struct {
	AccessToken     string
	ClientToken     string
	SelectedProfile *domain.Profile
	User            *domain.Account
}

// Refresh exchanges a live session for a new access token bound to the
// same client token. The old access token stops working immediately.
func (s *AuthService) Refresh(ctx context.Context, req *RefreshRequest) (*RefreshResponse, error) {
	// 1. Validate request
	if req.AccessToken == "" || req.ClientToken == "" {
		return nil, domain.ErrTokensRequired
	}

	// 2. Look up session and check binding
	session, err := findSession(ctx, s.sessions, req.AccessToken)
	if err != nil {
		return nil, err
	}
	if !session.MatchesClientToken(req.ClientToken) {
		return nil, domain.ErrTokenInvalid
	}

	// 3. Check expiration
	now := s.now()
	if session.IsExpiredAt(now) {
		return nil, expireSession(ctx, s.sessions, session, now)
	}

	// 4. Resolve owner and profiles
	account, err := s.accounts.GetAccount(ctx, session.OwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.AsDomainError(err)
	}
	profiles, err := s.profiles.ListProfilesByOwner(ctx, account.ID)
	if err != nil {
		return nil, domain.AsDomainError(err)
	}
	if len(profiles) == 0 {
		return nil, domain.ErrNoProfilesToRefresh
	}
	selected := selectProfile(profiles, req.SelectedProfileID)

	// 5. Swap sessions
	accessToken, err := s.tokens.NewAccessToken()
	if err != nil {
		return nil, domain.ErrInternal.WithCause(err)
	}
	next := domain.NewSession(account.ID, account.Username, accessToken, session.ClientToken, s.ttl, now)
	if err := s.sessions.Replace(ctx, session.AccessToken, next); err != nil {
		return nil, domain.AsDomainError(err)
	}

	resp := &RefreshResponse{
		AccessToken:     accessToken,
		ClientToken:     session.ClientToken,
		SelectedProfile: selected,
	}
	if req.RequestUser {
		resp.User = account
	}
	return resp, nil
}

// ValidateRequest contains parameters for Validate.
type ValidateRequest struct {
	AccessToken string
	ClientToken string // optional
}

// Validate reports whether an access token is live.
//
// An empty access token is accepted. Clients rely on this.
func (s *AuthService) Validate(ctx context.Context, req *ValidateRequest) error {
	if req.AccessToken == "" {
		return nil
	}

	session, err := liveSession(ctx, s.sessions, req.AccessToken, s.now())
	if err != nil {
		return err
	}
	if req.ClientToken != "" && !session.MatchesClientToken(req.ClientToken) {
		return domain.ErrTokenInvalid
	}
	return nil
}

// InvalidateRequest contains parameters for Invalidate.
type InvalidateRequest struct {
	AccessToken string
	ClientToken string // accepted and ignored
}

// Invalidate removes a session. Unknown tokens are not an error.
func (s *AuthService) Invalidate(ctx context.Context, req *InvalidateRequest) error {
	if req.AccessToken == "" {
		return nil
	}
	if err := s.sessions.Remove(ctx, req.AccessToken); err != nil {
		return domain.AsDomainError(err)
	}
	return nil
}

// SignoutRequest contains parameters for Signout.
type SignoutRequest struct {
	Username string
	Password string
}

// Signout verifies credentials and removes every session of the account.
func (s *AuthService) Signout(ctx context.Context, req *SignoutRequest) error {
	if req.Username == "" || req.Password == "" {
		return domain.ErrCredentialsRequired
	}

	account, err := verifyCredentials(ctx, s.accounts, s.hasher, req.Username, req.Password)
	if err != nil {
		return err
	}

	n, err := s.sessions.RemoveByOwner(ctx, account.ID)
	if err != nil {
		return domain.AsDomainError(err)
	}
	logger.L(ctx).Debug("signed out", "account_id", account.ID, "sessions", n)
	return nil
}

// verifyCredentials resolves identifier and checks password. Unknown
// identifiers and wrong passwords produce the same error and take the
// same time.
func verifyCredentials(ctx context.Context, accounts AccountRepository, hasher PasswordHasher, identifier, password string) (*domain.Account, error) {
	account, err := accounts.FindByLoginIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			hasher.VerifyDummy(password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.AsDomainError(err)
	}
	if !hasher.Verify(password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

// selectProfile returns the profile matching requestedID, or the first
// profile when requestedID is empty, malformed or not in profiles.
func selectProfile(profiles []*domain.Profile, requestedID string) *domain.Profile {
	if requestedID != "" {
		if id, err := token.ParseIdentifier(requestedID); err == nil {
			for _, p := range profiles {
				if p.ID == id {
					return p
				}
			}
		}
	}
	return profiles[0]
}
