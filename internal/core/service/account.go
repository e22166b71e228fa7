package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yndnr/yggauth-go/internal/core/domain"
	"github.com/yndnr/yggauth-go/internal/telemetry/logger"
)

// AccountService handles registration and the bearer-authenticated
// account operations.
type AccountService struct {
	accounts AccountRepository
	profiles ProfileRepository
	sessions SessionRepository
	textures TextureRepository
	tokens   TokenSource
	hasher   PasswordHasher
	now      Clock
}

// NewAccountService creates a new AccountService.
func NewAccountService(repos Repositories, tokens TokenSource, hasher PasswordHasher) *AccountService {
	return &AccountService{
		accounts: repos.Accounts,
		profiles: repos.Profiles,
		sessions: repos.Sessions,
		textures: repos.Textures,
		tokens:   tokens,
		hasher:   hasher,
		now:      time.Now,
	}
}

// WithClock overrides the time source. It returns s for chaining.
func (s *AccountService) WithClock(c Clock) *AccountService {
	if c != nil {
		s.now = c
	}
	return s
}

// RegisterRequest contains parameters for Register.
type RegisterRequest struct {
	Username    string
	Email       string
	Password    string
	ProfileName string // defaults to Username
}

// RegisterResponse contains the created records.
type RegisterResponse struct {
	Account *domain.Account
	Profile *domain.Profile
}

// Register creates an account and its default profile.
//
// The profile name is reserved before the account is stored, so a
// registration that loses a name race stores nothing. Username and email
// uniqueness is enforced atomically by the account repository.
func (s *AccountService) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, domain.ErrInvalidArgument.WithDetails("username, email and password are required")
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	profileName := strings.TrimSpace(req.ProfileName)
	if profileName == "" {
		profileName = username
	}
	if err := (&domain.Profile{OwnerID: "-", Name: profileName}).Validate(); err != nil {
		return nil, err
	}
	release, err := s.profiles.ReserveName(ctx, profileName)
	if err != nil {
		return nil, domain.AsDomainError(err)
	}
	defer release()

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, domain.ErrInternal.WithCause(err)
	}
	accountID, err := s.tokens.NewID()
	if err != nil {
		return nil, domain.ErrInternal.WithCause(err)
	}
	profileID, err := s.tokens.NewID()
	if err != nil {
		return nil, domain.ErrInternal.WithCause(err)
	}

	account := domain.NewAccount(accountID, username, email, hash)
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		return nil, domain.AsDomainError(err)
	}

	// With the name reserved only a storage failure can land here.
	profile := domain.NewProfile(profileID, account.ID, profileName)
	if err := s.profiles.CreateProfile(ctx, profile); err != nil {
		logger.L(ctx).Error("account created without profile", "account_id", account.ID, "error", err)
		return nil, domain.AsDomainError(err)
	}

	logger.L(ctx).Info("account registered", "account_id", account.ID, "username", account.Username)
	return &RegisterResponse{Account: account, Profile: profile}, nil
}

// UserInfo is the account summary returned to a bearer.
type UserInfo struct {
	Account  *domain.Account
	Profiles []*domain.Profile

	// Skin and Cape are the active textures, nil when none is set.
	Skin *domain.Texture
	Cape *domain.Texture
}

// Authorize resolves a bearer access token to its live session.
func (s *AccountService) Authorize(ctx context.Context, accessToken string) (*domain.Session, error) {
	return bearerSession(ctx, s.sessions, accessToken, s.now())
}

// UserInfo returns the account behind accessToken.
func (s *AccountService) UserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	session, err := s.Authorize(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	account, err := s.owner(ctx, session)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.ListProfilesByOwner(ctx, account.ID)
	if err != nil {
		return nil, domain.AsDomainError(err)
	}

	info := &UserInfo{Account: account, Profiles: profiles}
	if info.Skin, err = activeOrNil(ctx, s.textures, account.ID, domain.TextureSkin); err != nil {
		return nil, err
	}
	if info.Cape, err = activeOrNil(ctx, s.textures, account.ID, domain.TextureCape); err != nil {
		return nil, err
	}
	return info, nil
}

// Logout removes the bearer's session.
func (s *AccountService) Logout(ctx context.Context, accessToken string) error {
	session, err := s.Authorize(ctx, accessToken)
	if err != nil {
		return err
	}
	if err := s.sessions.Remove(ctx, session.AccessToken); err != nil {
		return domain.AsDomainError(err)
	}
	return nil
}

// ChangePasswordRequest contains parameters for ChangePassword.
type ChangePasswordRequest struct {
	AccessToken     string
	CurrentPassword string
	NewPassword     string
}

// ChangePassword replaces the bearer's password after checking the
// current one. Existing sessions stay valid.
func (s *AccountService) ChangePassword(ctx context.Context, req *ChangePasswordRequest) error {
	session, err := s.Authorize(ctx, req.AccessToken)
	if err != nil {
		return err
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return domain.ErrInvalidArgument.WithDetails("current and new password are required")
	}
	if err := domain.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	account, err := s.owner(ctx, session)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(req.CurrentPassword, account.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return domain.ErrInternal.WithCause(err)
	}
	if err := s.accounts.UpdatePasswordHash(ctx, account.ID, hash); err != nil {
		return domain.AsDomainError(err)
	}
	logger.L(ctx).Info("password changed", "account_id", account.ID)
	return nil
}

// SeedRequest describes the account created at startup.
type SeedRequest struct {
	Username    string
	Email       string
	Password    string
	ProfileName string
}

// Seed registers the seed account unless its username or email is taken.
// It reports whether an account was created.
func (s *AccountService) Seed(ctx context.Context, req *SeedRequest) (bool, error) {
	for _, id := range []string{req.Username, req.Email} {
		if _, err := s.accounts.FindByLoginIdentifier(ctx, id); err == nil {
			return false, nil
		}
	}

	_, err := s.Register(ctx, &RegisterRequest{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		ProfileName: req.ProfileName,
	})
	if errors.Is(err, domain.ErrDuplicateIdentifier) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AccountService) owner(ctx context.Context, session *domain.Session) (*domain.Account, error) {
	account, err := s.accounts.GetAccount(ctx, session.OwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.AsDomainError(err)
	}
	return account, nil
}

// activeOrNil returns the active texture of kind, or nil when none is set.
func activeOrNil(ctx context.Context, textures TextureRepository, ownerID string, kind domain.TextureKind) (*domain.Texture, error) {
	tex, err := textures.ActiveTexture(ctx, ownerID, kind)
	if err != nil {
		if errors.Is(err, domain.ErrTextureNotFound) {
			return nil, nil
		}
		return nil, domain.AsDomainError(err)
	}
	return tex, nil
}
