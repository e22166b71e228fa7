package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/yndnr/yggauth-go/internal/core/domain"
	"github.com/yndnr/yggauth-go/internal/telemetry/logger"
	"github.com/yndnr/yggauth-go/pkg/token"
)

// DefaultJoinTTL is how long a join ticket stays valid.
const DefaultJoinTTL = 30 * time.Second

// TexturesProperty is the name of the signed-in profile property that
// carries skin and cape URLs.
const TexturesProperty = "textures"

// SessionServerConfig holds configuration for SessionServerService.
type SessionServerConfig struct {
	// JoinTTL bounds the time between join and hasJoined (default: 30s).
	JoinTTL time.Duration

	// JanitorInterval is how often stale join tickets are purged.
	// Zero disables the background janitor; stale tickets are then
	// dropped on read or by PurgeTickets.
	JanitorInterval time.Duration

	// DefaultSkinURL is advertised for profiles without an active skin.
	// "{id}" is replaced with the compact profile id. Empty means no skin.
	DefaultSkinURL string

	Clock Clock
}

// DefaultSessionServerConfig returns default configuration.
func DefaultSessionServerConfig() *SessionServerConfig {
	return &SessionServerConfig{
		JoinTTL:         DefaultJoinTTL,
		JanitorInterval: time.Minute,
		Clock:           time.Now,
	}
}

// SessionServerService implements the sessionserver and launcher lookups
// used by game servers.
type SessionServerService struct {
	accounts AccountRepository
	profiles ProfileRepository
	sessions SessionRepository
	textures TextureRepository

	tickets     *cache.Cache
	defaultSkin string
	now         Clock
}

type joinTicket struct {
	ProfileID   string
	ProfileName string
	ServerID    string
}

// NewSessionServerService creates a new SessionServerService.
func NewSessionServerService(repos Repositories, config *SessionServerConfig) *SessionServerService {
	if config == nil {
		config = DefaultSessionServerConfig()
	}
	ttl := config.JoinTTL
	if ttl <= 0 {
		ttl = DefaultJoinTTL
	}
	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}

	return &SessionServerService{
		accounts:    repos.Accounts,
		profiles:    repos.Profiles,
		sessions:    repos.Sessions,
		textures:    repos.Textures,
		tickets:     cache.New(ttl, config.JanitorInterval),
		defaultSkin: config.DefaultSkinURL,
		now:         clock,
	}
}

// ProfileProperty is a named, optionally signed, profile attribute.
type ProfileProperty struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature,omitempty"`
}

// ProfileView is a profile as seen by game servers.
type ProfileView struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Properties []ProfileProperty `json:"properties"`
}

type texturesPayload struct {
	Timestamp   int64                   `json:"timestamp"`
	ProfileID   string                  `json:"profileId"`
	ProfileName string                  `json:"profileName"`
	Textures    map[string]textureEntry `json:"textures"`
}

type textureEntry struct {
	URL      string           `json:"url"`
	Metadata *textureMetadata `json:"metadata,omitempty"`
}

type textureMetadata struct {
	Model string `json:"model"`
}

// Profile returns the profile with the given id in either identifier form.
func (s *SessionServerService) Profile(ctx context.Context, rawID string) (*ProfileView, error) {
	id, err := token.ParseIdentifier(rawID)
	if err != nil {
		return nil, domain.ErrMalformedIdentifier
	}
	profile, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, domain.AsDomainError(err)
	}
	return s.view(ctx, profile)
}

// JoinRequest contains parameters for Join.
type JoinRequest struct {
	AccessToken     string
	SelectedProfile string
	ServerID        string
}

// Join records that the bearer's profile is connecting to ServerID.
func (s *SessionServerService) Join(ctx context.Context, req *JoinRequest) error {
	if req.AccessToken == "" || req.SelectedProfile == "" || req.ServerID == "" {
		return domain.ErrInvalidArgument.WithDetails("accessToken, selectedProfile and serverId are required")
	}

	session, err := liveSession(ctx, s.sessions, req.AccessToken, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return domain.ErrTokenInvalid.WithCause(err)
		}
		return err
	}

	id, err := token.ParseIdentifier(req.SelectedProfile)
	if err != nil {
		return domain.ErrProfileForbidden
	}
	profile, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.ErrProfileForbidden
		}
		return domain.AsDomainError(err)
	}
	if profile.OwnerID != session.OwnerID {
		return domain.ErrProfileForbidden
	}

	s.tickets.SetDefault(ticketKey(profile.Name, req.ServerID), joinTicket{
		ProfileID:   profile.ID,
		ProfileName: profile.Name,
		ServerID:    req.ServerID,
	})
	logger.L(ctx).Debug("join ticket issued", "profile_id", profile.ID, "server_id", req.ServerID)
	return nil
}

// HasJoined returns the profile that joined serverID as username, or
// ErrProfileNotFound when no live ticket exists.
func (s *SessionServerService) HasJoined(ctx context.Context, username, serverID string) (*ProfileView, error) {
	if username == "" || serverID == "" {
		return nil, domain.ErrInvalidArgument.WithDetails("username and serverId are required")
	}

	v, ok := s.tickets.Get(ticketKey(username, serverID))
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	ticket := v.(joinTicket)

	profile, err := s.profiles.GetProfile(ctx, ticket.ProfileID)
	if err != nil {
		return nil, domain.AsDomainError(err)
	}
	return s.view(ctx, profile)
}

// LauncherProfile returns the account behind a username or email together
// with its profiles and active textures.
func (s *SessionServerService) LauncherProfile(ctx context.Context, identifier string) (*UserInfo, error) {
	account, err := s.accounts.FindByLoginIdentifier(ctx, identifier)
	if err != nil {
		return nil, domain.AsDomainError(err)
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

// TicketCount returns the number of unexpired join tickets.
func (s *SessionServerService) TicketCount() int {
	return s.tickets.ItemCount()
}

// PurgeTickets drops expired join tickets.
func (s *SessionServerService) PurgeTickets() {
	s.tickets.DeleteExpired()
}

func (s *SessionServerService) view(ctx context.Context, profile *domain.Profile) (*ProfileView, error) {
	payload := texturesPayload{
		Timestamp:   s.now().UnixMilli(),
		ProfileID:   token.MustFormatIdentifier(profile.ID),
		ProfileName: profile.Name,
		Textures:    map[string]textureEntry{},
	}

	skin, err := activeOrNil(ctx, s.textures, profile.OwnerID, domain.TextureSkin)
	if err != nil {
		return nil, err
	}
	switch {
	case skin != nil:
		entry := textureEntry{URL: skin.URL}
		if skin.Model == domain.ModelSlim {
			entry.Metadata = &textureMetadata{Model: skin.Model}
		}
		payload.Textures[string(domain.TextureSkin)] = entry
	case s.defaultSkin != "":
		payload.Textures[string(domain.TextureSkin)] = textureEntry{
			URL: strings.ReplaceAll(s.defaultSkin, "{id}", profile.ID),
		}
	}

	cape, err := activeOrNil(ctx, s.textures, profile.OwnerID, domain.TextureCape)
	if err != nil {
		return nil, err
	}
	if cape != nil {
		payload.Textures[string(domain.TextureCape)] = textureEntry{URL: cape.URL}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.ErrInternal.WithCause(err)
	}
	return &ProfileView{
		ID:   profile.ID,
		Name: profile.Name,
		Properties: []ProfileProperty{{
			Name:  TexturesProperty,
			Value: base64.StdEncoding.EncodeToString(raw),
		}},
	}, nil
}

func ticketKey(profileName, serverID string) string {
	return profileName + "\x00" + serverID
}
