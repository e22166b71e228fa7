package domain

import "time"

// Supported agent. The protocol only accepts this exact pair.
const (
	AgentName    = "Minecraft"
	AgentVersion = 1
)

// DefaultSessionTTL is used when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// Agent identifies the game client family making a request.
type Agent struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

// IsSupported reports whether a is the single supported agent.
func (a Agent) IsSupported() bool {
	return a.Name == AgentName && a.Version == AgentVersion
}

// Session binds an access token to its client token and owner.
//
// Sessions are immutable once stored: refresh replaces the whole record
// under a new access token.
type Session struct {
	// AccessToken is the primary key.
	AccessToken string `json:"access_token"`

	// ClientToken must match on every refresh and on validate when supplied.
	ClientToken string `json:"client_token"`

	// OwnerID references the owning Account.
	OwnerID string `json:"owner_id"`

	// OwnerUsername is a snapshot taken when the session was created.
	OwnerUsername string `json:"owner_username"`

	// CreatedAt is the creation timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`

	// ExpiresAt is the absolute expiration timestamp (Unix milliseconds).
	ExpiresAt int64 `json:"expires_at"`
}

// NewSession creates a session that expires ttl after now.
func NewSession(ownerID, ownerUsername, accessToken, clientToken string, ttl time.Duration, now time.Time) *Session {
	return &Session{
		AccessToken:   accessToken,
		ClientToken:   clientToken,
		OwnerID:       ownerID,
		OwnerUsername: ownerUsername,
		CreatedAt:     now.UnixMilli(),
		ExpiresAt:     now.Add(ttl).UnixMilli(),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return s.IsExpiredAt(time.Now())
}

// IsExpiredAt reports whether the session is past its expiry at now.
func (s *Session) IsExpiredAt(now time.Time) bool {
	return now.UnixMilli() > s.ExpiresAt
}

// MatchesClientToken reports whether clientToken is the bound client token.
func (s *Session) MatchesClientToken(clientToken string) bool {
	return s.ClientToken == clientToken
}

// TTLDuration returns the remaining time-to-live as a duration.
// Returns 0 if expired.
func (s *Session) TTLDuration() time.Duration {
	remaining := s.ExpiresAt - time.Now().UnixMilli()
	if remaining < 0 {
		return 0
	}
	return time.Duration(remaining) * time.Millisecond
}

// Clone creates a copy of the session.
func (s *Session) Clone() *Session {
	clone := *s
	return &clone
}

// CreatedAtTime returns CreatedAt as time.Time.
func (s *Session) CreatedAtTime() time.Time {
	return time.UnixMilli(s.CreatedAt)
}

// ExpiresAtTime returns ExpiresAt as time.Time.
func (s *Session) ExpiresAtTime() time.Time {
	return time.UnixMilli(s.ExpiresAt)
}
