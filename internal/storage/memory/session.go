package memory

import (
	"context"
	"sync"
	"time"

	"github.com/yndnr/yggauth-go/internal/core/domain"
	"github.com/yndnr/yggauth-go/pkg/cmap"
)

// SessionTable maps access tokens to sessions.
//
// Lookups return the raw record, expired or not; expiry policy belongs to
// the caller. Every mutation takes mu for writing, so compound operations
// such as Replace are observed either fully or not at all.
type SessionTable struct {
	mu       sync.RWMutex
	sessions *cmap.Map[*domain.Session]
	owners   *ownerIndex
}

func newSessionTable(shards int) *SessionTable {
	return &SessionTable{
		sessions: cmap.NewWithShards[*domain.Session](shards),
		owners:   newOwnerIndex(),
	}
}

// Insert stores a new session. The access token must be unused.
func (t *SessionTable) Insert(_ context.Context, session *domain.Session) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.insertLocked(session)
}

func (t *SessionTable) insertLocked(session *domain.Session) error {
	if session.AccessToken == "" {
		return domain.ErrInvalidArgument.WithDetails("access token is required")
	}
	if !t.sessions.SetIfAbsent(session.AccessToken, session.Clone()) {
		return domain.ErrTokenConflict
	}
	t.owners.Add(session.OwnerID, session.AccessToken)
	return nil
}

func (t *SessionTable) removeLocked(accessToken string) bool {
	s, ok := t.sessions.Pop(accessToken)
	if !ok {
		return false
	}
	t.owners.Remove(s.OwnerID, accessToken)
	return true
}

// FindByAccessToken returns the session for accessToken or ErrTokenInvalid.
func (t *SessionTable) FindByAccessToken(_ context.Context, accessToken string) (*domain.Session, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, ok := t.sessions.Get(accessToken)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return s.Clone(), nil
}

// FindByClientToken scans for a session bound to clientToken.
func (t *SessionTable) FindByClientToken(_ context.Context, clientToken string) (*domain.Session, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var found *domain.Session
	t.sessions.Range(func(_ string, s *domain.Session) bool {
		if s.ClientToken == clientToken {
			found = s.Clone()
			return false
		}
		return true
	})
	if found == nil {
		return nil, domain.ErrTokenInvalid
	}
	return found, nil
}

// ListByOwner returns every session of ownerID.
func (t *SessionTable) ListByOwner(_ context.Context, ownerID string) ([]*domain.Session, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tokens := t.owners.Tokens(ownerID)
	out := make([]*domain.Session, 0, len(tokens))
	for _, tok := range tokens {
		if s, ok := t.sessions.Get(tok); ok {
			out = append(out, s.Clone())
		}
	}
	return out, nil
}

// Remove deletes a session. Removing an absent token is not an error.
func (t *SessionTable) Remove(_ context.Context, accessToken string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeLocked(accessToken)
	return nil
}

// Replace swaps the session under oldAccessToken for next in one step.
// It fails with ErrTokenInvalid if oldAccessToken is already gone, which
// is how the loser of two concurrent refreshes finds out.
func (t *SessionTable) Replace(_ context.Context, oldAccessToken string, next *domain.Session) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.sessions.Get(oldAccessToken); !ok {
		return domain.ErrTokenInvalid
	}
	if _, ok := t.sessions.Get(next.AccessToken); ok {
		return domain.ErrTokenConflict
	}

	t.removeLocked(oldAccessToken)
	return t.insertLocked(next)
}

// RemoveIfExpired deletes the session only if it is still present and
// expired at now. A session replaced in the meantime is left alone.
func (t *SessionTable) RemoveIfExpired(_ context.Context, accessToken string, now time.Time) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions.Get(accessToken)
	if !ok || !s.IsExpiredAt(now) {
		return false, nil
	}
	return t.removeLocked(accessToken), nil
}

// RemoveByOwner deletes every session of ownerID and reports how many.
func (t *SessionTable) RemoveByOwner(_ context.Context, ownerID string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for _, tok := range t.owners.Tokens(ownerID) {
		if t.removeLocked(tok) {
			removed++
		}
	}
	return removed, nil
}

// SweepExpired deletes every session that expired before now.
func (t *SessionTable) SweepExpired(_ context.Context, now time.Time) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := now.UnixMilli()
	return t.sessions.DeleteIf(func(tok string, s *domain.Session) bool {
		if s.ExpiresAt >= cutoff {
			return false
		}
		t.owners.Remove(s.OwnerID, tok)
		return true
	}), nil
}

// Count returns the number of stored sessions, expired ones included.
func (t *SessionTable) Count(_ context.Context) (int, error) {
	return t.sessions.Count(), nil
}
