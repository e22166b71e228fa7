package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/yndnr/yggauth-go/internal/core/domain"
)

// ProfileTable holds player profiles. Names are unique across the table
// because server-join lookups go by name.
type ProfileTable struct {
	mu       sync.RWMutex
	byID     map[string]*domain.Profile
	byName   map[string]string
	byOwner  map[string][]string // owner ID -> profile IDs in creation order
	reserved map[string]struct{} // names held by ReserveName
	seq      uint64
	accounts *AccountTable
	persist  Persister
}

func newProfileTable(accounts *AccountTable, p Persister) *ProfileTable {
	return &ProfileTable{
		byID:     make(map[string]*domain.Profile),
		byName:   make(map[string]string),
		byOwner:  make(map[string][]string),
		reserved: make(map[string]struct{}),
		accounts: accounts,
		persist:  p,
	}
}

// ReserveName holds an unused name against other reservations until
// CreateProfile consumes it or release drops it. release may be called
// more than once, and after the profile exists.
func (t *ProfileTable) ReserveName(_ context.Context, name string) (release func(), err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byName[name]; ok {
		return nil, domain.ErrDuplicateIdentifier.WithDetails("profile name")
	}
	if _, ok := t.reserved[name]; ok {
		return nil, domain.ErrDuplicateIdentifier.WithDetails("profile name")
	}
	t.reserved[name] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.reserved, name)
			t.mu.Unlock()
		})
	}, nil
}

// CreateProfile appends a profile to its owner's list. The owner must
// exist. A name held by ReserveName is available only to the holder, which
// is the only caller expected to create it.
func (t *ProfileTable) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	if !t.accounts.exists(profile.OwnerID) {
		return domain.ErrAccountNotFound
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byID[profile.ID]; ok {
		return domain.ErrDuplicateIdentifier.WithDetails("profile id")
	}
	if _, ok := t.byName[profile.Name]; ok {
		return domain.ErrDuplicateIdentifier.WithDetails("profile name")
	}

	clone := profile.Clone()
	clone.Seq = t.seq + 1
	if err := t.persist.Put(ctx, KindProfile, clone.ID, clone); err != nil {
		return domain.ErrStorage.WithCause(err)
	}
	t.insertLocked(clone)
	delete(t.reserved, clone.Name)
	return nil
}

func (t *ProfileTable) insertLocked(p *domain.Profile) {
	if p.Seq > t.seq {
		t.seq = p.Seq
	}
	t.byID[p.ID] = p
	t.byName[p.Name] = p.ID
	t.byOwner[p.OwnerID] = append(t.byOwner[p.OwnerID], p.ID)
}

func (t *ProfileTable) restore(p *domain.Profile) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.insertLocked(p)
}

// sortOwners restores creation order after an unordered replay. Records
// without a sequence number sort first, by creation time then ID.
func (t *ProfileTable) sortOwners() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, ids := range t.byOwner {
		sort.Slice(ids, func(i, j int) bool {
			a, b := t.byID[ids[i]], t.byID[ids[j]]
			if a.Seq != b.Seq {
				return a.Seq < b.Seq
			}
			if a.CreatedAt != b.CreatedAt {
				return a.CreatedAt < b.CreatedAt
			}
			return a.ID < b.ID
		})
	}
}

// ListProfilesByOwner returns the owner's profiles in creation order.
// An owner without profiles yields an empty slice.
func (t *ProfileTable) ListProfilesByOwner(_ context.Context, ownerID string) ([]*domain.Profile, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := t.byOwner[ownerID]
	out := make([]*domain.Profile, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.byID[id].Clone())
	}
	return out, nil
}

// GetProfile retrieves a profile by compact ID.
func (t *ProfileTable) GetProfile(_ context.Context, id string) (*domain.Profile, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p.Clone(), nil
}

// GetProfileByName retrieves a profile by exact name.
func (t *ProfileTable) GetProfileByName(_ context.Context, name string) (*domain.Profile, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	id, ok := t.byName[name]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return t.byID[id].Clone(), nil
}
