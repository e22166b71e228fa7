package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yndnr/yggauth-go/internal/core/domain"
)

// Record kinds written through to a Persister.
const (
	KindAccount       = "account"
	KindProfile       = "profile"
	KindTexture       = "texture"
	KindActiveTexture = "active"
)

// Persister receives every committed account, profile and texture mutation.
// Put is called with the table lock held; a failed Put aborts the mutation.
type Persister interface {
	Put(ctx context.Context, kind, key string, value any) error
	Delete(ctx context.Context, kind, key string) error
}

// Source replays previously persisted records at startup.
type Source interface {
	Load(ctx context.Context, kind string, fn func(value []byte) error) error
}

type nopPersister struct{}

func (nopPersister) Put(context.Context, string, string, any) error { return nil }
func (nopPersister) Delete(context.Context, string, string) error   { return nil }

// Store bundles the tables backing the services.
type Store struct {
	Accounts *AccountTable
	Profiles *ProfileTable
	Sessions *SessionTable
	Textures *TextureTable
}

type options struct {
	persister  Persister
	shardCount int
}

// Option configures the Store.
type Option func(*options)

// WithPersister writes accounts, profiles and textures through to p.
func WithPersister(p Persister) Option {
	return func(o *options) {
		if p != nil {
			o.persister = p
		}
	}
}

// WithSessionShards sets the shard count of the session map.
func WithSessionShards(n int) Option {
	return func(o *options) {
		o.shardCount = n
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	o := &options{persister: nopPersister{}}
	for _, opt := range opts {
		opt(o)
	}

	accounts := newAccountTable(o.persister)
	return &Store{
		Accounts: accounts,
		Profiles: newProfileTable(accounts, o.persister),
		Sessions: newSessionTable(o.shardCount),
		Textures: newTextureTable(o.persister),
	}
}

// activeRecord is the persisted form of a texture selection.
type activeRecord struct {
	OwnerID   string             `json:"owner_id"`
	Kind      domain.TextureKind `json:"kind"`
	TextureID string             `json:"texture_id"`
}

// Hydrate replays src into the store without writing back to the persister.
// Accounts are loaded before profiles so ownership checks hold.
func (s *Store) Hydrate(ctx context.Context, src Source) error {
	err := src.Load(ctx, KindAccount, func(value []byte) error {
		var a domain.Account
		if err := json.Unmarshal(value, &a); err != nil {
			return err
		}
		s.Accounts.restore(&a)
		return nil
	})
	if err != nil {
		return fmt.Errorf("hydrate accounts: %w", err)
	}

	err = src.Load(ctx, KindProfile, func(value []byte) error {
		var p domain.Profile
		if err := json.Unmarshal(value, &p); err != nil {
			return err
		}
		s.Profiles.restore(&p)
		return nil
	})
	if err != nil {
		return fmt.Errorf("hydrate profiles: %w", err)
	}
	s.Profiles.sortOwners()

	err = src.Load(ctx, KindTexture, func(value []byte) error {
		var t domain.Texture
		if err := json.Unmarshal(value, &t); err != nil {
			return err
		}
		s.Textures.restore(&t)
		return nil
	})
	if err != nil {
		return fmt.Errorf("hydrate textures: %w", err)
	}

	err = src.Load(ctx, KindActiveTexture, func(value []byte) error {
		var r activeRecord
		if err := json.Unmarshal(value, &r); err != nil {
			return err
		}
		s.Textures.restoreActive(r)
		return nil
	})
	if err != nil {
		return fmt.Errorf("hydrate active textures: %w", err)
	}
	return nil
}

// SessionCount returns the number of stored sessions, expired ones included.
func (s *Store) SessionCount(ctx context.Context) (int, error) {
	return s.Sessions.Count(ctx)
}

// AccountCount returns the number of registered accounts.
func (s *Store) AccountCount() int {
	return s.Accounts.Count()
}
