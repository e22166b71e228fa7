package memory

import (
	"context"
	"sync"
	"time"

	"github.com/yndnr/yggauth-go/internal/core/domain"
)

// AccountTable holds registered users.
//
// Usernames and emails share one login namespace: a new username may not
// equal an existing email and vice versa, so a login identifier always
// resolves to at most one account.
type AccountTable struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Account
	byLogin map[string]string // username or email -> account ID
	persist Persister
}

func newAccountTable(p Persister) *AccountTable {
	return &AccountTable{
		byID:    make(map[string]*domain.Account),
		byLogin: make(map[string]string),
		persist: p,
	}
}

// CreateAccount inserts a new account. The uniqueness check and the insert
// happen under one write lock, so of two concurrent creates with the same
// username or email exactly one succeeds.
func (t *AccountTable) CreateAccount(ctx context.Context, account *domain.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byID[account.ID]; ok {
		return domain.ErrDuplicateIdentifier.WithDetails("account id")
	}
	if _, ok := t.byLogin[account.Username]; ok {
		return domain.ErrDuplicateIdentifier.WithDetails("username")
	}
	if _, ok := t.byLogin[account.Email]; ok {
		return domain.ErrDuplicateIdentifier.WithDetails("email")
	}

	clone := account.Clone()
	if err := t.persist.Put(ctx, KindAccount, clone.ID, clone); err != nil {
		return domain.ErrStorage.WithCause(err)
	}
	t.insertLocked(clone)
	return nil
}

func (t *AccountTable) insertLocked(a *domain.Account) {
	t.byID[a.ID] = a
	t.byLogin[a.Username] = a.ID
	t.byLogin[a.Email] = a.ID
}

func (t *AccountTable) restore(a *domain.Account) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.insertLocked(a)
}

// FindByLoginIdentifier matches identifier against username or email.
func (t *AccountTable) FindByLoginIdentifier(_ context.Context, identifier string) (*domain.Account, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	id, ok := t.byLogin[identifier]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return t.byID[id].Clone(), nil
}

// GetAccount retrieves an account by ID.
func (t *AccountTable) GetAccount(_ context.Context, id string) (*domain.Account, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	a, ok := t.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return a.Clone(), nil
}

func (t *AccountTable) exists(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.byID[id]
	return ok
}

// UpdatePasswordHash replaces the stored password hash.
func (t *AccountTable) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	if hash == "" {
		return domain.ErrInvalidArgument.WithDetails("password hash is required")
	}
	return t.update(ctx, id, func(a *domain.Account) { a.PasswordHash = hash })
}

// TouchLastLogin records a successful authentication.
func (t *AccountTable) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return t.update(ctx, id, func(a *domain.Account) { a.LastLogin = at.UnixMilli() })
}

func (t *AccountTable) update(ctx context.Context, id string, fn func(*domain.Account)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	next := current.Clone()
	fn(next)
	if err := t.persist.Put(ctx, KindAccount, id, next); err != nil {
		return domain.ErrStorage.WithCause(err)
	}
	t.byID[id] = next
	return nil
}

// Count returns the number of accounts.
func (t *AccountTable) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}
