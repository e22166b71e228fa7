package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/yggauth-go/internal/core/domain"
)

func newAccount(id, username, email string) *domain.Account {
	return domain.NewAccount(id, username, email, "$2a$04$hash")
}

func TestAccountTable_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Accounts.CreateAccount(ctx, newAccount("a1", "alice", "a@x.com")))

	byName, err := store.Accounts.FindByLoginIdentifier(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a1", byName.ID)

	byEmail, err := store.Accounts.FindByLoginIdentifier(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a1", byEmail.ID)

	_, err = store.Accounts.FindByLoginIdentifier(ctx, "Alice")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound, "username match is case-sensitive")

	got, err := store.Accounts.GetAccount(ctx, "a1")
	require.NoError(t, err)
	got.Username = "mallory"

	again, _ := store.Accounts.GetAccount(ctx, "a1")
	assert.Equal(t, "alice", again.Username, "returned records must be clones")
	assert.Equal(t, 1, store.Accounts.Count())
}

func TestAccountTable_Duplicates(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.Accounts.CreateAccount(ctx, newAccount("a1", "alice", "a@x.com")))

	tests := []struct {
		name    string
		account *domain.Account
	}{
		{"same username", newAccount("a2", "alice", "other@x.com")},
		{"same email", newAccount("a2", "bob", "a@x.com")},
		{"same id", newAccount("a1", "bob", "b@x.com")},
		{"username equals existing email", newAccount("a2", "a@x.com", "b@x.com")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Accounts.CreateAccount(ctx, tt.account)
			assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
		})
	}
}

func TestAccountTable_ConcurrentCreateSameUsername(t *testing.T) {
	ctx := context.Background()
	store := New()

	const workers = 32
	var (
		wg    sync.WaitGroup
		wins  atomic.Int32
		dupes atomic.Int32
		start = make(chan struct{})
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			err := store.Accounts.CreateAccount(ctx, newAccount(fmt.Sprintf("id%d", i), "alice", fmt.Sprintf("a%d@x.com", i)))
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, domain.ErrDuplicateIdentifier):
				dupes.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, wins.Load())
	assert.EqualValues(t, workers-1, dupes.Load())
}

func TestAccountTable_Updates(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.Accounts.CreateAccount(ctx, newAccount("a1", "alice", "a@x.com")))

	require.NoError(t, store.Accounts.UpdatePasswordHash(ctx, "a1", "$2a$04$new"))
	now := time.Now()
	require.NoError(t, store.Accounts.TouchLastLogin(ctx, "a1", now))

	got, err := store.Accounts.GetAccount(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "$2a$04$new", got.PasswordHash)
	assert.Equal(t, now.UnixMilli(), got.LastLogin)

	assert.ErrorIs(t, store.Accounts.UpdatePasswordHash(ctx, "missing", "h"), domain.ErrAccountNotFound)
	assert.ErrorIs(t, store.Accounts.UpdatePasswordHash(ctx, "a1", ""), domain.ErrInvalidArgument)
	assert.ErrorIs(t, store.Accounts.TouchLastLogin(ctx, "missing", now), domain.ErrAccountNotFound)
}

func TestAccountTable_InvalidAccount(t *testing.T) {
	err := New().Accounts.CreateAccount(context.Background(), newAccount("a1", "", "a@x.com"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
