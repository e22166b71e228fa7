package storage

import (
	"context"
	"errors"
	"time"
)

var (
	ErrKeyNotFound = errors.New("storage: key not found")
	ErrClosed      = errors.New("storage: kv closed")
)

// KVEngine is the byte-level store under RecordStore.
type KVEngine interface {
	Get(ctx context.Context, key []byte) ([]byte, error)
	Put(ctx context.Context, key, value []byte) error
	Delete(ctx context.Context, key []byte) error
	// Scan visits keys under prefix in order. A non-nil error from fn
	// stops the scan and is returned.
	Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) error) error
	Close() error
}

// BadgerOptions configures NewBadgerEngine.
type BadgerOptions struct {
	// Dir holds the database files. Required unless InMemory.
	Dir      string
	InMemory bool

	// GCInterval is the period of value-log collection. Zero disables it.
	GCInterval time.Duration
	// DiscardRatio is handed to RunValueLogGC.
	DiscardRatio float64
	// SyncWrites fsyncs every commit. Accounts exist nowhere else on
	// disk, so it defaults to true.
	SyncWrites bool
}

// DefaultBadgerOptions returns options for a durable database in dir.
func DefaultBadgerOptions(dir string) BadgerOptions {
	return BadgerOptions{
		Dir:          dir,
		GCInterval:   10 * time.Minute,
		DiscardRatio: 0.5,
		SyncWrites:   true,
	}
}
