package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yndnr/yggauth-go/internal/storage/memory"
)

// Config configures the storage engine.
type Config struct {
	// DataDir holds the Badger files. Empty means memory only.
	DataDir string

	// InMemoryKV runs the write-through path against an in-memory Badger.
	InMemoryKV bool

	// Badger tunes the KV; Dir and InMemory are taken from the fields
	// above.
	Badger BadgerOptions

	// SessionShards is the shard count of the session map.
	SessionShards int

	Logger *slog.Logger
}

// DefaultConfig returns a memory-only configuration.
func DefaultConfig() Config {
	return Config{
		Badger: DefaultBadgerOptions(""),
		Logger: slog.Default(),
	}
}

// Engine owns the memory store and, when configured, its durable KV.
type Engine struct {
	store *memory.Store
	kv    *BadgerEngine
}

// Open builds the memory store, replaying and attaching the KV if one is
// configured.
func Open(ctx context.Context, cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.DataDir == "" && !cfg.InMemoryKV {
		logger.Info("storage: memory only, accounts will not survive restart")
		return &Engine{store: memory.New(memory.WithSessionShards(cfg.SessionShards))}, nil
	}

	opts := cfg.Badger
	opts.Dir, opts.InMemory = cfg.DataDir, cfg.InMemoryKV
	kv, err := NewBadgerEngine(opts, logger)
	if err != nil {
		return nil, err
	}

	records := NewRecordStore(kv)
	store := memory.New(
		memory.WithPersister(records),
		memory.WithSessionShards(cfg.SessionShards),
	)
	if err := store.Hydrate(ctx, records); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("storage: replay: %w", err)
	}

	logger.Info("storage: replayed durable records",
		"dir", cfg.DataDir,
		"accounts", store.Accounts.Count())

	return &Engine{store: store, kv: kv}, nil
}

// Store returns the memory store.
func (e *Engine) Store() *memory.Store {
	return e.store
}

// KV returns the Badger engine, or nil in memory-only mode.
func (e *Engine) KV() *BadgerEngine {
	return e.kv
}

// Close releases the KV, if any.
func (e *Engine) Close() error {
	if e.kv == nil {
		return nil
	}
	return e.kv.Close()
}
