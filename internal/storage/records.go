package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// RecordStore stores JSON records in a KVEngine under "{kind}/{key}".
// It satisfies memory.Persister and memory.Source.
type RecordStore struct {
	kv KVEngine
}

// NewRecordStore wraps kv.
func NewRecordStore(kv KVEngine) *RecordStore {
	return &RecordStore{kv: kv}
}

func recordKey(kind, key string) []byte {
	return []byte(kind + "/" + key)
}

// Put encodes value as JSON and stores it.
func (r *RecordStore) Put(ctx context.Context, kind, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", kind, key, err)
	}
	return r.kv.Put(ctx, recordKey(kind, key), data)
}

// Delete removes a record. Missing records are not an error.
func (r *RecordStore) Delete(ctx context.Context, kind, key string) error {
	return r.kv.Delete(ctx, recordKey(kind, key))
}

// Load calls fn with every stored record of kind. value is only valid
// during the call.
func (r *RecordStore) Load(ctx context.Context, kind string, fn func(value []byte) error) error {
	return r.kv.Scan(ctx, []byte(kind+"/"), func(_, value []byte) error {
		return fn(value)
	})
}
