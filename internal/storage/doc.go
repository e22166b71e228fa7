// Package storage opens the storage engine for yggauth.
//
// Architecture:
//
//   - memory.Store: the authoritative tables every request reads
//   - BadgerEngine: optional embedded KV that receives write-through
//     copies of accounts, profiles and textures
//
// With no data directory the engine is memory only. With one, the KV is
// replayed into the memory tables on Open and then kept in sync. Sessions
// are never written to disk.
package storage
