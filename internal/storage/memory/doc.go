// Package memory provides the authoritative in-memory tables for yggauth.
//
// The Store bundles four tables, each guarded by its own RWMutex:
//
//   - AccountTable: registered users, unique by username and email
//   - ProfileTable: player profiles, ordered per owner
//   - SessionTable: access token bindings with expiry
//   - TextureTable: skin and cape metadata with an active selection
//
// Reads return clones, so callers can never mutate stored records.
// Accounts, profiles and textures are written through to an optional
// Persister before they become visible; sessions are memory only.
package memory
