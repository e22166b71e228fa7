// Package token issues the opaque credentials and identifiers used by the
// authentication protocol.
//
// Formats:
//
//   - Access token: 32 random bytes, lowercase hex (64 characters)
//   - Client token: random UUIDv4 without hyphens (32 characters)
//   - Identifier: 32 lowercase hex characters, rendered 8-4-4-4-12 when
//     displayed
//
// All randomness comes from crypto/rand.
package token
