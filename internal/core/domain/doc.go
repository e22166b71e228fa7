// Package domain defines the core domain models for yggauth.
//
// Domain models are plain value objects without IO dependencies or
// framework coupling. This package contains:
//
//   - Account: a registered user with a bcrypt password hash
//   - Profile: a named player identity owned by an account
//   - Session: a bearer access token bound to a client token and owner
//   - Texture: skin and cape metadata attached to an account
//   - Errors: the error taxonomy shared by services and transports
//
// Timestamps are Unix milliseconds. Account and profile identifiers are
// stored in compact form (32 lowercase hex characters).
package domain
