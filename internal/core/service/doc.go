// Package service implements the authentication protocol and the account,
// texture and session-server operations on top of storage interfaces.
//
// This package contains:
//
//   - AuthService: authenticate, refresh, validate, invalidate, signout
//   - AccountService: registration, bearer-authenticated account operations
//   - TextureService: skin and cape metadata
//   - SessionServerService: profile lookup, join and hasJoined
//   - Sweeper: periodic removal of expired sessions
//
// Services never encode transport concerns. Every failure is a
// *domain.DomainError and the caller maps it to a wire response.
package service
