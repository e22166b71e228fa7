// Package logger provides structured logging for yggauth.
//
// It wraps log/slog:
//
//   - logger.go: handler selection (json, text, console via tint) and levels
//   - context.go: context-carried loggers and request IDs
//   - redact.go: masking of passwords, tokens and hashes
//
// The level is held in a slog.LevelVar so it can change at runtime when
// the configuration file is reloaded.
package logger
