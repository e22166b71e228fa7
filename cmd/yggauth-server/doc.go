// Package main provides the entry point for yggauth-server.
//
// The server is a mock Yggdrasil authentication provider. It serves:
//
//   - the authserver protocol used by launchers
//   - the sessionserver endpoints used by game servers
//   - a small account and texture API under /api
//   - health, admin and Prometheus endpoints
//
// Usage:
//
//	yggauth-server serve [--config FILE] [--addr HOST:PORT] [--log-level LEVEL]
//	yggauth-server version
//
// Configuration is layered: defaults, then the YAML file, then YGGAUTH_
// environment variables, then flags. Log level changes in the file are
// applied without a restart.
package main
