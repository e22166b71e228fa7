// Package config defines the yggauth-server configuration.
//
//   - types.go: ServerConfig struct definition
//   - default.go: default values
//   - verify.go: validation
//   - sanitize.go: secret masking for logs
//
// Configuration is loaded via internal/infra/confloader from a YAML file,
// YGGAUTH_ environment variables and command-line flags.
package config
