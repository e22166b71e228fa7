// Package config stores yggauth-cli state between invocations.
//
// The state file (YAML, mode 0600) remembers the default server and output
// format plus the tokens of the last successful authenticate, so later
// commands can refresh, validate or call Bearer routes without repeating
// them.
package config
