// Package main provides the entry point for yggauth-cli.
//
// yggauth-cli drives a yggauth-server from the command line: it signs in
// through the authserver protocol, manages accounts and textures, looks up
// profiles the way game servers do, and runs the operator commands.
//
// Usage:
//
//	yggauth-cli [--server URL] [--output table|json|yaml] COMMAND [args]
//	yggauth-cli auth authenticate -u alice -p secret1
//	yggauth-cli account info -o yaml
package main
