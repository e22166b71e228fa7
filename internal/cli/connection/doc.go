// Package connection is the HTTP client yggauth-cli uses to talk to
// yggauth-server.
//
// Failures are decoded from both error envelopes the server emits: the
// Yggdrasil {error, errorMessage} body and the {error, message} body of the
// /api and /admin routes.
package connection
