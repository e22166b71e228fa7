// Package httpserver serves the yggauth HTTP API.
//
// Route groups:
//
//   - /authserver/*: authenticate, refresh, validate, invalidate, signout
//   - /sessionserver/session/minecraft/*: profile, join, hasJoined
//   - /launcher/user/profile/{username}
//   - /api/*: registration, account and texture management (Bearer)
//   - /health, /metrics, /admin/* (admin bearer)
//
// NewRouter wraps the handler in Recover, RequestID, Audit, CORS, MaxBody
// and Metrics, outermost first.
package httpserver
