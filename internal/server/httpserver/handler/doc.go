// Package handler provides the HTTP handlers for yggauth.
//
// Protocol routes (/authserver, /sessionserver) answer failures with
// {"error", "errorMessage"} bodies. The /api and /launcher routes answer
// with {"error", "message"}. Services never see HTTP types; this package
// maps domain error kinds to status codes.
package handler
