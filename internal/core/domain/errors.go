// Package domain defines the core domain models for yggauth.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
//
// Codes have the form YG-{AREA}-{NNNN}. Transports map codes to wire status
// and payloads; nothing in the core knows about HTTP.
type DomainError struct {
	Code    string // Error code (e.g., "YG-TOKN-4030")
	Message string // Human-readable message, safe to return to clients
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support. Two DomainErrors match when their codes match.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// AsDomainError returns err as a *DomainError, wrapping anything else in
// ErrInternal so callers always have a code to map.
func AsDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	return ErrInternal.WithCause(err)
}

// Kind groups error codes into the handful of failure classes the
// protocol distinguishes.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindForbidden
	KindUnauthorized
	KindNotFound
	KindConflict
)

var kinds = map[string]Kind{}

func register(kind Kind, code, message string) *DomainError {
	kinds[code] = kind
	return NewDomainError(code, message)
}

// KindOf reports the failure class of err. Unknown errors are internal.
func KindOf(err error) Kind {
	if k, ok := kinds[GetErrorCode(err)]; ok {
		return k
	}
	return KindInternal
}

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates a malformed or missing request field.
	ErrInvalidArgument = register(KindInvalidArgument, "YG-ARG-4000", "Invalid argument.")

	// ErrInvalidAgent indicates an unsupported agent name or version.
	ErrInvalidAgent = register(KindInvalidArgument, "YG-ARG-4001", "Invalid agent.")

	// ErrCredentialsRequired indicates username or password was omitted.
	ErrCredentialsRequired = register(KindInvalidArgument, "YG-ARG-4002", "Credentials can not be null.")

	// ErrTokensRequired indicates a refresh without both tokens.
	ErrTokensRequired = register(KindInvalidArgument, "YG-ARG-4003", "Access token and client token are required.")

	// ErrMalformedIdentifier indicates an identifier that is neither compact nor hyphenated hex.
	ErrMalformedIdentifier = register(KindInvalidArgument, "YG-ARG-4004", "Invalid UUID format.")

	// ErrWeakPassword indicates a password shorter than MinPasswordLength.
	ErrWeakPassword = register(KindInvalidArgument, "YG-ARG-4005", "Password must be at least 6 characters long.")

	// ErrPasswordTooLong indicates a password over MaxPasswordBytes.
	ErrPasswordTooLong = register(KindInvalidArgument, "YG-ARG-4006", "Password must be at most 72 bytes long.")
)

// ============================================================================
// Authentication Errors (AUTH / TOKN)
// ============================================================================

var (
	// ErrInvalidCredentials covers both unknown identifiers and wrong passwords.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = register(KindForbidden, "YG-AUTH-4030", "Invalid credentials. Invalid username or password.")

	// ErrTokenInvalid indicates an unknown access token or a client token mismatch.
	ErrTokenInvalid = register(KindForbidden, "YG-TOKN-4030", "Invalid token.")

	// ErrTokenExpired indicates a session past its expiry.
	ErrTokenExpired = register(KindForbidden, "YG-TOKN-4031", "Token expired.")

	// ErrTokenConflict indicates an access token collision on insert.
	ErrTokenConflict = register(KindConflict, "YG-TOKN-4090", "Access token already in use.")

	// ErrUnauthorized indicates a bearer request without a live session.
	ErrUnauthorized = register(KindUnauthorized, "YG-AUTH-4010", "Invalid or expired token.")
)

// ============================================================================
// Account / Profile / Texture Errors
// ============================================================================

var (
	// ErrUserNotFound indicates a session whose owner no longer exists.
	ErrUserNotFound = register(KindForbidden, "YG-ACCT-4030", "User not found.")

	// ErrAccountNotFound indicates a lookup by account id failed.
	ErrAccountNotFound = register(KindNotFound, "YG-ACCT-4040", "Account not found.")

	// ErrDuplicateIdentifier indicates a username, email or profile name collision.
	ErrDuplicateIdentifier = register(KindConflict, "YG-ACCT-4090", "Username or email already exists.")

	// ErrNoProfiles indicates an authenticated user owns no profiles.
	ErrNoProfiles = register(KindForbidden, "YG-PROF-4030", "No profiles available for this user.")

	// ErrNoProfilesToRefresh is ErrNoProfiles as the refresh route words it.
	ErrNoProfilesToRefresh = register(KindForbidden, "YG-PROF-4032", "No profiles available.")

	// ErrProfileForbidden indicates a profile not owned by the session user.
	ErrProfileForbidden = register(KindForbidden, "YG-PROF-4031", "Profile does not belong to this user.")

	// ErrProfileNotFound indicates an unknown profile id or name.
	ErrProfileNotFound = register(KindNotFound, "YG-PROF-4040", "Profile not found.")

	// ErrTextureNotFound indicates an unknown texture for the owner.
	ErrTextureNotFound = register(KindNotFound, "YG-TEXT-4040", "Texture not found.")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternal indicates an unexpected failure in hashing or storage.
	ErrInternal = register(KindInternal, "YG-SYS-5000", "Internal server error.")

	// ErrStorage indicates a persistence layer failure.
	ErrStorage = register(KindInternal, "YG-SYS-5001", "Storage error.")
)
