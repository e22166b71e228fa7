package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("YG-TEST-1000", "test message"),
			expected: "[YG-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("YG-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[YG-TEST-1001] test message: extra info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("YG-TEST-1000", "message 1")
	err2 := NewDomainError("YG-TEST-1000", "message 2")
	err3 := NewDomainError("YG-TEST-1001", "message 1")

	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}
}

func TestDomainError_WithDetailsAndCause(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := ErrTokenInvalid.WithDetails("token: abc").WithCause(cause)

	if ErrTokenInvalid.Details != "" || ErrTokenInvalid.Cause != nil {
		t.Error("chaining should not modify the sentinel")
	}
	if err.Code != ErrTokenInvalid.Code {
		t.Errorf("Code = %q, want %q", err.Code, ErrTokenInvalid.Code)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, ErrTokenInvalid) {
		t.Error("errors.Is should work after chaining")
	}
}

func TestIsDomainErrorAndGetErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("wrapped: %w", ErrTokenExpired)

	if !IsDomainError(wrapped, "YG-TOKN-4031") {
		t.Error("IsDomainError should see through wrapping")
	}
	if !IsDomainError(wrapped, "") {
		t.Error("IsDomainError with empty code should match any DomainError")
	}
	if IsDomainError(fmt.Errorf("plain"), "") {
		t.Error("IsDomainError should return false for non-DomainError")
	}
	if got := GetErrorCode(wrapped); got != "YG-TOKN-4031" {
		t.Errorf("GetErrorCode() = %q", got)
	}
	if got := GetErrorCode(nil); got != "" {
		t.Errorf("GetErrorCode(nil) = %q, want empty", got)
	}
}

func TestAsDomainError(t *testing.T) {
	if AsDomainError(nil) != nil {
		t.Error("AsDomainError(nil) should be nil")
	}

	plain := fmt.Errorf("disk on fire")
	de := AsDomainError(plain)
	if de.Code != ErrInternal.Code || de.Cause != plain {
		t.Errorf("AsDomainError(plain) = %+v", de)
	}

	if got := AsDomainError(fmt.Errorf("x: %w", ErrNoProfiles)); got.Code != ErrNoProfiles.Code {
		t.Errorf("AsDomainError(wrapped) code = %q", got.Code)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		kind Kind
	}{
		{ErrInvalidAgent, KindInvalidArgument},
		{ErrCredentialsRequired, KindInvalidArgument},
		{ErrTokensRequired, KindInvalidArgument},
		{ErrInvalidCredentials, KindForbidden},
		{ErrTokenInvalid, KindForbidden},
		{ErrTokenExpired, KindForbidden},
		{ErrNoProfiles, KindForbidden},
		{ErrUserNotFound, KindForbidden},
		{ErrUnauthorized, KindUnauthorized},
		{ErrProfileNotFound, KindNotFound},
		{ErrDuplicateIdentifier, KindConflict},
		{ErrInternal, KindInternal},
		{fmt.Errorf("plain"), KindInternal},
		{ErrTokenExpired.WithDetails("x"), KindForbidden},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.kind {
			t.Errorf("KindOf(%v) = %d, want %d", tt.err, got, tt.kind)
		}
	}
}

func TestProtocolMessages(t *testing.T) {
	// These strings are part of the wire contract with game clients.
	tests := map[*DomainError]string{
		ErrInvalidCredentials:  "Invalid credentials. Invalid username or password.",
		ErrTokenInvalid:        "Invalid token.",
		ErrTokenExpired:        "Token expired.",
		ErrNoProfiles:          "No profiles available for this user.",
		ErrNoProfilesToRefresh: "No profiles available.",
		ErrUserNotFound:        "User not found.",
		ErrInvalidAgent:        "Invalid agent.",
		ErrCredentialsRequired: "Credentials can not be null.",
		ErrTokensRequired:      "Access token and client token are required.",
	}

	for err, msg := range tests {
		if err.Message != msg {
			t.Errorf("%s message = %q, want %q", err.Code, err.Message, msg)
		}
	}
}
