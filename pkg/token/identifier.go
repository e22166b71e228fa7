package token

import (
	"encoding/hex"
	"errors"
	"strings"
)

// ErrMalformedIdentifier is returned for input that is neither the compact
// nor the hyphenated identifier form.
var ErrMalformedIdentifier = errors.New("token: malformed identifier")

const compactLen = 32

// FormatIdentifier renders a compact identifier as 8-4-4-4-12.
func FormatIdentifier(raw string) (string, error) {
	compact, err := ParseIdentifier(raw)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(compactLen + 4)
	b.WriteString(compact[0:8])
	b.WriteByte('-')
	b.WriteString(compact[8:12])
	b.WriteByte('-')
	b.WriteString(compact[12:16])
	b.WriteByte('-')
	b.WriteString(compact[16:20])
	b.WriteByte('-')
	b.WriteString(compact[20:32])
	return b.String(), nil
}

// MustFormatIdentifier is FormatIdentifier for identifiers the caller
// generated itself. Malformed input is returned unchanged.
func MustFormatIdentifier(raw string) string {
	s, err := FormatIdentifier(raw)
	if err != nil {
		return raw
	}
	return s
}

// ParseIdentifier accepts the compact or hyphenated form in any case and
// returns the lowercase compact form.
func ParseIdentifier(s string) (string, error) {
	switch len(s) {
	case compactLen:
	case compactLen + 4:
		if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
			return "", ErrMalformedIdentifier
		}
		s = s[0:8] + s[9:13] + s[14:18] + s[19:23] + s[24:]
	default:
		return "", ErrMalformedIdentifier
	}

	s = strings.ToLower(s)
	if _, err := hex.DecodeString(s); err != nil {
		return "", ErrMalformedIdentifier
	}
	return s, nil
}

// IsIdentifier reports whether s parses as an identifier.
func IsIdentifier(s string) bool {
	_, err := ParseIdentifier(s)
	return err == nil
}
