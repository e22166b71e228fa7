package service

import (
	"context"
	"errors"
	"time"

	"github.com/yndnr/yggauth-go/internal/core/domain"
	"github.com/yndnr/yggauth-go/internal/telemetry/logger"
	"github.com/yndnr/yggauth-go/pkg/token"
)

// findSession returns the raw session for accessToken, expired or not.
func findSession(ctx context.Context, sessions SessionRepository, accessToken string) (*domain.Session, error) {
	session, err := sessions.FindByAccessToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, domain.AsDomainError(err)
	}
	return session, nil
}

// liveSession returns the session for accessToken if it has not expired
// at now. An expired session is removed and reported as ErrTokenExpired;
// the next lookup then reports ErrTokenInvalid.
func liveSession(ctx context.Context, sessions SessionRepository, accessToken string, now time.Time) (*domain.Session, error) {
	session, err := findSession(ctx, sessions, accessToken)
	if err != nil {
		return nil, err
	}
	if session.IsExpiredAt(now) {
		return nil, expireSession(ctx, sessions, session, now)
	}
	return session, nil
}

// expireSession removes an expired session and returns ErrTokenExpired.
// The removal is conditional so a session refreshed concurrently under
// the same token is never dropped.
func expireSession(ctx context.Context, sessions SessionRepository, session *domain.Session, now time.Time) error {
	removed, err := sessions.RemoveIfExpired(ctx, session.AccessToken, now)
	if err != nil {
		return domain.AsDomainError(err)
	}
	if removed {
		logger.L(ctx).Debug("expired session removed",
			"account_id", session.OwnerID,
			"token_fp", token.Fingerprint(session.AccessToken))
	}
	return domain.ErrTokenExpired
}

// bearerSession resolves a bearer token for the /api routes. Any token
// failure collapses to ErrUnauthorized.
func bearerSession(ctx context.Context, sessions SessionRepository, accessToken string, now time.Time) (*domain.Session, error) {
	if accessToken == "" {
		return nil, domain.ErrUnauthorized.WithDetails("access token required")
	}
	session, err := liveSession(ctx, sessions, accessToken, now)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) || errors.Is(err, domain.ErrTokenExpired) {
			return nil, domain.ErrUnauthorized.WithCause(err)
		}
		return nil, err
	}
	return session, nil
}
