package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// Session is an opaque, server-tracked handle created only by a successful
// interactive login. The browser holds the ID in a cookie; everything else
// stays server-side. A session is never created for a request that already
// carried a valid bearer token.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Domain-specific errors for session operations.
var (
	// ErrSessionNotFound indicates the session does not exist.
	ErrSessionNotFound = apperrors.Wrap(apperrors.ErrNotFound, "session not found")

	// ErrSessionExpired indicates a session cookie referenced an expired session.
	ErrSessionExpired = apperrors.Wrap(apperrors.ErrInvalidCredential, "session expired")
)
