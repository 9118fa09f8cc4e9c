package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockbar/stockbar/internal/auth/domain"
	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// sessionUseCase implements SessionUseCase over a session repository.
type sessionUseCase struct {
	sessionRepo SessionRepository
	principals  PrincipalResolver
	ttl         time.Duration
}

// NewSessionUseCase creates a session use case with the given session lifetime.
func NewSessionUseCase(
	sessionRepo SessionRepository,
	principals PrincipalResolver,
	ttl time.Duration,
) SessionUseCase {
	return &sessionUseCase{
		sessionRepo: sessionRepo,
		principals:  principals,
		ttl:         ttl,
	}
}

// Create establishes a new session for a user.
func (s *sessionUseCase) Create(ctx context.Context, userID uuid.UUID) (*domain.Session, error) {
	now := time.Now().UTC()

	session := &domain.Session{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Authenticate resolves a session id into a Principal. A missing session is
// reported as an invalid credential so a stale cookie produces a 401 on
// protected routes rather than a 404. Expired sessions are removed.
func (s *sessionUseCase) Authenticate(ctx context.Context, sessionID uuid.UUID) (*domain.Principal, error) {
	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrInvalidCredential, "unknown session")
		}
		return nil, err
	}

	if session.Expired(time.Now().UTC()) {
		if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
			return nil, err
		}
		return nil, domain.ErrSessionExpired
	}

	return s.principals.ResolvePrincipal(ctx, session.UserID)
}

// Invalidate removes a session. Removing an unknown session is not an error.
func (s *sessionUseCase) Invalidate(ctx context.Context, sessionID uuid.UUID) error {
	err := s.sessionRepo.Delete(ctx, sessionID)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

// CleanExpired removes all expired sessions and returns the count.
func (s *sessionUseCase) CleanExpired(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx)
}
