// Package usecase implements the authentication business logic: session
// lifecycle and the federated login coordinator.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockbar/stockbar/internal/auth/domain"
)

// SessionRepository persists sessions. Writes to a given session are
// serialized by session id at the storage layer; sessions are independent of
// each other.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// PrincipalResolver resolves the current Principal for a stored user id.
// Implemented by the user use case so session authentication reflects role
// changes immediately.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID uuid.UUID) (*domain.Principal, error)
}

// IdentityProvisioner resolves or creates a local user for a verified
// federated identity. Implemented by the user use case.
type IdentityProvisioner interface {
	ProvisionIdentity(ctx context.Context, identity *domain.Identity) (*domain.Principal, error)
}

// SessionUseCase manages interactive login sessions.
type SessionUseCase interface {
	// Create establishes a new session for a user.
	Create(ctx context.Context, userID uuid.UUID) (*domain.Session, error)
	// Authenticate resolves a session id from a cookie into a Principal.
	// Expired sessions are removed and reported as invalid credentials.
	Authenticate(ctx context.Context, sessionID uuid.UUID) (*domain.Principal, error)
	// Invalidate removes a session.
	Invalidate(ctx context.Context, sessionID uuid.UUID) error
	// CleanExpired removes all expired sessions and returns the count.
	CleanExpired(ctx context.Context) (int64, error)
}

// LoginResult is the outcome of a completed federated login handshake.
type LoginResult struct {
	Principal *domain.Principal
	// Session is nil when the request already carried a valid bearer token:
	// bearer and session authentication are mutually exclusive per request.
	Session *domain.Session
}

// LoginUseCase coordinates the federated login handshake.
type LoginUseCase interface {
	// Begin builds the outbound authorization request for the named provider,
	// or the default provider when name is empty.
	Begin(ctx context.Context, provider string) (*domain.AuthorizationRequest, error)
	// Complete verifies the provider callback, provisions the local user, and
	// establishes a session unless the request already carried a valid bearer
	// token.
	Complete(ctx context.Context, provider, code string, bearerAuthenticated bool) (*LoginResult, error)
}
