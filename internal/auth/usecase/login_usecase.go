package usecase

import (
	"context"
	"log/slog"

	"github.com/stockbar/stockbar/internal/auth/domain"
	"github.com/stockbar/stockbar/internal/auth/service"
)

// loginUseCase coordinates the federated login handshake: building the
// outbound authorization request, verifying the provider's callback, and
// establishing a session when one is needed.
type loginUseCase struct {
	resolver    service.AuthorizationRequestResolver
	registry    *service.ProviderRegistry
	provisioner IdentityProvisioner
	sessions    SessionUseCase
	logger      *slog.Logger
}

// NewLoginUseCase creates the login coordinator. The resolver is expected to
// carry the account-selection override already applied.
func NewLoginUseCase(
	resolver service.AuthorizationRequestResolver,
	registry *service.ProviderRegistry,
	provisioner IdentityProvisioner,
	sessions SessionUseCase,
	logger *slog.Logger,
) LoginUseCase {
	return &loginUseCase{
		resolver:    resolver,
		registry:    registry,
		provisioner: provisioner,
		sessions:    sessions,
		logger:      logger,
	}
}

// Begin builds the outbound authorization request.
func (u *loginUseCase) Begin(ctx context.Context, provider string) (*domain.AuthorizationRequest, error) {
	if provider == "" {
		return u.resolver.Resolve(ctx)
	}
	return u.resolver.ResolveProvider(ctx, provider)
}

// Complete verifies the provider callback and establishes the local identity.
// The code exchange is the only blocking network round-trip; it holds no
// shared locks while in flight. A session is created only when the request did
// not already carry a valid bearer token.
func (u *loginUseCase) Complete(
	ctx context.Context,
	provider, code string,
	bearerAuthenticated bool,
) (*LoginResult, error) {
	client, err := u.registry.Get(provider)
	if err != nil {
		return nil, err
	}

	token, err := client.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	identity, err := client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}

	principal, err := u.provisioner.ProvisionIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	result := &LoginResult{Principal: principal}

	if bearerAuthenticated {
		u.logger.Debug("skipping session creation for bearer-authenticated request",
			slog.String("email", principal.Email))
		return result, nil
	}

	session, err := u.sessions.Create(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	result.Session = session

	u.logger.Info("federated login completed",
		slog.String("provider", client.Name()),
		slog.String("user_id", principal.ID.String()))

	return result, nil
}
