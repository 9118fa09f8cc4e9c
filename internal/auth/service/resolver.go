package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"github.com/stockbar/stockbar/internal/auth/domain"
	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// registryResolver is the base resolver: it builds an AuthorizationRequest
// from the registered provider client, with a fresh random state per attempt.
type registryResolver struct {
	registry *ProviderRegistry
}

// NewAuthorizationRequestResolver creates the base resolver over a provider registry.
func NewAuthorizationRequestResolver(registry *ProviderRegistry) AuthorizationRequestResolver {
	return &registryResolver{registry: registry}
}

// Resolve builds a request for the default provider.
func (r *registryResolver) Resolve(ctx context.Context) (*domain.AuthorizationRequest, error) {
	return r.ResolveProvider(ctx, r.registry.DefaultName())
}

// ResolveProvider builds a request for an explicitly named provider.
func (r *registryResolver) ResolveProvider(
	ctx context.Context,
	provider string,
) (*domain.AuthorizationRequest, error) {
	client, err := r.registry.Get(provider)
	if err != nil {
		return nil, err
	}

	state, err := newState()
	if err != nil {
		return nil, err
	}

	return &domain.AuthorizationRequest{
		Provider:    client.Name(),
		State:       state,
		RedirectURL: client.AuthCodeURL(state),
	}, nil
}

// newState generates a random anti-forgery state value.
func newState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", apperrors.Wrap(err, "generate state")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// accountSelectionResolver decorates a base resolver so every resolved
// authorization request forces the provider into explicit account selection.
// Users must always confirm which account they are logging in with; the
// provider must not silently reuse a cached browser session.
//
// The transformation is applied after base resolution and is identical for
// both entry points.
type accountSelectionResolver struct {
	base AuthorizationRequestResolver
}

// NewAccountSelectionResolver wraps a resolver with the account-selection override.
func NewAccountSelectionResolver(base AuthorizationRequestResolver) AuthorizationRequestResolver {
	return &accountSelectionResolver{base: base}
}

// Resolve resolves via the base resolver, then applies the override.
func (r *accountSelectionResolver) Resolve(ctx context.Context) (*domain.AuthorizationRequest, error) {
	req, err := r.base.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return forceAccountSelection(req)
}

// ResolveProvider resolves via the base resolver, then applies the override.
func (r *accountSelectionResolver) ResolveProvider(
	ctx context.Context,
	provider string,
) (*domain.AuthorizationRequest, error) {
	req, err := r.base.ResolveProvider(ctx, provider)
	if err != nil {
		return nil, err
	}
	return forceAccountSelection(req)
}

func forceAccountSelection(req *domain.AuthorizationRequest) (*domain.AuthorizationRequest, error) {
	decorated, err := req.WithParam("prompt", "select_account")
	if err != nil {
		return nil, err
	}
	return &decorated, nil
}
