package service

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/stockbar/stockbar/internal/auth/domain"
	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// ProviderRegistry holds the configured identity provider clients. It is
// populated at startup and read-only afterwards.
type ProviderRegistry struct {
	defaultName string
	providers   map[string]ProviderClient
}

// NewProviderRegistry creates an empty registry with the given default provider name.
func NewProviderRegistry(defaultName string) *ProviderRegistry {
	return &ProviderRegistry{
		defaultName: defaultName,
		providers:   make(map[string]ProviderClient),
	}
}

// Register adds a provider client. Must be called during startup only.
func (r *ProviderRegistry) Register(client ProviderClient) {
	r.providers[client.Name()] = client
}

// DefaultName returns the default provider registration name.
func (r *ProviderRegistry) DefaultName() string {
	return r.defaultName
}

// Get returns the client for the named provider, or the default provider when
// name is empty. Returns ErrProviderNotFound for unknown registrations.
func (r *ProviderRegistry) Get(name string) (ProviderClient, error) {
	if name == "" {
		name = r.defaultName
	}
	client, ok := r.providers[name]
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	return client, nil
}

// oidcProviderClient implements ProviderClient on top of an OIDC provider
// discovered from its issuer URL.
type oidcProviderClient struct {
	name     string
	config   *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// OIDCProviderParams holds the registration details for one OIDC provider.
type OIDCProviderParams struct {
	Name         string
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// NewOIDCProviderClient discovers the provider's endpoints from its issuer and
// builds a client for the authorization code flow with openid/profile/email scopes.
func NewOIDCProviderClient(ctx context.Context, params OIDCProviderParams) (ProviderClient, error) {
	provider, err := oidc.NewProvider(ctx, params.Issuer)
	if err != nil {
		return nil, apperrors.Wrap(err, "oidc provider discovery failed")
	}

	config := &oauth2.Config{
		ClientID:     params.ClientID,
		ClientSecret: params.ClientSecret,
		RedirectURL:  params.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	return &oidcProviderClient{
		name:     params.Name,
		config:   config,
		verifier: provider.Verifier(&oidc.Config{ClientID: params.ClientID}),
	}, nil
}

// Name returns the registration name.
func (c *oidcProviderClient) Name() string {
	return c.name
}

// AuthCodeURL builds the provider authorization URL for the given state.
func (c *oidcProviderClient) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return c.config.AuthCodeURL(state, opts...)
}

// Exchange redeems the authorization code for tokens.
func (c *oidcProviderClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFederation, "code exchange failed")
	}
	return token, nil
}

// VerifyIDToken checks the id_token in the token set and extracts the identity.
func (c *oidcProviderClient) VerifyIDToken(ctx context.Context, token *oauth2.Token) (*domain.Identity, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, apperrors.Wrap(apperrors.ErrFederation, "token response carries no id_token")
	}

	idToken, err := c.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFederation, "id_token verification failed")
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFederation, "id_token claims are malformed")
	}
	if claims.Email == "" {
		return nil, apperrors.Wrap(apperrors.ErrFederation, "id_token carries no email")
	}

	return &domain.Identity{
		Subject: idToken.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}
