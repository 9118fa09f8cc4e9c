// Package service provides stateless authentication services: bearer token
// verification and the outbound authorization request resolution for the
// federated login handshake.
package service

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/stockbar/stockbar/internal/auth/domain"
)

// TokenVerifier validates and decodes a bearer credential. Verification is
// local and offline; no network calls are made.
//
// Verify returns ErrNoCredential semantics at the caller (an absent header is
// not passed in here), ErrInvalidCredential for malformed, expired, or badly
// signed tokens, and a Principal on success.
type TokenVerifier interface {
	Verify(tokenString string) (*domain.Principal, error)
}

// ProviderClient abstracts one registered identity provider: building the
// authorization URL, exchanging the callback code, and verifying the returned
// ID token.
type ProviderClient interface {
	// Name returns the registration name (e.g. "google").
	Name() string
	// AuthCodeURL builds the provider authorization endpoint URL for a state value.
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	// Exchange redeems the authorization code for a token set. This is the one
	// synchronous network round-trip in the login flow.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	// VerifyIDToken checks the ID token carried by the token set and extracts
	// the verified identity.
	VerifyIDToken(ctx context.Context, token *oauth2.Token) (*domain.Identity, error)
}

// AuthorizationRequestResolver builds the outbound AuthorizationRequest for a
// login attempt. Both entry points exist so a decorator can transform the
// default-provider and named-provider resolutions identically.
type AuthorizationRequestResolver interface {
	// Resolve builds a request for the default provider.
	Resolve(ctx context.Context) (*domain.AuthorizationRequest, error)
	// ResolveProvider builds a request for an explicitly named provider.
	ResolveProvider(ctx context.Context, provider string) (*domain.AuthorizationRequest, error)
}
