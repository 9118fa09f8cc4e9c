// Package http provides the request authentication pipeline: middleware,
// per-request context, and the federated login handlers.
package http

import (
	"context"

	authDomain "github.com/stockbar/stockbar/internal/auth/domain"
)

// principalKey is a context key type for storing the authenticated principal.
type principalKey struct{}

// schemeKey is a context key type for storing the authentication scheme.
type schemeKey struct{}

// WithPrincipal stores an authenticated principal in the context. Called by the
// authentication middleware after a successful credential check.
func WithPrincipal(ctx context.Context, principal *authDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the authenticated principal from the context.
// Returns (nil, false) for anonymous requests.
func GetPrincipal(ctx context.Context) (*authDomain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*authDomain.Principal)
	return principal, ok
}

// WithScheme records which authentication mechanism established the principal.
func WithScheme(ctx context.Context, scheme authDomain.AuthScheme) context.Context {
	return context.WithValue(ctx, schemeKey{}, scheme)
}

// GetScheme retrieves the authentication scheme from the context. The login
// callback uses it to enforce that bearer-authenticated requests never create
// sessions.
func GetScheme(ctx context.Context) (authDomain.AuthScheme, bool) {
	scheme, ok := ctx.Value(schemeKey{}).(authDomain.AuthScheme)
	return scheme, ok
}
