package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/stockbar/stockbar/internal/auth/domain"
)

// fakeProviderClient is a ProviderClient test double with a static authorize URL.
type fakeProviderClient struct {
	name         string
	authorizeURL string
}

func (f *fakeProviderClient) Name() string {
	return f.name
}

func (f *fakeProviderClient) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return f.authorizeURL + "?client_id=test&state=" + url.QueryEscape(state)
}

func (f *fakeProviderClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "access"}, nil
}

func (f *fakeProviderClient) VerifyIDToken(ctx context.Context, token *oauth2.Token) (*domain.Identity, error) {
	return &domain.Identity{Subject: "subject", Email: "alice@example.com", Name: "Alice"}, nil
}

func newTestRegistry() *ProviderRegistry {
	registry := NewProviderRegistry("google")
	registry.Register(&fakeProviderClient{
		name:         "google",
		authorizeURL: "https://accounts.example.com/authorize",
	})
	return registry
}

func TestRegistryResolver(t *testing.T) {
	ctx := context.Background()
	resolver := NewAuthorizationRequestResolver(newTestRegistry())

	t.Run("resolve uses default provider", func(t *testing.T) {
		req, err := resolver.Resolve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "google", req.Provider)
		assert.NotEmpty(t, req.State)

		u, err := url.Parse(req.RedirectURL)
		require.NoError(t, err)
		assert.Equal(t, req.State, u.Query().Get("state"))
	})

	t.Run("states are fresh per attempt", func(t *testing.T) {
		first, err := resolver.Resolve(ctx)
		require.NoError(t, err)
		second, err := resolver.Resolve(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, first.State, second.State)
	})

	t.Run("resolve by name", func(t *testing.T) {
		req, err := resolver.ResolveProvider(ctx, "google")
		require.NoError(t, err)
		assert.Equal(t, "google", req.Provider)
	})

	t.Run("empty name falls back to default", func(t *testing.T) {
		req, err := resolver.ResolveProvider(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "google", req.Provider)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := resolver.ResolveProvider(ctx, "github")
		assert.ErrorIs(t, err, domain.ErrProviderNotFound)
	})
}

func TestAccountSelectionResolver(t *testing.T) {
	ctx := context.Background()
	resolver := NewAccountSelectionResolver(NewAuthorizationRequestResolver(newTestRegistry()))

	assertsAccountSelection := func(t *testing.T, req *domain.AuthorizationRequest) {
		t.Helper()
		u, err := url.Parse(req.RedirectURL)
		require.NoError(t, err)
		assert.Equal(t, "select_account", u.Query().Get("prompt"))
		assert.Equal(t, req.State, u.Query().Get("state"))
	}

	t.Run("resolve forces account selection", func(t *testing.T) {
		req, err := resolver.Resolve(ctx)
		require.NoError(t, err)
		assertsAccountSelection(t, req)
	})

	t.Run("resolve provider forces account selection", func(t *testing.T) {
		req, err := resolver.ResolveProvider(ctx, "google")
		require.NoError(t, err)
		assertsAccountSelection(t, req)
	})

	t.Run("unknown provider passes through", func(t *testing.T) {
		_, err := resolver.ResolveProvider(ctx, "github")
		assert.ErrorIs(t, err, domain.ErrProviderNotFound)
	})
}
