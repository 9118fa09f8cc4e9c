package domain

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/stockbar/stockbar/internal/errors"
)

func TestNewPolicy(t *testing.T) {
	t.Run("accepts rules ending with catch-all", func(t *testing.T) {
		policy, err := NewPolicy([]AccessRule{
			{Method: "*", Pattern: "/**", Requirement: Requirement{Kind: AccessAuthenticated}},
		})
		require.NoError(t, err)
		assert.NotNil(t, policy)
	})

	t.Run("rejects empty rule set", func(t *testing.T) {
		_, err := NewPolicy(nil)
		assert.Error(t, err)
	})

	t.Run("rejects rules without catch-all", func(t *testing.T) {
		_, err := NewPolicy([]AccessRule{
			{Method: http.MethodGet, Pattern: "/api/organizations", Requirement: Requirement{Kind: AccessPublic}},
		})
		assert.Error(t, err)
	})
}

func TestAccessRuleMatches(t *testing.T) {
	tests := []struct {
		name    string
		rule    AccessRule
		method  string
		path    string
		matches bool
	}{
		{
			name:    "exact path match",
			rule:    AccessRule{Method: "*", Pattern: "/error"},
			method:  http.MethodGet,
			path:    "/error",
			matches: true,
		},
		{
			name:    "exact path does not match children",
			rule:    AccessRule{Method: "*", Pattern: "/error"},
			method:  http.MethodGet,
			path:    "/error/detail",
			matches: false,
		},
		{
			name:    "prefix pattern matches prefix itself",
			rule:    AccessRule{Method: "*", Pattern: "/oauth2/**"},
			method:  http.MethodGet,
			path:    "/oauth2",
			matches: true,
		},
		{
			name:    "prefix pattern matches descendants",
			rule:    AccessRule{Method: "*", Pattern: "/oauth2/**"},
			method:  http.MethodGet,
			path:    "/oauth2/authorization/google",
			matches: true,
		},
		{
			name:    "prefix pattern rejects lookalike prefix",
			rule:    AccessRule{Method: "*", Pattern: "/oauth2/**"},
			method:  http.MethodGet,
			path:    "/oauth2x",
			matches: false,
		},
		{
			name:    "method filter applies",
			rule:    AccessRule{Method: http.MethodPut, Pattern: "/api/organizations/**"},
			method:  http.MethodGet,
			path:    "/api/organizations/1",
			matches: false,
		},
		{
			name:    "method comparison is case-insensitive",
			rule:    AccessRule{Method: "put", Pattern: "/api/organizations/**"},
			method:  http.MethodPut,
			path:    "/api/organizations/1",
			matches: true,
		},
		{
			name:    "catch-all matches everything",
			rule:    AccessRule{Method: "*", Pattern: "/**"},
			method:  http.MethodDelete,
			path:    "/anything/at/all",
			matches: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.rule.Matches(tt.method, tt.path))
		})
	}
}

func TestDefaultAccessRulesTable(t *testing.T) {
	policy, err := NewPolicy(DefaultAccessRules())
	require.NoError(t, err)

	user := &Principal{ID: uuid.Must(uuid.NewV7()), Role: RoleUser}
	admin := &Principal{ID: uuid.Must(uuid.NewV7()), Role: RoleAdmin}

	tests := []struct {
		name      string
		method    string
		path      string
		principal *Principal
		wantErr   error
	}{
		{"preflight is public", http.MethodOptions, "/api/organizations/1", nil, nil},
		{"root is public", http.MethodGet, "/", nil, nil},
		{"error page is public", http.MethodGet, "/error", nil, nil},
		{"login initiation is public", http.MethodGet, "/oauth2/authorization/google", nil, nil},
		{"login callback is public", http.MethodGet, "/login/oauth2/code/google", nil, nil},
		{"login success is public", http.MethodGet, "/auth/login/success", nil, nil},
		{"organization list is public", http.MethodGet, "/api/organizations", nil, nil},
		{"organization read is public", http.MethodGet, "/api/organizations/42", nil, nil},
		{"organization create is public", http.MethodPost, "/api/organizations", nil, nil},
		{"category reads are public", http.MethodGet, "/api/categories/7", nil, nil},
		{"inventory reads are public", http.MethodGet, "/api/inventory", nil, nil},

		{"organization update needs a principal", http.MethodPut, "/api/organizations/1", nil, apperrors.ErrUnauthorized},
		{"organization update rejects USER", http.MethodPut, "/api/organizations/1", user, apperrors.ErrForbidden},
		{"organization update allows ADMIN", http.MethodPut, "/api/organizations/1", admin, nil},

		{"account falls to catch-all", http.MethodGet, "/api/account", nil, apperrors.ErrUnauthorized},
		{"account allows any principal", http.MethodGet, "/api/account", user, nil},
		{"logout falls to catch-all", http.MethodPost, "/auth/logout", nil, apperrors.ErrUnauthorized},
		{"unknown path falls to catch-all", http.MethodGet, "/nope", nil, apperrors.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Authorize(tt.method, tt.path, tt.principal)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPolicyPublic(t *testing.T) {
	policy, err := NewPolicy(DefaultAccessRules())
	require.NoError(t, err)

	assert.True(t, policy.Public(http.MethodGet, "/api/organizations"))
	assert.True(t, policy.Public(http.MethodOptions, "/api/account"))
	assert.False(t, policy.Public(http.MethodGet, "/api/account"))
	assert.False(t, policy.Public(http.MethodPut, "/api/organizations/1"))
}

func TestPolicyFirstMatchWins(t *testing.T) {
	// A specific public rule placed before an admin rule for the same path
	// must win regardless of what follows it.
	rules := []AccessRule{
		{Method: http.MethodGet, Pattern: "/things/**", Requirement: Requirement{Kind: AccessPublic}},
		{Method: "*", Pattern: "/things/**", Requirement: Requirement{Kind: AccessRole, Role: RoleAdmin}},
		{Method: "*", Pattern: "/**", Requirement: Requirement{Kind: AccessAuthenticated}},
	}
	policy, err := NewPolicy(rules)
	require.NoError(t, err)

	assert.NoError(t, policy.Authorize(http.MethodGet, "/things/1", nil))
	assert.ErrorIs(t, policy.Authorize(http.MethodPost, "/things/1", nil), apperrors.ErrUnauthorized)
}
