package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockbar/stockbar/internal/auth/domain"
	apperrors "github.com/stockbar/stockbar/internal/errors"
)

const (
	testSigningKey = "test-signing-key"
	testIssuer     = "stockbar"
)

// mintToken signs a token with the given claims for test scenarios.
func mintToken(t *testing.T, key string, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func validClaims(userID uuid.UUID) accessTokenClaims {
	return accessTokenClaims{
		Email: "alice@example.com",
		Name:  "Alice",
		Role:  "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestJWTTokenVerifier_Verify(t *testing.T) {
	verifier := NewJWTTokenVerifier([]byte(testSigningKey), testIssuer)
	userID := uuid.Must(uuid.NewV7())

	t.Run("valid token yields principal", func(t *testing.T) {
		orgID := int64(42)
		claims := validClaims(userID)
		claims.OrganizationID = &orgID

		principal, err := verifier.Verify(mintToken(t, testSigningKey, claims))
		require.NoError(t, err)
		assert.Equal(t, userID, principal.ID)
		assert.Equal(t, "alice@example.com", principal.Email)
		assert.Equal(t, "Alice", principal.Name)
		assert.Equal(t, domain.RoleAdmin, principal.Role)
		require.NotNil(t, principal.OrganizationID)
		assert.Equal(t, orgID, *principal.OrganizationID)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		claims := validClaims(userID)
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

		_, err := verifier.Verify(mintToken(t, testSigningKey, claims))
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
	})

	t.Run("missing expiry is rejected", func(t *testing.T) {
		claims := validClaims(userID)
		claims.ExpiresAt = nil

		_, err := verifier.Verify(mintToken(t, testSigningKey, claims))
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
	})

	t.Run("wrong issuer is rejected", func(t *testing.T) {
		claims := validClaims(userID)
		claims.Issuer = "someone-else"

		_, err := verifier.Verify(mintToken(t, testSigningKey, claims))
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
	})

	t.Run("wrong signature is rejected", func(t *testing.T) {
		_, err := verifier.Verify(mintToken(t, "other-key", validClaims(userID)))
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := verifier.Verify("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
	})

	t.Run("non-uuid subject is rejected", func(t *testing.T) {
		claims := validClaims(userID)
		claims.Subject = "bob"

		_, err := verifier.Verify(mintToken(t, testSigningKey, claims))
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
	})

	t.Run("missing role is rejected", func(t *testing.T) {
		claims := validClaims(userID)
		claims.Role = ""

		_, err := verifier.Verify(mintToken(t, testSigningKey, claims))
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
	})

	t.Run("invalid credentials map to unauthorized", func(t *testing.T) {
		// The HTTP layer relies on this chain to answer 401.
		_, err := verifier.Verify("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
