package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stockbar/stockbar/internal/auth/domain"
	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// accessTokenClaims is the expected claim set of a bearer access token.
type accessTokenClaims struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	OrganizationID *int64 `json:"org,omitempty"`
	jwt.RegisteredClaims
}

// jwtTokenVerifier verifies HS256-signed access tokens with a shared key.
type jwtTokenVerifier struct {
	key    []byte
	issuer string
}

// NewJWTTokenVerifier creates a TokenVerifier for HS256 tokens signed with the
// given key and issued by the given issuer.
func NewJWTTokenVerifier(key []byte, issuer string) TokenVerifier {
	return &jwtTokenVerifier{key: key, issuer: issuer}
}

// Verify parses and validates the token, returning the Principal it encodes.
// Expiry and issuer checks are enforced by the parser.
func (v *jwtTokenVerifier) Verify(tokenString string) (*domain.Principal, error) {
	claims := &accessTokenClaims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, apperrors.New("unexpected signing method")
			}
			return v.key, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, apperrors.Wrap(apperrors.ErrInvalidCredential, "token verification failed")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidCredential, "token subject is not a user id")
	}

	if claims.Role == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidCredential, "token carries no role")
	}

	return &domain.Principal{
		ID:             userID,
		Name:           claims.Name,
		Email:          claims.Email,
		Role:           domain.Role(claims.Role),
		OrganizationID: claims.OrganizationID,
	}, nil
}
