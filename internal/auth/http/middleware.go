package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/stockbar/stockbar/internal/auth/domain"
	authService "github.com/stockbar/stockbar/internal/auth/service"
	authUseCase "github.com/stockbar/stockbar/internal/auth/usecase"
	apperrors "github.com/stockbar/stockbar/internal/errors"
	"github.com/stockbar/stockbar/internal/httputil"
	"github.com/stockbar/stockbar/internal/metrics"
)

// Authenticator is one trust-establishment mechanism. Authenticate returns a
// Principal on success, ErrNoCredential when the request carries nothing for
// this mechanism (try the next one), or another error when a credential was
// presented and failed verification.
type Authenticator interface {
	Scheme() authDomain.AuthScheme
	Authenticate(c *gin.Context) (*authDomain.Principal, error)
}

// BearerAuthenticator authenticates requests carrying a bearer token in the
// Authorization header. Verification is local; no session is ever created.
type BearerAuthenticator struct {
	verifier authService.TokenVerifier
}

// NewBearerAuthenticator creates a BearerAuthenticator over a token verifier.
func NewBearerAuthenticator(verifier authService.TokenVerifier) *BearerAuthenticator {
	return &BearerAuthenticator{verifier: verifier}
}

// Scheme returns SchemeBearer.
func (a *BearerAuthenticator) Scheme() authDomain.AuthScheme {
	return authDomain.SchemeBearer
}

// Authenticate extracts and verifies the bearer token. The "bearer" prefix is
// matched case-insensitively.
func (a *BearerAuthenticator) Authenticate(c *gin.Context) (*authDomain.Principal, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, apperrors.ErrNoCredential
	}

	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return nil, apperrors.Wrap(apperrors.ErrInvalidCredential, "malformed authorization header")
	}

	token := authHeader[len(bearerPrefix):]
	if token == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidCredential, "empty bearer token")
	}

	return a.verifier.Verify(token)
}

// SessionAuthenticator authenticates requests carrying a session cookie
// established by a previous federated login.
type SessionAuthenticator struct {
	cookieName string
	sessions   authUseCase.SessionUseCase
}

// NewSessionAuthenticator creates a SessionAuthenticator over the session use case.
func NewSessionAuthenticator(cookieName string, sessions authUseCase.SessionUseCase) *SessionAuthenticator {
	return &SessionAuthenticator{cookieName: cookieName, sessions: sessions}
}

// Scheme returns SchemeSession.
func (a *SessionAuthenticator) Scheme() authDomain.AuthScheme {
	return authDomain.SchemeSession
}

// Authenticate resolves the session cookie into a Principal.
func (a *SessionAuthenticator) Authenticate(c *gin.Context) (*authDomain.Principal, error) {
	cookie, err := c.Cookie(a.cookieName)
	if err != nil || cookie == "" {
		return nil, apperrors.ErrNoCredential
	}

	sessionID, err := uuid.Parse(cookie)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidCredential, "malformed session cookie")
	}

	return a.sessions.Authenticate(c.Request.Context(), sessionID)
}

// AuthenticationMiddleware runs the ordered authenticator list against every
// request and attaches the resulting principal to the request context.
//
// Ordering and failure semantics:
//   - OPTIONS requests never invoke any authenticator (preflight passthrough).
//   - Authenticators run in the given order; the first that returns a
//     principal wins, ErrNoCredential falls through to the next.
//   - A presented-but-invalid credential rejects the request with 401 unless
//     the matched access rule is public. Public routes are reachable without
//     authentication by contract, so a stale token or cookie must not break
//     them; on protected routes an invalid credential is never silently
//     downgraded to anonymous.
func AuthenticationMiddleware(
	authenticators []Authenticator,
	policy *authDomain.Policy,
	authMetrics *metrics.AuthMetrics,
	logger *slog.Logger,
) gin.HandlerFunc {
	recordCheck := func(c *gin.Context, scheme authDomain.AuthScheme, result string) {
		if authMetrics == nil {
			return
		}
		authMetrics.RecordCredentialCheck(c.Request.Context(), string(scheme), result)
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		public := policy.Public(c.Request.Method, c.Request.URL.Path)

		for _, authenticator := range authenticators {
			principal, err := authenticator.Authenticate(c)
			if apperrors.Is(err, apperrors.ErrNoCredential) {
				continue
			}

			if err != nil {
				recordCheck(c, authenticator.Scheme(), "invalid")

				if public {
					logger.Debug("ignoring failed credential on public route",
						slog.String("scheme", string(authenticator.Scheme())),
						slog.String("path", c.Request.URL.Path),
						slog.Any("error", err))
					break
				}

				logger.Debug("authentication failed",
					slog.String("scheme", string(authenticator.Scheme())),
					slog.Any("error", err))
				httputil.HandleErrorGin(c, err, logger)
				c.Abort()
				return
			}

			recordCheck(c, authenticator.Scheme(), "success")

			ctx := WithPrincipal(c.Request.Context(), principal)
			ctx = WithScheme(ctx, authenticator.Scheme())
			c.Request = c.Request.WithContext(ctx)

			logger.Debug("authentication successful",
				slog.String("scheme", string(authenticator.Scheme())),
				slog.String("user_id", principal.ID.String()))
			break
		}

		c.Next()
	}
}

// AuthorizationMiddleware evaluates the access policy table for the request
// and the principal established by AuthenticationMiddleware (or its absence).
// Must run after AuthenticationMiddleware. CORS headers are attached by the
// outermost middleware, so 401/403 responses still carry them.
func AuthorizationMiddleware(policy *authDomain.Policy, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := GetPrincipal(c.Request.Context())

		if err := policy.Authorize(c.Request.Method, c.Request.URL.Path, principal); err != nil {
			logger.Debug("authorization failed",
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.Bool("authenticated", principal != nil),
				slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
