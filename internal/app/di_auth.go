package app

import (
	"context"
	"fmt"
	"sync"

	authDomain "github.com/stockbar/stockbar/internal/auth/domain"
	authHTTP "github.com/stockbar/stockbar/internal/auth/http"
	authRepository "github.com/stockbar/stockbar/internal/auth/repository"
	authService "github.com/stockbar/stockbar/internal/auth/service"
	authUseCase "github.com/stockbar/stockbar/internal/auth/usecase"
	"github.com/stockbar/stockbar/internal/metrics"
)

// authComponents holds the authentication gateway dependencies.
type authComponents struct {
	accessPolicy     *authDomain.Policy
	tokenVerifier    authService.TokenVerifier
	providerRegistry *authService.ProviderRegistry
	resolver         authService.AuthorizationRequestResolver
	sessionRepo      authUseCase.SessionRepository
	sessionUseCase   authUseCase.SessionUseCase
	loginUseCase     authUseCase.LoginUseCase
	authenticators   []authHTTP.Authenticator
	loginHandler     *authHTTP.LoginHandler
	authMetrics      *metrics.AuthMetrics

	accessPolicyInit     sync.Once
	tokenVerifierInit    sync.Once
	providerRegistryInit sync.Once
	resolverInit         sync.Once
	sessionRepoInit      sync.Once
	sessionUseCaseInit   sync.Once
	loginUseCaseInit     sync.Once
	authenticatorsInit   sync.Once
	loginHandlerInit     sync.Once
	authMetricsInit      sync.Once
}

// AccessPolicy returns the ordered access rule table.
func (c *Container) AccessPolicy() (*authDomain.Policy, error) {
	c.accessPolicyInit.Do(func() {
		policy, err := authDomain.NewPolicy(authDomain.DefaultAccessRules())
		if err != nil {
			c.initErrors["accessPolicy"] = fmt.Errorf("failed to build access policy: %w", err)
			return
		}
		c.accessPolicy = policy
	})
	if storedErr, exists := c.initErrors["accessPolicy"]; exists {
		return nil, storedErr
	}
	return c.accessPolicy, nil
}

// TokenVerifier returns the bearer token verifier.
func (c *Container) TokenVerifier() authService.TokenVerifier {
	c.tokenVerifierInit.Do(func() {
		c.tokenVerifier = authService.NewJWTTokenVerifier(
			[]byte(c.config.JWTSigningKey),
			c.config.JWTIssuer,
		)
	})
	return c.tokenVerifier
}

// ProviderRegistry returns the identity provider registry. Providers with
// empty client IDs are not registered.
func (c *Container) ProviderRegistry() (*authService.ProviderRegistry, error) {
	c.providerRegistryInit.Do(func() {
		registry := authService.NewProviderRegistry(c.config.OAuthDefaultProvider)

		if c.config.OAuthGoogleClientID != "" {
			client, err := authService.NewOIDCProviderClient(context.Background(), authService.OIDCProviderParams{
				Name:         "google",
				Issuer:       c.config.OAuthGoogleIssuer,
				ClientID:     c.config.OAuthGoogleClientID,
				ClientSecret: c.config.OAuthGoogleClientSecret,
				RedirectURL:  fmt.Sprintf("%s/login/oauth2/code/google", c.config.OAuthRedirectBaseURL),
			})
			if err != nil {
				c.initErrors["providerRegistry"] = fmt.Errorf("failed to create google oidc client: %w", err)
				return
			}
			registry.Register(client)
		}

		c.providerRegistry = registry
	})
	if storedErr, exists := c.initErrors["providerRegistry"]; exists {
		return nil, storedErr
	}
	return c.providerRegistry, nil
}

// AuthorizationRequestResolver returns the resolver with the account-selection
// override applied.
func (c *Container) AuthorizationRequestResolver() (authService.AuthorizationRequestResolver, error) {
	c.resolverInit.Do(func() {
		registry, err := c.ProviderRegistry()
		if err != nil {
			c.initErrors["resolver"] = err
			return
		}
		base := authService.NewAuthorizationRequestResolver(registry)
		c.resolver = authService.NewAccountSelectionResolver(base)
	})
	if storedErr, exists := c.initErrors["resolver"]; exists {
		return nil, storedErr
	}
	return c.resolver, nil
}

// SessionRepository returns the session repository instance.
func (c *Container) SessionRepository() (authUseCase.SessionRepository, error) {
	c.sessionRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["sessionRepo"] = fmt.Errorf("failed to get database for session repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.sessionRepo = authRepository.NewMySQLSessionRepository(db)
		case "postgres":
			c.sessionRepo = authRepository.NewPostgreSQLSessionRepository(db)
		default:
			c.initErrors["sessionRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["sessionRepo"]; exists {
		return nil, storedErr
	}
	return c.sessionRepo, nil
}

// SessionUseCase returns the session use case instance.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	c.sessionUseCaseInit.Do(func() {
		sessionRepo, err := c.SessionRepository()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
			return
		}

		userUseCase, err := c.UserUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
			return
		}

		c.sessionUseCase = authUseCase.NewSessionUseCase(sessionRepo, userUseCase, c.config.SessionTTL)
	})
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// LoginUseCase returns the federated login coordinator.
func (c *Container) LoginUseCase() (authUseCase.LoginUseCase, error) {
	c.loginUseCaseInit.Do(func() {
		resolver, err := c.AuthorizationRequestResolver()
		if err != nil {
			c.initErrors["loginUseCase"] = err
			return
		}

		registry, err := c.ProviderRegistry()
		if err != nil {
			c.initErrors["loginUseCase"] = err
			return
		}

		userUseCase, err := c.UserUseCase()
		if err != nil {
			c.initErrors["loginUseCase"] = err
			return
		}

		sessionUseCase, err := c.SessionUseCase()
		if err != nil {
			c.initErrors["loginUseCase"] = err
			return
		}

		c.loginUseCase = authUseCase.NewLoginUseCase(
			resolver, registry, userUseCase, sessionUseCase, c.Logger(),
		)
	})
	if storedErr, exists := c.initErrors["loginUseCase"]; exists {
		return nil, storedErr
	}
	return c.loginUseCase, nil
}

// Authenticators returns the ordered authentication mechanisms: bearer token
// first, then session cookie.
func (c *Container) Authenticators() ([]authHTTP.Authenticator, error) {
	c.authenticatorsInit.Do(func() {
		sessionUseCase, err := c.SessionUseCase()
		if err != nil {
			c.initErrors["authenticators"] = err
			return
		}

		c.authenticators = []authHTTP.Authenticator{
			authHTTP.NewBearerAuthenticator(c.TokenVerifier()),
			authHTTP.NewSessionAuthenticator(c.config.SessionCookieName, sessionUseCase),
		}
	})
	if storedErr, exists := c.initErrors["authenticators"]; exists {
		return nil, storedErr
	}
	return c.authenticators, nil
}

// AuthMetrics returns the authentication metrics, or nil when metrics are disabled.
func (c *Container) AuthMetrics() (*metrics.AuthMetrics, error) {
	c.authMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["authMetrics"] = err
			return
		}
		if provider == nil {
			return
		}

		authMetrics, err := metrics.NewAuthMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["authMetrics"] = fmt.Errorf("failed to create auth metrics: %w", err)
			return
		}
		c.authMetrics = authMetrics
	})
	if storedErr, exists := c.initErrors["authMetrics"]; exists {
		return nil, storedErr
	}
	return c.authMetrics, nil
}

// LoginHandler returns the federated login handler.
func (c *Container) LoginHandler() (*authHTTP.LoginHandler, error) {
	c.loginHandlerInit.Do(func() {
		loginUseCase, err := c.LoginUseCase()
		if err != nil {
			c.initErrors["loginHandler"] = err
			return
		}

		sessionUseCase, err := c.SessionUseCase()
		if err != nil {
			c.initErrors["loginHandler"] = err
			return
		}

		authMetrics, err := c.AuthMetrics()
		if err != nil {
			c.initErrors["loginHandler"] = err
			return
		}

		c.loginHandler = authHTTP.NewLoginHandler(
			loginUseCase,
			sessionUseCase,
			authHTTP.LoginHandlerConfig{
				SessionCookieName:   c.config.SessionCookieName,
				SessionCookieSecure: c.config.SessionCookieSecure,
				SuccessURL:          c.config.LoginSuccessURL,
				ErrorURL:            c.config.LoginErrorURL,
			},
			authMetrics,
			c.Logger(),
		)
	})
	if storedErr, exists := c.initErrors["loginHandler"]; exists {
		return nil, storedErr
	}
	return c.loginHandler, nil
}
