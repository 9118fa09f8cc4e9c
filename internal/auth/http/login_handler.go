package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/stockbar/stockbar/internal/auth/domain"
	authUseCase "github.com/stockbar/stockbar/internal/auth/usecase"
	apperrors "github.com/stockbar/stockbar/internal/errors"
	"github.com/stockbar/stockbar/internal/httputil"
	"github.com/stockbar/stockbar/internal/metrics"
)

// stateCookieName carries the anti-forgery state between the login initiation
// redirect and the provider callback.
const stateCookieName = "oauth_state"

// stateCookieMaxAge bounds how long a login attempt may stay in flight.
const stateCookieMaxAge = 600

// LoginHandlerConfig holds the cookie and redirect configuration for the
// federated login handlers.
type LoginHandlerConfig struct {
	// SessionCookieName is the name of the session cookie.
	SessionCookieName string
	// SessionCookieSecure marks cookies as HTTPS-only.
	SessionCookieSecure bool
	// SuccessURL is where the fixed post-login success route sends the browser.
	SuccessURL string
	// ErrorURL is where failed or cancelled logins send the browser.
	ErrorURL string
}

// LoginHandler serves the federated login routes: initiation, provider
// callback, the fixed success location, and logout.
type LoginHandler struct {
	login    authUseCase.LoginUseCase
	sessions authUseCase.SessionUseCase
	config   LoginHandlerConfig
	metrics  *metrics.AuthMetrics
	logger   *slog.Logger
}

// NewLoginHandler creates a login handler. metrics may be nil when metrics
// collection is disabled.
func NewLoginHandler(
	login authUseCase.LoginUseCase,
	sessions authUseCase.SessionUseCase,
	config LoginHandlerConfig,
	authMetrics *metrics.AuthMetrics,
	logger *slog.Logger,
) *LoginHandler {
	return &LoginHandler{
		login:    login,
		sessions: sessions,
		config:   config,
		metrics:  authMetrics,
		logger:   logger,
	}
}

// BeginLogin initiates the interactive handshake.
// GET /oauth2/authorization/:provider
//
// Resolves the authorization request (with the account-selection override
// already applied), stores the state in a short-lived cookie, and redirects
// the browser to the provider.
func (h *LoginHandler) BeginLogin(c *gin.Context) {
	provider := c.Param("provider")

	req, err := h.login.Begin(c.Request.Context(), provider)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		h.logger.Error("login initiation failed",
			slog.String("provider", provider),
			slog.Any("error", err))
		c.Redirect(http.StatusFound, h.config.ErrorURL)
		return
	}

	c.SetCookie(stateCookieName, req.State, stateCookieMaxAge, "/",
		"", h.config.SessionCookieSecure, true)

	h.logger.Debug("redirecting to identity provider",
		slog.String("provider", req.Provider))
	c.Redirect(http.StatusFound, req.RedirectURL)
}

// Callback completes the handshake.
// GET /login/oauth2/code/:provider
//
// A provider denial, a state mismatch, or a failed verification all redirect
// to the error location without creating a session. On success a session is
// established (unless the request carried a valid bearer token) and the
// browser is sent to the fixed success location.
func (h *LoginHandler) Callback(c *gin.Context) {
	provider := c.Param("provider")

	if providerErr := c.Query("error"); providerErr != "" {
		h.logger.Info("identity provider denied login",
			slog.String("provider", provider),
			slog.String("error", providerErr))
		h.recordLogin(c, provider, "denied")
		c.Redirect(http.StatusFound, h.config.ErrorURL)
		return
	}

	state := c.Query("state")
	expectedState, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || state != expectedState {
		h.logger.Warn("login callback state mismatch",
			slog.String("provider", provider))
		h.recordLogin(c, provider, "state_mismatch")
		h.clearStateCookie(c)
		c.Redirect(http.StatusFound, h.config.ErrorURL)
		return
	}
	h.clearStateCookie(c)

	code := c.Query("code")
	if code == "" {
		h.recordLogin(c, provider, "missing_code")
		c.Redirect(http.StatusFound, h.config.ErrorURL)
		return
	}

	scheme, _ := GetScheme(c.Request.Context())
	bearerAuthenticated := scheme == authDomain.SchemeBearer

	result, err := h.login.Complete(c.Request.Context(), provider, code, bearerAuthenticated)
	if err != nil {
		h.logger.Error("login callback failed",
			slog.String("provider", provider),
			slog.Any("error", err))
		h.recordLogin(c, provider, "failed")
		c.Redirect(http.StatusFound, h.config.ErrorURL)
		return
	}

	if result.Session != nil {
		maxAge := int(result.Session.ExpiresAt.Sub(result.Session.CreatedAt).Seconds())
		c.SetCookie(h.config.SessionCookieName, result.Session.ID.String(), maxAge, "/",
			"", h.config.SessionCookieSecure, true)
	}

	h.recordLogin(c, provider, "success")
	c.Redirect(http.StatusFound, "/auth/login/success")
}

// LoginSuccess is the fixed post-login landing route.
// GET /auth/login/success
func (h *LoginHandler) LoginSuccess(c *gin.Context) {
	c.Redirect(http.StatusFound, h.config.SuccessURL)
}

// Logout invalidates the current session and clears the cookie.
// POST /auth/logout
func (h *LoginHandler) Logout(c *gin.Context) {
	cookie, err := c.Cookie(h.config.SessionCookieName)
	if err == nil && cookie != "" {
		if sessionID, parseErr := uuid.Parse(cookie); parseErr == nil {
			if invErr := h.sessions.Invalidate(c.Request.Context(), sessionID); invErr != nil {
				httputil.HandleErrorGin(c, invErr, h.logger)
				return
			}
		}
	}

	c.SetCookie(h.config.SessionCookieName, "", -1, "/",
		"", h.config.SessionCookieSecure, true)
	c.Status(http.StatusNoContent)
}

func (h *LoginHandler) clearStateCookie(c *gin.Context) {
	c.SetCookie(stateCookieName, "", -1, "/", "", h.config.SessionCookieSecure, true)
}

func (h *LoginHandler) recordLogin(c *gin.Context, provider, result string) {
	if h.metrics == nil {
		return
	}
	h.metrics.RecordLogin(c.Request.Context(), provider, result)
}
