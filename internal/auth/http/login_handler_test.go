package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/stockbar/stockbar/internal/auth/domain"
	authUseCase "github.com/stockbar/stockbar/internal/auth/usecase"
)

// MockLoginUseCase is a mock implementation of usecase.LoginUseCase
type MockLoginUseCase struct {
	mock.Mock
}

func (m *MockLoginUseCase) Begin(ctx context.Context, provider string) (*authDomain.AuthorizationRequest, error) {
	args := m.Called(ctx, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.AuthorizationRequest), args.Error(1)
}

func (m *MockLoginUseCase) Complete(
	ctx context.Context,
	provider, code string,
	bearerAuthenticated bool,
) (*authUseCase.LoginResult, error) {
	args := m.Called(ctx, provider, code, bearerAuthenticated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authUseCase.LoginResult), args.Error(1)
}

// MockSessionUseCase is a mock implementation of usecase.SessionUseCase
type MockSessionUseCase struct {
	mock.Mock
}

func (m *MockSessionUseCase) Create(ctx context.Context, userID uuid.UUID) (*authDomain.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

func (m *MockSessionUseCase) Authenticate(ctx context.Context, sessionID uuid.UUID) (*authDomain.Principal, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Principal), args.Error(1)
}

func (m *MockSessionUseCase) Invalidate(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionUseCase) CleanExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func loginHandlerConfig() LoginHandlerConfig {
	return LoginHandlerConfig{
		SessionCookieName: "stockbar_session",
		SuccessURL:        "https://app.example.com/",
		ErrorURL:          "/error",
	}
}

func newLoginRouter(login *MockLoginUseCase, sessions *MockSessionUseCase, schemes ...authDomain.AuthScheme) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewLoginHandler(login, sessions, loginHandlerConfig(), nil, discardLogger())

	router := gin.New()
	if len(schemes) > 0 {
		router.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(WithScheme(c.Request.Context(), schemes[0]))
			c.Next()
		})
	}
	router.GET("/oauth2/authorization/:provider", handler.BeginLogin)
	router.GET("/login/oauth2/code/:provider", handler.Callback)
	router.GET("/auth/login/success", handler.LoginSuccess)
	router.POST("/auth/logout", handler.Logout)
	return router
}

func findCookie(recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestLoginHandler_BeginLogin(t *testing.T) {
	t.Run("redirects to provider and stores state", func(t *testing.T) {
		login := new(MockLoginUseCase)
		router := newLoginRouter(login, new(MockSessionUseCase))

		login.On("Begin", mock.Anything, "google").Return(&authDomain.AuthorizationRequest{
			Provider:    "google",
			State:       "state-value",
			RedirectURL: "https://accounts.example.com/authorize?state=state-value",
		}, nil)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/oauth2/authorization/google", nil))

		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "https://accounts.example.com/authorize?state=state-value", recorder.Header().Get("Location"))

		cookie := findCookie(recorder, stateCookieName)
		require.NotNil(t, cookie)
		assert.Equal(t, "state-value", cookie.Value)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("unknown provider answers 404", func(t *testing.T) {
		login := new(MockLoginUseCase)
		router := newLoginRouter(login, new(MockSessionUseCase))

		login.On("Begin", mock.Anything, "github").Return(nil, authDomain.ErrProviderNotFound)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/oauth2/authorization/github", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestLoginHandler_Callback(t *testing.T) {
	newSession := func(userID uuid.UUID) *authDomain.Session {
		now := time.Now().UTC()
		return &authDomain.Session{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    userID,
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		}
	}

	t.Run("success sets session cookie and redirects", func(t *testing.T) {
		login := new(MockLoginUseCase)
		router := newLoginRouter(login, new(MockSessionUseCase))

		userID := uuid.Must(uuid.NewV7())
		session := newSession(userID)
		login.On("Complete", mock.Anything, "google", "auth-code", false).Return(&authUseCase.LoginResult{
			Principal: &authDomain.Principal{ID: userID, Role: authDomain.RoleUser},
			Session:   session,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/login/oauth2/code/google?state=state-value&code=auth-code", nil)
		req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "state-value"})
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "/auth/login/success", recorder.Header().Get("Location"))

		cookie := findCookie(recorder, "stockbar_session")
		require.NotNil(t, cookie)
		assert.Equal(t, session.ID.String(), cookie.Value)
		assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)
		login.AssertExpectations(t)
	})

	t.Run("bearer-authenticated callback sets no session cookie", func(t *testing.T) {
		login := new(MockLoginUseCase)
		router := newLoginRouter(login, new(MockSessionUseCase), authDomain.SchemeBearer)

		userID := uuid.Must(uuid.NewV7())
		login.On("Complete", mock.Anything, "google", "auth-code", true).Return(&authUseCase.LoginResult{
			Principal: &authDomain.Principal{ID: userID, Role: authDomain.RoleUser},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/login/oauth2/code/google?state=state-value&code=auth-code", nil)
		req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "state-value"})
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Nil(t, findCookie(recorder, "stockbar_session"))
		login.AssertExpectations(t)
	})

	t.Run("provider denial redirects to error", func(t *testing.T) {
		login := new(MockLoginUseCase)
		router := newLoginRouter(login, new(MockSessionUseCase))

		req := httptest.NewRequest(http.MethodGet, "/login/oauth2/code/google?error=access_denied", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "/error", recorder.Header().Get("Location"))
		login.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("state mismatch redirects to error", func(t *testing.T) {
		login := new(MockLoginUseCase)
		router := newLoginRouter(login, new(MockSessionUseCase))

		req := httptest.NewRequest(http.MethodGet, "/login/oauth2/code/google?state=tampered&code=auth-code", nil)
		req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "state-value"})
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "/error", recorder.Header().Get("Location"))

		cookie := findCookie(recorder, stateCookieName)
		require.NotNil(t, cookie)
		assert.Negative(t, cookie.MaxAge)
		login.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing state cookie redirects to error", func(t *testing.T) {
		login := new(MockLoginUseCase)
		router := newLoginRouter(login, new(MockSessionUseCase))

		req := httptest.NewRequest(http.MethodGet, "/login/oauth2/code/google?state=state-value&code=auth-code", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "/error", recorder.Header().Get("Location"))
	})

	t.Run("missing code redirects to error", func(t *testing.T) {
		login := new(MockLoginUseCase)
		router := newLoginRouter(login, new(MockSessionUseCase))

		req := httptest.NewRequest(http.MethodGet, "/login/oauth2/code/google?state=state-value", nil)
		req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "state-value"})
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "/error", recorder.Header().Get("Location"))
	})

	t.Run("verification failure redirects to error", func(t *testing.T) {
		login := new(MockLoginUseCase)
		router := newLoginRouter(login, new(MockSessionUseCase))

		login.On("Complete", mock.Anything, "google", "auth-code", false).
			Return(nil, assert.AnError)

		req := httptest.NewRequest(http.MethodGet, "/login/oauth2/code/google?state=state-value&code=auth-code", nil)
		req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "state-value"})
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "/error", recorder.Header().Get("Location"))
		assert.Nil(t, findCookie(recorder, "stockbar_session"))
	})
}

func TestLoginHandler_LoginSuccess(t *testing.T) {
	router := newLoginRouter(new(MockLoginUseCase), new(MockSessionUseCase))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/auth/login/success", nil))

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "https://app.example.com/", recorder.Header().Get("Location"))
}

func TestLoginHandler_Logout(t *testing.T) {
	t.Run("invalidates session and clears cookie", func(t *testing.T) {
		sessions := new(MockSessionUseCase)
		router := newLoginRouter(new(MockLoginUseCase), sessions)

		sessionID := uuid.Must(uuid.NewV7())
		sessions.On("Invalidate", mock.Anything, sessionID).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: "stockbar_session", Value: sessionID.String()})
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)

		cookie := findCookie(recorder, "stockbar_session")
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
		sessions.AssertExpectations(t)
	})

	t.Run("logout without a cookie still succeeds", func(t *testing.T) {
		sessions := new(MockSessionUseCase)
		router := newLoginRouter(new(MockLoginUseCase), sessions)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		sessions.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})

	t.Run("malformed cookie is just cleared", func(t *testing.T) {
		sessions := new(MockSessionUseCase)
		router := newLoginRouter(new(MockLoginUseCase), sessions)

		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: "stockbar_session", Value: "not-a-uuid"})
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		sessions.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})
}
