package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	otelmetric "go.opentelemetry.io/otel/metric"

	authDomain "github.com/stockbar/stockbar/internal/auth/domain"
	authHTTP "github.com/stockbar/stockbar/internal/auth/http"
	catalogHTTP "github.com/stockbar/stockbar/internal/catalog/http"
	"github.com/stockbar/stockbar/internal/metrics"
	orgHTTP "github.com/stockbar/stockbar/internal/organization/http"
	userHTTP "github.com/stockbar/stockbar/internal/user/http"
)

// RouterConfig holds everything needed to assemble the API router. Handlers
// left nil are simply not routed, which keeps router tests focused.
type RouterConfig struct {
	Logger           *slog.Logger
	CORSAllowOrigins string

	Policy         *authDomain.Policy
	Authenticators []authHTTP.Authenticator

	LoginHandler        *authHTTP.LoginHandler
	AccountHandler      *userHTTP.AccountHandler
	OrganizationHandler *orgHTTP.OrganizationHandler
	CatalogHandler      *catalogHTTP.CatalogHandler

	// MeterProvider enables HTTP metrics when non-nil.
	MeterProvider    otelmetric.MeterProvider
	MetricsNamespace string

	// AuthMetrics records credential verification outcomes when non-nil.
	AuthMetrics *metrics.AuthMetrics

	LoginRateLimitRPS   float64
	LoginRateLimitBurst int
}

// NewRouter assembles the gin engine with the full middleware chain.
//
// Order matters: CORS runs first so every response the browser can observe
// carries the CORS headers, including 401/403 rejections and preflights.
// Authentication runs before authorization so the policy check always sees
// the resolved principal.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if corsMiddleware := createCORSMiddleware(cfg.CORSAllowOrigins, cfg.Logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(cfg.Logger))

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	router.Use(authHTTP.AuthenticationMiddleware(cfg.Authenticators, cfg.Policy, cfg.AuthMetrics, cfg.Logger))
	router.Use(authHTTP.AuthorizationMiddleware(cfg.Policy, cfg.Logger))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/error", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "login failed"})
	})

	if cfg.LoginHandler != nil {
		beginLogin := []gin.HandlerFunc{cfg.LoginHandler.BeginLogin}
		if cfg.LoginRateLimitRPS > 0 {
			beginLogin = []gin.HandlerFunc{
				authHTTP.LoginRateLimitMiddleware(cfg.LoginRateLimitRPS, cfg.LoginRateLimitBurst, cfg.Logger),
				cfg.LoginHandler.BeginLogin,
			}
		}
		router.GET("/oauth2/authorization/:provider", beginLogin...)
		router.GET("/login/oauth2/code/:provider", cfg.LoginHandler.Callback)
		router.GET("/auth/login/success", cfg.LoginHandler.LoginSuccess)
		router.POST("/auth/logout", cfg.LoginHandler.Logout)
	}

	api := router.Group("/api")

	if cfg.AccountHandler != nil {
		api.GET("/account", cfg.AccountHandler.GetAccount)
		api.POST("/account/onboarding", cfg.AccountHandler.Onboarding)
	}

	if cfg.OrganizationHandler != nil {
		api.POST("/organizations", cfg.OrganizationHandler.Create)
		api.GET("/organizations", cfg.OrganizationHandler.List)
		api.GET("/organizations/:id", cfg.OrganizationHandler.Get)
		api.PUT("/organizations/:id", cfg.OrganizationHandler.Update)
	}

	if cfg.CatalogHandler != nil {
		api.GET("/categories", cfg.CatalogHandler.ListCategories)
		api.GET("/categories/:id", cfg.CatalogHandler.GetCategory)
		api.GET("/inventory", cfg.CatalogHandler.ListInventoryItems)
		api.GET("/inventory/:id", cfg.CatalogHandler.GetInventoryItem)
	}

	return router
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new API HTTP server around an assembled router.
func NewServer(host string, port int, router *gin.Engine, logger *slog.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
