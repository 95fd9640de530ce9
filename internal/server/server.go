package server

import (
	apisetup "affiliate-ledger/internal/api"
	"affiliate-ledger/internal/bootstrap"
	"affiliate-ledger/internal/config"
	"affiliate-ledger/internal/metrics"
	"affiliate-ledger/internal/observability"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const localWebAppOrigin = "http://localhost:3000"

// Server owns the HTTP listener for the redirect, hook and ledger APIs
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	deps       *bootstrap.Dependencies
	config     *config.Config
	logger     *observability.Logger
	serveErr   chan error
}

func New(cfg *config.Config, deps *bootstrap.Dependencies, logger *observability.Logger) *Server {
	return &Server{
		config:   cfg,
		deps:     deps,
		logger:   logger,
		serveErr: make(chan error, 1),
	}
}

// corsConfig lets the partner dashboard call the API with bearer tokens and
// read the throttling headers.
func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowCredentials = true
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Request-ID"}
	c.ExposeHeaders = []string{"X-Request-ID", "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	c.AllowOrigins = []string{cfg.Services.WebAppURI}
	if os.Getenv("GO_ENV") != "production" {
		c.AllowOrigins = append(c.AllowOrigins, localWebAppOrigin)
	}
	return c
}

// Setup builds the router. Trusted proxies are applied before any route so
// the client IP behind the visitor fingerprint is the forwarded one.
func (s *Server) Setup() error {
	s.router = gin.New()
	if err := s.router.SetTrustedProxies(s.config.Server.TrustedProxies); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	s.router.Use(gin.Recovery())
	s.router.Use(cors.New(corsConfig(s.config)))
	s.router.Use(observability.Middleware(s.logger))
	s.router.Use(metrics.Middleware())

	api := apisetup.New(
		s.router.Group("/"),
		s.deps.AuthHandler,
		s.deps.LinksHandler,
		s.deps.AttributionHandler,
		s.deps.LedgerHandler,
		s.deps.Limiter,
		s.deps.HookPolicy,
	)
	api.RegisterRoutes()
	return nil
}

// Start begins listening in the background. A listener failure is reported by
// WaitForShutdown.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("server not set up")
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.Info(ctx, fmt.Sprintf("Server starting on port %d", s.config.Server.Port))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.serveErr <- err
		}
	}()
	return nil
}

// WaitForShutdown blocks until SIGINT or SIGTERM, or until the listener fails,
// then drains in-flight requests and releases dependencies.
func (s *Server) WaitForShutdown(ctx context.Context) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var serveErr error
	select {
	case <-quit:
		s.logger.Info(ctx, "Shutting down server...")
	case serveErr = <-s.serveErr:
		s.logger.Error(ctx, "server failed", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.deps.Cleanup()
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.deps.Cleanup()

	if serveErr != nil {
		return fmt.Errorf("server failed: %w", serveErr)
	}
	s.logger.Info(ctx, "Server exited gracefully")
	return nil
}
