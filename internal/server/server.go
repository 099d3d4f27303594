// Package server assembles the writersroom HTTP API: routing, middleware
// chain and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cjliu2003/writersroom-sub009/internal/server/handlers"
	"github.com/cjliu2003/writersroom-sub009/internal/server/middleware"
	"github.com/cjliu2003/writersroom-sub009/internal/server/storage"
)

// Config holds the server runtime configuration.
type Config struct {
	Addr            string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Requests per window per client IP for the save endpoint and for
	// everything else.
	SaveRate      int
	SaveWindow    time.Duration
	DefaultRate   int
	DefaultWindow time.Duration
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.AccessTokenTTL <= 0 {
		c.AccessTokenTTL = 15 * time.Minute
	}
	if c.RefreshTokenTTL <= 0 {
		c.RefreshTokenTTL = 30 * 24 * time.Hour
	}
	if c.SaveRate <= 0 {
		c.SaveRate = 60
	}
	if c.SaveWindow <= 0 {
		c.SaveWindow = time.Minute
	}
	if c.DefaultRate <= 0 {
		c.DefaultRate = 300
	}
	if c.DefaultWindow <= 0 {
		c.DefaultWindow = time.Minute
	}
	return c
}

// Storage aggregates the persistence interfaces the server needs. The
// sqlite.Storage type satisfies all three.
type Storage interface {
	storage.UserStorage
	storage.TokenStorage
	storage.DocumentStorage
}

// Server is the assembled HTTP API.
type Server struct {
	cfg    Config
	logger *slog.Logger
	http   *http.Server
}

// New wires handlers, middleware and routes into a runnable server.
func New(cfg Config, store Storage, logger *slog.Logger) *Server {
	cfg = cfg.withDefaults()

	jwtConfig := handlers.JWTConfig{
		Secret:          []byte(cfg.JWTSecret),
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	}

	authHandler := handlers.NewAuthHandler(logger, store, store, jwtConfig)
	docHandler := handlers.NewDocumentHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger)

	requireAuth := middleware.AuthMiddleware(logger, jwtConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.Handle("POST /api/v1/auth/logout", requireAuth(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("POST /api/v1/documents", requireAuth(http.HandlerFunc(docHandler.Create)))
	mux.Handle("GET /api/v1/documents/{id}", requireAuth(http.HandlerFunc(docHandler.Get)))
	mux.Handle("PUT /api/v1/documents/{id}", requireAuth(http.HandlerFunc(docHandler.Save)))

	// Tighter budget on auth endpoints; saves share the default pool per
	// client so a fast typist does not starve reads.
	rateLimit := middleware.RateLimitByPathMiddleware(
		[]middleware.PathRateLimit{
			{Path: "/api/v1/auth/register", Rate: 10, Window: cfg.DefaultWindow},
			{Path: "/api/v1/auth/login", Rate: cfg.SaveRate, Window: cfg.SaveWindow},
		},
		cfg.DefaultRate, cfg.DefaultWindow, logger,
	)

	var handler http.Handler = mux
	handler = rateLimit(handler)
	handler = middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		cfg:    cfg,
		logger: logger,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errC := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errC <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errC:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Handler exposes the full middleware-wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}
