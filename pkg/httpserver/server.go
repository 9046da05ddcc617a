// Package httpserver is the thin HTTP shell over the arcade table. It
// contains no game logic: every decision is delegated to the core and
// rejections are surfaced to the caller without retrying.
package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mselser95/betting-arcade/internal/arcade"
	"github.com/mselser95/betting-arcade/internal/bankroll"
	"github.com/mselser95/betting-arcade/internal/storage"
	"github.com/mselser95/betting-arcade/pkg/cache"
	"github.com/mselser95/betting-arcade/pkg/healthprobe"
	"github.com/mselser95/betting-arcade/pkg/ws"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server provides the arcade HTTP API plus metrics and health checks.
type Server struct {
	server        *http.Server
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
}

// Config holds server configuration.
type Config struct {
	Port          string
	Logger        *zap.Logger
	HealthChecker *healthprobe.HealthChecker
	Table         *arcade.Table
	Storage       storage.Storage // optional
	Hub           *ws.Hub         // optional
	Cache         cache.Cache     // optional
	Guard         *bankroll.Guard // optional
}

// New creates a new HTTP server.
func New(cfg *Config) *Server {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Routes
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/health", cfg.HealthChecker.Health())
	r.Get("/ready", cfg.HealthChecker.Ready())

	handler := NewArcadeHandler(&ArcadeHandlerConfig{
		Table:   cfg.Table,
		Storage: cfg.Storage,
		Hub:     cfg.Hub,
		Cache:   cfg.Cache,
		Guard:   cfg.Guard,
		Logger:  cfg.Logger,
	})
	r.Get("/api/games", handler.HandleGames)
	r.Get("/api/games/{game}/odds", handler.HandleOdds)
	r.Get("/api/market/quote", handler.HandleQuote)
	r.Get("/api/balance", handler.HandleBalance)
	r.Post("/api/bets", handler.HandlePlaceBet)
	r.Post("/api/trades", handler.HandlePlaceTrade)
	r.Post("/api/rounds", handler.HandlePlayRound)
	r.Get("/api/rounds/recent", handler.HandleRecentRounds)
	r.Get("/api/guard", handler.HandleGuardStatus)

	if cfg.Hub != nil {
		r.Get("/ws", cfg.Hub.HandleWS)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{
		server:        server,
		logger:        cfg.Logger,
		healthChecker: cfg.HealthChecker,
	}
}

// Start starts the HTTP server.
// This is a blocking call that returns when the server stops or encounters an error.
func (s *Server) Start() error {
	s.logger.Info("http-server-starting", zap.String("addr", s.server.Addr))

	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http-server-shutting-down")

	err := s.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info("http-server-shutdown-complete")
	return nil
}
