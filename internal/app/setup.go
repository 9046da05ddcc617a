package app

import (
	"context"
	"fmt"

	"github.com/mselser95/betting-arcade/internal/arcade"
	"github.com/mselser95/betting-arcade/internal/bankroll"
	"github.com/mselser95/betting-arcade/internal/marketmaker"
	"github.com/mselser95/betting-arcade/internal/rng"
	"github.com/mselser95/betting-arcade/internal/storage"
	"github.com/mselser95/betting-arcade/pkg/cache"
	"github.com/mselser95/betting-arcade/pkg/config"
	"github.com/mselser95/betting-arcade/pkg/healthprobe"
	"github.com/mselser95/betting-arcade/pkg/httpserver"
	"github.com/mselser95/betting-arcade/pkg/ws"
	"go.uber.org/zap"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	table, err := setupTable(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup table: %w", err)
	}

	store, err := setupStorage(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	roundCache, err := setupCache(logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	guard, err := setupGuard(cfg, logger, table)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup guard: %w", err)
	}

	hub := ws.NewHub(logger)
	healthChecker := setupHealthChecker(table)
	httpServer := setupHTTPServer(cfg, logger, healthChecker, table, store, hub, roundCache, guard)

	return &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		table:         table,
		storage:       store,
		roundCache:    roundCache,
		hub:           hub,
		guard:         guard,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func setupTable(cfg *config.Config, logger *zap.Logger) (*arcade.Table, error) {
	policy, err := marketmaker.ParsePolicy(cfg.MarketPolicy)
	if err != nil {
		return nil, fmt.Errorf("parse market policy: %w", err)
	}

	var src rng.Source
	if cfg.RandomSeed != 0 {
		src = rng.NewSeeded(cfg.RandomSeed)
	} else {
		src = rng.New()
	}

	return arcade.New(&arcade.Config{
		Source:         src,
		Logger:         logger,
		InitialBalance: cfg.InitialBalance,
		MarketPolicy:   policy,
		HistoryLimit:   cfg.HistoryLimit,
	})
}

func setupStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	switch cfg.StorageMode {
	case "postgres":
		pgStorage, err := storage.NewPostgresStorage(&storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres storage: %w", err)
		}
		return pgStorage, nil
	case "console":
		return storage.NewConsoleStorage(logger), nil
	default:
		return nil, nil
	}
}

func setupCache(logger *zap.Logger) (cache.Cache, error) {
	return cache.New(&cache.Config{
		NumCounters: 1000, // 10x expected max items (round history)
		MaxItems:    100,
		Logger:      logger,
	})
}

func setupGuard(cfg *config.Config, logger *zap.Logger, table *arcade.Table) (*bankroll.Guard, error) {
	if !cfg.GuardEnabled {
		return nil, nil
	}

	return bankroll.New(&bankroll.Config{
		CheckInterval:   cfg.GuardCheckInterval,
		StakeMultiplier: cfg.GuardStakeMultiplier,
		MinAbsolute:     cfg.GuardMinAbsolute,
		HysteresisRatio: cfg.GuardHysteresisRatio,
		Balance:         table.Balance,
		Logger:          logger,
	})
}

func setupHealthChecker(table *arcade.Table) *healthprobe.HealthChecker {
	return healthprobe.New(func() healthprobe.Stats {
		return healthprobe.Stats{
			Session: table.Session(),
			Rounds:  table.Round(),
			Balance: table.Balance(),
		}
	})
}

func setupHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	table *arcade.Table,
	store storage.Storage,
	hub *ws.Hub,
	roundCache cache.Cache,
	guard *bankroll.Guard,
) *httpserver.Server {
	return httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		Table:         table,
		Storage:       store,
		Hub:           hub,
		Cache:         roundCache,
		Guard:         guard,
	})
}
