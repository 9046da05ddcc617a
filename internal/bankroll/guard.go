// Package bankroll monitors the player balance and halts new placements
// when it falls below a dynamic threshold derived from recent stake
// sizes. Hysteresis keeps the guard from flapping around the threshold.
package bankroll

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// stakeWindow is the number of recent stakes the threshold is derived
// from.
const stakeWindow = 20

// BalanceFunc reads the current player balance.
type BalanceFunc func() float64

// Guard watches the player balance and decides whether new bets and
// trades may be placed. The halt threshold tracks the rolling average
// stake so a player betting big is halted earlier than one betting the
// minimum.
type Guard struct {
	enabled atomic.Bool // Atomic for lock-free reads

	// Configuration
	checkInterval   time.Duration
	balance         BalanceFunc
	logger          *zap.Logger
	stakeMultiplier float64 // Multiplier for avg stake size
	minAbsolute     float64 // Absolute minimum balance
	hysteresisRatio float64 // Resume at ratio * halt threshold

	// Protected by mutex
	mu              sync.RWMutex
	lastBalance     float64
	lastCheck       time.Time
	recentStakes    []float64 // Rolling window of stake sizes
	haltThreshold   float64
	resumeThreshold float64
}

// Config holds guard configuration.
type Config struct {
	CheckInterval   time.Duration
	StakeMultiplier float64
	MinAbsolute     float64
	HysteresisRatio float64
	Balance         BalanceFunc
	Logger          *zap.Logger
}

// Status holds the current guard state for debugging and HTTP endpoints.
type Status struct {
	Enabled          bool      `json:"enabled"`
	LastBalance      float64   `json:"last_balance"`
	LastCheck        time.Time `json:"last_check"`
	HaltThreshold    float64   `json:"halt_threshold"`
	ResumeThreshold  float64   `json:"resume_threshold"`
	AvgStakeSize     float64   `json:"avg_stake_size"`
	RecentStakeCount int       `json:"recent_stake_count"`
}

// New creates a guard with the given configuration.
func New(cfg *Config) (*Guard, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Balance == nil {
		return nil, fmt.Errorf("balance func cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg.CheckInterval <= 0 {
		return nil, fmt.Errorf("check interval must be positive")
	}
	if cfg.StakeMultiplier <= 0 {
		return nil, fmt.Errorf("stake multiplier must be positive")
	}
	if cfg.MinAbsolute <= 0 {
		return nil, fmt.Errorf("min absolute must be positive")
	}
	if cfg.HysteresisRatio < 1.0 {
		return nil, fmt.Errorf("hysteresis ratio must be >= 1.0")
	}

	g := &Guard{
		checkInterval:   cfg.CheckInterval,
		balance:         cfg.Balance,
		logger:          cfg.Logger,
		stakeMultiplier: cfg.StakeMultiplier,
		minAbsolute:     cfg.MinAbsolute,
		hysteresisRatio: cfg.HysteresisRatio,
		recentStakes:    make([]float64, 0, stakeWindow),
		haltThreshold:   cfg.MinAbsolute, // Start with minimum
		resumeThreshold: cfg.MinAbsolute * cfg.HysteresisRatio,
	}

	// Start enabled by default
	g.enabled.Store(true)

	GuardEnabled.Set(1)
	GuardHaltThreshold.Set(g.haltThreshold)
	GuardResumeThreshold.Set(g.resumeThreshold)
	GuardAvgStakeSize.Set(0)

	return g, nil
}

// IsEnabled returns true if new placements are allowed.
// Lock-free and safe to call from hot paths.
func (g *Guard) IsEnabled() bool {
	return g.enabled.Load()
}

// RecordStake adds an accepted stake to the rolling window and
// recalculates the thresholds.
func (g *Guard) RecordStake(amount float64) {
	if amount <= 0 {
		g.logger.Warn("invalid-stake-size", zap.Float64("size", amount))
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.recentStakes = append(g.recentStakes, amount)
	if len(g.recentStakes) > stakeWindow {
		g.recentStakes = g.recentStakes[1:]
	}

	sum := 0.0
	for _, s := range g.recentStakes {
		sum += s
	}
	avgStake := sum / float64(len(g.recentStakes))

	g.haltThreshold = math.Max(avgStake*g.stakeMultiplier, g.minAbsolute)
	g.resumeThreshold = g.haltThreshold * g.hysteresisRatio

	GuardAvgStakeSize.Set(avgStake)
	GuardHaltThreshold.Set(g.haltThreshold)
	GuardResumeThreshold.Set(g.resumeThreshold)

	g.logger.Debug("thresholds-updated",
		zap.Float64("avg-stake-size", avgStake),
		zap.Int("stake-count", len(g.recentStakes)),
		zap.Float64("halt-threshold", g.haltThreshold),
		zap.Float64("resume-threshold", g.resumeThreshold))
}

// Check reads the current balance and updates the enabled state against
// the thresholds.
func (g *Guard) Check() {
	balance := g.balance()

	g.mu.Lock()
	haltThreshold := g.haltThreshold
	resumeThreshold := g.resumeThreshold
	g.lastBalance = balance
	g.lastCheck = time.Now()
	g.mu.Unlock()

	GuardBalance.Set(balance)

	currentlyEnabled := g.enabled.Load()

	// State transition with hysteresis
	switch {
	case currentlyEnabled && balance < haltThreshold:
		g.enabled.Store(false)
		GuardEnabled.Set(0)
		GuardStateChanges.Inc()

		g.logger.Warn("bankroll-guard-halted",
			zap.Float64("balance", balance),
			zap.Float64("halt-threshold", haltThreshold),
			zap.Float64("resume-threshold", resumeThreshold))

	case !currentlyEnabled && balance >= resumeThreshold:
		g.enabled.Store(true)
		GuardEnabled.Set(1)
		GuardStateChanges.Inc()

		g.logger.Info("bankroll-guard-resumed",
			zap.Float64("balance", balance),
			zap.Float64("halt-threshold", haltThreshold),
			zap.Float64("resume-threshold", resumeThreshold))

	default:
		g.logger.Debug("balance-checked",
			zap.Float64("balance", balance),
			zap.Bool("enabled", currentlyEnabled))
	}
}

// Start begins the background monitoring loop. It checks immediately,
// then periodically until the context is cancelled.
func (g *Guard) Start(ctx context.Context) {
	g.logger.Info("bankroll-guard-started",
		zap.Duration("check-interval", g.checkInterval),
		zap.Float64("stake-multiplier", g.stakeMultiplier),
		zap.Float64("min-absolute", g.minAbsolute),
		zap.Float64("hysteresis-ratio", g.hysteresisRatio))

	g.Check()

	go g.monitorLoop(ctx)
}

func (g *Guard) monitorLoop(ctx context.Context) {
	ticker := time.NewTicker(g.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.logger.Info("bankroll-guard-stopped")
			return
		case <-ticker.C:
			g.Check()
		}
	}
}

// GetStatus returns the current guard state.
func (g *Guard) GetStatus() Status {
	g.mu.RLock()
	defer g.mu.RUnlock()

	sum := 0.0
	for _, s := range g.recentStakes {
		sum += s
	}
	avgStake := 0.0
	if len(g.recentStakes) > 0 {
		avgStake = sum / float64(len(g.recentStakes))
	}

	return Status{
		Enabled:          g.enabled.Load(),
		LastBalance:      g.lastBalance,
		LastCheck:        g.lastCheck,
		HaltThreshold:    g.haltThreshold,
		ResumeThreshold:  g.resumeThreshold,
		AvgStakeSize:     avgStake,
		RecentStakeCount: len(g.recentStakes),
	}
}
