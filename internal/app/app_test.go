package app

import (
	"testing"
	"time"

	"github.com/mselser95/betting-arcade/pkg/config"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:             "info",
		HTTPPort:             "0",
		InitialBalance:       1000.0,
		RandomSeed:           42,
		HistoryLimit:         16,
		MarketPolicy:         "reference_priced",
		StorageMode:          "none",
		GuardCheckInterval:   time.Minute,
		GuardStakeMultiplier: 3.0,
		GuardMinAbsolute:     1.0,
		GuardHysteresisRatio: 1.5,
	}
}

func TestNewWiresComponents(t *testing.T) {
	application, err := New(testConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	if application.table == nil {
		t.Error("Expected a table")
	}
	if application.httpServer == nil {
		t.Error("Expected an HTTP server")
	}
	if application.hub == nil {
		t.Error("Expected a websocket hub")
	}
	if application.roundCache == nil {
		t.Error("Expected a cache")
	}
	if application.storage != nil {
		t.Error("Expected no storage in mode none")
	}
	if application.guard != nil {
		t.Error("Expected no guard when disabled")
	}

	if err := application.Shutdown(); err != nil {
		t.Errorf("Unexpected shutdown error: %v", err)
	}
}

func TestNewWithGuardEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.GuardEnabled = true

	application, err := New(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	if application.guard == nil {
		t.Fatal("Expected a guard when enabled")
	}
	if !application.guard.IsEnabled() {
		t.Error("Expected the guard to start enabled")
	}

	if err := application.Shutdown(); err != nil {
		t.Errorf("Unexpected shutdown error: %v", err)
	}
}

func TestNewRejectsBadPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.MarketPolicy = "martingale"

	_, err := New(cfg, zap.NewNop())
	if err == nil {
		t.Fatal("Expected an error for an unknown market policy")
	}
}
