package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LOG_LEVEL", "HTTP_PORT",
		"ARCADE_INITIAL_BALANCE", "ARCADE_RANDOM_SEED", "ARCADE_HISTORY_LIMIT",
		"ARCADE_MARKET_POLICY", "STORAGE_MODE",
		"ARCADE_GUARD_ENABLED", "ARCADE_GUARD_CHECK_INTERVAL",
		"ARCADE_GUARD_STAKE_MULTIPLIER", "ARCADE_GUARD_MIN_ABSOLUTE",
		"ARCADE_GUARD_HYSTERESIS_RATIO",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER",
		"POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_SSLMODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.InitialBalance != 1000.0 {
		t.Errorf("Expected initial balance 1000, got %.2f", cfg.InitialBalance)
	}
	if cfg.RandomSeed != 0 {
		t.Errorf("Expected seed 0, got %d", cfg.RandomSeed)
	}
	if cfg.HistoryLimit != 64 {
		t.Errorf("Expected history limit 64, got %d", cfg.HistoryLimit)
	}
	if cfg.MarketPolicy != "reference_priced" {
		t.Errorf("Expected policy reference_priced, got %s", cfg.MarketPolicy)
	}
	if cfg.StorageMode != "none" {
		t.Errorf("Expected storage mode none, got %s", cfg.StorageMode)
	}
	if cfg.GuardEnabled {
		t.Error("Expected the bankroll guard disabled by default")
	}
	if cfg.GuardCheckInterval != 30*time.Second {
		t.Errorf("Expected guard check interval 30s, got %s", cfg.GuardCheckInterval)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("ARCADE_INITIAL_BALANCE", "2500.5")
	t.Setenv("ARCADE_RANDOM_SEED", "42")
	t.Setenv("ARCADE_MARKET_POLICY", "fixed_base")
	t.Setenv("STORAGE_MODE", "console")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.HTTPPort != "9000" {
		t.Errorf("Expected port 9000, got %s", cfg.HTTPPort)
	}
	if cfg.InitialBalance != 2500.5 {
		t.Errorf("Expected initial balance 2500.5, got %.2f", cfg.InitialBalance)
	}
	if cfg.RandomSeed != 42 {
		t.Errorf("Expected seed 42, got %d", cfg.RandomSeed)
	}
	if cfg.MarketPolicy != "fixed_base" {
		t.Errorf("Expected policy fixed_base, got %s", cfg.MarketPolicy)
	}
	if cfg.StorageMode != "console" {
		t.Errorf("Expected storage mode console, got %s", cfg.StorageMode)
	}
}

func TestLoadFromEnvMalformedNumberFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARCADE_INITIAL_BALANCE", "not-a-number")
	t.Setenv("ARCADE_RANDOM_SEED", "4.5")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.InitialBalance != 1000.0 {
		t.Errorf("Expected fallback balance 1000, got %.2f", cfg.InitialBalance)
	}
	if cfg.RandomSeed != 0 {
		t.Errorf("Expected fallback seed 0, got %d", cfg.RandomSeed)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "empty-defaults-to-info", level: ""},
		{name: "debug", level: "debug"},
		{name: "warn", level: "warn"},
		{name: "bogus-level", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.level)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if logger == nil {
				t.Error("Expected a logger")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty-port", mutate: func(c *Config) { c.HTTPPort = "" }, wantErr: true},
		{name: "negative-balance", mutate: func(c *Config) { c.InitialBalance = -1 }, wantErr: true},
		{name: "bad-policy", mutate: func(c *Config) { c.MarketPolicy = "martingale" }, wantErr: true},
		{name: "bad-storage", mutate: func(c *Config) { c.StorageMode = "redis" }, wantErr: true},
		{name: "guard-bad-interval", mutate: func(c *Config) {
			c.GuardEnabled = true
			c.GuardCheckInterval = 0
		}, wantErr: true},
		{name: "guard-bad-hysteresis", mutate: func(c *Config) {
			c.GuardEnabled = true
			c.GuardHysteresisRatio = 0.5
		}, wantErr: true},
		{name: "guard-valid", mutate: func(c *Config) { c.GuardEnabled = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				HTTPPort:             "8080",
				InitialBalance:       1000,
				MarketPolicy:         "reference_priced",
				StorageMode:          "none",
				GuardCheckInterval:   30 * time.Second,
				GuardStakeMultiplier: 3.0,
				GuardMinAbsolute:     1.0,
				GuardHysteresisRatio: 1.5,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
