package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Table
	InitialBalance float64
	RandomSeed     int64 // 0 means seed from the clock
	HistoryLimit   int

	// Market maker: "reference_priced" or "fixed_base"
	MarketPolicy string

	// Bankroll guard
	GuardEnabled         bool
	GuardCheckInterval   time.Duration
	GuardStakeMultiplier float64
	GuardMinAbsolute     float64
	GuardHysteresisRatio float64

	// Storage
	StorageMode  string // "postgres", "console" or "none"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Table defaults
		InitialBalance: getFloat64OrDefault("ARCADE_INITIAL_BALANCE", 1000.0),
		RandomSeed:     getInt64OrDefault("ARCADE_RANDOM_SEED", 0),
		HistoryLimit:   getIntOrDefault("ARCADE_HISTORY_LIMIT", 64),

		// Market maker defaults
		MarketPolicy: getEnvOrDefault("ARCADE_MARKET_POLICY", "reference_priced"),

		// Bankroll guard defaults
		GuardEnabled:         getBoolOrDefault("ARCADE_GUARD_ENABLED", false),
		GuardCheckInterval:   getDurationOrDefault("ARCADE_GUARD_CHECK_INTERVAL", 30*time.Second),
		GuardStakeMultiplier: getFloat64OrDefault("ARCADE_GUARD_STAKE_MULTIPLIER", 3.0),
		GuardMinAbsolute:     getFloat64OrDefault("ARCADE_GUARD_MIN_ABSOLUTE", 1.0),
		GuardHysteresisRatio: getFloat64OrDefault("ARCADE_GUARD_HYSTERESIS_RATIO", 1.5),

		// Storage defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "none"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "arcade"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "arcade123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "betting_arcade"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.InitialBalance < 0 {
		return fmt.Errorf("ARCADE_INITIAL_BALANCE cannot be negative, got %f", c.InitialBalance)
	}

	if c.MarketPolicy != "reference_priced" && c.MarketPolicy != "fixed_base" {
		return fmt.Errorf("ARCADE_MARKET_POLICY must be 'reference_priced' or 'fixed_base', got %q", c.MarketPolicy)
	}

	if c.StorageMode != "postgres" && c.StorageMode != "console" && c.StorageMode != "none" {
		return fmt.Errorf("STORAGE_MODE must be 'postgres', 'console' or 'none', got %q", c.StorageMode)
	}

	if c.GuardEnabled {
		if c.GuardCheckInterval <= 0 {
			return fmt.Errorf("ARCADE_GUARD_CHECK_INTERVAL must be positive, got %s", c.GuardCheckInterval)
		}
		if c.GuardStakeMultiplier <= 0 {
			return fmt.Errorf("ARCADE_GUARD_STAKE_MULTIPLIER must be positive, got %f", c.GuardStakeMultiplier)
		}
		if c.GuardMinAbsolute <= 0 {
			return fmt.Errorf("ARCADE_GUARD_MIN_ABSOLUTE must be positive, got %f", c.GuardMinAbsolute)
		}
		if c.GuardHysteresisRatio < 1.0 {
			return fmt.Errorf("ARCADE_GUARD_HYSTERESIS_RATIO must be >= 1.0, got %f", c.GuardHysteresisRatio)
		}
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getInt64OrDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatVal
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
