package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/mselser95/betting-arcade/internal/app"
	"github.com/mselser95/betting-arcade/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade HTTP API",
	Long: `Starts the arcade table and serves it over HTTP:

  GET  /api/games          games, outcomes and current odds
  GET  /api/market/quote   card market bid/ask
  POST /api/bets           place a bet for the open round
  POST /api/trades         trade against the card market
  POST /api/rounds         resolve the round
  GET  /ws                 WebSocket round feed

Round results are optionally recorded via STORAGE_MODE (console/postgres).`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env if present
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
