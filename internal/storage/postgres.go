package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"
	_ "github.com/lib/pq"
	"github.com/mselser95/betting-arcade/internal/arcade"
	"go.uber.org/zap"
)

// PostgresStorage implements Storage using PostgreSQL.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStorage creates a new PostgreSQL storage.
func NewPostgresStorage(cfg *PostgresConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-storage-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresStorage{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// StoreRound records a resolved round. Draw details and settled trades go
// into JSONB columns; the scalar columns carry what reporting queries
// actually aggregate over.
func (p *PostgresStorage) StoreRound(ctx context.Context, report *arcade.RoundReport) error {
	draws, err := json.Marshal(map[string]any{
		"coin":  report.Coin.Draw,
		"dice":  report.Dice.Draw,
		"cards": report.Cards.Draw,
	})
	if err != nil {
		return fmt.Errorf("marshal draws: %w", err)
	}

	trades, err := json.Marshal(report.Trades)
	if err != nil {
		return fmt.Errorf("marshal trades: %w", err)
	}

	query := `
		INSERT INTO arcade_rounds (
			id, round, played_at, draws, trades,
			bid, ask, position,
			coin_pnl, dice_pnl, cards_pnl, total_pnl, balance
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err = p.db.ExecContext(ctx, query,
		report.ID,
		report.Round,
		report.PlayedAt,
		draws,
		trades,
		report.Quote.Bid,
		report.Quote.Ask,
		report.Quote.Position,
		report.PnL[arcade.GameCoin],
		report.PnL[arcade.GameDice],
		report.PnL[arcade.GameCards],
		report.TotalPnL,
		report.Balance,
	)
	if err != nil {
		return fmt.Errorf("insert round: %w", err)
	}

	p.logger.Debug("round-stored",
		zap.String("round-id", report.ID),
		zap.Int("round", report.Round),
		zap.Float64("total-pnl", report.TotalPnL))

	return nil
}

// Close closes the database connection.
func (p *PostgresStorage) Close() error {
	p.logger.Info("closing-postgres-storage")
	return p.db.Close()
}
