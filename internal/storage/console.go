package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/mselser95/betting-arcade/internal/arcade"
	"go.uber.org/zap"
)

// ConsoleStorage implements Storage by pretty-printing rounds to console.
type ConsoleStorage struct {
	logger *zap.Logger
}

// NewConsoleStorage creates a new console storage.
func NewConsoleStorage(logger *zap.Logger) *ConsoleStorage {
	logger.Info("console-storage-initialized")
	return &ConsoleStorage{
		logger: logger,
	}
}

// StoreRound pretty-prints a resolved round to console.
func (c *ConsoleStorage) StoreRound(ctx context.Context, report *arcade.RoundReport) error {
	rule := strings.Repeat("━", 72)

	fmt.Println("\n" + rule)
	fmt.Printf("🎲 ROUND %d RESOLVED\n", report.Round)
	fmt.Println(rule)
	fmt.Printf("ID:       %s\n", report.ID[:8])
	fmt.Printf("Time:     %s\n", report.PlayedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Coin:     %s\n", strings.Join(report.Coin.Draw.Flips, " "))
	fmt.Printf("Dice:     %v (total %d)\n", report.Dice.Draw.Rolls, report.Dice.Draw.Total)

	cards := make([]string, len(report.Cards.Draw.Cards))
	for i, card := range report.Cards.Draw.Cards {
		cards[i] = fmt.Sprintf("%s of %s", card.Rank, card.Suit)
	}
	fmt.Printf("Cards:    %s (sum %d)\n", strings.Join(cards, ", "), report.Cards.Draw.Total)
	fmt.Printf("Quote:    bid %.2f / ask %.2f (position %.1f)\n",
		report.Quote.Bid, report.Quote.Ask, report.Quote.Position)
	fmt.Println(rule)
	fmt.Printf("💰 PNL\n")
	for _, name := range []string{arcade.GameCoin, arcade.GameDice, arcade.GameCards} {
		if pnl := report.PnL[name]; pnl != 0 {
			fmt.Printf("  %-8s %+.2f\n", name, pnl)
		}
	}
	for _, trade := range report.Trades {
		side := "sell"
		if trade.IsBuy {
			side = "buy"
		}
		fmt.Printf("  trade    %s %.1f @ %.2f → %+.2f\n",
			side, trade.Amount, trade.ReferencePrice, trade.Profit)
	}
	fmt.Printf("  Total:   %+.2f\n", report.TotalPnL)
	fmt.Printf("  Balance: %.2f\n", report.Balance)
	fmt.Println(rule)

	return nil
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	c.logger.Info("closing-console-storage")
	return nil
}
