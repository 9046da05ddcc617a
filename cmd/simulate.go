package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mselser95/betting-arcade/internal/arcade"
	"github.com/mselser95/betting-arcade/internal/marketmaker"
	"github.com/mselser95/betting-arcade/internal/rng"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	simRounds  int
	simSeed    int64
	simBet     float64
	simBalance float64
	simPolicy  string
	simTrade   float64
)

//nolint:gochecknoglobals // Cobra boilerplate
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play automated rounds and print a session summary",
	Long: `Plays a fixed number of rounds with an automated bettor that cycles
through every outcome of every game, trades against the card market each
round, and prints a per-round and final summary.

With --seed the whole session is reproducible.`,
	RunE: runSimulate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	simulateCmd.Flags().IntVar(&simRounds, "rounds", 10, "number of rounds to play")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed (0 seeds from the clock)")
	simulateCmd.Flags().Float64Var(&simBet, "bet", 10.0, "stake per bet")
	simulateCmd.Flags().Float64Var(&simBalance, "balance", 1000.0, "starting balance")
	simulateCmd.Flags().StringVar(&simPolicy, "policy", "reference_priced", "market maker policy (reference_priced or fixed_base)")
	simulateCmd.Flags().Float64Var(&simTrade, "trade", 1.0, "card market trade size per round (0 disables trading)")
	rootCmd.AddCommand(simulateCmd)
}

func tradeLabel(reject marketmaker.Reject, isBuy bool, size float64) string {
	if !reject.Accepted() {
		return reject.String()
	}
	if isBuy {
		return fmt.Sprintf("buy %.1f", size)
	}
	return fmt.Sprintf("sell %.1f", size)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	logger := zap.NewNop()

	policy, err := marketmaker.ParsePolicy(simPolicy)
	if err != nil {
		return fmt.Errorf("parse market policy: %w", err)
	}

	var src rng.Source
	if simSeed != 0 {
		src = rng.NewSeeded(simSeed)
	} else {
		src = rng.New()
	}

	table, err := arcade.New(&arcade.Config{
		Source:         src,
		Logger:         logger,
		InitialBalance: simBalance,
		MarketPolicy:   policy,
		HistoryLimit:   simRounds,
	})
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROUND\tBETS\tTRADE\tCOIN\tDICE\tCARDS\tTOTAL\tBALANCE")

	games := table.Games()
	start := table.Balance()

	for round := 0; round < simRounds; round++ {
		placed := 0
		for _, g := range games {
			// Cycle outcomes so every one gets bet over a long run.
			outcome := g.Outcomes[round%len(g.Outcomes)]
			reject, err := table.PlaceBet(g.Name, outcome.ID, simBet)
			if err != nil {
				return fmt.Errorf("place bet: %w", err)
			}
			if reject.Accepted() {
				placed++
			}
		}

		trade := "-"
		if simTrade > 0 {
			// Alternate buy and sell to keep the position bounded.
			isBuy := round%2 == 0
			reject := table.PlaceTrade(simTrade, isBuy)
			trade = tradeLabel(reject, isBuy, simTrade)
		}

		report := table.PlayRound()
		fmt.Fprintf(w, "%d\t%d\t%s\t%+.2f\t%+.2f\t%+.2f\t%+.2f\t%.2f\n",
			report.Round,
			placed,
			trade,
			report.PnL[arcade.GameCoin],
			report.PnL[arcade.GameDice],
			report.PnL[arcade.GameCards],
			report.TotalPnL,
			report.Balance,
		)
	}

	err = w.Flush()
	if err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	final := table.Balance()
	fmt.Println()
	fmt.Printf("Session %s: %d rounds, balance %.2f -> %.2f (%+.2f)\n",
		table.Session(), table.Round(), start, final, final-start)

	return nil
}
