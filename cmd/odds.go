package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/mselser95/betting-arcade/internal/arcade"
	"github.com/mselser95/betting-arcade/internal/marketmaker"
	"github.com/mselser95/betting-arcade/internal/rng"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var oddsSeed int64

//nolint:gochecknoglobals // Cobra boilerplate
var oddsCmd = &cobra.Command{
	Use:   "odds",
	Short: "Print the odds table for every game",
	Long: `Generates one fresh odds table for each game and prints it together
with the opening card market quote. Odds are randomized per run unless
--seed is given.`,
	RunE: runOdds,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	oddsCmd.Flags().Int64Var(&oddsSeed, "seed", 0, "random seed (0 seeds from the clock)")
	rootCmd.AddCommand(oddsCmd)
}

func runOdds(cmd *cobra.Command, args []string) error {
	var src rng.Source
	if oddsSeed != 0 {
		src = rng.NewSeeded(oddsSeed)
	} else {
		src = rng.New()
	}

	table, err := arcade.New(&arcade.Config{
		Source:       src,
		Logger:       zap.NewNop(),
		MarketPolicy: marketmaker.PolicyReferencePriced,
	})
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GAME\tOUTCOME\tMULTIPLIER")

	for _, g := range table.Games() {
		outcomes := make([]string, 0, len(g.Outcomes))
		ids := make(map[string]string, len(g.Outcomes))
		for _, o := range g.Outcomes {
			outcomes = append(outcomes, o.ID)
			ids[o.ID] = o.Label
		}
		sort.Strings(outcomes)

		for _, id := range outcomes {
			fmt.Fprintf(w, "%s\t%s\t%.2fx\n", g.Name, ids[id], g.Odds[id])
		}
	}

	err = w.Flush()
	if err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	quote := table.MarketQuote()
	fmt.Printf("\nCard market: bid %.2f / ask %.2f\n", quote.Bid, quote.Ask)

	return nil
}
