package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "betting-arcade",
	Short: "Casino-style betting arcade engine",
	Long: `Betting arcade in which a player wagers against house-set randomized
odds across three games (coin flips, dice, card sums), with a market maker
quoting a continuous two-sided market on the card sum.

Odds are regenerated every round from fixed true probabilities, a randomized
house edge and a market-fluctuation factor. The card market supports
directional trades settled against the drawn card sum.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
