package game

import "github.com/mselser95/betting-arcade/internal/rng"

const (
	// baseHouseEdge is the fixed rate every outcome's edge is perturbed
	// around each round.
	baseHouseEdge = 0.05

	// maxFluctuation bounds the multiplicative market noise applied to
	// each payout, +/-10%.
	maxFluctuation = 0.10
)

// generateOdds produces a fresh payout-multiplier table for the given
// outcome profiles. For each outcome:
//
//	multiplier = (1 / probability) * (1 + edge) * (1 + fluctuation)
//
// where edge = baseHouseEdge + U(EdgeMin, EdgeMax) and fluctuation is an
// independent U(-maxFluctuation, +maxFluctuation) draw. The returned table
// fully replaces the previous one; odds are never adjusted incrementally.
func generateOdds(src rng.Source, profiles []OutcomeProfile) map[string]float64 {
	odds := make(map[string]float64, len(profiles))
	for _, p := range profiles {
		edge := baseHouseEdge + src.InRange(p.EdgeMin, p.EdgeMax)
		fluctuation := src.InRange(-maxFluctuation, maxFluctuation)
		odds[p.ID] = (1 / p.Probability) * (1 + edge) * (1 + fluctuation)
	}
	return odds
}
