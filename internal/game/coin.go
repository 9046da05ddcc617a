package game

import "github.com/mselser95/betting-arcade/internal/rng"

// Coin game outcome ids.
const (
	OutcomeAllHeads        = "all_heads"
	OutcomeTwoConsecutive  = "two_consecutive_heads"
	OutcomeAlternating     = "alternating"
	OutcomeExactlyTwoHeads = "two_heads"
	OutcomeExactlyTwoTails = "two_tails"
)

const numCoins = 3

// CoinVariant flips three fair coins per round. It settles winning stakes
// as stake * multiplier (total-return convention).
type CoinVariant struct{}

// NewCoinVariant creates the coin-flip variant.
func NewCoinVariant() *CoinVariant { return &CoinVariant{} }

// Name returns "coin".
func (v *CoinVariant) Name() string { return "coin" }

// Settlement returns the total-return convention.
func (v *CoinVariant) Settlement() Settlement { return SettleTotalReturn }

// Profiles returns the coin outcomes with their true probabilities over
// three flips and the house-edge offset intervals.
func (v *CoinVariant) Profiles() []OutcomeProfile {
	return []OutcomeProfile{
		{
			Outcome:     Outcome{ID: OutcomeAllHeads, Label: "All heads"},
			Probability: 1.0 / 8,
			EdgeMin:     -0.02, EdgeMax: 0.05,
		},
		{
			Outcome:     Outcome{ID: OutcomeTwoConsecutive, Label: "2 consecutive heads"},
			Probability: 3.0 / 8,
			EdgeMin:     -0.01, EdgeMax: 0.04,
		},
		{
			Outcome:     Outcome{ID: OutcomeAlternating, Label: "Alternating (HTH or THT)"},
			Probability: 2.0 / 8,
			EdgeMin:     -0.015, EdgeMax: 0.045,
		},
		{
			Outcome:     Outcome{ID: OutcomeExactlyTwoHeads, Label: "Exactly 2 heads"},
			Probability: 3.0 / 8,
			EdgeMin:     -0.01, EdgeMax: 0.03,
		},
		{
			Outcome:     Outcome{ID: OutcomeExactlyTwoTails, Label: "Exactly 2 tails"},
			Probability: 3.0 / 8,
			EdgeMin:     -0.01, EdgeMax: 0.03,
		},
	}
}

// Play flips the coins and classifies the sequence against every outcome.
// Classifications are independent: a single draw can win several outcomes
// at once (e.g. two consecutive heads and exactly two heads).
func (v *CoinVariant) Play(src rng.Source) *Draw {
	flips := make([]string, numCoins)
	heads := 0
	for i := range flips {
		if src.Coin() {
			flips[i] = "H"
			heads++
		} else {
			flips[i] = "T"
		}
	}

	consecutive := false
	for i := 0; i < len(flips)-1; i++ {
		if flips[i] == "H" && flips[i+1] == "H" {
			consecutive = true
			break
		}
	}

	seq := flips[0] + flips[1] + flips[2]

	return &Draw{
		Flips: flips,
		Outcomes: map[string]bool{
			OutcomeAllHeads:        heads == numCoins,
			OutcomeTwoConsecutive:  consecutive,
			OutcomeAlternating:     seq == "HTH" || seq == "THT",
			OutcomeExactlyTwoHeads: heads == 2,
			OutcomeExactlyTwoTails: numCoins-heads == 2,
		},
	}
}
