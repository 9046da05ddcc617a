package game

import "github.com/mselser95/betting-arcade/internal/rng"

// Dice game outcome ids.
const (
	OutcomeSum3     = "sum_3"
	OutcomeSum5Or10 = "sum_5_10"
	OutcomeSum18    = "sum_18"
)

const numDice = 3

// DiceVariant rolls three fair dice per round and stakes resolve on the
// sum. It settles winning stakes as principal plus net winnings.
type DiceVariant struct{}

// NewDiceVariant creates the dice variant.
func NewDiceVariant() *DiceVariant { return &DiceVariant{} }

// Name returns "dice".
func (v *DiceVariant) Name() string { return "dice" }

// Settlement returns the principal-plus-net convention.
func (v *DiceVariant) Settlement() Settlement { return SettlePrincipalPlusNet }

// Profiles returns the dice outcomes. sum_5_10 is priced at 25/216, the
// house's quoted probability for the combined event.
func (v *DiceVariant) Profiles() []OutcomeProfile {
	return []OutcomeProfile{
		{
			Outcome:     Outcome{ID: OutcomeSum3, Label: "Sum of 3 dice is 3"},
			Probability: 1.0 / 216,
			EdgeMin:     -0.02, EdgeMax: 0.05,
		},
		{
			Outcome:     Outcome{ID: OutcomeSum5Or10, Label: "Sum of 3 dice is 5 or 10"},
			Probability: 25.0 / 216,
			EdgeMin:     -0.01, EdgeMax: 0.04,
		},
		{
			Outcome:     Outcome{ID: OutcomeSum18, Label: "Sum of 3 dice is 18"},
			Probability: 1.0 / 216,
			EdgeMin:     -0.02, EdgeMax: 0.05,
		},
	}
}

// Play rolls the dice and classifies the total.
func (v *DiceVariant) Play(src rng.Source) *Draw {
	rolls := make([]int, numDice)
	total := 0
	for i := range rolls {
		rolls[i] = src.Die()
		total += rolls[i]
	}

	return &Draw{
		Rolls: rolls,
		Total: total,
		Outcomes: map[string]bool{
			OutcomeSum3:     total == 3,
			OutcomeSum5Or10: total == 5 || total == 10,
			OutcomeSum18:    total == 18,
		},
	}
}
