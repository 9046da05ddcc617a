package game

import "github.com/mselser95/betting-arcade/internal/rng"

// Card game outcome ids.
const (
	OutcomeSumUnder10  = "sum_under_10"
	OutcomeSum10To20   = "sum_10_20"
	OutcomeSumOver20   = "sum_over_20"
	OutcomeAllSameSuit = "all_same_suit"
	OutcomeAllFace     = "all_face_cards"
)

const numCards = 3

// Card is a single playing card.
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

var (
	suits = []string{"Hearts", "Diamonds", "Clubs", "Spades"}
	ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
)

// Value returns the card's point value: face cards count 10, aces 11,
// number cards their face value.
func (c Card) Value() int {
	switch c.Rank {
	case "J", "Q", "K":
		return 10
	case "A":
		return 11
	case "10":
		return 10
	default:
		return int(c.Rank[0] - '0')
	}
}

// IsFace reports whether the card is a face card. Aces are not face cards
// for the all_face_cards outcome.
func (c Card) IsFace() bool {
	return c.Rank == "J" || c.Rank == "Q" || c.Rank == "K"
}

// CardVariant draws three cards from a fresh 52-card deck each round;
// stakes resolve on the value sum and on suit/rank patterns. It settles
// winning stakes as principal plus net winnings.
type CardVariant struct{}

// NewCardVariant creates the card-sum variant.
func NewCardVariant() *CardVariant { return &CardVariant{} }

// Name returns "cards".
func (v *CardVariant) Name() string { return "cards" }

// Settlement returns the principal-plus-net convention.
func (v *CardVariant) Settlement() Settlement { return SettlePrincipalPlusNet }

// Profiles returns the card outcomes. The sum-band probabilities are the
// house's fixed pricing figures, not exact hypergeometric values.
func (v *CardVariant) Profiles() []OutcomeProfile {
	return []OutcomeProfile{
		{
			Outcome:     Outcome{ID: OutcomeSumUnder10, Label: "Sum of cards under 10"},
			Probability: 0.3,
			EdgeMin:     -0.02, EdgeMax: 0.04,
		},
		{
			Outcome:     Outcome{ID: OutcomeSum10To20, Label: "Sum of cards between 10-20"},
			Probability: 0.4,
			EdgeMin:     -0.015, EdgeMax: 0.035,
		},
		{
			Outcome:     Outcome{ID: OutcomeSumOver20, Label: "Sum of cards over 20"},
			Probability: 0.3,
			EdgeMin:     -0.02, EdgeMax: 0.04,
		},
		{
			Outcome:     Outcome{ID: OutcomeAllSameSuit, Label: "All cards same suit"},
			Probability: 0.05,
			EdgeMin:     -0.01, EdgeMax: 0.06,
		},
		{
			Outcome:     Outcome{ID: OutcomeAllFace, Label: "All face cards"},
			Probability: 0.037,
			EdgeMin:     -0.01, EdgeMax: 0.06,
		},
	}
}

// newDeck builds an ordered 52-card deck, 13 ranks by 4 suits, no jokers.
func newDeck() []Card {
	deck := make([]Card, 0, len(suits)*len(ranks))
	for _, suit := range suits {
		for _, rank := range ranks {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// Play rebuilds and reshuffles the deck, draws three cards without
// replacement, and classifies the hand. There is no deck depletion across
// rounds.
func (v *CardVariant) Play(src rng.Source) *Draw {
	deck := newDeck()
	src.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	drawn := deck[:numCards]
	total := 0
	sameSuit := true
	allFace := true
	for i, c := range drawn {
		total += c.Value()
		if i > 0 && c.Suit != drawn[0].Suit {
			sameSuit = false
		}
		if !c.IsFace() {
			allFace = false
		}
	}

	cards := make([]Card, numCards)
	copy(cards, drawn)

	return &Draw{
		Cards: cards,
		Total: total,
		Outcomes: map[string]bool{
			OutcomeSumUnder10:  total < 10,
			OutcomeSum10To20:   total >= 10 && total <= 20,
			OutcomeSumOver20:   total > 20,
			OutcomeAllSameSuit: sameSuit,
			OutcomeAllFace:     allFace,
		},
	}
}
