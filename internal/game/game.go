// Package game implements the bet-settlement and dynamic-pricing engine:
// per-variant outcome classification, per-round odds generation, and the
// bet ledger mechanics shared by every game.
package game

import (
	"fmt"

	"github.com/mselser95/betting-arcade/internal/rng"
	"go.uber.org/zap"
)

// Variant supplies a game's fixed outcome data and its draw logic. The
// ledger mechanics are shared by all variants; a variant only knows how to
// draw its underlying random process and classify it.
type Variant interface {
	// Name returns the variant's stable identifier (e.g. "coin").
	Name() string

	// Profiles returns the ordered, fixed outcome set with probabilities
	// and house-edge intervals.
	Profiles() []OutcomeProfile

	// Settlement returns the variant's stake-settlement convention.
	Settlement() Settlement

	// Play draws one realization and classifies it against every defined
	// outcome. It has no side effects beyond the returned draw.
	Play(src rng.Source) *Draw
}

// Draw is one realization of a variant's random process, classified
// against every defined outcome. Only the fields that apply to the variant
// are set.
type Draw struct {
	Flips []string `json:"flips,omitempty"` // coin: "H"/"T" per flip
	Rolls []int    `json:"rolls,omitempty"` // dice: individual die faces
	Cards []Card   `json:"cards,omitempty"` // cards: drawn cards
	Total int      `json:"total,omitempty"` // dice / cards: value sum

	// Outcomes flags every defined outcome id as won or lost. All
	// classifications are evaluated independently; several can be true
	// for one draw.
	Outcomes map[string]bool `json:"outcomes"`
}

// RoundResult is the report returned by PlayRound.
type RoundResult struct {
	Game    string         `json:"game"`
	Draw    *Draw          `json:"draw"`
	Settled []SettledStake `json:"settled,omitempty"`
	Balance float64        `json:"balance"`
}

// Game couples a variant with a ledger and the current odds table. A Game
// is single-threaded by design: callers (the arcade table) serialize
// access. State lives for the lifetime of the instance; nothing persists
// across sessions.
type Game struct {
	variant Variant
	ledger  *Ledger
	odds    map[string]float64
	src     rng.Source
	logger  *zap.Logger
}

// Config holds game construction parameters.
type Config struct {
	Variant Variant
	Source  rng.Source
	Logger  *zap.Logger
}

// New creates a game and generates its initial odds table.
func New(cfg *Config) (*Game, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Variant == nil {
		return nil, fmt.Errorf("variant cannot be nil")
	}
	if cfg.Source == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	g := &Game{
		variant: cfg.Variant,
		ledger:  newLedger(cfg.Variant.Settlement()),
		src:     cfg.Source,
		logger:  cfg.Logger.With(zap.String("game", cfg.Variant.Name())),
	}
	g.odds = generateOdds(g.src, g.variant.Profiles())

	g.logger.Info("game-initialized",
		zap.Int("outcome-count", len(g.odds)))

	return g, nil
}

// Name returns the variant name.
func (g *Game) Name() string { return g.variant.Name() }

// Outcomes returns the ordered outcome definitions. Static per instance.
func (g *Game) Outcomes() []Outcome {
	profiles := g.variant.Profiles()
	outcomes := make([]Outcome, len(profiles))
	for i, p := range profiles {
		outcomes[i] = p.Outcome
	}
	return outcomes
}

// CurrentOdds returns a copy of the payout-multiplier table for the
// current round.
func (g *Game) CurrentOdds() map[string]float64 {
	odds := make(map[string]float64, len(g.odds))
	for id, m := range g.odds {
		odds[id] = m
	}
	return odds
}

// Balance returns the game's current balance.
func (g *Game) Balance() float64 { return g.ledger.balance }

// SetBalance overwrites the balance. The coordinator uses this to
// reconcile the shared player balance across games between rounds.
func (g *Game) SetBalance(amount float64) { g.ledger.balance = amount }

// CheckBet validates a bet without placing it.
func (g *Game) CheckBet(outcomeID string, amount float64) Reject {
	return g.ledger.check(g.odds, outcomeID, amount)
}

// PlaceBet places a stake on an outcome for the current round. On
// acceptance the balance is debited immediately. Returns false on
// rejection with no state change.
func (g *Game) PlaceBet(outcomeID string, amount float64) bool {
	reject := g.ledger.placeBet(g.odds, outcomeID, amount)
	BetsTotal.WithLabelValues(g.variant.Name(), reject.String()).Inc()

	if !reject.Accepted() {
		g.logger.Debug("bet-rejected",
			zap.String("outcome", outcomeID),
			zap.Float64("amount", amount),
			zap.String("reason", reject.String()))
		return false
	}

	g.logger.Debug("bet-placed",
		zap.String("outcome", outcomeID),
		zap.Float64("amount", amount),
		zap.Float64("multiplier", g.odds[outcomeID]),
		zap.Float64("balance", g.ledger.balance))
	return true
}

// PlayRound draws one realization, settles every active stake against it,
// clears the stakes, and regenerates the odds table for the next round.
func (g *Game) PlayRound() *RoundResult {
	draw := g.variant.Play(g.src)
	settled := g.ledger.settle(draw.Outcomes, g.odds)
	g.ledger.clear()
	g.odds = generateOdds(g.src, g.variant.Profiles())

	RoundsTotal.WithLabelValues(g.variant.Name()).Inc()
	for _, s := range settled {
		if s.Won {
			PayoutAmount.WithLabelValues(g.variant.Name()).Observe(s.Credit)
		}
	}

	g.logger.Debug("round-resolved",
		zap.Int("stakes-settled", len(settled)),
		zap.Float64("balance", g.ledger.balance))

	return &RoundResult{
		Game:    g.variant.Name(),
		Draw:    draw,
		Settled: settled,
		Balance: g.ledger.balance,
	}
}
