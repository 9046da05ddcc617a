// Package arcade coordinates the three games and the market maker into
// player-facing rounds: bets and trades are collected during the open
// phase, then every game resolves exactly once and the per-game balance
// deltas are reconciled into the single player balance.
package arcade

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mselser95/betting-arcade/internal/game"
	"github.com/mselser95/betting-arcade/internal/marketmaker"
	"github.com/mselser95/betting-arcade/internal/rng"
	"go.uber.org/zap"
)

// phase is the round lifecycle state. Intake and resolution never
// overlap: resolution only starts once the phase flips, not by
// call-ordering convention.
type phase int

const (
	phaseOpen phase = iota
	phaseResolving
)

// Game names used across the table API.
const (
	GameCoin  = "coin"
	GameDice  = "dice"
	GameCards = "cards"
)

const defaultHistoryLimit = 64

// Quote is a bid/ask pair with the current position.
type Quote struct {
	Bid      float64 `json:"bid"`
	Ask      float64 `json:"ask"`
	Position float64 `json:"position"`
}

// GameInfo describes one game for the API surface.
type GameInfo struct {
	Name     string             `json:"name"`
	Outcomes []game.Outcome     `json:"outcomes"`
	Odds     map[string]float64 `json:"odds"`
}

// RoundReport is the result of one resolved round across all games.
type RoundReport struct {
	ID       string    `json:"id"`
	Round    int       `json:"round"`
	PlayedAt time.Time `json:"played_at"`

	Coin  *game.RoundResult `json:"coin"`
	Dice  *game.RoundResult `json:"dice"`
	Cards *game.RoundResult `json:"cards"`

	Trades []marketmaker.SettledTrade `json:"trades,omitempty"`
	Quote  Quote                      `json:"quote"`

	PnL      map[string]float64 `json:"pnl"`
	TotalPnL float64            `json:"total_pnl"`
	Balance  float64            `json:"balance"`
}

// Table owns one instance of each game, the card game's market maker, and
// the shared player balance. A mutex serializes all access so the HTTP
// shell can call it from concurrent request goroutines; the games
// themselves never observe each other's state.
type Table struct {
	mu      sync.Mutex
	phase   phase
	session string
	round   int

	games   map[string]*game.Game
	market  *marketmaker.MarketMaker
	balance float64

	history      []*RoundReport
	historyLimit int

	logger *zap.Logger
}

// Config holds table construction parameters.
type Config struct {
	Source         rng.Source
	Logger         *zap.Logger
	InitialBalance float64
	MarketPolicy   marketmaker.Policy
	HistoryLimit   int
}

// New creates a table with one coin, one dice and one card game, and the
// market maker on the card sum.
func New(cfg *Config) (*Table, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Source == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg.InitialBalance < 0 {
		return nil, fmt.Errorf("initial balance cannot be negative")
	}

	t := &Table{
		phase:        phaseOpen,
		session:      uuid.New().String(),
		games:        make(map[string]*game.Game, 3),
		balance:      cfg.InitialBalance,
		historyLimit: cfg.HistoryLimit,
		logger:       cfg.Logger,
	}
	if t.historyLimit <= 0 {
		t.historyLimit = defaultHistoryLimit
	}

	variants := []game.Variant{
		game.NewCoinVariant(),
		game.NewDiceVariant(),
		game.NewCardVariant(),
	}
	for _, v := range variants {
		g, err := game.New(&game.Config{
			Variant: v,
			Source:  cfg.Source,
			Logger:  cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s game: %w", v.Name(), err)
		}
		g.SetBalance(t.balance)
		t.games[v.Name()] = g
	}

	market, err := marketmaker.New(&marketmaker.Config{
		Policy: cfg.MarketPolicy,
		Source: cfg.Source,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create market maker: %w", err)
	}
	t.market = market

	PlayerBalance.Set(t.balance)

	t.logger.Info("table-initialized",
		zap.String("session", t.session),
		zap.Float64("initial-balance", t.balance),
		zap.String("market-policy", cfg.MarketPolicy.String()))

	return t, nil
}

// Session returns the session id.
func (t *Table) Session() string { return t.session }

// Balance returns the reconciled player balance as of the last round
// boundary.
func (t *Table) Balance() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balance
}

// Round returns the number of resolved rounds.
func (t *Table) Round() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.round
}

// Games describes every game with its outcomes and current odds.
func (t *Table) Games() []GameInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	infos := make([]GameInfo, 0, len(t.games))
	for _, name := range []string{GameCoin, GameDice, GameCards} {
		g := t.games[name]
		infos = append(infos, GameInfo{
			Name:     name,
			Outcomes: g.Outcomes(),
			Odds:     g.CurrentOdds(),
		})
	}
	return infos
}

// Odds returns the current odds table for one game.
func (t *Table) Odds(gameName string) (map[string]float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.games[gameName]
	if !ok {
		return nil, fmt.Errorf("unknown game %q", gameName)
	}
	return g.CurrentOdds(), nil
}

// PlaceBet stakes an amount on a game outcome for the current round.
func (t *Table) PlaceBet(gameName, outcomeID string, amount float64) (game.Reject, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.games[gameName]
	if !ok {
		return game.RejectUnknownOutcome, fmt.Errorf("unknown game %q", gameName)
	}
	if t.phase != phaseOpen {
		return game.RejectRoundClosed, nil
	}

	// CheckBet is pure, so the reason it reports matches what PlaceBet
	// decides; PlaceBet owns the state change and the metrics.
	reject := g.CheckBet(outcomeID, amount)
	g.PlaceBet(outcomeID, amount)
	return reject, nil
}

// MarketQuote returns the card market's current bid/ask and position.
func (t *Table) MarketQuote() Quote {
	t.mu.Lock()
	defer t.mu.Unlock()

	bid, ask := t.market.Quote()
	return Quote{Bid: bid, Ask: ask, Position: t.market.Position()}
}

// PlaceTrade places a directional trade against the card market. The
// funds check runs against the card game's balance, which is debited on
// acceptance like any bet.
func (t *Table) PlaceTrade(amount float64, isBuy bool) marketmaker.Reject {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != phaseOpen {
		return marketmaker.RejectRoundClosed
	}

	cards := t.games[GameCards]
	if amount <= 0 {
		return marketmaker.RejectAmount
	}
	if amount > cards.Balance() {
		return marketmaker.RejectInsufficientFunds
	}

	reject := t.market.PlaceTrade(amount, isBuy)
	if reject.Accepted() {
		cards.SetBalance(cards.Balance() - amount)
	}
	return reject
}

// PlayRound resolves every game exactly once, settles the market trades
// against the drawn card sum, reconciles the per-game balance deltas into
// the player balance, and pushes the reconciled total back to every game
// for the next round.
func (t *Table) PlayRound() *RoundReport {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.phase = phaseResolving
	defer func() { t.phase = phaseOpen }()

	before := make(map[string]float64, len(t.games))
	for name, g := range t.games {
		before[name] = g.Balance()
	}

	coinRes := t.games[GameCoin].PlayRound()
	diceRes := t.games[GameDice].PlayRound()
	cardsRes := t.games[GameCards].PlayRound()

	// The drawn card sum is the market's settlement value: requote first,
	// then mark every open trade to it.
	settlement := float64(cardsRes.Draw.Total)
	bid, ask := t.market.SettleRound(settlement)
	credit, settledTrades := t.market.SettleTrades(settlement)
	if credit != 0 {
		cards := t.games[GameCards]
		cards.SetBalance(cards.Balance() + credit)
		cardsRes.Balance = cards.Balance()
	}

	pnl := make(map[string]float64, len(t.games))
	total := 0.0
	for name, g := range t.games {
		pnl[name] = g.Balance() - before[name]
		total += pnl[name]
	}

	t.balance += total
	for _, g := range t.games {
		g.SetBalance(t.balance)
	}
	t.round++

	RoundsTotal.Inc()
	RoundPnL.Observe(total)
	PlayerBalance.Set(t.balance)

	report := &RoundReport{
		ID:       uuid.New().String(),
		Round:    t.round,
		PlayedAt: time.Now(),
		Coin:     coinRes,
		Dice:     diceRes,
		Cards:    cardsRes,
		Trades:   settledTrades,
		Quote:    Quote{Bid: bid, Ask: ask, Position: t.market.Position()},
		PnL:      pnl,
		TotalPnL: total,
		Balance:  t.balance,
	}

	t.history = append(t.history, report)
	if len(t.history) > t.historyLimit {
		t.history = t.history[1:]
	}

	t.logger.Info("round-resolved",
		zap.Int("round", t.round),
		zap.Float64("total-pnl", total),
		zap.Float64("balance", t.balance),
		zap.Int("trades-settled", len(settledTrades)))

	return report
}

// History returns up to n most recent round reports, newest last.
func (t *Table) History(n int) []*RoundReport {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n <= 0 || n > len(t.history) {
		n = len(t.history)
	}
	out := make([]*RoundReport, n)
	copy(out, t.history[len(t.history)-n:])
	return out
}
