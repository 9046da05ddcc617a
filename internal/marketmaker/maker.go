// Package marketmaker maintains the continuous two-sided quote on the
// card game's sum and settles directional trades against each round's
// drawn value.
package marketmaker

import (
	"fmt"
	"math"

	"github.com/mselser95/betting-arcade/internal/rng"
	"go.uber.org/zap"
)

// Policy selects how the quote is re-based at round settlement. The two
// policies disagree on the base price, the direction of the inventory
// adjustment, and the position limit; they are alternative configurations
// chosen at construction, never merged.
type Policy int

const (
	// PolicyReferencePriced bases the quote on the round's drawn card
	// sum plus bounded uniform jitter. The inventory adjustment shifts
	// bid and ask in the same direction and the position is bounded.
	PolicyReferencePriced Policy = iota

	// PolicyFixedBase bases the quote on a constant 21 plus jitter
	// proportional to the volatility fraction of that constant, ignoring
	// the drawn value. The inventory adjustment widens the book (bid
	// down, ask up) and the position is unbounded.
	PolicyFixedBase
)

func (p Policy) String() string {
	switch p {
	case PolicyReferencePriced:
		return "reference_priced"
	case PolicyFixedBase:
		return "fixed_base"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a policy name as it appears in configuration.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "reference_priced":
		return PolicyReferencePriced, nil
	case "fixed_base":
		return PolicyFixedBase, nil
	default:
		return 0, fmt.Errorf("unknown market policy %q", s)
	}
}

// fixedBase is the quote anchor for PolicyFixedBase.
const fixedBase = 21.0

// minBid is the floor applied to the bid after every quote update.
const minBid = 0.1

// Reject identifies why a trade was refused.
type Reject int

const (
	// RejectNone means the trade was accepted.
	RejectNone Reject = iota

	// RejectAmount means the trade amount was not positive.
	RejectAmount

	// RejectInsufficientFunds means the amount exceeds the player
	// balance. Produced by the coordinator, which owns the balance; the
	// market maker itself only checks amount and position.
	RejectInsufficientFunds

	// RejectPositionLimit means the resulting position would exceed the
	// configured maximum magnitude.
	RejectPositionLimit

	// RejectRoundClosed means intake is closed because the round is
	// resolving. Produced by the coordinator; the maker itself has no
	// phase.
	RejectRoundClosed
)

// Accepted reports whether the trade went through.
func (r Reject) Accepted() bool { return r == RejectNone }

func (r Reject) String() string {
	switch r {
	case RejectNone:
		return "accepted"
	case RejectAmount:
		return "invalid_amount"
	case RejectInsufficientFunds:
		return "insufficient_funds"
	case RejectPositionLimit:
		return "position_limit"
	case RejectRoundClosed:
		return "round_closed"
	default:
		return "unknown"
	}
}

// Trade is a directional trade accepted during the current round. The
// reference price is the quote side the player crossed at acceptance
// time, before the trade's own price impact.
type Trade struct {
	Amount         float64 `json:"amount"`
	IsBuy          bool    `json:"is_buy"`
	ReferencePrice float64 `json:"reference_price"`
}

// SettledTrade reports how a single trade resolved against the round's
// settlement value.
type SettledTrade struct {
	Trade

	SettlementValue float64 `json:"settlement_value"`
	Profit          float64 `json:"profit"`
	Credit          float64 `json:"credit"`
}

// MarketMaker holds the two-sided quote and the signed position
// accumulated from accepted trades. All trades of a round are settled and
// cleared together at round end; nothing settles mid-round.
type MarketMaker struct {
	policy          Policy
	bid             float64
	ask             float64
	minSpread       float64
	volatility      float64
	position        float64
	maxPosition     float64 // 0 means unbounded
	inventoryImpact float64
	trades          []Trade
	src             rng.Source
	logger          *zap.Logger
}

// Config holds market maker construction parameters. Zero values for the
// numeric fields select the standard book: spread 1.0, volatility 0.2,
// inventory impact 0.1, and for the reference-priced policy a position
// limit of 100.
type Config struct {
	Policy          Policy
	MinSpread       float64
	Volatility      float64
	MaxPosition     float64
	InventoryImpact float64
	Source          rng.Source
	Logger          *zap.Logger
}

// New creates a market maker quoting bid 10.00 / ask 11.00.
func New(cfg *Config) (*MarketMaker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Source == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	m := &MarketMaker{
		policy:          cfg.Policy,
		bid:             10.0,
		ask:             11.0,
		minSpread:       cfg.MinSpread,
		volatility:      cfg.Volatility,
		maxPosition:     cfg.MaxPosition,
		inventoryImpact: cfg.InventoryImpact,
		src:             cfg.Source,
		logger:          cfg.Logger.With(zap.String("policy", cfg.Policy.String())),
	}
	if m.minSpread == 0 {
		m.minSpread = 1.0
	}
	if m.volatility == 0 {
		m.volatility = 0.2
	}
	if m.inventoryImpact == 0 {
		m.inventoryImpact = 0.1
	}
	if m.maxPosition == 0 && cfg.Policy == PolicyReferencePriced {
		m.maxPosition = 100.0
	}

	m.logger.Info("market-maker-initialized",
		zap.Float64("min-spread", m.minSpread),
		zap.Float64("max-position", m.maxPosition))

	return m, nil
}

// Quote returns the current bid and ask. Pure read.
func (m *MarketMaker) Quote() (bid, ask float64) {
	return m.bid, m.ask
}

// Position returns the signed net position.
func (m *MarketMaker) Position() float64 { return m.position }

// CheckTrade validates a trade without placing it.
func (m *MarketMaker) CheckTrade(amount float64, isBuy bool) Reject {
	if amount <= 0 {
		return RejectAmount
	}
	delta := amount
	if !isBuy {
		delta = -amount
	}
	if m.maxPosition > 0 && math.Abs(m.position+delta) > m.maxPosition {
		return RejectPositionLimit
	}
	return RejectNone
}

// PlaceTrade accepts a directional trade for the current round. The
// player's reference price is the crossed quote side before the trade's
// price impact: the ask for a buy, the bid for a sell. Each accepted unit
// moves both quotes by 1% in the trade's direction; the book is
// re-centered on its mid if the impact would violate the minimum spread.
func (m *MarketMaker) PlaceTrade(amount float64, isBuy bool) Reject {
	reject := m.CheckTrade(amount, isBuy)
	TradesTotal.WithLabelValues(m.policy.String(), reject.String()).Inc()
	if !reject.Accepted() {
		m.logger.Debug("trade-rejected",
			zap.Float64("amount", amount),
			zap.Bool("is-buy", isBuy),
			zap.String("reason", reject.String()))
		return reject
	}

	reference := m.ask
	if !isBuy {
		reference = m.bid
	}

	if isBuy {
		m.position += amount
	} else {
		m.position -= amount
	}

	impact := amount * 0.01
	if isBuy {
		m.bid += impact
		m.ask += impact
	} else {
		m.bid -= impact
		m.ask -= impact
	}
	if m.ask-m.bid < m.minSpread {
		mid := (m.bid + m.ask) / 2
		m.bid = mid - m.minSpread/2
		m.ask = mid + m.minSpread/2
	}

	m.trades = append(m.trades, Trade{
		Amount:         amount,
		IsBuy:          isBuy,
		ReferencePrice: reference,
	})

	PositionGauge.WithLabelValues(m.policy.String()).Set(m.position)
	m.observeQuote()

	m.logger.Debug("trade-placed",
		zap.Float64("amount", amount),
		zap.Bool("is-buy", isBuy),
		zap.Float64("reference-price", reference),
		zap.Float64("position", m.position))

	return RejectNone
}

// OpenTrades returns a copy of the trades accepted so far this round.
func (m *MarketMaker) OpenTrades() []Trade {
	trades := make([]Trade, len(m.trades))
	copy(trades, m.trades)
	return trades
}

// SettleRound recomputes the quote from the round's reference value per
// the configured policy, then re-enforces the book invariants: bid is
// floored at 0.1 and ask at bid plus the minimum spread.
func (m *MarketMaker) SettleRound(referenceValue float64) (bid, ask float64) {
	inventory := m.position * m.inventoryImpact

	switch m.policy {
	case PolicyFixedBase:
		base := fixedBase + m.src.InRange(-m.volatility*fixedBase, m.volatility*fixedBase)
		m.bid = base - m.minSpread/2 - inventory
		m.ask = base + m.minSpread/2 + inventory
	default:
		base := referenceValue + m.src.InRange(-m.volatility, m.volatility)
		m.bid = base - m.minSpread/2 - inventory
		m.ask = base + m.minSpread/2 - inventory
	}

	m.bid = math.Max(minBid, m.bid)
	m.ask = math.Max(m.bid+m.minSpread, m.ask)

	m.observeQuote()

	m.logger.Debug("quote-updated",
		zap.Float64("reference", referenceValue),
		zap.Float64("bid", m.bid),
		zap.Float64("ask", m.ask),
		zap.Float64("position", m.position))

	return m.bid, m.ask
}

// SettleTrades marks every open trade to the round's settlement value and
// clears them. For a buy, profit = amount * (settlement - reference); for
// a sell the sign flips. Each trade's credit is its amount plus profit;
// the total credit is what the game returns to the player balance.
func (m *MarketMaker) SettleTrades(settlementValue float64) (total float64, settled []SettledTrade) {
	if len(m.trades) == 0 {
		return 0, nil
	}

	settled = make([]SettledTrade, 0, len(m.trades))
	for _, t := range m.trades {
		profit := t.Amount * (settlementValue - t.ReferencePrice)
		if !t.IsBuy {
			profit = t.Amount * (t.ReferencePrice - settlementValue)
		}
		credit := t.Amount + profit
		total += credit

		TradePnL.WithLabelValues(m.policy.String()).Observe(profit)

		settled = append(settled, SettledTrade{
			Trade:           t,
			SettlementValue: settlementValue,
			Profit:          profit,
			Credit:          credit,
		})
	}
	m.trades = m.trades[:0]

	m.logger.Debug("trades-settled",
		zap.Int("trade-count", len(settled)),
		zap.Float64("settlement-value", settlementValue),
		zap.Float64("total-credit", total))

	return total, settled
}

func (m *MarketMaker) observeQuote() {
	QuoteBid.WithLabelValues(m.policy.String()).Set(m.bid)
	QuoteAsk.WithLabelValues(m.policy.String()).Set(m.ask)
}
