package game

// Settlement selects how a winning stake is credited back to the balance.
// The two conventions come from different game variants and are numerically
// different; they are preserved per game, never unified.
type Settlement int

const (
	// SettleTotalReturn credits stake * multiplier, treating the
	// multiplier as total return. Used by the coin game.
	SettleTotalReturn Settlement = iota

	// SettlePrincipalPlusNet credits stake + stake * (multiplier - 1),
	// return of principal plus net winnings. Used by the dice and card
	// games.
	SettlePrincipalPlusNet
)

// Ledger tracks one game's balance and active stakes. Funds are at risk
// the instant a bet is accepted: the balance is debited on placement and
// only credited back on a winning settlement. Every acceptance decision is
// evaluated in full before any mutation.
type Ledger struct {
	minBet     float64
	maxBet     float64
	balance    float64
	stakes     map[string]float64
	settlement Settlement
}

// SettledStake reports how a single active stake resolved.
type SettledStake struct {
	OutcomeID  string  `json:"outcome_id"`
	Stake      float64 `json:"stake"`
	Multiplier float64 `json:"multiplier"`
	Won        bool    `json:"won"`
	Credit     float64 `json:"credit"`
}

// newLedger creates a ledger with the standard bet bounds.
func newLedger(settlement Settlement) *Ledger {
	return &Ledger{
		minBet:     1.0,
		maxBet:     1000.0,
		stakes:     make(map[string]float64),
		settlement: settlement,
	}
}

// check validates a bet against the current odds table without mutating
// anything.
func (l *Ledger) check(odds map[string]float64, outcomeID string, amount float64) Reject {
	if amount < l.minBet || amount > l.maxBet {
		return RejectAmount
	}
	if amount > l.balance {
		return RejectInsufficientFunds
	}
	if _, ok := odds[outcomeID]; !ok {
		return RejectUnknownOutcome
	}
	return RejectNone
}

// placeBet debits the balance and records the stake. A second stake on the
// same outcome within a round overwrites the first; only one stake per
// outcome is retained.
func (l *Ledger) placeBet(odds map[string]float64, outcomeID string, amount float64) Reject {
	if r := l.check(odds, outcomeID, amount); !r.Accepted() {
		return r
	}
	l.balance -= amount
	l.stakes[outcomeID] = amount
	return RejectNone
}

// settle credits every winning stake per the ledger's convention and
// returns the per-stake report. Losing stakes produce no further debit:
// the money left the balance at placement. Stakes are not cleared here;
// the game clears them after the full round report is assembled.
func (l *Ledger) settle(won map[string]bool, odds map[string]float64) []SettledStake {
	if len(l.stakes) == 0 {
		return nil
	}

	settled := make([]SettledStake, 0, len(l.stakes))
	for outcomeID, stake := range l.stakes {
		s := SettledStake{
			OutcomeID:  outcomeID,
			Stake:      stake,
			Multiplier: odds[outcomeID],
			Won:        won[outcomeID],
		}
		if s.Won {
			switch l.settlement {
			case SettleTotalReturn:
				s.Credit = stake * s.Multiplier
			case SettlePrincipalPlusNet:
				s.Credit = stake + stake*(s.Multiplier-1)
			}
			l.balance += s.Credit
		}
		settled = append(settled, s)
	}
	return settled
}

// clear drops all active stakes.
func (l *Ledger) clear() {
	clear(l.stakes)
}
