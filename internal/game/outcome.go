package game

// Outcome is a named result a player can stake on.
type Outcome struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// OutcomeProfile couples an outcome with the fixed data the odds engine
// needs: its true win probability and the interval the per-round house
// edge offset is drawn from. Profiles are defined at variant construction
// and never change.
type OutcomeProfile struct {
	Outcome

	// Probability is the true win probability from the combinatorics of
	// the underlying draw. It is fixed data, never recomputed.
	Probability float64

	// EdgeMin and EdgeMax bound the random offset added to the base house
	// edge each round. The intervals are deliberately asymmetric and vary
	// per outcome.
	EdgeMin float64
	EdgeMax float64
}

// Reject identifies why a bet or trade was refused. Mutating operations
// report rejections as values rather than errors; the engine never aborts.
type Reject int

const (
	// RejectNone means the operation was accepted.
	RejectNone Reject = iota

	// RejectAmount means the amount was non-positive or outside the
	// configured bet-size bounds.
	RejectAmount

	// RejectInsufficientFunds means the amount exceeds the current balance.
	RejectInsufficientFunds

	// RejectUnknownOutcome means the outcome id is not in the current
	// odds table.
	RejectUnknownOutcome

	// RejectRoundClosed means intake is closed because the round is
	// resolving.
	RejectRoundClosed
)

// Accepted reports whether the operation went through.
func (r Reject) Accepted() bool { return r == RejectNone }

func (r Reject) String() string {
	switch r {
	case RejectNone:
		return "accepted"
	case RejectAmount:
		return "invalid_amount"
	case RejectInsufficientFunds:
		return "insufficient_funds"
	case RejectUnknownOutcome:
		return "unknown_outcome"
	case RejectRoundClosed:
		return "round_closed"
	default:
		return "unknown"
	}
}
