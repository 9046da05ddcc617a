package game

import (
	"math"
	"testing"

	"github.com/mselser95/betting-arcade/internal/rng"
	"go.uber.org/zap"
)

// fakeVariant always wins its single outcome. Used to drive the
// place-settle-clear cycle deterministically.
type fakeVariant struct{}

func (v *fakeVariant) Name() string           { return "fake" }
func (v *fakeVariant) Settlement() Settlement { return SettleTotalReturn }

func (v *fakeVariant) Profiles() []OutcomeProfile {
	return []OutcomeProfile{
		{
			Outcome:     Outcome{ID: "win", Label: "Always wins"},
			Probability: 0.5,
			EdgeMin:     0, EdgeMax: 0,
		},
	}
}

func (v *fakeVariant) Play(src rng.Source) *Draw {
	return &Draw{Outcomes: map[string]bool{"win": true}}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	variant := NewCoinVariant()
	src := rng.NewSeeded(1)
	logger := zap.NewNop()

	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "nil-config", cfg: nil},
		{name: "nil-variant", cfg: &Config{Source: src, Logger: logger}},
		{name: "nil-source", cfg: &Config{Variant: variant, Logger: logger}},
		{name: "nil-logger", cfg: &Config{Variant: variant, Source: src}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}

	g, err := New(&Config{Variant: variant, Source: src, Logger: logger})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if g.Name() != "coin" {
		t.Errorf("Expected name coin, got %s", g.Name())
	}
	if len(g.CurrentOdds()) != 5 {
		t.Errorf("Expected initial odds for 5 outcomes, got %d", len(g.CurrentOdds()))
	}
}

func TestPlaceBetDebitsBalance(t *testing.T) {
	t.Parallel()

	g, err := New(&Config{
		Variant: NewCoinVariant(),
		Source:  rng.NewSeeded(3),
		Logger:  zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	g.SetBalance(100.0)

	if ok := g.PlaceBet(OutcomeAllHeads, 25.0); !ok {
		t.Fatal("Expected bet acceptance")
	}
	if g.Balance() != 75.0 {
		t.Errorf("Expected balance 75.00, got %.2f", g.Balance())
	}

	// Rejections leave the balance untouched.
	if ok := g.PlaceBet("no_such_outcome", 25.0); ok {
		t.Fatal("Expected rejection for unknown outcome")
	}
	if ok := g.PlaceBet(OutcomeAllHeads, 0.5); ok {
		t.Fatal("Expected rejection below minimum bet")
	}
	if g.Balance() != 75.0 {
		t.Errorf("Expected balance 75.00 after rejections, got %.2f", g.Balance())
	}
}

func TestCheckBetDoesNotMutate(t *testing.T) {
	t.Parallel()

	g, err := New(&Config{
		Variant: NewDiceVariant(),
		Source:  rng.NewSeeded(5),
		Logger:  zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	g.SetBalance(50.0)

	if r := g.CheckBet(OutcomeSum3, 10.0); r != RejectNone {
		t.Errorf("Expected accepted, got %s", r)
	}
	if r := g.CheckBet(OutcomeSum3, 100.0); r != RejectInsufficientFunds {
		t.Errorf("Expected insufficient_funds, got %s", r)
	}
	if g.Balance() != 50.0 {
		t.Errorf("CheckBet mutated balance: %.2f", g.Balance())
	}
}

func TestCurrentOddsIsACopy(t *testing.T) {
	t.Parallel()

	g, err := New(&Config{
		Variant: NewCoinVariant(),
		Source:  rng.NewSeeded(9),
		Logger:  zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	odds := g.CurrentOdds()
	odds[OutcomeAllHeads] = 999.0

	if g.CurrentOdds()[OutcomeAllHeads] == 999.0 {
		t.Error("Mutating the returned odds map leaked into the game")
	}
}

func TestPlayRoundClearsStakesAndReplacesOdds(t *testing.T) {
	t.Parallel()

	g, err := New(&Config{
		Variant: NewCoinVariant(),
		Source:  rng.NewSeeded(21),
		Logger:  zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	g.SetBalance(100.0)
	g.PlaceBet(OutcomeAllHeads, 10.0)

	before := g.CurrentOdds()
	first := g.PlayRound()
	if len(first.Settled) != 1 {
		t.Fatalf("Expected 1 settled stake, got %d", len(first.Settled))
	}

	// Continuous draws make a repeated multiplier vanishingly unlikely;
	// every entry must have been replaced.
	after := g.CurrentOdds()
	for id, m := range before {
		if after[id] == m {
			t.Errorf("Outcome %s kept its multiplier %.6f across rounds", id, m)
		}
	}

	// Stakes were cleared; the next round settles nothing.
	second := g.PlayRound()
	if len(second.Settled) != 0 {
		t.Errorf("Expected no settled stakes, got %d", len(second.Settled))
	}
}

func TestPlayRoundSettlementFlow(t *testing.T) {
	t.Parallel()

	// Empty range script: edge draws its interval minimum (0) and the
	// fluctuation draws -0.10, so the multiplier is fixed at
	// (1/0.5) * 1.05 * 0.90 = 1.89.
	g, err := New(&Config{
		Variant: &fakeVariant{},
		Source:  &scriptSource{},
		Logger:  zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	g.SetBalance(100.0)

	if !g.PlaceBet("win", 10.0) {
		t.Fatal("Expected bet acceptance")
	}

	res := g.PlayRound()
	if res.Game != "fake" {
		t.Errorf("Expected game fake, got %s", res.Game)
	}
	if len(res.Settled) != 1 || !res.Settled[0].Won {
		t.Fatalf("Expected one winning settlement, got %+v", res.Settled)
	}

	// 100 - 10 + 10*1.89 under the total-return convention.
	want := 108.9
	if math.Abs(res.Balance-want) > 1e-9 {
		t.Errorf("Expected balance %.2f, got %.6f", want, res.Balance)
	}
}
