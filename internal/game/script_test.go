package game

import "github.com/mselser95/betting-arcade/internal/rng"

// scriptSource is a deterministic rng.Source for tests. Each draw kind is
// served from its own script; an exhausted script repeats its last value,
// and an empty one serves zero values.
type scriptSource struct {
	coins   []bool
	dice    []int
	ranges  []float64
	coinIdx int
	dieIdx  int
	rngIdx  int
}

var _ rng.Source = (*scriptSource)(nil)

func (s *scriptSource) Coin() bool {
	if len(s.coins) == 0 {
		return false
	}
	v := s.coins[min(s.coinIdx, len(s.coins)-1)]
	s.coinIdx++
	return v
}

func (s *scriptSource) Die() int {
	if len(s.dice) == 0 {
		return 1
	}
	v := s.dice[min(s.dieIdx, len(s.dice)-1)]
	s.dieIdx++
	return v
}

func (s *scriptSource) InRange(minVal, maxVal float64) float64 {
	if len(s.ranges) == 0 {
		return minVal
	}
	v := s.ranges[min(s.rngIdx, len(s.ranges)-1)]
	s.rngIdx++
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func (s *scriptSource) Shuffle(n int, swap func(i, j int)) {
	// Leave the deck in its built order so tests see a known hand.
}
