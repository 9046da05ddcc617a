package arcade

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RoundsTotal counts resolved table rounds.
	RoundsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arcade_rounds_total",
		Help: "Total number of resolved table rounds",
	})

	// RoundPnL tracks the player's per-round profit and loss across all
	// games.
	RoundPnL = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arcade_round_pnl",
		Help:    "Player profit and loss per round across all games",
		Buckets: []float64{-1000, -500, -100, -50, -10, 0, 10, 50, 100, 500, 1000, 5000},
	})

	// PlayerBalance tracks the reconciled player balance.
	PlayerBalance = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arcade_player_balance",
		Help: "Reconciled player balance after the last round",
	})
)
