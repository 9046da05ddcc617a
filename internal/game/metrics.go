package game

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BetsTotal counts bet placements by game and acceptance result.
	BetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_bets_total",
			Help: "Total number of bet placements by game and result",
		},
		[]string{"game", "result"},
	)

	// RoundsTotal counts resolved rounds per game.
	RoundsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_game_rounds_total",
			Help: "Total number of resolved rounds per game",
		},
		[]string{"game"},
	)

	// PayoutAmount tracks winning-stake credits per game.
	PayoutAmount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "arcade_payout_amount",
			Help:    "Credits paid out on winning stakes",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1, 4, 16, ..., ~262k
		},
		[]string{"game"},
	)
)
