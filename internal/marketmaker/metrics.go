package marketmaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TradesTotal counts trade placements by policy and acceptance result.
	TradesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_market_trades_total",
			Help: "Total number of market trades by policy and result",
		},
		[]string{"policy", "result"},
	)

	// PositionGauge tracks the signed net position.
	PositionGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "arcade_market_position",
			Help: "Signed net position accumulated from accepted trades",
		},
		[]string{"policy"},
	)

	// QuoteBid tracks the current bid.
	QuoteBid = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "arcade_market_bid",
			Help: "Current bid quote",
		},
		[]string{"policy"},
	)

	// QuoteAsk tracks the current ask.
	QuoteAsk = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "arcade_market_ask",
			Help: "Current ask quote",
		},
		[]string{"policy"},
	)

	// TradePnL tracks realized per-trade profit and loss.
	TradePnL = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "arcade_market_trade_pnl",
			Help:    "Realized profit and loss per settled trade",
			Buckets: []float64{-500, -100, -50, -10, -1, 0, 1, 10, 50, 100, 500},
		},
		[]string{"policy"},
	)
)
