package bankroll

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GuardEnabled indicates whether the guard allows new placements.
	GuardEnabled = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arcade_bankroll_guard_enabled",
		Help: "Whether the bankroll guard allows new placements (1=enabled, 0=halted)",
	})

	// GuardBalance tracks the last checked player balance.
	GuardBalance = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arcade_bankroll_guard_balance",
		Help: "Last checked player balance",
	})

	// GuardHaltThreshold tracks the current threshold for halting placements.
	GuardHaltThreshold = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arcade_bankroll_guard_halt_threshold",
		Help: "Current balance threshold for halting placements (dynamically calculated)",
	})

	// GuardResumeThreshold tracks the current threshold for resuming placements.
	GuardResumeThreshold = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arcade_bankroll_guard_resume_threshold",
		Help: "Current balance threshold for resuming placements (with hysteresis)",
	})

	// GuardAvgStakeSize tracks the rolling average stake size.
	GuardAvgStakeSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arcade_bankroll_guard_avg_stake_size",
		Help: "Rolling average stake size from recent placements (used for threshold calculation)",
	})

	// GuardStateChanges counts halt/resume transitions.
	GuardStateChanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arcade_bankroll_guard_state_changes_total",
		Help: "Total number of times the bankroll guard changed state (halted/resumed)",
	})
)
