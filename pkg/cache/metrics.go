package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HitsTotal counts cache hits.
	HitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arcade_cache_hits_total",
		Help: "Total number of cache hits",
	})

	// MissesTotal counts cache misses.
	MissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arcade_cache_misses_total",
		Help: "Total number of cache misses",
	})
)
