package healthprobe

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
)

// Stats is a snapshot of table activity reported on the health endpoints.
type Stats struct {
	Session string  `json:"session"`
	Rounds  int     `json:"rounds"`
	Balance float64 `json:"balance"`
}

// StatsFunc supplies the current table stats. May be nil.
type StatsFunc func() Stats

// HealthChecker provides health and readiness checks for the HTTP shell.
type HealthChecker struct {
	startTime time.Time
	ready     atomic.Bool
	stats     StatsFunc
}

// New creates a new HealthChecker.
func New(stats StatsFunc) *HealthChecker {
	return &HealthChecker{
		startTime: time.Now(),
		stats:     stats,
	}
}

// SetReady marks the application as ready to serve traffic.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// Response is the health/readiness check payload.
type Response struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Message string `json:"message,omitempty"`
	Stats   *Stats `json:"stats,omitempty"`
}

// Health returns an HTTP handler for liveness checks.
// Always returns 200 OK if the application is running.
func (h *HealthChecker) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := Response{
			Status: "healthy",
			Uptime: time.Since(h.startTime).String(),
		}
		if h.stats != nil {
			s := h.stats()
			resp.Stats = &s
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// Ready returns an HTTP handler for readiness checks.
// Returns 200 OK if ready, 503 Service Unavailable if not.
func (h *HealthChecker) Ready() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.ready.Load() {
			resp := Response{
				Status:  "not_ready",
				Message: "application is starting",
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(resp)
			return
		}

		resp := Response{
			Status: "ready",
			Uptime: time.Since(h.startTime).String(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
