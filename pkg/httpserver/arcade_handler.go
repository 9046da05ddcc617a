package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/mselser95/betting-arcade/internal/arcade"
	"github.com/mselser95/betting-arcade/internal/bankroll"
	"github.com/mselser95/betting-arcade/internal/storage"
	"github.com/mselser95/betting-arcade/pkg/cache"
	"github.com/mselser95/betting-arcade/pkg/ws"
	"go.uber.org/zap"
)

// recentRoundsTTL bounds how stale the cached history response may be.
// The cache is dropped eagerly whenever a round resolves.
const recentRoundsTTL = 30 * time.Second

const recentRoundsKey = "rounds:recent"

// ArcadeHandler handles HTTP requests against the arcade table.
type ArcadeHandler struct {
	table   *arcade.Table
	storage storage.Storage
	hub     *ws.Hub
	cache   cache.Cache
	guard   *bankroll.Guard
	logger  *zap.Logger
}

// ArcadeHandlerConfig holds handler dependencies. Storage, Hub, Cache
// and Guard are optional.
type ArcadeHandlerConfig struct {
	Table   *arcade.Table
	Storage storage.Storage
	Hub     *ws.Hub
	Cache   cache.Cache
	Guard   *bankroll.Guard
	Logger  *zap.Logger
}

// NewArcadeHandler creates a new arcade handler.
func NewArcadeHandler(cfg *ArcadeHandlerConfig) *ArcadeHandler {
	return &ArcadeHandler{
		table:   cfg.Table,
		storage: cfg.Storage,
		hub:     cfg.Hub,
		cache:   cfg.Cache,
		guard:   cfg.Guard,
		logger:  cfg.Logger,
	}
}

// PlaceBetRequest is the body for POST /api/bets.
type PlaceBetRequest struct {
	Game    string  `json:"game"`
	Outcome string  `json:"outcome"`
	Amount  float64 `json:"amount"`
}

// PlaceTradeRequest is the body for POST /api/trades.
type PlaceTradeRequest struct {
	Amount float64 `json:"amount"`
	Side   string  `json:"side"` // "buy" or "sell"
}

// PlacementResponse reports an accept/reject decision.
type PlacementResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

// BalanceResponse is the body for GET /api/balance.
type BalanceResponse struct {
	Session string  `json:"session"`
	Round   int     `json:"round"`
	Balance float64 `json:"balance"`
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleGames handles GET /api/games.
func (h *ArcadeHandler) HandleGames(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.table.Games())
}

// HandleOdds handles GET /api/games/{game}/odds.
func (h *ArcadeHandler) HandleOdds(w http.ResponseWriter, r *http.Request) {
	gameName := chi.URLParam(r, "game")

	odds, err := h.table.Odds(gameName)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, odds)
}

// HandleQuote handles GET /api/market/quote.
func (h *ArcadeHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.table.MarketQuote())
}

// HandleBalance handles GET /api/balance.
func (h *ArcadeHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, BalanceResponse{
		Session: h.table.Session(),
		Round:   h.table.Round(),
		Balance: h.table.Balance(),
	})
}

// HandlePlaceBet handles POST /api/bets. Rejections come back as 422
// with the reason; they are never retried server-side.
func (h *ArcadeHandler) HandlePlaceBet(w http.ResponseWriter, r *http.Request) {
	var req PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if h.guard != nil && !h.guard.IsEnabled() {
		h.writeJSON(w, http.StatusUnprocessableEntity, PlacementResponse{
			Accepted: false,
			Reason:   "bankroll_halted",
		})
		return
	}

	reject, err := h.table.PlaceBet(req.Game, req.Outcome, req.Amount)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusNotFound)
		return
	}

	if !reject.Accepted() {
		h.writeJSON(w, http.StatusUnprocessableEntity, PlacementResponse{
			Accepted: false,
			Reason:   reject.String(),
		})
		return
	}

	if h.guard != nil {
		h.guard.RecordStake(req.Amount)
	}
	h.writeJSON(w, http.StatusOK, PlacementResponse{Accepted: true})
}

// HandlePlaceTrade handles POST /api/trades.
func (h *ArcadeHandler) HandlePlaceTrade(w http.ResponseWriter, r *http.Request) {
	var req PlaceTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Side != "buy" && req.Side != "sell" {
		h.writeError(w, "side must be 'buy' or 'sell'", http.StatusBadRequest)
		return
	}

	if h.guard != nil && !h.guard.IsEnabled() {
		h.writeJSON(w, http.StatusUnprocessableEntity, PlacementResponse{
			Accepted: false,
			Reason:   "bankroll_halted",
		})
		return
	}

	reject := h.table.PlaceTrade(req.Amount, req.Side == "buy")
	if !reject.Accepted() {
		h.writeJSON(w, http.StatusUnprocessableEntity, PlacementResponse{
			Accepted: false,
			Reason:   reject.String(),
		})
		return
	}

	if h.guard != nil {
		h.guard.RecordStake(req.Amount)
	}
	h.writeJSON(w, http.StatusOK, PlacementResponse{Accepted: true})
}

// HandlePlayRound handles POST /api/rounds: resolves one round, records
// it, broadcasts it to WebSocket clients and returns the report.
func (h *ArcadeHandler) HandlePlayRound(w http.ResponseWriter, r *http.Request) {
	report := h.table.PlayRound()

	if h.storage != nil {
		if err := h.storage.StoreRound(r.Context(), report); err != nil {
			// Storage is reporting-only; the round already resolved.
			h.logger.Error("store-round-failed",
				zap.String("round-id", report.ID),
				zap.Error(err))
		}
	}
	if h.hub != nil {
		h.hub.Broadcast(report)
	}
	if h.cache != nil {
		h.cache.Delete(recentRoundsKey)
	}

	h.writeJSON(w, http.StatusOK, report)
}

// HandleRecentRounds handles GET /api/rounds/recent?limit=n.
func (h *ArcadeHandler) HandleRecentRounds(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			h.writeError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	// Only the unbounded query is cached; limited queries are cheap.
	if limit == 0 && h.cache != nil {
		if v, ok := h.cache.Get(recentRoundsKey); ok {
			if rounds, ok := v.([]*arcade.RoundReport); ok {
				h.writeJSON(w, http.StatusOK, rounds)
				return
			}
		}
	}

	rounds := h.table.History(limit)
	if limit == 0 && h.cache != nil {
		h.cache.Set(recentRoundsKey, rounds, recentRoundsTTL)
	}
	h.writeJSON(w, http.StatusOK, rounds)
}

// HandleGuardStatus handles GET /api/guard.
func (h *ArcadeHandler) HandleGuardStatus(w http.ResponseWriter, r *http.Request) {
	if h.guard == nil {
		h.writeError(w, "bankroll guard is not configured", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, h.guard.GetStatus())
}

func (h *ArcadeHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode-response-failed", zap.Error(err))
	}
}

func (h *ArcadeHandler) writeError(w http.ResponseWriter, msg string, status int) {
	h.writeJSON(w, status, ErrorResponse{Error: msg})
}
