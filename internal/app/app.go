// Package app wires the arcade components together and owns their
// lifecycle: table, storage, cache, websocket hub, bankroll guard and
// the HTTP server.
package app

import (
	"context"
	"sync"

	"github.com/mselser95/betting-arcade/internal/arcade"
	"github.com/mselser95/betting-arcade/internal/bankroll"
	"github.com/mselser95/betting-arcade/internal/storage"
	"github.com/mselser95/betting-arcade/pkg/cache"
	"github.com/mselser95/betting-arcade/pkg/config"
	"github.com/mselser95/betting-arcade/pkg/healthprobe"
	"github.com/mselser95/betting-arcade/pkg/httpserver"
	"github.com/mselser95/betting-arcade/pkg/ws"
	"go.uber.org/zap"
)

// App is the main application orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	table         *arcade.Table
	storage       storage.Storage
	roundCache    cache.Cache
	hub           *ws.Hub
	guard         *bankroll.Guard
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}
