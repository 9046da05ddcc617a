package storage

import (
	"context"

	"github.com/mselser95/betting-arcade/internal/arcade"
)

// Storage is the interface for recording resolved rounds. The engine
// never reads rounds back; storage exists for reporting only.
type Storage interface {
	// StoreRound records a resolved round.
	StoreRound(ctx context.Context, report *arcade.RoundReport) error

	// Close closes the storage connection.
	Close() error
}
