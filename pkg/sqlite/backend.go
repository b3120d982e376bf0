// Package sqlite provides the public API for the SQLite avioncards store.
// It exposes the factory for creating backends while keeping the
// implementation internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/avioncards/internal/sqlite"
	"github.com/mesh-intelligence/avioncards/pkg/types"
)

// NewBackend creates a new SQLite store. The store is not attached; call
// Attach with a Config to open it. A nil log uses slog.Default.
//
// Example:
//
//	store := sqlite.NewBackend(nil)
//	cfg := types.DefaultConfig()
//	cfg.DataDir = "/var/lib/avioncards"
//	if err := store.Attach(cfg); err != nil {
//	    return err
//	}
//	defer store.Detach()
func NewBackend(log *slog.Logger) types.Store {
	return sqlite.NewBackend(sqlite.WithLogger(log))
}
