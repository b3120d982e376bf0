// Package app wires the store and the services into one value owned by the
// process.
package app

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/avioncards/internal/identity"
	"github.com/mesh-intelligence/avioncards/internal/imaging"
	"github.com/mesh-intelligence/avioncards/internal/service/category"
	"github.com/mesh-intelligence/avioncards/internal/service/flashcard"
	"github.com/mesh-intelligence/avioncards/internal/sqlite"
	"github.com/mesh-intelligence/avioncards/internal/transfer"
	"github.com/mesh-intelligence/avioncards/pkg/types"
)

// App holds the attached store and the services built on it.
type App struct {
	Store      *sqlite.Backend
	Categories *category.Service
	Flashcards *flashcard.Service
	Transfer   *transfer.Service
	Log        *slog.Logger
}

// Open attaches a SQLite store for cfg and builds the services. The caller
// must Close the App.
func Open(cfg types.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	store := sqlite.NewBackend(sqlite.WithLogger(log))
	if err := store.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}

	ids := identity.NewSystem()
	return &App{
		Store:      store,
		Categories: category.NewService(log, store, ids),
		Flashcards: flashcard.NewService(log, store, imaging.NewTransformer(cfg.Image), ids, nil),
		Transfer:   transfer.NewService(log, store, ids),
		Log:        log,
	}, nil
}

// Close detaches the store.
func (a *App) Close() error {
	return a.Store.Detach()
}
