// Package category manages flashcard categories.
package category

import (
	"context"
	"log/slog"
	"slices"

	"github.com/mesh-intelligence/avioncards/internal/identity"
	"github.com/mesh-intelligence/avioncards/pkg/types"
)

type store interface {
	Transaction(ctx context.Context, scope []string, mode types.TxMode, fn func(tx types.Tx) error) error
}

var categoryScope = []string{types.CategoriesCollection}

// Service provides category operations.
type Service struct {
	store store
	ids   identity.Source
	log   *slog.Logger
}

// NewService creates a new category service.
func NewService(log *slog.Logger, st store, ids identity.Source) *Service {
	return &Service{
		store: st,
		ids:   ids,
		log:   log.With("service", "category"),
	}
}

// List returns every category ordered by name.
func (s *Service) List(ctx context.Context) ([]*types.Category, error) {
	var cats []*types.Category
	err := s.store.Transaction(ctx, categoryScope, types.ReadOnly, func(tx types.Tx) error {
		var err error
		cats, err = tx.Categories().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, types.Normalize("list categories", err)
	}
	return cats, nil
}

// Get returns the category with the given ID.
func (s *Service) Get(ctx context.Context, id string) (*types.Category, error) {
	var cat *types.Category
	err := s.store.Transaction(ctx, categoryScope, types.ReadOnly, func(tx types.Tx) error {
		var err error
		cat, err = tx.Categories().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, types.Normalize("get category", err)
	}
	return cat, nil
}

// Palette returns the colors offered for new categories.
func (s *Service) Palette() []string {
	return slices.Clone(types.DefaultPalette)
}
