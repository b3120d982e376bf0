// Package transfer exports, imports and clears the whole catalog.
package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

type store interface {
	Transaction(ctx context.Context, scope []string, mode types.TxMode, fn func(tx types.Tx) error) error
	ClearAll(ctx context.Context, scope []string) error
}

type clock interface {
	Now() time.Time
}

// Service moves whole snapshots in and out of the store.
type Service struct {
	store store
	clock clock
	log   *slog.Logger
}

// NewService creates a new transfer service.
func NewService(log *slog.Logger, st store, clk clock) *Service {
	return &Service{
		store: st,
		clock: clk,
		log:   log.With("service", "transfer"),
	}
}

// ExportAll reads all three collections in one read-only transaction.
func (s *Service) ExportAll(ctx context.Context) (*types.Snapshot, error) {
	snap := &types.Snapshot{}
	err := s.store.Transaction(ctx, types.AllCollections, types.ReadOnly, func(tx types.Tx) error {
		var err error
		if snap.Flashcards, err = tx.Flashcards().GetAll(ctx); err != nil {
			return err
		}
		if snap.Categories, err = tx.Categories().GetAll(ctx); err != nil {
			return err
		}
		if snap.Images, err = tx.Images().GetAll(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, types.Normalize("export", err)
	}
	snap.ExportDate = s.clock.Now()

	s.log.InfoContext(ctx, "catalog exported",
		slog.Int("flashcards", len(snap.Flashcards)),
		slog.Int("categories", len(snap.Categories)),
		slog.Int("images", len(snap.Images)),
	)
	return snap, nil
}

// ImportAll replaces the whole store with snap in one transaction. Records
// are written verbatim, IDs and timestamps included. Images are optional.
func (s *Service) ImportAll(ctx context.Context, snap *types.Snapshot) error {
	if err := validateSnapshot(snap); err != nil {
		return err
	}

	err := s.store.Transaction(ctx, types.AllCollections, types.ReadWrite, func(tx types.Tx) error {
		if err := tx.Flashcards().Clear(ctx); err != nil {
			return err
		}
		if err := tx.Categories().Clear(ctx); err != nil {
			return err
		}
		if err := tx.Images().Clear(ctx); err != nil {
			return err
		}

		for _, c := range snap.Categories {
			if err := tx.Categories().Put(ctx, c); err != nil {
				return fmt.Errorf("import category %s: %w", c.ID, err)
			}
		}
		for _, img := range snap.Images {
			if err := tx.Images().Put(ctx, img); err != nil {
				return fmt.Errorf("import image %s: %w", img.ID, err)
			}
		}
		for _, f := range snap.Flashcards {
			if err := tx.Flashcards().Put(ctx, f); err != nil {
				return fmt.Errorf("import flashcard %s: %w", f.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return types.Normalize("import", err)
	}

	s.log.InfoContext(ctx, "catalog imported",
		slog.Int("flashcards", len(snap.Flashcards)),
		slog.Int("categories", len(snap.Categories)),
		slog.Int("images", len(snap.Images)),
	)
	return nil
}

// ClearAll empties all three collections atomically.
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.store.ClearAll(ctx, types.AllCollections); err != nil {
		return types.Normalize("clear", err)
	}
	s.log.InfoContext(ctx, "catalog cleared")
	return nil
}

// validateSnapshot checks the shape of an import. It does not check that
// category references resolve.
func validateSnapshot(snap *types.Snapshot) error {
	if snap == nil {
		return types.NewValidationError("snapshot", "required")
	}

	var errs []types.FieldError
	if snap.Flashcards == nil {
		errs = append(errs, types.FieldError{Field: "flashcards", Message: "required"})
	}
	if snap.Categories == nil {
		errs = append(errs, types.FieldError{Field: "categories", Message: "required"})
	}
	for i, f := range snap.Flashcards {
		if f == nil || f.ID == "" {
			errs = append(errs, types.FieldError{Field: fmt.Sprintf("flashcards[%d].id", i), Message: "required"})
		}
	}
	for i, c := range snap.Categories {
		if c == nil || c.ID == "" {
			errs = append(errs, types.FieldError{Field: fmt.Sprintf("categories[%d].id", i), Message: "required"})
		}
	}
	for i, img := range snap.Images {
		if img == nil || img.ID == "" {
			errs = append(errs, types.FieldError{Field: fmt.Sprintf("images[%d].id", i), Message: "required"})
		}
	}

	if len(errs) > 0 {
		return &types.ValidationError{Errors: errs}
	}
	return nil
}
