package flashcard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

// Delete removes a flashcard and its image in one transaction. Deleting an
// absent flashcard succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	var found bool
	err := s.store.Transaction(ctx, writeScope, types.ReadWrite, func(tx types.Tx) error {
		card, err := tx.Flashcards().GetByID(ctx, id)
		if errors.Is(err, types.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		if err := tx.Images().Delete(ctx, card.ImageRef); err != nil {
			return fmt.Errorf("delete image: %w", err)
		}
		if err := tx.Flashcards().Delete(ctx, id); err != nil {
			return fmt.Errorf("delete flashcard: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.Normalize("delete flashcard", err)
	}

	if found {
		s.log.InfoContext(ctx, "flashcard deleted", slog.String("flashcard_id", id))
	}
	return nil
}
