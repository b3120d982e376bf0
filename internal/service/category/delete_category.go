package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

var deleteScope = []string{types.FlashcardsCollection, types.CategoriesCollection}

// Delete removes a category and drops its ID from every flashcard filed
// under it, in one transaction. Deleting an absent category succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	var detached int
	err := s.store.Transaction(ctx, deleteScope, types.ReadWrite, func(tx types.Tx) error {
		if _, err := tx.Categories().GetByID(ctx, id); err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return nil
			}
			return err
		}

		cards, err := tx.Flashcards().GetByCategoryID(ctx, id)
		if err != nil {
			return fmt.Errorf("load flashcards of category: %w", err)
		}
		now := s.ids.Now()
		for _, card := range cards {
			if !card.RemoveCategory(id, now) {
				continue
			}
			if err := tx.Flashcards().Put(ctx, card); err != nil {
				return fmt.Errorf("detach flashcard %s: %w", card.ID, err)
			}
			detached++
		}

		return tx.Categories().Delete(ctx, id)
	})
	if err != nil {
		return types.Normalize("delete category", err)
	}

	s.log.InfoContext(ctx, "category deleted",
		slog.String("category_id", id),
		slog.Int("flashcards_detached", detached),
	)
	return nil
}
