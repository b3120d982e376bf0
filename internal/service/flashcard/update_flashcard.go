package flashcard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

// Update rewrites a flashcard. A non-nil raw replaces the image: the new
// one is stored under a new ID and the old record is deleted in the same
// transaction. A nil raw keeps the current image. A nil categoryIDs keeps
// the current categories; an empty one clears them. UpdatedAt is always
// bumped.
func (s *Service) Update(ctx context.Context, id, name string, raw types.RawImage, categoryIDs []string) error {
	name, err := validateInput(name, raw, false)
	if err != nil {
		return err
	}

	var newImage *types.Image
	if raw != nil {
		dataURL, err := s.transform(raw)
		if err != nil {
			return err
		}
		newImage = &types.Image{ID: s.ids.NewID(), DataURL: dataURL}
	}
	if categoryIDs != nil {
		categoryIDs = types.NormalizeCategoryIDs(categoryIDs)
	}

	var oldImageRef string
	err = s.store.Transaction(ctx, writeScope, types.ReadWrite, func(tx types.Tx) error {
		card, err := tx.Flashcards().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if categoryIDs != nil {
			if err := verifyCategories(ctx, tx, categoryIDs); err != nil {
				return err
			}
			card.CategoryIDs = categoryIDs
		}

		if newImage != nil {
			oldImageRef = card.ImageRef
			if err := tx.Images().Put(ctx, newImage); err != nil {
				return fmt.Errorf("put image: %w", err)
			}
			if err := tx.Images().Delete(ctx, oldImageRef); err != nil {
				return fmt.Errorf("delete replaced image: %w", err)
			}
			card.ImageRef = newImage.ID
		}

		card.Name = name
		card.Touch(s.ids.Now())
		if err := tx.Flashcards().Put(ctx, card); err != nil {
			return fmt.Errorf("put flashcard: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.Normalize("update flashcard", err)
	}

	attrs := []any{slog.String("flashcard_id", id)}
	if newImage != nil {
		attrs = append(attrs,
			slog.String("image_id", newImage.ID),
			slog.String("replaced_image_id", oldImageRef),
		)
	}
	s.log.InfoContext(ctx, "flashcard updated", attrs...)
	return nil
}
