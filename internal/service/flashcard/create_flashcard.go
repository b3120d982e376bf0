package flashcard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

// Create stores a new flashcard with its transformed image and returns the
// flashcard ID. The image and the flashcard are written in one transaction.
func (s *Service) Create(ctx context.Context, name string, raw types.RawImage, categoryIDs []string) (string, error) {
	name, err := validateInput(name, raw, true)
	if err != nil {
		return "", err
	}
	dataURL, err := s.transform(raw)
	if err != nil {
		return "", err
	}

	categoryIDs = types.NormalizeCategoryIDs(categoryIDs)
	now := s.ids.Now()
	img := &types.Image{ID: s.ids.NewID(), DataURL: dataURL}
	card := &types.Flashcard{
		ID:          s.ids.NewID(),
		Name:        name,
		ImageRef:    img.ID,
		CategoryIDs: categoryIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.store.Transaction(ctx, writeScope, types.ReadWrite, func(tx types.Tx) error {
		if err := verifyCategories(ctx, tx, categoryIDs); err != nil {
			return err
		}
		if err := tx.Images().Put(ctx, img); err != nil {
			return fmt.Errorf("put image: %w", err)
		}
		if err := tx.Flashcards().Put(ctx, card); err != nil {
			return fmt.Errorf("put flashcard: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", types.Normalize("create flashcard", err)
	}

	s.log.InfoContext(ctx, "flashcard created",
		slog.String("flashcard_id", card.ID),
		slog.String("image_id", img.ID),
		slog.Int("categories", len(categoryIDs)),
	)
	return card.ID, nil
}
