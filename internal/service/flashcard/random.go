package flashcard

import (
	"context"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

// GetRandom returns a uniformly chosen flashcard. ok is false when there
// are none.
func (s *Service) GetRandom(ctx context.Context) (card *types.Flashcard, ok bool, err error) {
	err = s.store.Transaction(ctx, flashcardScope, types.ReadOnly, func(tx types.Tx) error {
		n, err := tx.Flashcards().Count(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		card, err = tx.Flashcards().GetByOffset(ctx, s.rnd.IntN(n))
		return err
	})
	if err != nil {
		return nil, false, types.Normalize("get random flashcard", err)
	}
	return card, card != nil, nil
}

// Deck returns the flashcards of categoryID, or every flashcard when
// categoryID is empty, in shuffled order.
func (s *Service) Deck(ctx context.Context, categoryID string) ([]*types.Flashcard, error) {
	var (
		cards []*types.Flashcard
		err   error
	)
	if categoryID == "" {
		cards, err = s.List(ctx)
	} else {
		cards, err = s.ListByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, err
	}

	// Fisher-Yates.
	for i := len(cards) - 1; i > 0; i-- {
		j := s.rnd.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return cards, nil
}
