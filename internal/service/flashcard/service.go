// Package flashcard manages flashcards and the images they own.
package flashcard

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/mesh-intelligence/avioncards/internal/identity"
	"github.com/mesh-intelligence/avioncards/pkg/types"
)

type store interface {
	Transaction(ctx context.Context, scope []string, mode types.TxMode, fn func(tx types.Tx) error) error
}

type transformer interface {
	Transform(raw types.RawImage) (string, error)
}

// Random picks uniformly in [0, n). *rand.Rand from math/rand/v2 satisfies
// it.
type Random interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

var (
	flashcardScope = []string{types.FlashcardsCollection}
	imageScope     = []string{types.ImagesCollection}
	writeScope     = types.AllCollections
)

// Service provides flashcard operations. Image records are created and
// deleted only through it, together with the flashcard that owns them.
type Service struct {
	store       store
	transformer transformer
	ids         identity.Source
	rnd         Random
	log         *slog.Logger
}

// NewService creates a new flashcard service. A nil rnd uses the
// math/rand/v2 global source.
func NewService(log *slog.Logger, st store, tr transformer, ids identity.Source, rnd Random) *Service {
	if rnd == nil {
		rnd = globalRandom{}
	}
	return &Service{
		store:       st,
		transformer: tr,
		ids:         ids,
		rnd:         rnd,
		log:         log.With("service", "flashcard"),
	}
}

// List returns every flashcard ordered by creation time.
func (s *Service) List(ctx context.Context) ([]*types.Flashcard, error) {
	var cards []*types.Flashcard
	err := s.store.Transaction(ctx, flashcardScope, types.ReadOnly, func(tx types.Tx) error {
		var err error
		cards, err = tx.Flashcards().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, types.Normalize("list flashcards", err)
	}
	return cards, nil
}

// Get returns the flashcard with the given ID.
func (s *Service) Get(ctx context.Context, id string) (*types.Flashcard, error) {
	var card *types.Flashcard
	err := s.store.Transaction(ctx, flashcardScope, types.ReadOnly, func(tx types.Tx) error {
		var err error
		card, err = tx.Flashcards().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, types.Normalize("get flashcard", err)
	}
	return card, nil
}

// ListByCategory returns the flashcards filed under categoryID.
func (s *Service) ListByCategory(ctx context.Context, categoryID string) ([]*types.Flashcard, error) {
	var cards []*types.Flashcard
	err := s.store.Transaction(ctx, flashcardScope, types.ReadOnly, func(tx types.Tx) error {
		var err error
		cards, err = tx.Flashcards().GetByCategoryID(ctx, categoryID)
		return err
	})
	if err != nil {
		return nil, types.Normalize("list flashcards by category", err)
	}
	return cards, nil
}

// GetImageURL returns the data URL stored under imageRef. ok is false when
// no such image exists.
func (s *Service) GetImageURL(ctx context.Context, imageRef string) (url string, ok bool, err error) {
	err = s.store.Transaction(ctx, imageScope, types.ReadOnly, func(tx types.Tx) error {
		img, err := tx.Images().GetByID(ctx, imageRef)
		if err != nil {
			return err
		}
		url = img.DataURL
		return nil
	})
	if errors.Is(err, types.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, types.Normalize("get image", err)
	}
	return url, true, nil
}
