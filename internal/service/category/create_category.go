package category

import (
	"context"
	"log/slog"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

// Create adds a category and returns its ID. An empty color takes the first
// palette color.
func (s *Service) Create(ctx context.Context, name, color string) (string, error) {
	name, err := validateName(name)
	if err != nil {
		return "", err
	}

	cat := &types.Category{
		ID:    s.ids.NewID(),
		Name:  name,
		Color: colorOrDefault(color),
	}
	err = s.store.Transaction(ctx, categoryScope, types.ReadWrite, func(tx types.Tx) error {
		return tx.Categories().Put(ctx, cat)
	})
	if err != nil {
		return "", types.Normalize("create category", err)
	}

	s.log.InfoContext(ctx, "category created",
		slog.String("category_id", cat.ID),
		slog.String("name", cat.Name),
	)
	return cat.ID, nil
}
