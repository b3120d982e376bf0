package category

import (
	"context"
	"log/slog"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

// Update renames and recolors an existing category. An empty color takes
// the first palette color.
func (s *Service) Update(ctx context.Context, id, name, color string) error {
	name, err := validateName(name)
	if err != nil {
		return err
	}

	err = s.store.Transaction(ctx, categoryScope, types.ReadWrite, func(tx types.Tx) error {
		cat, err := tx.Categories().GetByID(ctx, id)
		if err != nil {
			return err
		}
		cat.Name = name
		cat.Color = colorOrDefault(color)
		return tx.Categories().Put(ctx, cat)
	})
	if err != nil {
		return types.Normalize("update category", err)
	}

	s.log.InfoContext(ctx, "category updated",
		slog.String("category_id", id),
		slog.String("name", name),
	)
	return nil
}
