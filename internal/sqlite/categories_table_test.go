package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

func TestCategoriesTableCRUD(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "put then get",
			check: func(t *testing.T, b *Backend) {
				ctx := context.Background()
				require.NoError(t, b.Categories().Put(ctx, &types.Category{ID: "c1", Name: "Jets", Color: "#1A73E8"}))

				got, err := b.Categories().GetByID(ctx, "c1")
				require.NoError(t, err)
				assert.Equal(t, &types.Category{ID: "c1", Name: "Jets", Color: "#1A73E8"}, got)
			},
		},
		{
			name: "put overwrites",
			check: func(t *testing.T, b *Backend) {
				ctx := context.Background()
				require.NoError(t, b.Categories().Put(ctx, &types.Category{ID: "c1", Name: "Jets", Color: "#1A73E8"}))
				require.NoError(t, b.Categories().Put(ctx, &types.Category{ID: "c1", Name: "Fighters", Color: "#F44336"}))

				got, err := b.Categories().GetByID(ctx, "c1")
				require.NoError(t, err)
				assert.Equal(t, "Fighters", got.Name)
				assert.Equal(t, "#F44336", got.Color)
			},
		},
		{
			name: "get all orders by name",
			check: func(t *testing.T, b *Backend) {
				ctx := context.Background()
				require.NoError(t, b.Categories().Put(ctx, &types.Category{ID: "1", Name: "Props"}))
				require.NoError(t, b.Categories().Put(ctx, &types.Category{ID: "2", Name: "Helicopters"}))
				require.NoError(t, b.Categories().Put(ctx, &types.Category{ID: "3", Name: "Jets"}))

				cats, err := b.Categories().GetAll(ctx)
				require.NoError(t, err)
				require.Len(t, cats, 3)
				assert.Equal(t, "Helicopters", cats[0].Name)
				assert.Equal(t, "Jets", cats[1].Name)
				assert.Equal(t, "Props", cats[2].Name)
			},
		},
		{
			name: "get absent id returns NotFoundError",
			check: func(t *testing.T, b *Backend) {
				_, err := b.Categories().GetByID(context.Background(), "nope")
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
		{
			name: "delete absent id succeeds",
			check: func(t *testing.T, b *Backend) {
				assert.NoError(t, b.Categories().Delete(context.Background(), "nope"))
			},
		},
		{
			name: "clear",
			check: func(t *testing.T, b *Backend) {
				ctx := context.Background()
				require.NoError(t, b.Categories().Put(ctx, &types.Category{ID: "c1", Name: "Jets"}))
				require.NoError(t, b.Categories().Clear(ctx))
				cats, err := b.Categories().GetAll(ctx)
				require.NoError(t, err)
				assert.Empty(t, cats)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			tt.check(t, b)
		})
	}
}
