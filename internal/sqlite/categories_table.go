package sqlite

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

var _ types.CategoryCollection = (*categoriesTable)(nil)

var categoryColumns = []string{"category_id", "name", "color"}

type categoriesTable struct {
	exec executor
}

// GetAll returns every category ordered by name, then ID.
func (ct *categoriesTable) GetAll(ctx context.Context) ([]*types.Category, error) {
	query, args, err := builder.Select(categoryColumns...).
		From("categories").
		OrderBy("name", "category_id").
		ToSql()
	if err != nil {
		return nil, types.NewStorageError("build categories query", err)
	}

	cats := []*types.Category{}
	err = ct.exec.run(ctx, types.CategoriesCollection, types.ReadOnly, func(q queryer) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return types.NewStorageError("list categories", err)
		}
		defer rows.Close()

		for rows.Next() {
			c, err := hydrateCategory(rows)
			if err != nil {
				return types.NewStorageError("list categories", err)
			}
			cats = append(cats, c)
		}
		return types.NewStorageError("list categories", rows.Err())
	})
	if err != nil {
		return nil, err
	}
	return cats, nil
}

// GetByID retrieves a category by ID.
func (ct *categoriesTable) GetByID(ctx context.Context, id string) (*types.Category, error) {
	query, args, err := builder.Select(categoryColumns...).
		From("categories").
		Where(sq.Eq{"category_id": id}).
		ToSql()
	if err != nil {
		return nil, types.NewStorageError("build category query", err)
	}

	var cat *types.Category
	err = ct.exec.run(ctx, types.CategoriesCollection, types.ReadOnly, func(q queryer) error {
		c, err := hydrateCategory(q.QueryRowContext(ctx, query, args...))
		if errors.Is(err, sql.ErrNoRows) {
			return &types.NotFoundError{Entity: "category", ID: id}
		}
		if err != nil {
			return types.NewStorageError("get category", err)
		}
		cat = c
		return nil
	})
	return cat, err
}

// Put inserts or replaces a category.
func (ct *categoriesTable) Put(ctx context.Context, cat *types.Category) error {
	if cat == nil || cat.ID == "" {
		return types.NewStorageError("put category", types.ErrInvalidID)
	}
	query, args, err := builder.Insert("categories").
		Columns(categoryColumns...).
		Values(cat.ID, cat.Name, cat.Color).
		Suffix(upsertSuffix("category_id", categoryColumns)).
		ToSql()
	if err != nil {
		return types.NewStorageError("build category upsert", err)
	}

	return ct.exec.run(ctx, types.CategoriesCollection, types.ReadWrite, func(q queryer) error {
		_, err := q.ExecContext(ctx, query, args...)
		return types.NewStorageError("put category", err)
	})
}

// Delete removes a category. Absent IDs are ignored.
func (ct *categoriesTable) Delete(ctx context.Context, id string) error {
	return ct.exec.run(ctx, types.CategoriesCollection, types.ReadWrite, func(q queryer) error {
		_, err := q.ExecContext(ctx, "DELETE FROM categories WHERE category_id = ?", id)
		return types.NewStorageError("delete category", err)
	})
}

// Clear removes every category.
func (ct *categoriesTable) Clear(ctx context.Context) error {
	return ct.exec.run(ctx, types.CategoriesCollection, types.ReadWrite, func(q queryer) error {
		return clearTables(ctx, q, types.CategoriesCollection)
	})
}

// hydrateCategory converts a row into a *types.Category.
func hydrateCategory(row rowScanner) (*types.Category, error) {
	var c types.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Color); err != nil {
		return nil, err
	}
	return &c, nil
}
