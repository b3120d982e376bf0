package sqlite

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

var _ types.ImageCollection = (*imagesTable)(nil)

var imageColumns = []string{"image_id", "data_url"}

type imagesTable struct {
	exec executor
}

// GetAll returns every image ordered by ID.
func (it *imagesTable) GetAll(ctx context.Context) ([]*types.Image, error) {
	query, args, err := builder.Select(imageColumns...).
		From("images").
		OrderBy("image_id").
		ToSql()
	if err != nil {
		return nil, types.NewStorageError("build images query", err)
	}

	images := []*types.Image{}
	err = it.exec.run(ctx, types.ImagesCollection, types.ReadOnly, func(q queryer) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return types.NewStorageError("list images", err)
		}
		defer rows.Close()

		for rows.Next() {
			var img types.Image
			if err := rows.Scan(&img.ID, &img.DataURL); err != nil {
				return types.NewStorageError("list images", err)
			}
			images = append(images, &img)
		}
		return types.NewStorageError("list images", rows.Err())
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// GetByID retrieves an image by ID.
func (it *imagesTable) GetByID(ctx context.Context, id string) (*types.Image, error) {
	query, args, err := builder.Select(imageColumns...).
		From("images").
		Where(sq.Eq{"image_id": id}).
		ToSql()
	if err != nil {
		return nil, types.NewStorageError("build image query", err)
	}

	var img *types.Image
	err = it.exec.run(ctx, types.ImagesCollection, types.ReadOnly, func(q queryer) error {
		var found types.Image
		err := q.QueryRowContext(ctx, query, args...).Scan(&found.ID, &found.DataURL)
		if errors.Is(err, sql.ErrNoRows) {
			return &types.NotFoundError{Entity: "image", ID: id}
		}
		if err != nil {
			return types.NewStorageError("get image", err)
		}
		img = &found
		return nil
	})
	return img, err
}

// Put inserts or replaces an image.
func (it *imagesTable) Put(ctx context.Context, img *types.Image) error {
	if img == nil || img.ID == "" {
		return types.NewStorageError("put image", types.ErrInvalidID)
	}
	query, args, err := builder.Insert("images").
		Columns(imageColumns...).
		Values(img.ID, img.DataURL).
		Suffix(upsertSuffix("image_id", imageColumns)).
		ToSql()
	if err != nil {
		return types.NewStorageError("build image upsert", err)
	}

	return it.exec.run(ctx, types.ImagesCollection, types.ReadWrite, func(q queryer) error {
		_, err := q.ExecContext(ctx, query, args...)
		return types.NewStorageError("put image", err)
	})
}

// Delete removes an image. Absent IDs are ignored.
func (it *imagesTable) Delete(ctx context.Context, id string) error {
	return it.exec.run(ctx, types.ImagesCollection, types.ReadWrite, func(q queryer) error {
		_, err := q.ExecContext(ctx, "DELETE FROM images WHERE image_id = ?", id)
		return types.NewStorageError("delete image", err)
	})
}

// Clear removes every image.
func (it *imagesTable) Clear(ctx context.Context) error {
	return it.exec.run(ctx, types.ImagesCollection, types.ReadWrite, func(q queryer) error {
		return clearTables(ctx, q, types.ImagesCollection)
	})
}
