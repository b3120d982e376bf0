package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

var _ types.FlashcardCollection = (*flashcardsTable)(nil)

var flashcardColumns = []string{
	"flashcard_id",
	"name",
	"image_id",
	"category_ids",
	"created_at",
	"updated_at",
}

type flashcardsTable struct {
	exec executor
}

// GetAll returns every flashcard ordered by creation time, then ID.
func (ft *flashcardsTable) GetAll(ctx context.Context) ([]*types.Flashcard, error) {
	query, args, err := builder.Select(flashcardColumns...).
		From("flashcards").
		OrderBy("created_at", "flashcard_id").
		ToSql()
	if err != nil {
		return nil, types.NewStorageError("build flashcards query", err)
	}
	return ft.query(ctx, "list flashcards", query, args)
}

// GetByID retrieves a flashcard by ID.
func (ft *flashcardsTable) GetByID(ctx context.Context, id string) (*types.Flashcard, error) {
	query, args, err := builder.Select(flashcardColumns...).
		From("flashcards").
		Where(sq.Eq{"flashcard_id": id}).
		ToSql()
	if err != nil {
		return nil, types.NewStorageError("build flashcard query", err)
	}

	var card *types.Flashcard
	err = ft.exec.run(ctx, types.FlashcardsCollection, types.ReadOnly, func(q queryer) error {
		c, err := hydrateFlashcard(q.QueryRowContext(ctx, query, args...))
		if errors.Is(err, sql.ErrNoRows) {
			return &types.NotFoundError{Entity: "flashcard", ID: id}
		}
		if err != nil {
			return types.NewStorageError("get flashcard", err)
		}
		card = c
		return nil
	})
	return card, err
}

// Put inserts or replaces the flashcard and rewrites its category index
// rows.
func (ft *flashcardsTable) Put(ctx context.Context, card *types.Flashcard) error {
	if card == nil || card.ID == "" {
		return types.NewStorageError("put flashcard", types.ErrInvalidID)
	}

	categoryIDs := card.CategoryIDs
	if categoryIDs == nil {
		categoryIDs = []string{}
	}
	encoded, err := json.Marshal(categoryIDs)
	if err != nil {
		return types.NewStorageError("encode category ids", err)
	}

	upsert, upsertArgs, err := builder.Insert("flashcards").
		Columns(flashcardColumns...).
		Values(card.ID, card.Name, card.ImageRef, string(encoded), formatTime(card.CreatedAt), formatTime(card.UpdatedAt)).
		Suffix(upsertSuffix("flashcard_id", flashcardColumns)).
		ToSql()
	if err != nil {
		return types.NewStorageError("build flashcard upsert", err)
	}

	return ft.exec.run(ctx, types.FlashcardsCollection, types.ReadWrite, func(q queryer) error {
		if _, err := q.ExecContext(ctx, upsert, upsertArgs...); err != nil {
			return types.NewStorageError("put flashcard", err)
		}
		return writeCategoryIndex(ctx, q, card.ID, categoryIDs)
	})
}

// writeCategoryIndex replaces the index rows of one flashcard.
func writeCategoryIndex(ctx context.Context, q queryer, flashcardID string, categoryIDs []string) error {
	del, delArgs, err := builder.Delete("flashcard_categories").
		Where(sq.Eq{"flashcard_id": flashcardID}).
		ToSql()
	if err != nil {
		return types.NewStorageError("build category index delete", err)
	}
	if _, err := q.ExecContext(ctx, del, delArgs...); err != nil {
		return types.NewStorageError("clear category index", err)
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	ins := builder.Insert("flashcard_categories").
		Columns("category_id", "flashcard_id").
		Suffix("ON CONFLICT DO NOTHING")
	for _, categoryID := range categoryIDs {
		ins = ins.Values(categoryID, flashcardID)
	}
	query, args, err := ins.ToSql()
	if err != nil {
		return types.NewStorageError("build category index insert", err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return types.NewStorageError("write category index", err)
	}
	return nil
}

// Delete removes a flashcard and its index rows. Absent IDs are ignored.
func (ft *flashcardsTable) Delete(ctx context.Context, id string) error {
	return ft.exec.run(ctx, types.FlashcardsCollection, types.ReadWrite, func(q queryer) error {
		if _, err := q.ExecContext(ctx, "DELETE FROM flashcard_categories WHERE flashcard_id = ?", id); err != nil {
			return types.NewStorageError("delete category index", err)
		}
		if _, err := q.ExecContext(ctx, "DELETE FROM flashcards WHERE flashcard_id = ?", id); err != nil {
			return types.NewStorageError("delete flashcard", err)
		}
		return nil
	})
}

// Clear removes every flashcard and the whole category index.
func (ft *flashcardsTable) Clear(ctx context.Context) error {
	return ft.exec.run(ctx, types.FlashcardsCollection, types.ReadWrite, func(q queryer) error {
		return clearTables(ctx, q, types.FlashcardsCollection)
	})
}

// GetByCategoryID reads through the category index.
func (ft *flashcardsTable) GetByCategoryID(ctx context.Context, categoryID string) ([]*types.Flashcard, error) {
	cols := make([]string, len(flashcardColumns))
	for i, c := range flashcardColumns {
		cols[i] = "f." + c
	}
	query, args, err := builder.Select(cols...).
		From("flashcard_categories fc").
		Join("flashcards f ON f.flashcard_id = fc.flashcard_id").
		Where(sq.Eq{"fc.category_id": categoryID}).
		OrderBy("f.created_at", "f.flashcard_id").
		ToSql()
	if err != nil {
		return nil, types.NewStorageError("build category index query", err)
	}
	return ft.query(ctx, "list flashcards by category", query, args)
}

// Count returns the number of flashcards.
func (ft *flashcardsTable) Count(ctx context.Context) (int, error) {
	var n int
	err := ft.exec.run(ctx, types.FlashcardsCollection, types.ReadOnly, func(q queryer) error {
		if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM flashcards").Scan(&n); err != nil {
			return types.NewStorageError("count flashcards", err)
		}
		return nil
	})
	return n, err
}

// GetByOffset returns the n-th flashcard in ID order.
func (ft *flashcardsTable) GetByOffset(ctx context.Context, n int) (*types.Flashcard, error) {
	notFound := &types.NotFoundError{Entity: "flashcard", ID: fmt.Sprintf("#%d", n)}
	if n < 0 {
		return nil, notFound
	}
	query, args, err := builder.Select(flashcardColumns...).
		From("flashcards").
		OrderBy("flashcard_id").
		Limit(1).
		Offset(uint64(n)).
		ToSql()
	if err != nil {
		return nil, types.NewStorageError("build flashcard offset query", err)
	}

	var card *types.Flashcard
	err = ft.exec.run(ctx, types.FlashcardsCollection, types.ReadOnly, func(q queryer) error {
		c, err := hydrateFlashcard(q.QueryRowContext(ctx, query, args...))
		if errors.Is(err, sql.ErrNoRows) {
			return notFound
		}
		if err != nil {
			return types.NewStorageError("get flashcard by offset", err)
		}
		card = c
		return nil
	})
	return card, err
}

func (ft *flashcardsTable) query(ctx context.Context, op, query string, args []any) ([]*types.Flashcard, error) {
	cards := []*types.Flashcard{}
	err := ft.exec.run(ctx, types.FlashcardsCollection, types.ReadOnly, func(q queryer) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return types.NewStorageError(op, err)
		}
		defer rows.Close()

		for rows.Next() {
			c, err := hydrateFlashcard(rows)
			if err != nil {
				return types.NewStorageError(op, err)
			}
			cards = append(cards, c)
		}
		return types.NewStorageError(op, rows.Err())
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// hydrateFlashcard converts a row into a *types.Flashcard.
func hydrateFlashcard(row rowScanner) (*types.Flashcard, error) {
	var (
		c                    types.Flashcard
		categoryIDs          string
		createdAt, updatedAt string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.ImageRef, &categoryIDs, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(categoryIDs), &c.CategoryIDs); err != nil {
		return nil, fmt.Errorf("decoding category_ids of %s: %w", c.ID, err)
	}
	if c.CategoryIDs == nil {
		c.CategoryIDs = []string{}
	}
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at of %s: %w", c.ID, err)
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at of %s: %w", c.ID, err)
	}
	return &c, nil
}

// clearTables deletes every row of the tables holding collection.
func clearTables(ctx context.Context, q queryer, collection string) error {
	for _, table := range tablesFor[collection] {
		if _, err := q.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return types.NewStorageError("clear "+collection, err)
		}
	}
	return nil
}
