package sqlite

import "github.com/mesh-intelligence/avioncards/pkg/types"

// schemaVersion is stored in PRAGMA user_version. A database at a newer
// version is refused; there are no migrations.
const schemaVersion = 1

// Schema DDL for all tables.
const (
	createFlashcards = `CREATE TABLE flashcards (
    flashcard_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    image_id TEXT NOT NULL,
    category_ids TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createFlashcardCategories = `CREATE TABLE flashcard_categories (
    category_id TEXT NOT NULL,
    flashcard_id TEXT NOT NULL,
    PRIMARY KEY (category_id, flashcard_id)
);`

	createCategories = `CREATE TABLE categories (
    category_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    color TEXT NOT NULL
);`

	createImages = `CREATE TABLE images (
    image_id TEXT PRIMARY KEY,
    data_url TEXT NOT NULL
);`
)

// Index DDL.
const (
	idxFlashcardsCreatedAt          = `CREATE INDEX idx_flashcards_created_at ON flashcards(created_at);`
	idxFlashcardsUpdatedAt          = `CREATE INDEX idx_flashcards_updated_at ON flashcards(updated_at);`
	idxFlashcardCategoriesFlashcard = `CREATE INDEX idx_flashcard_categories_flashcard ON flashcard_categories(flashcard_id);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createFlashcards,
	createFlashcardCategories,
	createCategories,
	createImages,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxFlashcardsCreatedAt,
	idxFlashcardsUpdatedAt,
	idxFlashcardCategoriesFlashcard,
}

// tablesFor maps a collection name to the SQL tables that hold it. The
// flashcards collection owns its category index.
var tablesFor = map[string][]string{
	types.FlashcardsCollection: {"flashcard_categories", "flashcards"},
	types.CategoriesCollection: {"categories"},
	types.ImagesCollection:     {"images"},
}
