package types

import "context"

// Collection provides uniform keyed access to one collection of records.
type Collection[T any] interface {
	// GetAll returns every record of the collection.
	GetAll(ctx context.Context) ([]T, error)

	// GetByID returns the record with the given ID.
	// Returns a *NotFoundError if no record exists with that ID.
	GetByID(ctx context.Context, id string) (T, error)

	// Put creates or replaces the record keyed by its ID.
	Put(ctx context.Context, record T) error

	// Delete removes the record with the given ID. Deleting an absent ID
	// succeeds without effect.
	Delete(ctx context.Context, id string) error

	// Clear removes every record of the collection.
	Clear(ctx context.Context) error
}

// FlashcardCollection adds the category index and positional access to the
// flashcards collection.
type FlashcardCollection interface {
	Collection[*Flashcard]

	// GetByCategoryID returns the flashcards whose CategoryIDs contain
	// categoryID, read through the multi-valued category index.
	GetByCategoryID(ctx context.Context, categoryID string) ([]*Flashcard, error)

	// Count returns the number of stored flashcards.
	Count(ctx context.Context) (int, error)

	// GetByOffset returns the n-th flashcard in ID order (zero-based).
	// Returns a *NotFoundError if n is out of range.
	GetByOffset(ctx context.Context, n int) (*Flashcard, error)
}

// CategoryCollection is the categories collection.
type CategoryCollection interface {
	Collection[*Category]
}

// ImageCollection is the images collection.
type ImageCollection interface {
	Collection[*Image]
}

// Tx is a handle over the collections named when the transaction began.
// Writes made through a Tx commit together or not at all.
type Tx interface {
	Flashcards() FlashcardCollection
	Categories() CategoryCollection
	Images() ImageCollection
}

// Store defines backend-agnostic access to the catalog collections.
// Callers attach to a backend, run transactions, and detach when done.
type Store interface {
	// Attach opens the backend described by config, creating DataDir and
	// the versioned layout if needed. Returns ErrAlreadyAttached if called
	// while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Transaction runs fn over the named collections. All writes made
	// through tx commit when fn returns nil; any error from fn, or a
	// failure of the substrate, rolls every write back.
	Transaction(ctx context.Context, scope []string, mode TxMode, fn func(tx Tx) error) error

	// ClearAll empties the named collections in one transaction.
	ClearAll(ctx context.Context, scope []string) error

	// Flashcards, Categories and Images return handles whose calls each
	// run in their own transaction. Do not call them from inside fn: such
	// a call waits for the enclosing transaction and fails only when its
	// context ends.
	Flashcards() FlashcardCollection
	Categories() CategoryCollection
	Images() ImageCollection
}
