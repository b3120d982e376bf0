package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

// timeLayout is fixed width so that stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// queryer is the subset of *sql.Tx the table accessors use.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// executor runs fn against one collection. The Backend runs every call in
// its own transaction; a transaction runs it in place after checking scope
// and mode.
type executor interface {
	run(ctx context.Context, collection string, mode types.TxMode, fn func(q queryer) error) error
}

var (
	_ types.Tx = (*transaction)(nil)
	_ executor = (*transaction)(nil)
	_ executor = (*Backend)(nil)
)

type transaction struct {
	sqlTx *sql.Tx
	scope map[string]bool
	mode  types.TxMode
	done  atomic.Bool
}

func newTransaction(sqlTx *sql.Tx, scope []string, mode types.TxMode) *transaction {
	t := &transaction{
		sqlTx: sqlTx,
		scope: make(map[string]bool, len(scope)),
		mode:  mode,
	}
	for _, name := range scope {
		t.scope[name] = true
	}
	return t
}

// finish marks the handle unusable. Called before commit or rollback.
func (t *transaction) finish() {
	t.done.Store(true)
}

func (t *transaction) run(_ context.Context, collection string, mode types.TxMode, fn func(q queryer) error) error {
	if t.done.Load() {
		return types.NewStorageError("use transaction", types.ErrTxDone)
	}
	if !t.scope[collection] {
		return types.NewStorageError("use transaction", fmt.Errorf("%w: %s", types.ErrNotInScope, collection))
	}
	if mode == types.ReadWrite && t.mode == types.ReadOnly {
		return types.NewStorageError("write "+collection, types.ErrReadOnly)
	}
	return fn(t.sqlTx)
}

func (t *transaction) Flashcards() types.FlashcardCollection {
	return &flashcardsTable{exec: t}
}

func (t *transaction) Categories() types.CategoryCollection {
	return &categoriesTable{exec: t}
}

func (t *transaction) Images() types.ImageCollection {
	return &imagesTable{exec: t}
}

// clear empties one collection.
func (t *transaction) clear(ctx context.Context, collection string) error {
	return t.run(ctx, collection, types.ReadWrite, func(q queryer) error {
		return clearTables(ctx, q, collection)
	})
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
