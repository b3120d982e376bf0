// Package sqlite implements the SQLite storage backend for avioncards.
// The database file is the durable copy of the flashcards, categories and
// images collections.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/semaphore"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

// DBFileName is the database file created inside Config.DataDir.
const DBFileName = "avioncards.db"

var _ types.Store = (*Backend)(nil)

// gateWeight is the capacity of the backend gate. Readers take one unit,
// writers and lifecycle calls take all of it.
const gateWeight = 1 << 30

// dsnPragmas are applied by the driver to every new connection.
const dsnPragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Backend implements types.Store on a single SQLite file.
type Backend struct {
	gate     *semaphore.Weighted
	attached bool
	config   types.Config
	db       *sql.DB
	log      *slog.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for transaction debug output.
func WithLogger(log *slog.Logger) Option {
	return func(b *Backend) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{gate: semaphore.NewWeighted(gateWeight), log: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach opens DataDir/avioncards.db, creating the directory and the
// schema if needed. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.lockAll()
	defer b.gate.Release(gateWeight)

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return types.NewStorageError("create data directory", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	dsn, err := databaseDSN(dbPath)
	if err != nil {
		return types.NewStorageError("resolve database path", err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return types.NewStorageError("open database", err)
	}
	// One connection serializes writers and keeps the WAL reader view
	// consistent inside a transaction.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.config = config
	b.attached = true
	b.log.Debug("store attached", slog.String("path", dbPath))
	return nil
}

// databaseDSN builds a file: URI for path. The path is made absolute and
// percent-escaped so that '?', '#' and '%' in directory names stay part of
// the file name.
func databaseDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: dsnPragmas}
	return u.String(), nil
}

// initSchema creates the tables of a fresh database in one transaction and
// refuses a database written by a newer schema.
func initSchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return types.NewStorageError("read schema version", err)
	}
	switch {
	case version == schemaVersion:
		return nil
	case version > schemaVersion:
		return types.NewStorageError("check schema version",
			fmt.Errorf("%w: database is version %d, want %d", types.ErrSchemaVersion, version, schemaVersion))
	}

	tx, err := db.Begin()
	if err != nil {
		return types.NewStorageError("begin schema transaction", err)
	}
	defer tx.Rollback()

	for _, ddl := range slices.Concat(schemaDDL, indexDDL) {
		if _, err := tx.Exec(ddl); err != nil {
			return types.NewStorageError("create schema", err)
		}
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return types.NewStorageError("set schema version", err)
	}
	if err := tx.Commit(); err != nil {
		return types.NewStorageError("commit schema", err)
	}
	return nil
}

// Detach closes the database. Idempotent.
func (b *Backend) Detach() error {
	b.lockAll()
	defer b.gate.Release(gateWeight)

	if !b.attached {
		return nil
	}

	b.attached = false
	err := b.db.Close()
	b.db = nil
	return types.NewStorageError("close database", err)
}

// Config returns the configuration the backend was attached with.
func (b *Backend) Config() types.Config {
	_ = b.gate.Acquire(context.Background(), 1)
	defer b.gate.Release(1)
	return b.config
}

// Transaction runs fn over the named collections in one SQL transaction.
func (b *Backend) Transaction(ctx context.Context, scope []string, mode types.TxMode, fn func(tx types.Tx) error) error {
	return b.transact(ctx, scope, mode, func(t *transaction) error {
		return fn(t)
	})
}

// ClearAll empties the named collections in one transaction.
func (b *Backend) ClearAll(ctx context.Context, scope []string) error {
	return b.transact(ctx, scope, types.ReadWrite, func(t *transaction) error {
		for _, name := range scope {
			if err := t.clear(ctx, name); err != nil {
				return err
			}
		}
		return nil
	})
}

// Flashcards returns a handle whose calls each run in their own
// transaction.
func (b *Backend) Flashcards() types.FlashcardCollection {
	return &flashcardsTable{exec: b}
}

// Categories returns a handle whose calls each run in their own
// transaction.
func (b *Backend) Categories() types.CategoryCollection {
	return &categoriesTable{exec: b}
}

// Images returns a handle whose calls each run in their own transaction.
func (b *Backend) Images() types.ImageCollection {
	return &imagesTable{exec: b}
}

// lockAll takes the whole gate for lifecycle changes. A Background
// acquire cannot fail.
func (b *Backend) lockAll() {
	_ = b.gate.Acquire(context.Background(), gateWeight)
}

// run implements executor for the store-level handles.
func (b *Backend) run(ctx context.Context, collection string, mode types.TxMode, fn func(q queryer) error) error {
	return b.transact(ctx, []string{collection}, mode, func(t *transaction) error {
		return t.run(ctx, collection, mode, fn)
	})
}

func (b *Backend) transact(ctx context.Context, scope []string, mode types.TxMode, fn func(t *transaction) error) (err error) {
	if len(scope) == 0 {
		return types.NewStorageError("begin transaction", fmt.Errorf("%w: empty scope", types.ErrCollectionNotFound))
	}
	for _, name := range scope {
		if !types.IsCollection(name) {
			return types.NewStorageError("begin transaction", fmt.Errorf("%w: %q", types.ErrCollectionNotFound, name))
		}
	}

	// Waiting on the gate honors ctx, so a handle call made from inside
	// another transaction fails when ctx ends instead of blocking forever.
	weight := int64(1)
	if mode == types.ReadWrite {
		weight = gateWeight
	}
	if err := b.gate.Acquire(ctx, weight); err != nil {
		return types.NewStorageError("begin transaction", err)
	}
	defer b.gate.Release(weight)

	if !b.attached {
		return types.NewStorageError("begin transaction", types.ErrStoreDetached)
	}

	sqlTx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return types.NewStorageError("begin transaction", err)
	}
	t := newTransaction(sqlTx, scope, mode)

	defer func() {
		if p := recover(); p != nil {
			t.finish()
			_ = sqlTx.Rollback()
			b.log.Debug("transaction rolled back after panic", slog.Any("scope", scope))
			panic(p)
		}
	}()

	if err := fn(t); err != nil {
		t.finish()
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return types.NewStorageError("rollback transaction", fmt.Errorf("%w (after: %v)", rbErr, err))
		}
		b.log.Debug("transaction rolled back",
			slog.Any("scope", scope),
			slog.String("mode", mode.String()),
			slog.String("error", err.Error()),
		)
		return err
	}

	t.finish()
	if err := sqlTx.Commit(); err != nil {
		return types.NewStorageError("commit transaction", err)
	}
	b.log.Debug("transaction committed", slog.Any("scope", scope), slog.String("mode", mode.String()))
	return nil
}
