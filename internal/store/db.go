package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/museun/dono-server/internal/constants"
)

// DB is the process-wide handle to the backing store. It is opened once at
// startup and passed explicitly to whatever needs it.
type DB struct {
	*sqlx.DB
}

// Open connects to the SQLite database at dsn without touching the schema.
func Open(dsn string) (*DB, error) {
	db, err := sqlx.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, storageErr("open", "", fmt.Errorf("failed to open db: %w", err))
	}

	if err := db.Ping(); err != nil {
		db.Close() //nolint:errcheck // already failing
		return nil, storageErr("open", "", fmt.Errorf("failed to ping db: %w", err))
	}

	return &DB{db}, nil
}

// withPragmas appends the connection pragmas to dsn. busy_timeout is per
// connection, so it has to be applied by the driver on every new one.
func withPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		dsn, sep, constants.DefaultBusyTimeout.Milliseconds())
}

// NewSQLiteDB opens the database and bootstraps the schema. The handle is
// only returned once both tables are known to exist with the expected shape.
func NewSQLiteDB(dsn string) (*DB, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close() //nolint:errcheck // already failing
		return nil, err
	}

	return db, nil
}

// RunInTx runs fn inside a transaction, committing only if fn succeeds.
// Errors from fn come back as a StorageError.
func (db *DB) RunInTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr("begin", "", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return storageErr("tx", "", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit", "", err)
	}
	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
