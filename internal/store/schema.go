package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/museun/dono-server/internal/constants"
)

const youtubeVideosSchema = `
CREATE TABLE IF NOT EXISTS youtube_videos (
	id INTEGER PRIMARY KEY AUTOINCREMENT UNIQUE NOT NULL,
	vid TEXT NOT NULL,
	ts INTEGER NOT NULL,
	duration INTEGER NOT NULL,
	title TEXT NOT NULL
);`

const localSongsSchema = `
CREATE TABLE IF NOT EXISTS local_songs (
	id INTEGER PRIMARY KEY AUTOINCREMENT UNIQUE NOT NULL,
	ts INTEGER NOT NULL,
	title TEXT NOT NULL,
	artist TEXT NOT NULL,
	album TEXT NOT NULL
);`

// Column is one column of a table as reported by SQLite.
type Column struct {
	Name       string `db:"name" json:"name"`
	Type       string `db:"type" json:"type"`
	NotNull    bool   `db:"notnull" json:"not_null"`
	PrimaryKey bool   `db:"pk" json:"primary_key"`
}

// Table is a table name with its live column layout.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

type tableDef struct {
	name    string
	ddl     string
	columns []Column
}

var tables = []tableDef{
	{
		name: constants.YoutubeVideosTable,
		ddl:  youtubeVideosSchema,
		columns: []Column{
			{Name: "id", Type: "INTEGER", NotNull: true, PrimaryKey: true},
			{Name: "vid", Type: "TEXT", NotNull: true},
			{Name: "ts", Type: "INTEGER", NotNull: true},
			{Name: "duration", Type: "INTEGER", NotNull: true},
			{Name: "title", Type: "TEXT", NotNull: true},
		},
	},
	{
		name: constants.LocalSongsTable,
		ddl:  localSongsSchema,
		columns: []Column{
			{Name: "id", Type: "INTEGER", NotNull: true, PrimaryKey: true},
			{Name: "ts", Type: "INTEGER", NotNull: true},
			{Name: "title", Type: "TEXT", NotNull: true},
			{Name: "artist", Type: "TEXT", NotNull: true},
			{Name: "album", Type: "TEXT", NotNull: true},
		},
	},
}

// TableNames lists the tables managed by EnsureSchema.
func TableNames() []string {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.name)
	}
	return names
}

// EnsureSchema creates youtube_videos and local_songs if they are absent and
// checks that existing tables have the expected columns. Creation and
// verification share one transaction: on any error nothing is committed.
// Calling it again on a bootstrapped store is a no-op.
func (db *DB) EnsureSchema(ctx context.Context) error {
	return db.RunInTx(ctx, func(tx *sqlx.Tx) error {
		for _, t := range tables {
			if _, err := tx.ExecContext(ctx, t.ddl); err != nil {
				return storageErr("create", t.name, err)
			}
		}

		for _, t := range tables {
			live, err := inspect(ctx, tx, t.name)
			if err != nil {
				return storageErr("inspect", t.name, err)
			}
			if err := t.verify(live); err != nil {
				return storageErr("verify", t.name, err)
			}
			if err := verifyAutoincrement(ctx, tx, t.name); err != nil {
				return storageErr("verify", t.name, err)
			}
		}
		return nil
	})
}

// Inspect returns the live columns of table. A missing table has no columns.
func (db *DB) Inspect(ctx context.Context, table string) ([]Column, error) {
	cols, err := inspect(ctx, db, table)
	if err != nil {
		return nil, storageErr("inspect", table, err)
	}
	return cols, nil
}

// Tables returns every managed table with its live columns.
func (db *DB) Tables(ctx context.Context) ([]Table, error) {
	out := make([]Table, 0, len(tables))
	for _, t := range tables {
		cols, err := db.Inspect(ctx, t.name)
		if err != nil {
			return nil, err
		}
		out = append(out, Table{Name: t.name, Columns: cols})
	}
	return out, nil
}

func inspect(ctx context.Context, q sqlx.QueryerContext, table string) ([]Column, error) {
	query := `SELECT name, type, "notnull", pk FROM pragma_table_info(?) ORDER BY cid`

	cols := []Column{}
	if err := sqlx.SelectContext(ctx, q, &cols, query, table); err != nil {
		return nil, err
	}
	return cols, nil
}

// verify compares the live layout against the declared one. Any difference in
// column set, order, declared type, nullability or primary key is drift.
// AUTOINCREMENT is not visible here and is checked by verifyAutoincrement.
func (t tableDef) verify(live []Column) error {
	if len(live) != len(t.columns) {
		return fmt.Errorf("%w: expected %d columns, found %d (%s)",
			ErrSchemaDrift, len(t.columns), len(live), columnNames(live))
	}

	for i, want := range t.columns {
		got := live[i]
		switch {
		case got.Name != want.Name:
			return fmt.Errorf("%w: column %d is %q, expected %q", ErrSchemaDrift, i, got.Name, want.Name)
		case !strings.EqualFold(got.Type, want.Type):
			return fmt.Errorf("%w: column %q has type %q, expected %q", ErrSchemaDrift, got.Name, got.Type, want.Type)
		case got.NotNull != want.NotNull:
			return fmt.Errorf("%w: column %q not-null is %t, expected %t", ErrSchemaDrift, got.Name, got.NotNull, want.NotNull)
		case got.PrimaryKey != want.PrimaryKey:
			return fmt.Errorf("%w: column %q primary key is %t, expected %t", ErrSchemaDrift, got.Name, got.PrimaryKey, want.PrimaryKey)
		}
	}
	return nil
}

// verifyAutoincrement checks the stored DDL of table. Without AUTOINCREMENT
// SQLite hands out max(id)+1, so ids of deleted rows would be reused.
func verifyAutoincrement(ctx context.Context, q sqlx.QueryerContext, table string) error {
	query := `SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`

	var ddl string
	if err := sqlx.GetContext(ctx, q, &ddl, query, table); err != nil {
		return err
	}
	if !strings.Contains(strings.ToUpper(ddl), "AUTOINCREMENT") {
		return fmt.Errorf("%w: id is not AUTOINCREMENT", ErrSchemaDrift)
	}
	return nil
}

func columnNames(cols []Column) string {
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}
