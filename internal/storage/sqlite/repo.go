// Package sqlite implements a SQLite repository on database/sql with the
// modernc.org driver (pure Go, no cgo). Rows are loaded with a prepared
// INSERT inside a single transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Config holds SQLite repository configuration.
type Config struct {
	DSN   string
	Table string
}

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository opens the database file and returns a Repository plus a Close
// function for cleanup. The pool is capped at one connection; the driver
// serializes access anyway and a single handle keeps :memory: databases
// stable across statements.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping sqlite: %w", err)
	}
	closeFn := func() { _ = db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// CopyFrom inserts the rows with a prepared statement inside one transaction.
// Bool values are normalized to 0/1 since SQLite has no boolean type.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = liteIdent(c)
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		liteFQN(r.cfg.Table),
		strings.Join(quoted, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "),
	)
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var total int64
	for i, vals := range rows {
		if len(vals) != len(columns) {
			return 0, fmt.Errorf("row %d has %d values, want %d", i, len(vals), len(columns))
		}
		args := make([]any, len(vals))
		for j, v := range vals {
			if b, ok := v.(bool); ok {
				if b {
					args[j] = int64(1)
				} else {
					args[j] = int64(0)
				}
				continue
			}
			args[j] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i, err)
		}
		total++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	committed = true
	return total, nil
}

// Exec executes a SQL statement.
func (r *Repository) Exec(ctx context.Context, query string) error {
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// TableExists reports whether the configured table is present per
// sqlite_master.
func (r *Repository) TableExists(ctx context.Context) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		bareTable(r.cfg.Table),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("sqlite_master lookup: %w", err)
	}
	return n > 0, nil
}

// Count returns the exact row count of the configured table.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", liteFQN(r.cfg.Table))
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// CountEstimate counts over rowid. SQLite keeps no maintained row statistics,
// so this is the cheapest catalog-adjacent approximation available.
func (r *Repository) CountEstimate(ctx context.Context) (int64, error) {
	var n int64
	q := fmt.Sprintf("SELECT COUNT(rowid) FROM %s", liteFQN(r.cfg.Table))
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rowid: %w", err)
	}
	return n, nil
}

// liteIdent safely quotes a single identifier segment for SQLite.
func liteIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// liteFQN quotes a possibly schema-qualified name per segment.
func liteFQN(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = liteIdent(p)
	}
	return strings.Join(parts, ".")
}

// bareTable strips an optional schema prefix for sqlite_master lookups.
func bareTable(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
