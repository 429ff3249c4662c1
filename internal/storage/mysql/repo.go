// Package mysql implements a MySQL repository on database/sql with the
// go-sql-driver driver. Rows are loaded with multi-row INSERTs inside a
// single transaction; the pool is capped at one open connection.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// insertChunk caps the number of rows per INSERT statement so the statement
// stays under max_allowed_packet on default server configs.
const insertChunk = 500

// Config holds MySQL repository configuration.
type Config struct {
	DSN   string
	Table string
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository opens a connection, verifies it with a ping, and returns a
// Repository plus a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping mysql: %w", err)
	}
	closeFn := func() { _ = db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// CopyFrom inserts the rows into the configured table inside one transaction,
// chunked into multi-row INSERT statements. The whole load commits or rolls
// back as a unit.
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
		quoted[i] = myIdent(c)
	}
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ",
		myFQN(r.cfg.Table), strings.Join(quoted, ", "))

	var total int64
	for start := 0; start < len(rows); start += insertChunk {
		end := start + insertChunk
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		placeholders := make([]string, len(chunk))
		args := make([]any, 0, len(chunk)*len(columns))
		row := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
		for i, vals := range chunk {
			if len(vals) != len(columns) {
				return 0, fmt.Errorf("row %d has %d values, want %d", start+i, len(vals), len(columns))
			}
			placeholders[i] = row
			args = append(args, vals...)
		}

		res, err := tx.ExecContext(ctx, prefix+strings.Join(placeholders, ", "), args...)
		if err != nil {
			return 0, fmt.Errorf("insert rows %d..%d: %w", start, end, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		total += n
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

// TableExists reports whether the configured table is present in the current
// schema per information_schema.
func (r *Repository) TableExists(ctx context.Context) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_name = ?`,
		bareTable(r.cfg.Table),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("information_schema lookup: %w", err)
	}
	return n > 0, nil
}

// Count returns the exact row count of the configured table.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", myFQN(r.cfg.Table))
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// CountEstimate returns the storage engine's row estimate from
// information_schema. For InnoDB this is approximate by design.
func (r *Repository) CountEstimate(ctx context.Context) (int64, error) {
	var n sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT table_rows FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_name = ?`,
		bareTable(r.cfg.Table),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("table_rows lookup: %w", err)
	}
	if !n.Valid {
		return 0, fmt.Errorf("no row estimate for table %s", r.cfg.Table)
	}
	return n.Int64, nil
}

// myIdent safely quotes a single identifier segment for MySQL.
func myIdent(id string) string { return "`" + strings.ReplaceAll(id, "`", "``") + "`" }

// myFQN quotes a possibly schema-qualified name with backticks per segment.
func myFQN(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = myIdent(p)
	}
	return strings.Join(parts, ".")
}

// bareTable strips an optional schema prefix for catalog lookups that key on
// the unqualified table name.
func bareTable(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
