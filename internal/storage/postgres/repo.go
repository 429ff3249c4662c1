// Package postgres implements a Postgres repository using pgx v5. Rows are
// loaded with the COPY protocol over a single connection; no pool is used,
// so each run holds at most one connection.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// Config holds Postgres repository configuration.
type Config struct {
	DSN   string
	Table string
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	conn *pgx.Conn
	cfg  Config
}

// NewRepository opens a single pgx connection and returns a Repository plus a
// Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	conn, err := pgx.Connect(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgx connect: %w", err)
	}
	closeFn := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}
	return &Repository{conn: conn, cfg: cfg}, closeFn, nil
}

// CopyFrom performs a COPY into the configured target table.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := r.conn.CopyFrom(ctx, splitFQN(r.cfg.Table), columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy: %w", err)
	}
	return n, nil
}

// Exec executes a SQL statement on the connection.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	_, err := r.conn.Exec(ctx, sql)
	return err
}

// TableExists reports whether the configured table resolves in the catalog.
func (r *Repository) TableExists(ctx context.Context) (bool, error) {
	var oid *uint32
	err := r.conn.QueryRow(ctx, "SELECT to_regclass($1)::oid", r.cfg.Table).Scan(&oid)
	if err != nil {
		return false, fmt.Errorf("to_regclass: %w", err)
	}
	return oid != nil, nil
}

// Count returns the exact row count of the configured table.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", pgFQN(r.cfg.Table))
	if err := r.conn.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// CountEstimate returns the planner's row estimate from pg_class. It avoids a
// table scan but reflects the last ANALYZE/VACUUM rather than committed truth.
func (r *Repository) CountEstimate(ctx context.Context) (int64, error) {
	var n *int64
	err := r.conn.QueryRow(ctx,
		"SELECT reltuples::bigint FROM pg_class WHERE oid = to_regclass($1)",
		r.cfg.Table,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("reltuples: %w", err)
	}
	if n == nil || *n < 0 {
		return 0, fmt.Errorf("reltuples: no estimate for table %s", r.cfg.Table)
	}
	return *n, nil
}

// pgIdent safely quotes a single identifier segment for Postgres.
func pgIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// pgFQN quotes a possibly schema-qualified name like "public.customers" to
// "public"."customers". If no dot is present, returns a single quoted ident.
func pgFQN(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pgIdent(p)
	}
	return strings.Join(parts, ".")
}

// splitFQN converts "schema.table" into a pgx.Identifier {"schema","table"}.
// If no dot is present, returns {"table"}.
func splitFQN(fqn string) pgx.Identifier {
	parts := strings.Split(fqn, ".")
	id := make(pgx.Identifier, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			id = append(id, p)
		}
	}
	return id
}
