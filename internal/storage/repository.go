// Package storage contains the storage-agnostic contracts for the loader:
// the Repository interface, the backend factory registry, and the per-kind
// connection-string builders and DDL bootstrappers.
//
// Concrete backends (mssql, postgres, mysql, sqlite) live in subpackages and
// register themselves at init time; importing storage/all (even as a blank
// import) enables all built-in kinds. The rest of the program depends only on
// this package and stays free of driver imports.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Config carries everything a backend factory needs to open a repository.
type Config struct {
	// Kind selects the registered backend (e.g. "mssql").
	Kind string

	// DSN is the driver-specific connection string, typically produced by
	// BuildDSN for the same kind.
	DSN string

	// Table is the destination table name, optionally schema-qualified.
	Table string
}

// Repository is the minimal surface the loader needs from a database
// backend. Implementations hold exactly one connection; Close releases it.
type Repository interface {
	// CopyFrom bulk-inserts rows (aligned to the columns order) into the
	// configured table and returns the number of rows inserted.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)

	// Exec executes a SQL statement (typically DDL).
	Exec(ctx context.Context, sql string) error

	// TableExists reports whether the configured table exists.
	TableExists(ctx context.Context) (bool, error)

	// Count returns the exact row count of the configured table.
	Count(ctx context.Context) (int64, error)

	// CountEstimate returns a row count from catalog statistics. It is the
	// verification fallback: cheaper and more available than a full scan,
	// but possibly stale.
	CountEstimate(ctx context.Context) (int64, error)

	// Close releases the connection. Safe to call exactly once.
	Close()
}

// Factory constructs a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for a storage kind. It is
// typically called from backend packages' init() functions.
func Register(kind string, fn Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = fn
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	fn, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return fn(ctx, cfg)
}

// ListKinds returns a sorted snapshot of the registered storage kinds.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
