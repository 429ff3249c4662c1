package storage

import (
	"context"
	"fmt"
	"sync"

	"csvload/internal/config"
)

// ColumnDef describes one destination column in backend-neutral terms. Kind
// is a logical type ("int", "float", "bool", "string") mapped to a concrete
// SQL type by each backend.
type ColumnDef struct {
	Name string
	Kind string
}

// TableDef describes the destination table to create.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}

// NewTableDef builds a TableDef from ordered column names and their inferred
// logical kinds.
func NewTableDef(table string, columns []string, kinds map[string]string) TableDef {
	defs := make([]ColumnDef, 0, len(columns))
	for _, name := range columns {
		defs = append(defs, ColumnDef{Name: name, Kind: kinds[name]})
	}
	return TableDef{FQN: table, Columns: defs}
}

// DDLBootstrapper prepares the destination table for a load under the given
// conflict policy:
//
//   - fail:    error when the table already exists; otherwise create it.
//   - replace: drop the table when present, then create it.
//   - append:  create the table only when absent.
//
// Backends register their implementation for a given storage kind at init
// time; the SQL dialect (quoting, type mapping, existence guards) is theirs.
type DDLBootstrapper func(ctx context.Context, repo Repository, def TableDef, policy config.Policy) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) a DDLBootstrapper for the given storage
// kind. It is typically called from backend packages' init() functions.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTable locates the DDLBootstrapper for the kind and invokes it.
// Callers do not need to know which backend they are using; they simply pass
// the table definition, the policy, and the already-open Repository.
func EnsureTable(ctx context.Context, kind string, repo Repository, def TableDef, policy config.Policy) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for storage.kind=%q", kind)
	}
	return fn(ctx, repo, def, policy)
}
