// This adapter wires the MySQL backend into the storage-agnostic registries:
// the repository factory, the DSN builder, and the DDL bootstrapper.
package mysql

import (
	"context"
	"fmt"

	"csvload/internal/config"
	"csvload/internal/storage"
	"csvload/internal/storage/mysql/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
var newRepository = NewRepository

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.RegisterDSN("mysql", BuildDSN)
	storage.RegisterDDL("mysql", bootstrap)
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{
			DSN:   cfg.DSN,
			Table: cfg.Table,
		})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})
}

// wrappedRepo adapts *mysql.Repository to storage.Repository and provides Close.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() { w.closeFn() }

// bootstrap prepares the destination table under the conflict policy.
func bootstrap(ctx context.Context, repo storage.Repository, def storage.TableDef, policy config.Policy) error {
	exists, err := repo.TableExists(ctx)
	if err != nil {
		return fmt.Errorf("check table: %w", err)
	}

	switch policy {
	case config.PolicyFail:
		if exists {
			return fmt.Errorf("table %s already exists", def.FQN)
		}
	case config.PolicyReplace:
		if exists {
			drop, err := ddl.BuildDropTableSQL(def.FQN)
			if err != nil {
				return err
			}
			if err := repo.Exec(ctx, drop); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	case config.PolicyAppend:
		if exists {
			return nil
		}
	}

	create, err := ddl.BuildCreateTableSQL(def)
	if err != nil {
		return err
	}
	if err := repo.Exec(ctx, create); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}
