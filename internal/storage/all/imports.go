// Package all registers every storage backend via blank imports. Importing
// this package from a binary makes all supported kinds available through
// storage.New, storage.BuildDSN and storage.EnsureTable.
package all

import (
	_ "csvload/internal/storage/mssql"
	_ "csvload/internal/storage/mysql"
	_ "csvload/internal/storage/postgres"
	_ "csvload/internal/storage/sqlite"
)
