package sqlite

import (
	"fmt"

	"csvload/internal/storage"
)

// BuildDSN maps the shared settings onto a SQLite DSN. The Database field
// carries the database file path (or ":memory:"); network and credential
// fields have no meaning for an embedded database and are rejected so a
// misdirected invocation fails fast instead of creating a stray file.
func BuildDSN(s storage.ConnSettings) (string, error) {
	if s.Database == "" {
		return "", fmt.Errorf("sqlite: database file path is required")
	}
	if s.Username != "" || s.Password != "" || s.Trusted {
		return "", fmt.Errorf("sqlite: authentication settings are not supported")
	}
	return s.Database, nil
}
