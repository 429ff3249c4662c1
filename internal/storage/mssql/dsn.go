package mssql

import (
	"fmt"
	"strings"

	"github.com/microsoft/go-mssqldb/msdsn"

	"csvload/internal/storage"
)

// BuildDSN assembles an ADO-style SQL Server connection string from the
// provided settings. It is pure string assembly; no network activity occurs.
//
// Two variants:
//   - Trusted mode: integrated authentication; username/password ignored.
//   - Credential mode: both username and password are required.
//
// The assembled string is validated with msdsn.Parse to fail fast on obvious
// mistakes before any dial is attempted.
func BuildDSN(s storage.ConnSettings) (string, error) {
	if s.Server == "" {
		return "", fmt.Errorf("mssql: server is required")
	}
	if s.Database == "" {
		return "", fmt.Errorf("mssql: database is required")
	}

	var dsn string
	if s.Trusted {
		dsn = fmt.Sprintf("server=%s;database=%s;trusted_connection=yes", s.Server, s.Database)
	} else {
		if s.Username == "" || s.Password == "" {
			return "", fmt.Errorf("mssql: username and password are required when not using a trusted connection")
		}
		dsn = fmt.Sprintf(
			"server=%s;database=%s;user id=%s;password=%s",
			s.Server, s.Database, adoValue(s.Username), adoValue(s.Password),
		)
	}

	if _, err := msdsn.Parse(dsn); err != nil {
		return "", fmt.Errorf("mssql dsn: %w", err)
	}
	return dsn, nil
}

// adoValue brace-quotes a connection string value so that separators inside
// credentials ("p@ss;word") survive ADO parsing. Closing braces are doubled.
func adoValue(v string) string {
	return "{" + strings.ReplaceAll(v, "}", "}}") + "}"
}
