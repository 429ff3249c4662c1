package mysql

import (
	"fmt"

	"github.com/go-sql-driver/mysql"

	"csvload/internal/storage"
)

// BuildDSN assembles a go-sql-driver DSN from the provided settings. Pure
// string assembly; no network activity.
//
// MySQL has no OS-trust authentication mode comparable to SQL Server's, so
// Trusted is rejected up front rather than silently producing a DSN that
// cannot authenticate.
func BuildDSN(s storage.ConnSettings) (string, error) {
	if s.Server == "" {
		return "", fmt.Errorf("mysql: server is required")
	}
	if s.Database == "" {
		return "", fmt.Errorf("mysql: database is required")
	}
	if s.Trusted {
		return "", fmt.Errorf("mysql: trusted connections are not supported; provide a username and password")
	}
	if s.Username == "" || s.Password == "" {
		return "", fmt.Errorf("mysql: username and password are required")
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = s.Server
	cfg.DBName = s.Database
	cfg.User = s.Username
	cfg.Passwd = s.Password
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}
