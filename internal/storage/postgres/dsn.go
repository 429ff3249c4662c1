package postgres

import (
	"fmt"
	"net/url"

	"csvload/internal/storage"
)

// BuildDSN assembles a postgres:// URL from the provided settings. Pure
// string assembly; no network activity.
//
// Trusted mode omits the credential pair entirely and relies on ambient
// authentication (peer/ident, .pgpass, service files). Credential mode
// requires both username and password.
func BuildDSN(s storage.ConnSettings) (string, error) {
	if s.Server == "" {
		return "", fmt.Errorf("postgres: server is required")
	}
	if s.Database == "" {
		return "", fmt.Errorf("postgres: database is required")
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   s.Server,
		Path:   "/" + s.Database,
	}
	if !s.Trusted {
		if s.Username == "" || s.Password == "" {
			return "", fmt.Errorf("postgres: username and password are required when not using a trusted connection")
		}
		u.User = url.UserPassword(s.Username, s.Password)
	}
	return u.String(), nil
}
