package storage

import (
	"fmt"
	"sync"
)

// ConnSettings are the backend-independent connection parameters collected
// from the CLI. Each backend's DSN builder assembles its driver-specific
// connection string from these; no network activity happens there.
type ConnSettings struct {
	Server   string
	Database string
	Username string
	Password string

	// Trusted selects integrated authentication where the backend supports
	// it. Username/Password are ignored when set.
	Trusted bool
}

// DSNBuilder assembles a connection string from ConnSettings. Builders must
// enforce the credential invariant: in credential mode both username and
// password are required.
type DSNBuilder func(s ConnSettings) (string, error)

var (
	dsnMu       sync.RWMutex
	dsnBuilders = map[string]DSNBuilder{}
)

// RegisterDSN registers (or replaces) the DSN builder for a storage kind.
func RegisterDSN(kind string, fn DSNBuilder) {
	dsnMu.Lock()
	defer dsnMu.Unlock()
	dsnBuilders[kind] = fn
}

// BuildDSN assembles the connection string for the given kind.
func BuildDSN(kind string, s ConnSettings) (string, error) {
	dsnMu.RLock()
	fn, ok := dsnBuilders[kind]
	dsnMu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unsupported storage.kind=%s", kind)
	}
	return fn(s)
}
