package mysql

import (
	"strings"
	"testing"

	"csvload/internal/storage"
)

// TestBuildDSN verifies the driver DSN form.
func TestBuildDSN(t *testing.T) {
	t.Parallel()

	got, err := BuildDSN(storage.ConnSettings{
		Server:   "db.example.com:3306",
		Database: "warehouse",
		Username: "loader",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("BuildDSN error: %v", err)
	}
	for _, want := range []string{
		"loader:s3cret@tcp(db.example.com:3306)/warehouse",
		"parseTime=true",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("dsn %q missing %q", got, want)
		}
	}
}

// TestBuildDSNTrustedRejected verifies that OS-trust auth is rejected.
func TestBuildDSNTrustedRejected(t *testing.T) {
	t.Parallel()

	_, err := BuildDSN(storage.ConnSettings{
		Server:   "localhost:3306",
		Database: "d",
		Trusted:  true,
	})
	if err == nil {
		t.Fatalf("expected error for trusted connection")
	}
}

// TestBuildDSNMissingFields verifies the fail-fast validation paths.
func TestBuildDSNMissingFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   storage.ConnSettings
	}{
		{"no server", storage.ConnSettings{Database: "d", Username: "u", Password: "p"}},
		{"no database", storage.ConnSettings{Server: "s", Username: "u", Password: "p"}},
		{"no username", storage.ConnSettings{Server: "s", Database: "d", Password: "p"}},
		{"no password", storage.ConnSettings{Server: "s", Database: "d", Username: "u"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := BuildDSN(tc.in); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}
