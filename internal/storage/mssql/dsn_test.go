package mssql

import (
	"strings"
	"testing"

	"csvload/internal/storage"
)

// TestBuildDSNTrusted verifies integrated auth encoding; credentials are
// ignored even when present.
func TestBuildDSNTrusted(t *testing.T) {
	t.Parallel()

	dsn, err := BuildDSN(storage.ConnSettings{
		Server:   "127.0.0.1",
		Database: "demo",
		Username: "ignored",
		Password: "ignored",
		Trusted:  true,
	})
	if err != nil {
		t.Fatalf("BuildDSN error: %v", err)
	}
	if !strings.Contains(dsn, "trusted_connection=yes") {
		t.Fatalf("dsn = %q, want trusted_connection=yes", dsn)
	}
	if strings.Contains(dsn, "user id") || strings.Contains(dsn, "password") {
		t.Fatalf("dsn = %q, trusted mode must not carry credentials", dsn)
	}
}

// TestBuildDSNCredential verifies the credential-mode encoding.
func TestBuildDSNCredential(t *testing.T) {
	t.Parallel()

	dsn, err := BuildDSN(storage.ConnSettings{
		Server:   "db.example.com",
		Database: "demo",
		Username: "loader",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("BuildDSN error: %v", err)
	}
	for _, want := range []string{"server=db.example.com", "database=demo", "user id={loader}", "password={s3cret}"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn = %q, want it to contain %q", dsn, want)
		}
	}
}

// TestBuildDSNMissingCredentials verifies that credential mode with a missing
// username or password fails during string assembly, before any dial.
func TestBuildDSNMissingCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    storage.ConnSettings
	}{
		{"empty password", storage.ConnSettings{Server: "h", Database: "d", Username: "u"}},
		{"empty username", storage.ConnSettings{Server: "h", Database: "d", Password: "p"}},
		{"both empty", storage.ConnSettings{Server: "h", Database: "d"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := BuildDSN(tt.s)
			if err == nil || !strings.Contains(err.Error(), "username and password are required") {
				t.Fatalf("BuildDSN() = %v, want credential error", err)
			}
		})
	}
}

// TestBuildDSNMissingTarget verifies server/database requirements.
func TestBuildDSNMissingTarget(t *testing.T) {
	t.Parallel()

	if _, err := BuildDSN(storage.ConnSettings{Database: "d", Trusted: true}); err == nil {
		t.Fatalf("expected error for missing server")
	}
	if _, err := BuildDSN(storage.ConnSettings{Server: "h", Trusted: true}); err == nil {
		t.Fatalf("expected error for missing database")
	}
}

// TestAdoValue verifies brace quoting of separator-bearing credentials.
func TestAdoValue(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"plain", "{plain}"},
		{"p@ss;word", "{p@ss;word}"},
		{"cl}osing", "{cl}}osing}"},
	}
	for _, tc := range cases {
		if got := adoValue(tc.in); got != tc.want {
			t.Fatalf("adoValue(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
