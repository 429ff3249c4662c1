package ddl

import (
	"strings"
	"testing"

	"csvload/internal/storage"
)

// TestBuildCreateTableSQL verifies the generated create statement.
func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	def := storage.TableDef{
		FQN: "customers",
		Columns: []storage.ColumnDef{
			{Name: "id", Kind: "int"},
			{Name: "name", Kind: "string"},
			{Name: "active", Kind: "bool"},
		},
	}

	got, err := BuildCreateTableSQL(def)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL error: %v", err)
	}
	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS `customers`",
		"`id` BIGINT",
		"`name` TEXT",
		"`active` TINYINT(1)",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("script missing %q:\n%s", want, got)
		}
	}
}

// TestBuildDropTableSQL verifies the guarded drop statement.
func TestBuildDropTableSQL(t *testing.T) {
	t.Parallel()

	got, err := BuildDropTableSQL("customers")
	if err != nil {
		t.Fatalf("BuildDropTableSQL error: %v", err)
	}
	if got != "DROP TABLE IF EXISTS `customers`;" {
		t.Fatalf("drop = %q", got)
	}
}

// TestMapType verifies the logical-kind to MySQL type mapping.
func TestMapType(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"int", "BIGINT"},
		{"float", "DOUBLE"},
		{"bool", "TINYINT(1)"},
		{"string", "TEXT"},
		{"", "TEXT"},
	}
	for _, tc := range cases {
		if got := MapType(tc.in); got != tc.want {
			t.Fatalf("MapType(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
