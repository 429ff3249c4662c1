package mysql

import (
	"context"
	"testing"
)

// TestMyIdent verifies backtick quoting with escape handling.
func TestMyIdent(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"customers", "`customers`"},
		{"weird`name", "`weird``name`"},
	}
	for _, tc := range cases {
		if got := myIdent(tc.in); got != tc.want {
			t.Fatalf("myIdent(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

// TestMyFQN verifies per-segment quoting of qualified names.
func TestMyFQN(t *testing.T) {
	t.Parallel()

	if got := myFQN("shop.customers"); got != "`shop`.`customers`" {
		t.Fatalf("myFQN = %q", got)
	}
	if got := myFQN("customers"); got != "`customers`" {
		t.Fatalf("myFQN = %q", got)
	}
}

// TestBareTable verifies schema stripping for catalog lookups.
func TestBareTable(t *testing.T) {
	t.Parallel()

	if got := bareTable("shop.customers"); got != "customers" {
		t.Fatalf("bareTable = %q", got)
	}
	if got := bareTable("customers"); got != "customers" {
		t.Fatalf("bareTable = %q", got)
	}
}

// TestCopyFromEmptyRows verifies the zero-row short circuit needs no database.
func TestCopyFromEmptyRows(t *testing.T) {
	t.Parallel()

	r := &Repository{cfg: Config{Table: "t"}}
	n, err := r.CopyFrom(context.Background(), []string{"a"}, nil)
	if err != nil {
		t.Fatalf("CopyFrom error: %v", err)
	}
	if n != 0 {
		t.Fatalf("n = %d, want 0", n)
	}
}
