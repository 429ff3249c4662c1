package dataset

import (
	"reflect"
	"testing"
)

// TestInferKinds verifies per-column kind sniffing across mixed datasets.
func TestInferKinds(t *testing.T) {
	t.Parallel()

	d := &Dataset{
		Columns: []string{"id", "price", "active", "name", "empty"},
		Rows: [][]any{
			{"1", "9.50", "true", "alice", nil},
			{"2", "3", "false", "bob", nil},
			{"3", nil, "true", "7", nil},
		},
	}

	got := d.InferKinds()
	want := map[string]string{
		"id":     "int",
		"price":  "float",
		"active": "bool",
		"name":   "string",
		"empty":  "string",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("InferKinds() = %v, want %v", got, want)
	}
}

// TestInferKindsIntBeatsFloat ensures integer columns are not widened to float.
func TestInferKindsIntBeatsFloat(t *testing.T) {
	t.Parallel()

	d := &Dataset{
		Columns: []string{"n"},
		Rows:    [][]any{{"10"}, {"-4"}, {"0"}},
	}
	if got := d.InferKinds()["n"]; got != "int" {
		t.Fatalf("kind = %q, want int", got)
	}
}

// TestCoerce verifies in-place conversion of cells to typed values.
func TestCoerce(t *testing.T) {
	t.Parallel()

	d := &Dataset{
		Columns: []string{"id", "price", "active", "name"},
		Rows: [][]any{
			{"1", "9.50", "true", "alice"},
			{"2", "3", "false", nil},
		},
	}
	d.Coerce(d.InferKinds())

	want := [][]any{
		{int64(1), 9.5, true, "alice"},
		{int64(2), float64(3), false, nil},
	}
	if !reflect.DeepEqual(d.Rows, want) {
		t.Fatalf("Coerce rows = %v, want %v", d.Rows, want)
	}
}

// TestHead verifies the preview helper clamps to the available row count.
func TestHead(t *testing.T) {
	t.Parallel()

	d := &Dataset{
		Columns: []string{"a"},
		Rows:    [][]any{{"1"}, {"2"}},
	}
	if got := len(d.Head(3)); got != 2 {
		t.Fatalf("Head(3) returned %d rows, want 2", got)
	}
	if got := len(d.Head(1)); got != 1 {
		t.Fatalf("Head(1) returned %d rows, want 1", got)
	}
}
