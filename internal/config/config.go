// Package config defines the configuration model for a single load run. It
// is intentionally small, explicit, and dependency-free: values arrive from
// CLI flags and environment variables and are passed through the program
// without additional glue code.
package config

import "fmt"

// Policy governs behavior when the destination table already exists.
type Policy string

const (
	// PolicyFail errors out when the destination table already exists.
	PolicyFail Policy = "fail"
	// PolicyReplace drops and recreates the destination table.
	PolicyReplace Policy = "replace"
	// PolicyAppend adds rows to the existing table (created when absent).
	PolicyAppend Policy = "append"
)

// ParsePolicy validates a conflict-policy string against the enumerated set.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyFail, PolicyReplace, PolicyAppend:
		return Policy(s), nil
	}
	return "", fmt.Errorf("invalid if-exists policy %q (want fail, replace, or append)", s)
}

// Job describes one load run: the input file, the destination, and how to
// get there. It is immutable for the duration of the run.
type Job struct {
	// CSVPath is the local path of the delimited input file.
	CSVPath string

	// Table is the destination table name, optionally schema-qualified.
	Table string

	// Driver selects the storage backend kind (e.g. "mssql", "postgres",
	// "mysql", "sqlite"). The registered backends define the valid set.
	Driver string

	// Server is the database server address. For sqlite it is unused; the
	// Database field carries the file path instead.
	Server string

	// Database is the database name (or, for sqlite, the database file path).
	Database string

	// Username and Password are the credential pair for credential-mode
	// authentication. Both must be non-empty unless Trusted is set.
	Username string
	Password string

	// Trusted selects integrated authentication; Username/Password are
	// ignored when set.
	Trusted bool

	// Delimiter is the CSV field separator. Zero means ','.
	Delimiter rune

	// Encoding is the input text encoding name. Empty means UTF-8.
	Encoding string

	// IfExists is the conflict policy applied to the destination table.
	IfExists Policy
}
