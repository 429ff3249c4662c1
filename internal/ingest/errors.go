package ingest

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for the load pipeline. Every error returned from Run
// wraps exactly one of these, so callers can map failures to exit codes or
// retry decisions with errors.Is instead of string matching.
var (
	// ErrFileNotFound means the input file is missing or not a regular file.
	ErrFileNotFound = errors.New("file not found")

	// ErrParse means the input file could not be parsed as delimited text.
	ErrParse = errors.New("parse error")

	// ErrInvalidConfig means the job settings are incomplete or inconsistent.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrLoad means connecting, preparing the table, or loading rows failed.
	ErrLoad = errors.New("load error")
)

// Exit codes reported by the CLI, one per error kind. Success, the empty-file
// no-op, and a verification-only warning all exit zero.
const (
	ExitOK            = 0
	ExitUsage         = 1
	ExitFileNotFound  = 2
	ExitParse         = 3
	ExitInvalidConfig = 4
	ExitLoad          = 5
)

// ExitCode maps a Run error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrFileNotFound):
		return ExitFileNotFound
	case errors.Is(err, ErrParse):
		return ExitParse
	case errors.Is(err, ErrInvalidConfig):
		return ExitInvalidConfig
	case errors.Is(err, ErrLoad):
		return ExitLoad
	default:
		return ExitLoad
	}
}

// classify tags err with one of the sentinel kinds while keeping the original
// error chain intact for errors.Is/As.
func classify(kind, err error) error {
	return fmt.Errorf("%w: %w", kind, err)
}
