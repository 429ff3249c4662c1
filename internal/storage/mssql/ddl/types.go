// Package ddl contains MSSQL-specific helpers for generating DDL.
//
// It maps the logical kinds inferred from the dataset into SQL Server types.
// The mapping is intentionally conservative and biased toward safe,
// widely-supported choices.
package ddl

import "strings"

// MapType maps a logical kind string into a SQL Server column type.
// Unknown or empty kinds fall back to NVARCHAR(MAX).
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint":
		return "BIGINT"
	case "bool", "boolean":
		return "BIT"
	case "float", "double", "numeric", "decimal":
		return "DECIMAL(38, 10)"
	default:
		// Default to a flexible Unicode string type.
		return "NVARCHAR(MAX)"
	}
}
