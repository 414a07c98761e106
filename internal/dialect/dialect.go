// Package dialect provides backend-specific column type resolution.
// Each dialect maps the canonical types to its own column types and names
// the schema file it is emitted into.
package dialect

import (
	"github.com/hlop3z/schemagen/internal/types"
)

// Dialect defines the interface for a database backend.
// Implementations exist for MySQL and SQLite.
type Dialect interface {
	// Name returns the dialect name (mysql, sqlite).
	Name() string

	// Suffix returns the short tag used in the schema file name.
	// MySQL: my (schema.my.hcl)
	// SQLite: lt (schema.lt.hcl)
	Suffix() string

	TypeMapper

	// ResolveColumn maps a declared C++ type to a column type.
	// std::optional<T> resolves to T and is nullable.
	ResolveColumn(declared string) (ColumnType, error)
}

// TypeMapper maps a canonical type to the backend's column type.
type TypeMapper interface {
	ColumnType(t *types.TypeDef) string
}

// ColumnType is a resolved backend column type.
type ColumnType struct {
	Type     string
	Nullable bool
}

// Get returns the dialect implementation for the given name.
// Valid names: "mysql", "sqlite", "sqlite3".
// Returns nil if the dialect is not supported.
func Get(name string) Dialect {
	switch name {
	case "mysql":
		return MySQL()
	case "sqlite", "sqlite3":
		return SQLite()
	default:
		return nil
	}
}

// Names returns the list of supported dialect names.
func Names() []string {
	return []string{"mysql", "sqlite"}
}

// All returns every supported dialect in Names order.
func All() []Dialect {
	return []Dialect{MySQL(), SQLite()}
}

// FileName returns the schema file name for a dialect (e.g., schema.my.hcl).
func FileName(d Dialect) string {
	return "schema." + d.Suffix() + ".hcl"
}
