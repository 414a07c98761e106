package dialect

import (
	"github.com/hlop3z/schemagen/internal/types"
)

// sqlite implements the Dialect interface for SQLite.
type sqlite struct{}

// SQLite returns the SQLite dialect implementation.
func SQLite() Dialect {
	return &sqlite{}
}

func (d *sqlite) Name() string {
	return "sqlite"
}

func (d *sqlite) Suffix() string {
	return "lt"
}

// -----------------------------------------------------------------------------
// Type mappings
// SQLite has dynamic typing with type affinities: TEXT, INTEGER, REAL, BLOB.
// Calendar types are stored as text and timestamps as integers.
// -----------------------------------------------------------------------------

func (d *sqlite) ColumnType(t *types.TypeDef) string {
	return t.SQLTypes.SQLite
}

func (d *sqlite) ResolveColumn(declared string) (ColumnType, error) {
	return resolveColumn(declared, d.Name(), d)
}
