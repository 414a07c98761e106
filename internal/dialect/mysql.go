package dialect

import (
	"github.com/hlop3z/schemagen/internal/types"
)

// mysql implements the Dialect interface for MySQL.
type mysql struct{}

// MySQL returns the MySQL dialect implementation.
func MySQL() Dialect {
	return &mysql{}
}

func (d *mysql) Name() string {
	return "mysql"
}

func (d *mysql) Suffix() string {
	return "my"
}

// -----------------------------------------------------------------------------
// Type mappings
// -----------------------------------------------------------------------------

func (d *mysql) ColumnType(t *types.TypeDef) string {
	return t.SQLTypes.MySQL
}

func (d *mysql) ResolveColumn(declared string) (ColumnType, error) {
	return resolveColumn(declared, d.Name(), d)
}
