package attr

import (
	"strings"

	"github.com/hlop3z/schemagen/internal/alerr"
)

// ForeignKeyRef is the target of a foreign_key("table.column") attribute.
type ForeignKeyRef struct {
	Table  string
	Column string
}

// String returns the reference in table.column form.
func (r ForeignKeyRef) String() string {
	return r.Table + "." + r.Column
}

// ParseForeignKeyRef splits a foreign_key value on its single '.' separator.
// Zero or several separators, or an empty side, is a grammar error.
func ParseForeignKeyRef(value string) (ForeignKeyRef, error) {
	parts := strings.Split(value, ".")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return ForeignKeyRef{}, alerr.Newf(alerr.ErrGrammar, "foreign key reference %q must have the form table.column", value).
			With("reference", value)
	}
	return ForeignKeyRef{
		Table:  strings.TrimSpace(parts[0]),
		Column: strings.TrimSpace(parts[1]),
	}, nil
}
