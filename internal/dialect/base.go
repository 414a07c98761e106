package dialect

import (
	"github.com/hlop3z/schemagen/internal/alerr"
	"github.com/hlop3z/schemagen/internal/types"
)

// resolveColumn is the shared lookup behind every ResolveColumn.
// There is no fallback type: an unlisted spelling is an error.
func resolveColumn(declared, dialectName string, mapper TypeMapper) (ColumnType, error) {
	inner, nullable := types.Unwrap(declared)

	def := types.Lookup(inner)
	if def == nil {
		e := alerr.Newf(alerr.ErrUnsupportedType, "unsupported type %q for %s", declared, dialectName).
			With("type", declared).
			With("dialect", dialectName)
		if hint := alerr.SuggestSimilar(inner, types.Spellings()); hint != "" {
			e.WithHelp(hint)
		}
		return ColumnType{}, e
	}

	return ColumnType{Type: mapper.ColumnType(def), Nullable: nullable}, nil
}
