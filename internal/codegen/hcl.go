package codegen

import (
	"strings"

	"github.com/hlop3z/schemagen/internal/alerr"
	"github.com/hlop3z/schemagen/internal/ast"
	"github.com/hlop3z/schemagen/internal/dialect"
)

// HCL renders an Atlas-style schema for one backend.
//
// Per table, column blocks come first in declaration order, then the
// primary key, foreign keys, and unique indexes. Unique index names carry
// the table name because SQLite index names are schema-wide. Tables are
// separated by one blank line and the output ends after the last closing
// brace. A type that the backend cannot map fails the whole render.
func HCL(structs []*ast.StructDef, schemaName string, d dialect.Dialect) (string, error) {
	w := &lineWriter{}
	w.line(`schema "%s" {}`, schemaName)

	for _, s := range structs {
		w.line("")
		if err := writeHCLTable(w, s, schemaName, d); err != nil {
			return "", err
		}
	}
	return w.String(), nil
}

func writeHCLTable(w *lineWriter, s *ast.StructDef, schemaName string, d dialect.Dialect) error {
	w.open(`table "%s" {`, s.Table)
	w.line("schema = schema.%s", schemaName)

	for _, f := range s.Fields {
		ct, err := d.ResolveColumn(f.DeclaredType)
		if err != nil {
			if e := alerr.As(err); e != nil {
				e.WithStruct(s.Name).WithField(f.Name).WithFile(s.Origin, f.Line)
			}
			return err
		}
		w.open(`column "%s" {`, f.Column)
		w.line("null = %t", ct.Nullable)
		w.line("type = %s", ct.Type)
		w.close("}")
	}

	if pk := s.PrimaryKey(); len(pk) > 0 {
		w.open("primary_key {")
		w.line("columns = [%s]", columnRefs(pk))
		w.close("}")
	}

	for _, fk := range s.ForeignKeys() {
		w.open(`foreign_key "%s" {`, fk.Name)
		w.line("columns = [column.%s]", fk.Column)
		w.line("ref_columns = [table.%s.column.%s]", fk.Ref.Table, fk.Ref.Column)
		w.close("}")
	}

	for _, f := range s.Uniques() {
		w.open(`index "uq_%s_%s" {`, s.Table, f.Column)
		w.line("unique  = true")
		w.line("columns = [column.%s]", f.Column)
		w.close("}")
	}

	w.close("}")
	return nil
}

func columnRefs(fields []*ast.FieldDef) string {
	refs := make([]string, len(fields))
	for i, f := range fields {
		refs[i] = "column." + f.Column
	}
	return strings.Join(refs, ", ")
}
