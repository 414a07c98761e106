package codegen

import (
	"strings"

	"github.com/hlop3z/schemagen/internal/ast"
)

// HeaderPath is the default location of the metadata header, relative to the
// output directory.
const HeaderPath = "include/table_schema.hpp"

// Header renders the sqlinq metadata header: one Table<S> specialization per
// struct, each listing every field once in declaration order.
//
// includes are written verbatim as quoted #include lines, in order.
func Header(structs []*ast.StructDef, includes []string) string {
	w := &lineWriter{}
	w.line("#pragma once")
	w.line("#include <sqlinq/column.hpp>")
	w.line("#include <sqlinq/table.hpp>")
	w.line("")
	for _, inc := range includes {
		w.line(`#include "%s"`, inc)
	}
	w.line("")
	w.line("namespace sqlinq {")
	w.line("")

	for _, s := range structs {
		writeTable(w, s)
		w.line("")
	}

	w.line("} // namespace sqlinq")
	return w.String()
}

func writeTable(w *lineWriter, s *ast.StructDef) {
	w.open("template <> struct Table<%s> {", s.Name)
	for i, f := range s.Fields {
		w.line("SQLINQ_COLUMN(%d, %s, %s)", i, s.Name, f.Name)
	}
	w.line("")

	w.open("static consteval auto meta() {")
	w.line("using namespace sqlinq;")
	w.open("return make_table<%s>(", s.Name)
	if len(s.Fields) == 0 {
		w.line(`"%s"`, s.Table)
	} else {
		w.line(`"%s",`, s.Table)
	}
	for i, f := range s.Fields {
		comma := ","
		if i == len(s.Fields)-1 {
			comma = ""
		}
		w.line(`SQLINQ_COLUMN_META(%s, %s, "%s")%s%s`, s.Name, f.Name, f.Column, markerCalls(f), comma)
	}
	w.close(");")
	w.close("}")
	w.close("};")
}

// markerCalls renders each surviving attribute as a chained .key() call.
func markerCalls(f *ast.FieldDef) string {
	var sb strings.Builder
	for _, m := range f.Markers() {
		sb.WriteString(".")
		sb.WriteString(m)
		sb.WriteString("()")
	}
	return sb.String()
}
