// Package ast holds the intermediate schema model built from annotated structs.
// The model is built once per run by the extractor and read by every emitter;
// nothing mutates it after extraction.
package ast

import (
	"strconv"

	"github.com/hlop3z/schemagen/internal/alerr"
	"github.com/hlop3z/schemagen/internal/attr"
)

// Validation messages shared across StructDef and the schema checks.
const (
	msgTableNameRequired  = "table name is required"
	msgFieldNameRequired  = "field name is required"
	msgColumnNameRequired = "column name is required"
)

// StructDef represents one annotated struct and the table it maps to.
type StructDef struct {
	Name   string      // C++ struct name
	Table  string      // Storage table name (table("...") or the struct name)
	Fields []*FieldDef // Fields in declaration order

	// Source location (for error reporting)
	Origin string // Path of the input file that declared the struct
	Line   int    // 1-based line of the struct declaration
}

// FieldDef represents one data member of a struct.
type FieldDef struct {
	Name         string      // C++ member name
	DeclaredType string      // Type text exactly as declared
	Column       string      // Storage column name (name("...") or the member name)
	Attrs        *attr.Attrs // Validated attributes, with name already consumed
	Line         int         // 1-based line of the declaration
}

// ForeignKey is a foreign key constraint derived from a foreign_key attribute.
type ForeignKey struct {
	Name   string // Constraint name: fk_<column>_<n>, n counting from 1 per struct
	Column string
	Ref    attr.ForeignKeyRef
}

// Has reports whether the field carries the attribute of kind k.
func (f *FieldDef) Has(k attr.Kind) bool {
	return f.Attrs.HasKind(k)
}

// Markers returns the surviving attribute keys in annotation order.
func (f *FieldDef) Markers() []string {
	return f.Attrs.Keys()
}

// PrimaryKey returns the fields carrying primary_key, in declaration order.
// More than one field yields a composite key.
func (s *StructDef) PrimaryKey() []*FieldDef {
	return s.fieldsWith(attr.PrimaryKey)
}

// Uniques returns the fields carrying unique, in declaration order.
func (s *StructDef) Uniques() []*FieldDef {
	return s.fieldsWith(attr.Unique)
}

func (s *StructDef) fieldsWith(k attr.Kind) []*FieldDef {
	var out []*FieldDef
	for _, f := range s.Fields {
		if f.Has(k) {
			out = append(out, f)
		}
	}
	return out
}

// ForeignKeys returns one constraint per foreign_key field, numbered in
// declaration order. References that do not parse are skipped; Validate
// reports them.
func (s *StructDef) ForeignKeys() []ForeignKey {
	var out []ForeignKey
	for _, f := range s.Fields {
		value, ok := f.Attrs.Get(attr.ForeignKey.String())
		if !ok {
			continue
		}
		ref, err := attr.ParseForeignKeyRef(value)
		if err != nil {
			continue
		}
		out = append(out, ForeignKey{
			Name:   "fk_" + f.Column + "_" + strconv.Itoa(len(out)+1),
			Column: f.Column,
			Ref:    ref,
		})
	}
	return out
}

// checkDuplicateColumns returns an error if a storage column is used twice.
func (s *StructDef) checkDuplicateColumns() error {
	seen := make(map[string]*FieldDef)
	for _, f := range s.Fields {
		if first, ok := seen[f.Column]; ok {
			return alerr.Newf(alerr.ErrDuplicateColumn, "column %q is declared twice in table %q", f.Column, s.Table).
				WithStruct(s.Name).
				WithField(f.Name).
				With("column", f.Column).
				WithFile(s.Origin, f.Line).
				WithNote("first declared by field " + first.Name).
				WithHelp(`give one of the fields a distinct name("...")`)
		}
		seen[f.Column] = f
	}
	return nil
}

// Validate checks that the struct definition is well-formed.
// Attributes are re-validated so hand-built models get the same checks.
func (s *StructDef) Validate() error {
	if s.Table == "" {
		return alerr.New(alerr.EInternalError, msgTableNameRequired).
			WithStruct(s.Name).
			WithFile(s.Origin, s.Line)
	}
	for _, f := range s.Fields {
		if f.Name == "" {
			return alerr.New(alerr.EInternalError, msgFieldNameRequired).
				WithStruct(s.Name).
				WithFile(s.Origin, f.Line)
		}
		if f.Column == "" {
			return alerr.New(alerr.EInternalError, msgColumnNameRequired).
				WithStruct(s.Name).
				WithField(f.Name).
				WithFile(s.Origin, f.Line)
		}
		if f.Attrs.Has(attr.Name.String()) {
			return alerr.New(alerr.EInternalError, "name attribute must be consumed during extraction").
				WithStruct(s.Name).
				WithField(f.Name)
		}
		if err := attr.Validate(f.Attrs, f.Name); err != nil {
			if e := alerr.As(err); e != nil {
				e.WithStruct(s.Name).WithFile(s.Origin, f.Line)
			}
			return err
		}
	}
	return s.checkDuplicateColumns()
}

// ValidateSchema validates every struct and checks that no two structs map
// to the same table.
func ValidateSchema(structs []*StructDef) error {
	seen := make(map[string]*StructDef)
	for _, s := range structs {
		if err := s.Validate(); err != nil {
			return err
		}
		if first, ok := seen[s.Table]; ok {
			return alerr.Newf(alerr.ErrDuplicateTable, "table %q is declared by both %s and %s", s.Table, first.Name, s.Name).
				WithStruct(s.Name).
				With("table", s.Table).
				WithFile(s.Origin, s.Line).
				WithNote("first declared by " + first.Name + " in " + first.Origin).
				WithHelp(`give one of the structs a distinct [[table("...")]]`)
		}
		seen[s.Table] = s
	}
	return nil
}

// CountFields returns the total number of fields across structs.
func CountFields(structs []*StructDef) int {
	n := 0
	for _, s := range structs {
		n += len(s.Fields)
	}
	return n
}
