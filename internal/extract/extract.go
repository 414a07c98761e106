// Package extract walks a C++ syntax tree and builds the schema model.
package extract

import (
	"regexp"
	"strings"

	"github.com/hlop3z/schemagen/internal/alerr"
	"github.com/hlop3z/schemagen/internal/ast"
	"github.com/hlop3z/schemagen/internal/attr"
	"github.com/hlop3z/schemagen/internal/cst"
)

// Grammar node kinds and field names the walk depends on.
const (
	kindStruct       = "struct_specifier"
	kindFieldDecl    = "field_declaration"
	kindAttribute    = "attribute_declaration"
	kindFieldIdent   = "field_identifier"
	kindStorageClass = "storage_class_specifier"
	kindFuncDecl     = "function_declarator"

	fieldName       = "name"
	fieldBody       = "body"
	fieldType       = "type"
	fieldDeclarator = "declarator"
)

// tablePattern finds table("...") anywhere in a struct annotation.
// The key is matched case-insensitively; the value is kept as written.
var tablePattern = regexp.MustCompile(`(?i)table\s*\(\s*"([^"]+)"\s*\)`)

// Structs extracts every top-level struct definition under root.
// origin is the input path recorded on each struct for diagnostics.
//
// Anonymous structs and forward declarations are skipped. A struct with no
// eligible fields is still returned. The first invalid annotation aborts the
// walk.
func Structs(root cst.Node, origin string) ([]*ast.StructDef, error) {
	var out []*ast.StructDef
	for _, n := range cst.ChildrenOfKind(root, kindStruct) {
		nameNode := n.Field(fieldName)
		body := n.Field(fieldBody)
		if nameNode == nil || body == nil {
			continue
		}

		s := &ast.StructDef{
			Name:   nameNode.Text(),
			Origin: origin,
			Line:   n.Line(),
		}
		s.Table = TableName(cst.FirstChildOfKind(n, kindAttribute), s.Name)

		for _, fd := range cst.ChildrenOfKind(body, kindFieldDecl) {
			f, err := extractField(fd)
			if err != nil {
				if e := alerr.As(err); e != nil {
					e.WithStruct(s.Name).WithFile(origin, fd.Line())
				}
				return nil, err
			}
			if f != nil {
				s.Fields = append(s.Fields, f)
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// TableName returns the table("...") value of a struct annotation, or
// fallback when the annotation or the key is absent.
func TableName(annotation cst.Node, fallback string) string {
	if annotation == nil {
		return fallback
	}
	if m := tablePattern.FindStringSubmatch(annotation.Text()); m != nil {
		return m[1]
	}
	return fallback
}

// extractField returns nil, nil for declarations that are not data members:
// methods and static members. A member declared through a pointer, array or
// reference declarator has no column type and is an error.
func extractField(fd cst.Node) (*ast.FieldDef, error) {
	decl := fd.Field(fieldDeclarator)
	typ := fd.Field(fieldType)
	if decl == nil || typ == nil || decl.Kind() == kindFuncDecl {
		return nil, nil
	}
	if cst.HasChildText(fd, kindStorageClass, "static") {
		return nil, nil
	}
	if decl.Kind() != kindFieldIdent {
		return nil, unsupportedDeclarator(typ, decl)
	}

	f := &ast.FieldDef{
		Name:         decl.Text(),
		DeclaredType: typ.Text(),
		Column:       decl.Text(),
		Line:         fd.Line(),
	}

	if a := cst.FirstChildOfKind(fd, kindAttribute); a != nil {
		attrs, err := attr.ParseAndValidate(a.Text(), f.Name)
		if err != nil {
			return nil, err
		}
		f.Attrs = attrs
	} else {
		f.Attrs = attr.New()
	}

	if alias, ok := f.Attrs.Pop(attr.Name.String()); ok {
		f.Column = alias
	}
	return f, nil
}

// unsupportedDeclarator reports a member whose declarator wraps its name,
// spelling the type as declared: "int*", "char[32]", "int&".
func unsupportedDeclarator(typ, decl cst.Node) error {
	name := decl.Text()
	if ident := memberName(decl); ident != nil {
		name = ident.Text()
	}
	suffix := strings.Replace(decl.Text(), name, "", 1)
	spelling := typ.Text() + strings.Join(strings.Fields(suffix), "")

	return alerr.Newf(alerr.ErrUnsupportedType, "unsupported type %q for field %q", spelling, name).
		WithField(name).
		With("type", spelling).
		WithHelp("pointer, array and reference members have no column type; use a value type")
}

// memberName follows nested declarators down to the field identifier.
// Reference declarators carry their inner declarator as a plain child.
func memberName(decl cst.Node) cst.Node {
	for decl != nil {
		if decl.Kind() == kindFieldIdent {
			return decl
		}
		next := decl.Field(fieldDeclarator)
		if next == nil {
			for _, c := range decl.Children() {
				if c.Kind() == kindFieldIdent || strings.HasSuffix(c.Kind(), "_declarator") {
					next = c
					break
				}
			}
		}
		decl = next
	}
	return nil
}
