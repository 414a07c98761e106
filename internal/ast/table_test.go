package ast

import (
	"testing"

	"github.com/hlop3z/schemagen/internal/alerr"
	"github.com/hlop3z/schemagen/internal/attr"
)

func attrs(kv ...string) *attr.Attrs {
	a := attr.New()
	for i := 0; i+1 < len(kv); i += 2 {
		a.Set(kv[i], kv[i+1])
	}
	return a
}

func field(name, column string, a *attr.Attrs) *FieldDef {
	return &FieldDef{Name: name, DeclaredType: "int", Column: column, Attrs: a}
}

// -----------------------------------------------------------------------------
// Derived Constraint Tests
// -----------------------------------------------------------------------------

func TestPrimaryKey(t *testing.T) {
	s := &StructDef{Name: "Pair", Table: "pairs", Fields: []*FieldDef{
		field("a", "a", attrs("primary_key", "")),
		field("b", "b", attrs()),
		field("c", "c", attrs("primary_key", "", "autoincrement", "")),
	}}

	pk := s.PrimaryKey()
	if len(pk) != 2 || pk[0].Column != "a" || pk[1].Column != "c" {
		t.Errorf("PrimaryKey() = %v", pk)
	}

	none := &StructDef{Name: "N", Table: "n", Fields: []*FieldDef{field("x", "x", attrs())}}
	if len(none.PrimaryKey()) != 0 {
		t.Error("struct without primary_key should have no key")
	}
}

func TestForeignKeys(t *testing.T) {
	s := &StructDef{Name: "Order", Table: "orders", Fields: []*FieldDef{
		field("id", "id", attrs("primary_key", "")),
		field("user", "user_id", attrs("foreign_key", "users.id")),
		field("note", "note", attrs()),
		field("shop", "shop_id", attrs("foreign_key", "shops.shop_id")),
	}}

	fks := s.ForeignKeys()
	if len(fks) != 2 {
		t.Fatalf("ForeignKeys() len = %d, want 2", len(fks))
	}

	tests := []struct {
		name, column, table, refColumn string
	}{
		{"fk_user_id_1", "user_id", "users", "id"},
		{"fk_shop_id_2", "shop_id", "shops", "shop_id"},
	}
	for i, tt := range tests {
		fk := fks[i]
		if fk.Name != tt.name || fk.Column != tt.column || fk.Ref.Table != tt.table || fk.Ref.Column != tt.refColumn {
			t.Errorf("fks[%d] = %+v, want %+v", i, fk, tt)
		}
	}
}

func TestForeignKeys_NumberingIsPerStruct(t *testing.T) {
	mk := func(name string) *StructDef {
		return &StructDef{Name: name, Table: name, Fields: []*FieldDef{
			field("b", "b", attrs("foreign_key", "t.id")),
		}}
	}
	for _, s := range []*StructDef{mk("x"), mk("y")} {
		if got := s.ForeignKeys()[0].Name; got != "fk_b_1" {
			t.Errorf("%s first fk = %q, want fk_b_1", s.Name, got)
		}
	}
}

func TestUniques(t *testing.T) {
	s := &StructDef{Name: "U", Table: "u", Fields: []*FieldDef{
		field("email", "email", attrs("unique", "")),
		field("name", "name", attrs()),
		field("slug", "slug", attrs("unique", "", "default", "x")),
	}}
	u := s.Uniques()
	if len(u) != 2 || u[0].Name != "email" || u[1].Name != "slug" {
		t.Errorf("Uniques() = %v", u)
	}
}

func TestMarkers(t *testing.T) {
	f := field("id", "user_id", attrs("primary_key", "", "autoincrement", ""))
	if got := f.Markers(); len(got) != 2 || got[0] != "primary_key" || got[1] != "autoincrement" {
		t.Errorf("Markers() = %v", got)
	}
}

// -----------------------------------------------------------------------------
// Validation Tests
// -----------------------------------------------------------------------------

func TestStructValidate(t *testing.T) {
	tests := []struct {
		name string
		s    *StructDef
		code alerr.Code
	}{
		{
			name: "valid",
			s: &StructDef{Name: "A", Table: "a", Fields: []*FieldDef{
				field("id", "id", attrs("primary_key", "")),
			}},
		},
		{
			name: "no fields is valid",
			s:    &StructDef{Name: "A", Table: "a"},
		},
		{
			name: "missing table",
			s:    &StructDef{Name: "A"},
			code: alerr.EInternalError,
		},
		{
			name: "missing column",
			s:    &StructDef{Name: "A", Table: "a", Fields: []*FieldDef{field("id", "", attrs())}},
			code: alerr.EInternalError,
		},
		{
			name: "name not consumed",
			s:    &StructDef{Name: "A", Table: "a", Fields: []*FieldDef{field("id", "id", attrs("name", "x"))}},
			code: alerr.EInternalError,
		},
		{
			name: "invalid attribute",
			s:    &StructDef{Name: "A", Table: "a", Fields: []*FieldDef{field("id", "id", attrs("nullable", ""))}},
			code: alerr.ErrUnknownAttribute,
		},
		{
			name: "duplicate column",
			s: &StructDef{Name: "A", Table: "a", Fields: []*FieldDef{
				field("id", "id", attrs()),
				field("other", "id", attrs()),
			}},
			code: alerr.ErrDuplicateColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !alerr.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestStructValidate_DuplicateColumnContext(t *testing.T) {
	s := &StructDef{Name: "User", Table: "users", Origin: "user.hpp", Fields: []*FieldDef{
		{Name: "id", Column: "id", Attrs: attrs(), Line: 2},
		{Name: "legacy", Column: "id", Attrs: attrs(), Line: 3},
	}}
	e := alerr.As(s.Validate())
	if e == nil {
		t.Fatal("expected *alerr.Error")
	}
	ctx := e.GetContext()
	if ctx["struct"] != "User" || ctx["field"] != "legacy" || ctx["column"] != "id" {
		t.Errorf("context = %v", ctx)
	}
	if file, line, ok := e.Location(); !ok || file != "user.hpp" || line != 3 {
		t.Errorf("Location() = %s:%d %v", file, line, ok)
	}
}

func TestValidateSchema(t *testing.T) {
	a := &StructDef{Name: "Account", Table: "accounts", Origin: "a.hpp"}
	b := &StructDef{Name: "Legacy", Table: "accounts", Origin: "b.hpp"}
	c := &StructDef{Name: "User", Table: "users", Origin: "b.hpp"}

	if err := ValidateSchema([]*StructDef{a, c}); err != nil {
		t.Errorf("ValidateSchema() error = %v", err)
	}
	if err := ValidateSchema(nil); err != nil {
		t.Errorf("empty schema should validate, got %v", err)
	}

	err := ValidateSchema([]*StructDef{a, c, b})
	if !alerr.Is(err, alerr.ErrDuplicateTable) {
		t.Fatalf("ValidateSchema() = %v, want duplicate table", err)
	}
	if ctx := alerr.As(err).GetContext(); ctx["struct"] != "Legacy" || ctx["table"] != "accounts" {
		t.Errorf("context = %v", ctx)
	}
}

func TestCountFields(t *testing.T) {
	structs := []*StructDef{
		{Fields: []*FieldDef{{}, {}}},
		{},
		{Fields: []*FieldDef{{}}},
	}
	if got := CountFields(structs); got != 3 {
		t.Errorf("CountFields() = %d, want 3", got)
	}
}
