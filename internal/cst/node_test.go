package cst

import "testing"

func TestElem(t *testing.T) {
	name := E("type_identifier", "User").At(3)
	body := E("field_declaration_list", "{}")
	root := E("struct_specifier", "struct User {}").
		Add(E("struct", "struct")).
		Set("name", name).
		Set("body", body)

	if root.Field("name") != Node(name) {
		t.Error("Field(name) should return the bound child")
	}
	if root.Field("missing") != nil {
		t.Error("Field(missing) should be nil")
	}
	if got := len(root.Children()); got != 3 {
		t.Errorf("Children() len = %d, want 3", got)
	}
	if root.Field("name").Line() != 3 {
		t.Errorf("Line() = %d, want 3", root.Field("name").Line())
	}
}

func TestChildHelpers(t *testing.T) {
	root := E("translation_unit", "",
		E("comment", "// a"),
		E("struct_specifier", "struct A {};"),
		E("declaration", "int x;"),
		E("struct_specifier", "struct B {};"),
	)

	structs := ChildrenOfKind(root, "struct_specifier")
	if len(structs) != 2 || structs[1].Text() != "struct B {};" {
		t.Errorf("ChildrenOfKind = %v", structs)
	}

	first := FirstChildOfKind(root, "struct_specifier")
	if first == nil || first.Text() != "struct A {};" {
		t.Errorf("FirstChildOfKind = %v", first)
	}
	if FirstChildOfKind(root, "namespace_definition") != nil {
		t.Error("FirstChildOfKind should be nil when absent")
	}

	field := E("field_declaration", "", E("storage_class_specifier", "static"))
	if !HasChildText(field, "storage_class_specifier", "static") {
		t.Error("HasChildText should find static")
	}
	if HasChildText(field, "storage_class_specifier", "extern") {
		t.Error("HasChildText should not match other text")
	}
}
