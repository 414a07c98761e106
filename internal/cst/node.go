// Package cst defines the narrow concrete-syntax-tree view the extractor walks.
//
// Only five queries are needed: node kind, named child lookup, ordered
// children, source text, and line. Any parser that can answer them can feed
// the pipeline; tests use the in-memory Elem.
package cst

// Node is one node of a concrete syntax tree.
type Node interface {
	// Kind returns the grammar node type (e.g., "struct_specifier").
	Kind() string

	// Field returns the child bound to a grammar field name, or nil.
	Field(name string) Node

	// Children returns all children in source order.
	Children() []Node

	// Text returns the exact source text the node spans.
	Text() string

	// Line returns the 1-based source line the node starts on.
	Line() int
}

// ChildrenOfKind returns the direct children of n with the given kind.
func ChildrenOfKind(n Node, kind string) []Node {
	var out []Node
	for _, c := range n.Children() {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildOfKind returns the first direct child of n with the given kind, or nil.
func FirstChildOfKind(n Node, kind string) Node {
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// HasChildText reports whether a direct child of the given kind has exactly text.
func HasChildText(n Node, kind, text string) bool {
	for _, c := range ChildrenOfKind(n, kind) {
		if c.Text() == text {
			return true
		}
	}
	return false
}
