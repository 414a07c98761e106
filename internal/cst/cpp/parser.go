// Package cpp adapts tree-sitter's C++ grammar to the cst.Node interface.
package cpp

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"github.com/hlop3z/schemagen/internal/alerr"
	"github.com/hlop3z/schemagen/internal/cst"
)

// Parser parses C++ source into syntax trees.
// A Parser is not safe for concurrent use.
type Parser struct {
	p *sitter.Parser
}

// NewParser returns a parser configured for C++.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(cpp.GetLanguage())
	return &Parser{p: p}
}

// Close releases the underlying parser.
func (p *Parser) Close() {
	p.p.Close()
}

// Parse parses src. The returned tree must be closed by the caller, and no
// node obtained from it may be used after Close.
func (p *Parser) Parse(ctx context.Context, src []byte) (*Tree, error) {
	t, err := p.p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, alerr.Wrap(alerr.ErrSyntaxTree, err, "failed to parse C++ source")
	}
	if t == nil {
		return nil, alerr.New(alerr.ErrSyntaxTree, "parser returned no tree")
	}
	return &Tree{t: t, src: src}, nil
}

// Tree is a parsed C++ translation unit.
type Tree struct {
	t   *sitter.Tree
	src []byte
}

// Root returns the translation_unit node.
func (t *Tree) Root() cst.Node {
	return wrap(t.t.RootNode(), t.src)
}

// HasError reports whether the parser had to recover from syntax errors.
// Recovered regions appear as ERROR nodes and are ignored by extraction.
func (t *Tree) HasError() bool {
	return t.t.RootNode().HasError()
}

// ErrorLine returns the 1-based line of the first ERROR or MISSING node,
// or 0 for a clean tree.
func (t *Tree) ErrorLine() int {
	return firstErrorLine(t.t.RootNode())
}

func firstErrorLine(n *sitter.Node) int {
	if n.IsError() || n.IsMissing() {
		return int(n.StartPoint().Row) + 1
	}
	if !n.HasError() {
		return 0
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil {
			if line := firstErrorLine(c); line > 0 {
				return line
			}
		}
	}
	return 0
}

// Close releases the tree.
func (t *Tree) Close() {
	t.t.Close()
}

// node is a live view over a tree-sitter node.
type node struct {
	n   *sitter.Node
	src []byte
}

// wrap returns nil for a nil node so callers can compare against nil.
func wrap(n *sitter.Node, src []byte) cst.Node {
	if n == nil {
		return nil
	}
	return &node{n: n, src: src}
}

func (n *node) Kind() string {
	return n.n.Type()
}

func (n *node) Field(name string) cst.Node {
	return wrap(n.n.ChildByFieldName(name), n.src)
}

func (n *node) Children() []cst.Node {
	count := int(n.n.ChildCount())
	out := make([]cst.Node, 0, count)
	for i := 0; i < count; i++ {
		if c := n.n.Child(i); c != nil {
			out = append(out, &node{n: c, src: n.src})
		}
	}
	return out
}

func (n *node) Text() string {
	return n.n.Content(n.src)
}

func (n *node) Line() int {
	return int(n.n.StartPoint().Row) + 1
}
