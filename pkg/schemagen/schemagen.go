// Package schemagen provides the public API for compiling annotated C++
// structs into sqlinq metadata headers and Atlas HCL schemas.
//
// Example:
//
//	gen, err := schemagen.New(
//	    schemagen.WithSchemaName("app"),
//	    schemagen.WithOutputDir("./generated"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	res, err := gen.Generate(ctx, []string{"include/user.hpp"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := gen.Write(res); err != nil {
//	    log.Fatal(err)
//	}
package schemagen

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/hlop3z/schemagen/internal/alerr"
	"github.com/hlop3z/schemagen/internal/ast"
	"github.com/hlop3z/schemagen/internal/codegen"
	"github.com/hlop3z/schemagen/internal/cst/cpp"
	"github.com/hlop3z/schemagen/internal/dialect"
	"github.com/hlop3z/schemagen/internal/extract"
)

// msgRecovered is the warning for an input with recovered syntax errors.
const msgRecovered = "syntax errors were recovered; declarations in the damaged region are skipped"

// File permissions for generated output.
const (
	dirPerm  = 0755
	filePerm = 0644
)

// Generator runs the annotation compiler.
// A Generator is not safe for concurrent use.
type Generator struct {
	config   *Config
	dialects []dialect.Dialect
	parser   *cpp.Parser
}

// File is one generated artifact.
type File struct {
	Path    string // Slash-separated, relative to the output directory
	Content string
}

// Warning is a non-fatal problem found in an input.
type Warning struct {
	File    string
	Line    int // 0 when unknown
	Message string
}

// Result is the in-memory output of a generation run.
type Result struct {
	Files    []File           // Header first, then one HCL file per dialect
	Structs  []*ast.StructDef // Every struct, in input then declaration order
	Inputs   []string         // Inputs that contributed at least one struct
	Warnings []Warning        // Inputs the parser had to recover from
}

// Empty reports whether the run found no structs.
func (r *Result) Empty() bool {
	return len(r.Structs) == 0
}

// files returns the artifacts keyed by path.
func (r *Result) files() map[string][]byte {
	m := make(map[string][]byte, len(r.Files))
	for _, f := range r.Files {
		m[f.Path] = []byte(f.Content)
	}
	return m
}

// New creates a Generator with the given options.
//
// WithSchemaName must be provided. Unknown dialect names are rejected here,
// before any input is read.
func New(opts ...Option) (*Generator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if strings.TrimSpace(cfg.SchemaName) == "" {
		return nil, alerr.New(alerr.ErrConfig, "schema name is required").
			WithHelp("pass --schema-name or set schema_name in schemagen.yaml")
	}
	if cfg.HeaderName == "" || cfg.LockFile == "" {
		return nil, alerr.New(alerr.ErrConfig, "header and lock file names must not be empty")
	}

	dialects, err := resolveDialects(cfg.Dialects)
	if err != nil {
		return nil, err
	}

	return &Generator{
		config:   cfg,
		dialects: dialects,
		parser:   cpp.NewParser(),
	}, nil
}

// resolveDialects maps backend names to dialects, dropping aliases of a
// backend already listed. No names selects every backend.
func resolveDialects(names []string) ([]dialect.Dialect, error) {
	if len(names) == 0 {
		return dialect.All(), nil
	}
	var out []dialect.Dialect
	seen := make(map[string]bool)
	for _, name := range names {
		d := dialect.Get(strings.ToLower(strings.TrimSpace(name)))
		if d == nil {
			return nil, alerr.Newf(alerr.ErrUnknownDialect, "unknown dialect %q", name).
				With("dialect", name).
				WithHelp("supported dialects: " + strings.Join(dialect.Names(), ", "))
		}
		if seen[d.Name()] {
			continue
		}
		seen[d.Name()] = true
		out = append(out, d)
	}
	return out, nil
}

// Close releases the parser.
func (g *Generator) Close() {
	g.parser.Close()
}

// Config returns a copy of the generator configuration.
func (g *Generator) Config() Config {
	return *g.config
}

// log logs a message if a logger is configured.
func (g *Generator) log(format string, v ...any) {
	if g.config.Logger != nil {
		g.config.Logger.Printf(format, v...)
	}
}

// Generate compiles inputs in order and assembles every artifact in memory.
// Nothing is written. The first failure aborts the run.
//
// Zero structs across all inputs is an empty, successful result.
func (g *Generator) Generate(ctx context.Context, inputs []string) (*Result, error) {
	res := &Result{}

	for _, path := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		structs, warn, err := g.compileFile(ctx, path)
		if err != nil {
			return nil, err
		}
		if warn != nil {
			res.Warnings = append(res.Warnings, *warn)
		}
		g.log("parsed %s: %d structs", path, len(structs))
		if len(structs) == 0 {
			continue
		}
		res.Structs = append(res.Structs, structs...)
		res.Inputs = append(res.Inputs, filepath.ToSlash(path))
	}

	if err := ast.ValidateSchema(res.Structs); err != nil {
		return nil, err
	}
	if res.Empty() {
		return res, nil
	}

	res.Files = append(res.Files, File{
		Path:    filepath.ToSlash(g.config.HeaderName),
		Content: codegen.Header(res.Structs, res.Inputs),
	})
	for _, d := range g.dialects {
		content, err := codegen.HCL(res.Structs, g.config.SchemaName, d)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, File{Path: dialect.FileName(d), Content: content})
	}

	return res, nil
}

// compileFile reads, parses, and extracts one input. A tree with recovered
// syntax errors still yields the structs outside the damaged region, along
// with a warning.
func (g *Generator) compileFile(ctx context.Context, path string) ([]*ast.StructDef, *Warning, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, alerr.Wrap(alerr.ErrReadInput, err, "failed to read input").
			WithFile(path, 0)
	}
	src = cpp.StripIncludeGuard(src)

	tree, err := g.parser.Parse(ctx, src)
	if err != nil {
		if e := alerr.As(err); e != nil {
			e.WithFile(path, 0)
		}
		return nil, nil, err
	}
	defer tree.Close()

	var warn *Warning
	if tree.HasError() {
		warn = &Warning{
			File:    path,
			Line:    tree.ErrorLine(),
			Message: msgRecovered,
		}
		g.log("warning: %s:%d: %s", warn.File, warn.Line, warn.Message)
	}

	structs, err := extract.Structs(tree.Root(), path)
	if err != nil {
		attachSource(err, src)
		return nil, nil, err
	}
	return structs, warn, nil
}

// attachSource adds the offending source line to err and, when the error
// names an attribute found on that line, a span under it.
func attachSource(err error, src []byte) {
	e := alerr.As(err)
	if e == nil {
		return
	}
	_, line, ok := e.Location()
	if !ok || line <= 0 {
		return
	}
	lines := strings.Split(string(src), "\n")
	if line > len(lines) {
		return
	}
	text := strings.TrimRight(lines[line-1], "\r")
	e.WithSource(text)

	key, _ := e.GetContext()["attribute"].(string)
	if key == "" {
		return
	}
	open := strings.Index(text, "[[")
	if open < 0 {
		return
	}
	if idx := strings.Index(text[open:], key); idx >= 0 {
		start := open + idx + 1
		e.WithSpan(start, start+len(key)-1)
	}
}

// Write writes every artifact of res into the output directory, then the
// lock file. Each file is written to a temp file and renamed into place.
// An empty result writes nothing.
func (g *Generator) Write(res *Result) error {
	if res.Empty() {
		return nil
	}

	for _, f := range res.Files {
		if err := g.writeFile(f.Path, []byte(f.Content)); err != nil {
			return err
		}
		g.log("wrote %s", g.outputPath(f.Path))
	}

	lock, err := lockfileFor(res)
	if err != nil {
		return err
	}
	return g.writeFile(g.config.LockFile, lock.Marshal())
}

// writeFile writes data to rel under the output directory atomically.
func (g *Generator) writeFile(rel string, data []byte) error {
	fullPath := g.outputPath(rel)

	if err := os.MkdirAll(filepath.Dir(fullPath), dirPerm); err != nil {
		return alerr.Wrap(alerr.ErrWriteOutput, err, "failed to create output directory").
			WithFile(fullPath, 0)
	}

	// Write to temp then rename (atomic)
	tmpFile := fullPath + ".tmp"
	if err := os.WriteFile(tmpFile, data, filePerm); err != nil {
		return alerr.Wrap(alerr.ErrWriteOutput, err, "failed to write output").
			WithFile(fullPath, 0)
	}
	if err := os.Rename(tmpFile, fullPath); err != nil {
		_ = os.Remove(tmpFile)
		return alerr.Wrapf(alerr.ErrWriteOutput, err, "failed to rename %s into place", filepath.Base(tmpFile)).
			WithFile(fullPath, 0)
	}
	return nil
}

// outputPath joins a slash-separated relative path onto the output directory.
func (g *Generator) outputPath(rel string) string {
	return filepath.Join(g.config.OutputDir, filepath.FromSlash(rel))
}
