package schemagen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlop3z/schemagen/internal/alerr"
	"github.com/hlop3z/schemagen/internal/codegen"
)

const userSource = `#ifndef USER_HPP
#define USER_HPP
#include <string>
#include <optional>

struct [[table("users")]] User {
  [[primary_key, autoincrement]] int id;
  [[unique, name("email_address")]] std::string email;
  std::optional<std::string> nickname;
};

#endif
`

const postSource = `#pragma once

struct [[table("posts")]] Post {
  [[primary_key]] int id;
  [[foreign_key("users.id")]] int author;
  double score;
};
`

const emptySource = `#pragma once

struct Forward;
int helper(int x);
`

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

// writeInput writes content to name under dir and returns the path.
func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	opts = append([]Option{WithSchemaName("app"), WithOutputDir(t.TempDir())}, opts...)
	g, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g
}

// -----------------------------------------------------------------------------
// New
// -----------------------------------------------------------------------------

func TestNew_Defaults(t *testing.T) {
	g, err := New(WithSchemaName("app"))
	require.NoError(t, err)
	defer g.Close()

	cfg := g.Config()
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, codegen.HeaderPath, cfg.HeaderName)
	assert.Equal(t, "schemagen.lock", cfg.LockFile)
	require.Len(t, g.dialects, 2)
	assert.Equal(t, "mysql", g.dialects[0].Name())
	assert.Equal(t, "sqlite", g.dialects[1].Name())
}

func TestNew_MissingSchemaName(t *testing.T) {
	_, err := New(WithSchemaName("  "))
	require.Error(t, err)
	assert.True(t, alerr.Is(err, alerr.ErrConfig))
}

func TestNew_UnknownDialect(t *testing.T) {
	_, err := New(WithSchemaName("app"), WithDialects("postgres"))
	require.Error(t, err)
	assert.True(t, alerr.Is(err, alerr.ErrUnknownDialect))
	assert.Contains(t, alerr.As(err).Helps()[0], "mysql, sqlite")
}

func TestNew_DialectAliasesCollapse(t *testing.T) {
	g := newGenerator(t, WithDialects("sqlite", "SQLite3", "mysql"))
	require.Len(t, g.dialects, 2)
	assert.Equal(t, "sqlite", g.dialects[0].Name())
	assert.Equal(t, "mysql", g.dialects[1].Name())
}

// -----------------------------------------------------------------------------
// Generate
// -----------------------------------------------------------------------------

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	user := writeInput(t, dir, "include/user.hpp", userSource)
	post := writeInput(t, dir, "include/post.hpp", postSource)

	log := &recordingLogger{}
	g := newGenerator(t, WithLogger(log))

	res, err := g.Generate(context.Background(), []string{user, post})
	require.NoError(t, err)

	require.Len(t, res.Structs, 2)
	assert.Equal(t, "users", res.Structs[0].Table)
	assert.Equal(t, "posts", res.Structs[1].Table)
	assert.Equal(t, []string{filepath.ToSlash(user), filepath.ToSlash(post)}, res.Inputs)

	require.Len(t, res.Files, 3)
	assert.Equal(t, codegen.HeaderPath, res.Files[0].Path)
	assert.Equal(t, "schema.my.hcl", res.Files[1].Path)
	assert.Equal(t, "schema.lt.hcl", res.Files[2].Path)

	header := res.Files[0].Content
	assert.Contains(t, header, `#include "`+filepath.ToSlash(user)+`"`)
	assert.Contains(t, header, `SQLINQ_COLUMN_META(User, email, "email_address").unique(),`)
	assert.Contains(t, header, `SQLINQ_COLUMN_META(Post, score, "score")`)

	mysql := res.Files[1].Content
	assert.True(t, strings.HasPrefix(mysql, `schema "app" {}`))
	assert.Contains(t, mysql, `table "users" {`)
	assert.Contains(t, mysql, `foreign_key "fk_author_1" {`)
	assert.Contains(t, mysql, `ref_columns = [table.users.column.id]`)

	sqlite := res.Files[2].Content
	assert.Contains(t, sqlite, "type = integer")

	assert.Contains(t, log.lines, fmt.Sprintf("parsed %s: 1 structs", user))
	assert.Empty(t, res.Warnings)
}

func TestGenerate_RecoveredSyntaxWarns(t *testing.T) {
	path := writeInput(t, t.TempDir(), "post.hpp", postSource+"\nint broken( = ;\n")

	log := &recordingLogger{}
	g := newGenerator(t, WithLogger(log))
	res, err := g.Generate(context.Background(), []string{path})
	require.NoError(t, err)

	require.Len(t, res.Structs, 1)
	assert.Equal(t, "posts", res.Structs[0].Table)

	require.Len(t, res.Warnings, 1)
	warn := res.Warnings[0]
	assert.Equal(t, path, warn.File)
	assert.Equal(t, msgRecovered, warn.Message)
	assert.Positive(t, warn.Line)
	assert.Contains(t, strings.Join(log.lines, "\n"), "warning: "+path)
}

func TestGenerate_PointerAndArrayMembersFail(t *testing.T) {
	src := `struct [[table("users")]] User {
  [[primary_key]] int id;
  [[unique]] std::string email;
  char name[32];
  int* parent;
  int score;
};
`
	path := writeInput(t, t.TempDir(), "user.hpp", src)

	g := newGenerator(t)
	res, err := g.Generate(context.Background(), []string{path})
	require.Error(t, err)
	assert.Nil(t, res)
	require.True(t, alerr.Is(err, alerr.ErrUnsupportedType))

	e := alerr.As(err)
	ctx := e.GetContext()
	assert.Equal(t, "char[32]", ctx["type"])
	assert.Equal(t, "name", ctx["field"])
	assert.Equal(t, "User", ctx["struct"])
	assert.Equal(t, "  char name[32];", ctx["source"])
	_, line, _ := e.Location()
	assert.Equal(t, 4, line)
}

func TestGenerate_SkipsFilesWithoutStructs(t *testing.T) {
	dir := t.TempDir()
	empty := writeInput(t, dir, "empty.hpp", emptySource)
	user := writeInput(t, dir, "user.hpp", userSource)

	g := newGenerator(t, WithDialects("mysql"))
	res, err := g.Generate(context.Background(), []string{empty, user})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.ToSlash(user)}, res.Inputs)
	assert.NotContains(t, res.Files[0].Content, "empty.hpp")
	assert.Len(t, res.Files, 2)
}

func TestGenerate_ZeroStructs(t *testing.T) {
	empty := writeInput(t, t.TempDir(), "empty.hpp", emptySource)

	g := newGenerator(t)
	res, err := g.Generate(context.Background(), []string{empty})
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.Empty(t, res.Files)

	require.NoError(t, g.Write(res))
	entries, err := os.ReadDir(g.Config().OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "an empty result should write nothing")
}

func TestGenerate_MissingInput(t *testing.T) {
	g := newGenerator(t)
	_, err := g.Generate(context.Background(), []string{filepath.Join(t.TempDir(), "nope.hpp")})
	require.Error(t, err)
	assert.True(t, alerr.Is(err, alerr.ErrReadInput))
}

func TestGenerate_AttachesSourceLine(t *testing.T) {
	src := "struct [[table(\"t\")]] T {\n  [[primary]] int id;\n};\n"
	path := writeInput(t, t.TempDir(), "bad.hpp", src)

	g := newGenerator(t)
	_, err := g.Generate(context.Background(), []string{path})
	require.Error(t, err)
	require.True(t, alerr.Is(err, alerr.ErrUnknownAttribute))

	e := alerr.As(err)
	file, line, ok := e.Location()
	require.True(t, ok)
	assert.Equal(t, path, file)
	assert.Equal(t, 2, line)

	ctx := e.GetContext()
	assert.Equal(t, "  [[primary]] int id;", ctx["source"])
	assert.Equal(t, 5, ctx["span_start"])
	assert.Equal(t, 11, ctx["span_end"])
	assert.Equal(t, "T", ctx["struct"])
}

func TestGenerate_DuplicateTableAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.hpp", postSource)
	b := writeInput(t, dir, "b.hpp", strings.Replace(postSource, "struct [[table(\"posts\")]] Post", "struct [[table(\"posts\")]] Article", 1))

	g := newGenerator(t)
	_, err := g.Generate(context.Background(), []string{a, b})
	require.Error(t, err)
	assert.True(t, alerr.Is(err, alerr.ErrDuplicateTable))
}

func TestGenerate_UnsupportedType(t *testing.T) {
	src := "struct P {\n  [[primary_key]] int id;\n  long double price;\n};\n"
	path := writeInput(t, t.TempDir(), "p.hpp", src)

	g := newGenerator(t)
	res, err := g.Generate(context.Background(), []string{path})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, alerr.Is(err, alerr.ErrUnsupportedType))
}

func TestGenerate_Deterministic(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		writeInput(t, dir, "user.hpp", userSource),
		writeInput(t, dir, "post.hpp", postSource),
	}

	g := newGenerator(t)
	first, err := g.Generate(context.Background(), inputs)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := g.Generate(context.Background(), inputs)
		require.NoError(t, err)
		assert.Equal(t, first.Files, again.Files)
	}
}

func TestGenerate_Canceled(t *testing.T) {
	path := writeInput(t, t.TempDir(), "user.hpp", userSource)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newGenerator(t)
	_, err := g.Generate(ctx, []string{path})
	assert.ErrorIs(t, err, context.Canceled)
}

// -----------------------------------------------------------------------------
// Write
// -----------------------------------------------------------------------------

func TestWrite(t *testing.T) {
	path := writeInput(t, t.TempDir(), "user.hpp", userSource)
	g := newGenerator(t)

	res, err := g.Generate(context.Background(), []string{path})
	require.NoError(t, err)
	require.NoError(t, g.Write(res))

	out := g.Config().OutputDir
	for _, f := range res.Files {
		data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(f.Path)))
		require.NoError(t, err)
		assert.Equal(t, f.Content, string(data))
		assert.NoFileExists(t, filepath.Join(out, filepath.FromSlash(f.Path))+".tmp")
	}
	assert.FileExists(t, filepath.Join(out, "schemagen.lock"))
}

func TestWrite_FailureReportsPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	path := writeInput(t, dir, "user.hpp", userSource)
	g := newGenerator(t, WithOutputDir(blocker))

	res, err := g.Generate(context.Background(), []string{path})
	require.NoError(t, err)

	err = g.Write(res)
	require.Error(t, err)
	assert.True(t, alerr.Is(err, alerr.ErrWriteOutput))
}
