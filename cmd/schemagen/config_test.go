package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlop3z/schemagen/internal/alerr"
	"github.com/hlop3z/schemagen/internal/codegen"
)

// parsedFlags returns a flag set with the pipeline and config flags, parsed
// from args.
func parsedFlags(t *testing.T, args ...string) (*pflag.FlagSet, *pipelineFlags) {
	t.Helper()
	var f pipelineFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("config", "c", defaultConfigFile, "")
	f.bind(fs)
	require.NoError(t, fs.Parse(args))
	return fs, &f
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schemagen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envOutDir, envSchemaName, envDialects} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_File(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODEL_DIR", "include")
	path := writeConfig(t, `
inputs:
  - ${MODEL_DIR}/user.hpp
  - ${MODEL_DIR}/post.hpp
outdir: generated
schema_name: app
dialects: [mysql]
`)
	fs, f := parsedFlags(t)

	cfg, err := loadConfig(path, fs, f)
	require.NoError(t, err)
	assert.Equal(t, []string{"include/user.hpp", "include/post.hpp"}, cfg.Inputs)
	assert.Equal(t, "generated", cfg.OutDir)
	assert.Equal(t, "app", cfg.SchemaName)
	assert.Equal(t, []string{"mysql"}, cfg.Dialects)
	assert.Equal(t, codegen.HeaderPath, cfg.Header)
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
inputs: [a.hpp]
outdir: from-file
schema_name: file_schema
dialects: [mysql]
`)
	t.Setenv(envOutDir, "from-env")
	t.Setenv(envSchemaName, "env_schema")
	t.Setenv(envDialects, "sqlite, mysql")

	t.Run("env over file", func(t *testing.T) {
		fs, f := parsedFlags(t)
		cfg, err := loadConfig(path, fs, f)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.OutDir)
		assert.Equal(t, "env_schema", cfg.SchemaName)
		assert.Equal(t, []string{"sqlite", "mysql"}, cfg.Dialects)
		assert.Equal(t, []string{"a.hpp"}, cfg.Inputs)
	})

	t.Run("flags over env", func(t *testing.T) {
		fs, f := parsedFlags(t, "--outdir", "from-flag", "--schema-name", "flag_schema",
			"--dialect", "mysql", "-i", "b.hpp", "-i", "c.hpp")
		cfg, err := loadConfig(path, fs, f)
		require.NoError(t, err)
		assert.Equal(t, "from-flag", cfg.OutDir)
		assert.Equal(t, "flag_schema", cfg.SchemaName)
		assert.Equal(t, []string{"mysql"}, cfg.Dialects)
		assert.Equal(t, []string{"b.hpp", "c.hpp"}, cfg.Inputs)
	})
}

func TestLoadConfig_NoFile(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "schemagen.yaml")

	fs, f := parsedFlags(t, "-i", "a.hpp", "--schema-name", "app")
	cfg, err := loadConfig(missing, fs, f)
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.OutDir)
	assert.Empty(t, cfg.Dialects)
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "custom.yaml")

	fs, f := parsedFlags(t, "-c", missing, "-i", "a.hpp", "--schema-name", "app")
	_, err := loadConfig(missing, fs, f)
	require.Error(t, err)
	assert.True(t, alerr.Is(err, alerr.ErrConfig))
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "inputs: [a.hpp\n"},
		{"missing schema name", "inputs: [a.hpp]\n"},
		{"no inputs", "schema_name: app\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, f := parsedFlags(t)
			_, err := loadConfig(writeConfig(t, tt.content), fs, f)
			require.Error(t, err)
			assert.True(t, alerr.Is(err, alerr.ErrConfig), "got %v", err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"mysql", "sqlite"}, splitList(" mysql, ,sqlite ,"))
	assert.Nil(t, splitList(""))
}
