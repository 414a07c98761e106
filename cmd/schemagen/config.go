package main

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/hlop3z/schemagen/internal/alerr"
	"github.com/hlop3z/schemagen/internal/codegen"
	"github.com/hlop3z/schemagen/pkg/schemagen"
)

const defaultConfigFile = "schemagen.yaml"

// Environment variables that override the config file.
const (
	envOutDir     = "SCHEMAGEN_OUTDIR"
	envSchemaName = "SCHEMAGEN_SCHEMA_NAME"
	envDialects   = "SCHEMAGEN_DIALECTS"
)

// Config represents the schemagen.yaml configuration file.
type Config struct {
	Inputs     []string `yaml:"inputs"`
	OutDir     string   `yaml:"outdir"`
	SchemaName string   `yaml:"schema_name"`
	Dialects   []string `yaml:"dialects"`
	Header     string   `yaml:"header"`
}

// pipelineFlags holds the flags shared by every command that runs the pipeline.
type pipelineFlags struct {
	inputs     []string
	outDir     string
	schemaName string
	dialects   []string
}

// bind registers the pipeline flags on fs.
func (f *pipelineFlags) bind(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&f.inputs, "input", "i", nil, "Input header (repeatable)")
	fs.StringVarP(&f.outDir, "outdir", "o", "", "Output directory")
	fs.StringVar(&f.schemaName, "schema-name", "", "Atlas schema name")
	fs.StringArrayVar(&f.dialects, "dialect", nil, "Backend to emit (repeatable: mysql, sqlite)")
}

// loadConfig loads configuration from file, env vars, and CLI flags.
// Precedence: CLI flags > env vars > config file > defaults
//
// A missing config file is only an error when its path was given explicitly.
func loadConfig(path string, flags *pflag.FlagSet, f *pipelineFlags) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		OutDir: ".",
		Header: codegen.HeaderPath,
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, alerr.Wrap(alerr.ErrConfig, err, "failed to parse config file").
				WithFile(path, 0)
		}
		cfg.expandEnvVars()
	case errors.Is(err, fs.ErrNotExist) && !flags.Changed("config"):
		// No config file; defaults, env and flags only.
	default:
		return nil, alerr.Wrap(alerr.ErrConfig, err, "failed to read config file").
			WithFile(path, 0)
	}

	// Override with env vars
	if v := os.Getenv(envOutDir); v != "" {
		cfg.OutDir = v
	}
	if v := os.Getenv(envSchemaName); v != "" {
		cfg.SchemaName = v
	}
	if v := os.Getenv(envDialects); v != "" {
		cfg.Dialects = splitList(v)
	}

	// Override with CLI flags (highest priority)
	if flags.Changed("input") {
		cfg.Inputs = f.inputs
	}
	if flags.Changed("outdir") {
		cfg.OutDir = f.outDir
	}
	if flags.Changed("schema-name") {
		cfg.SchemaName = f.schemaName
	}
	if flags.Changed("dialect") {
		cfg.Dialects = f.dialects
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandEnvVars expands ${VAR} patterns in every string value.
func (c *Config) expandEnvVars() {
	for i, in := range c.Inputs {
		c.Inputs[i] = os.ExpandEnv(in)
	}
	for i, d := range c.Dialects {
		c.Dialects[i] = os.ExpandEnv(d)
	}
	c.OutDir = os.ExpandEnv(c.OutDir)
	c.SchemaName = os.ExpandEnv(c.SchemaName)
	c.Header = os.ExpandEnv(c.Header)
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.SchemaName) == "" {
		return alerr.New(alerr.ErrConfig, "schema name is required").
			WithHelp("pass --schema-name, set " + envSchemaName + ", or add schema_name to " + defaultConfigFile)
	}
	if len(c.Inputs) == 0 {
		return alerr.New(alerr.ErrConfig, "no input files").
			WithHelp("pass --input or list inputs in " + defaultConfigFile)
	}
	return nil
}

// options converts the config into generator options.
func (c *Config) options() []schemagen.Option {
	opts := []schemagen.Option{
		schemagen.WithSchemaName(c.SchemaName),
		schemagen.WithOutputDir(c.OutDir),
		schemagen.WithDialects(c.Dialects...),
	}
	if c.Header != "" {
		opts = append(opts, schemagen.WithHeaderName(c.Header))
	}
	if verbose {
		opts = append(opts, schemagen.WithLogger(log.New(os.Stderr, "schemagen: ", 0)))
	}
	return opts
}

// newGenerator loads configuration and builds a generator from it.
func newGenerator(flags *pflag.FlagSet, f *pipelineFlags) (*schemagen.Generator, *Config, error) {
	cfg, err := loadConfig(configFile, flags, f)
	if err != nil {
		return nil, nil, err
	}
	gen, err := schemagen.New(cfg.options()...)
	if err != nil {
		return nil, nil, err
	}
	return gen, cfg, nil
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
