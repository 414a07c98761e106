package schemagen

import (
	"github.com/hlop3z/schemagen/internal/codegen"
	"github.com/hlop3z/schemagen/internal/lockfile"
)

// Config holds all configuration options for the Generator.
type Config struct {
	// SchemaName is the Atlas schema every table is placed in. Required.
	SchemaName string

	// OutputDir is where generated files are written.
	// Default: current directory
	OutputDir string

	// Dialects lists the backends to emit HCL for, in output order.
	// Default: every supported backend ("mysql", "sqlite")
	Dialects []string

	// HeaderName is the header path relative to OutputDir.
	// Default: include/table_schema.hpp
	HeaderName string

	// LockFile is the lock file name relative to OutputDir.
	// Default: schemagen.lock
	LockFile string

	// Logger is used for logging operations.
	// If nil, no logging is performed.
	Logger Logger
}

// Logger is the interface for logging operations.
// It's compatible with the standard library's log.Logger.
type Logger interface {
	// Printf writes a formatted message to the log.
	Printf(format string, v ...any)
}

// Option is a functional option for configuring the Generator.
type Option func(*Config)

func defaultConfig() *Config {
	return &Config{
		OutputDir:  ".",
		HeaderName: codegen.HeaderPath,
		LockFile:   lockfile.DefaultName(),
	}
}

// WithSchemaName sets the Atlas schema name.
func WithSchemaName(name string) Option {
	return func(c *Config) {
		c.SchemaName = name
	}
}

// WithOutputDir sets the output directory.
func WithOutputDir(dir string) Option {
	return func(c *Config) {
		c.OutputDir = dir
	}
}

// WithDialects restricts HCL output to the named backends.
// Valid values: "mysql", "sqlite"
func WithDialects(names ...string) Option {
	return func(c *Config) {
		c.Dialects = append([]string(nil), names...)
	}
}

// WithHeaderName sets the header path relative to the output directory.
func WithHeaderName(name string) Option {
	return func(c *Config) {
		c.HeaderName = name
	}
}

// WithLockFile sets the lock file name relative to the output directory.
func WithLockFile(name string) Option {
	return func(c *Config) {
		c.LockFile = name
	}
}

// WithLogger sets the logger for the generator.
// If not set, no logging is performed.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
