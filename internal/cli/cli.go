// Package cli provides Cargo/rustc-style terminal output for schemagen.
// It handles colored output, diagnostic formatting, and aligned tables.
package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// OutputMode determines how output is formatted.
type OutputMode int

const (
	// ModeTTY enables colored output for interactive terminals.
	ModeTTY OutputMode = iota
	// ModePlain outputs plain text without colors (for pipes/CI).
	ModePlain
)

// Config holds CLI output configuration.
// Configuration is auto-detected; users don't configure this directly.
type Config struct {
	Mode   OutputMode
	Writer io.Writer
}

// DefaultConfig returns the auto-detected configuration.
// Rules:
//   - stderr is a TTY and NO_COLOR is unset -> ModeTTY
//   - otherwise, or with TERM=dumb -> ModePlain
//
// Diagnostics go to stderr, so that is the stream that decides.
func DefaultConfig() *Config {
	mode := ModePlain

	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		mode = ModeTTY
	}

	// Respect NO_COLOR environment variable (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		mode = ModePlain
	}
	if os.Getenv("TERM") == "dumb" {
		mode = ModePlain
	}

	return &Config{
		Mode:   mode,
		Writer: os.Stderr,
	}
}

// IsTTY returns true if running in interactive terminal mode.
func (c *Config) IsTTY() bool {
	return c.Mode == ModeTTY
}

// Global default config, initialized lazily.
var defaultCfg *Config

// Default returns the global default configuration.
func Default() *Config {
	if defaultCfg == nil {
		defaultCfg = DefaultConfig()
	}
	return defaultCfg
}

// SetDefault sets the global default configuration.
// Used for testing or when --no-color is passed.
func SetDefault(cfg *Config) {
	defaultCfg = cfg
}

// EnableColors returns true if colors should be used.
func EnableColors() bool {
	return Default().IsTTY()
}
