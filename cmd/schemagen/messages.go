package main

import (
	"fmt"
	"io"
	"time"

	"github.com/hlop3z/schemagen/internal/cli"
	"github.com/hlop3z/schemagen/pkg/schemagen"
)

// ============================================================================
// User-facing Messages
// ============================================================================

const (
	msgGenerated  = "Generated schema for %d structs into %s"
	msgNoStructs  = "No structs found in input files; nothing generated."
	msgUpToDate   = "generated files are up to date"
	msgWatching   = "watching for changes"
	msgRegenerate = "regenerated"
)

// ============================================================================
// Watch Configuration
// ============================================================================

const (
	// watchDebounce coalesces the burst of events editors emit on save.
	watchDebounce = 150 * time.Millisecond
)

// printWarnings writes each input warning in diagnostic style.
func printWarnings(w io.Writer, warnings []schemagen.Warning) {
	for _, warn := range warnings {
		fmt.Fprint(w, cli.FormatWarning(warn.Message, warn.File, warn.Line))
	}
}
