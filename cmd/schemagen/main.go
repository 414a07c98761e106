// Package main provides the CLI for schemagen.
// schemagen compiles annotated C++ structs into a sqlinq metadata header and
// one Atlas HCL schema per backend.
//
// Usage:
//
//	schemagen generate --input a.hpp --schema-name app   # Write header, HCL and lock file
//	schemagen check                                       # Run the pipeline, print structs
//	schemagen verify                                      # Fail if outputs are out of date
//	schemagen watch                                       # Regenerate on input changes
//	schemagen types                                       # Show the supported type table
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hlop3z/schemagen/internal/alerr"
	"github.com/hlop3z/schemagen/internal/cli"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// Global flags
var (
	configFile string
	verbose    bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "schemagen",
		Short:         "Compile annotated C++ structs into sqlinq metadata and Atlas schemas",
		Long:          `schemagen reads C++ headers whose structs carry [[...]] annotations and emits a sqlinq table header plus Atlas HCL schemas for MySQL and SQLite.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", defaultConfigFile, "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log each pipeline step to stderr")

	rootCmd.AddCommand(
		generateCmd(),
		checkCmd(),
		verifyCmd(),
		watchCmd(),
		typesCmd(),
	)
	return rootCmd
}

// formatFailure renders a command failure. With --verbose the capture site
// of a coded error follows the diagnostic.
func formatFailure(err error, verbose bool) string {
	out := cli.FormatError(err)
	if e := alerr.As(err); verbose && e != nil && e.GetStack() != "" {
		out += cli.FormatNote("raised at\n" + e.GetStack())
	}
	return out
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatFailure(err, verbose))
		os.Exit(1)
	}
}
