package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hlop3z/schemagen/internal/cli"
)

// verifyCmd fails when the files on disk differ from a fresh generation.
func verifyCmd() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that generated files match the inputs and the lock file",
		Long: `Regenerates in memory and compares the result with schemagen.lock and the
files in the output directory. Exits 1 and lists every stale path when they differ.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, cfg, err := newGenerator(cmd.Flags(), &flags)
			if err != nil {
				return err
			}
			defer gen.Close()

			report, err := gen.Verify(cmd.Context(), cfg.Inputs)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s (%s)", msgUpToDate,
				cli.FormatCount(len(report.Lock.VerifiedFiles), "file", "files"))))
			return nil
		},
	}

	flags.bind(cmd.Flags())
	return cmd
}
