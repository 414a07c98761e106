package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// generateCmd runs the pipeline and writes every artifact.
func generateCmd() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the sqlinq header and Atlas HCL schemas",
		Example: `  schemagen generate --input include/user.hpp --schema-name app
  schemagen generate -i user.hpp -i post.hpp -o generated --dialect mysql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, cfg, err := newGenerator(cmd.Flags(), &flags)
			if err != nil {
				return err
			}
			defer gen.Close()

			res, err := gen.Generate(cmd.Context(), cfg.Inputs)
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			if res.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), msgNoStructs)
				return nil
			}
			if err := gen.Write(res); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), msgGenerated+"\n", len(res.Structs), cfg.OutDir)
			return nil
		},
	}

	flags.bind(cmd.Flags())
	return cmd
}

