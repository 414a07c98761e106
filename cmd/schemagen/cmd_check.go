package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hlop3z/schemagen/internal/ast"
	"github.com/hlop3z/schemagen/internal/cli"
)

// checkCmd runs the pipeline without writing and lists what it found.
func checkCmd() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate inputs and list every struct without writing",
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

			fmt.Fprint(cmd.OutOrStdout(), structTable(res.Structs).String())
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s, %s\n",
				cli.FormatCount(len(res.Structs), "struct", "structs"),
				cli.FormatCount(ast.CountFields(res.Structs), "field", "fields"))
			return nil
		},
	}

	flags.bind(cmd.Flags())
	return cmd
}

// structTable renders one row per struct.
func structTable(structs []*ast.StructDef) *cli.Table {
	t := cli.NewTable("STRUCT", "TABLE", "COLUMNS", "KEYS", "SOURCE")
	for _, s := range structs {
		keys := len(s.PrimaryKey()) + len(s.ForeignKeys()) + len(s.Uniques())
		t.AddRow(
			s.Name,
			s.Table,
			strconv.Itoa(len(s.Fields)),
			strconv.Itoa(keys),
			s.Origin+":"+strconv.Itoa(s.Line),
		)
	}
	return t
}
