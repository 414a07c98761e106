package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hlop3z/schemagen/internal/cli"
	"github.com/hlop3z/schemagen/internal/dialect"
	"github.com/hlop3z/schemagen/internal/types"
)

// typesCmd prints the supported C++ types and their column types.
func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "Show supported C++ types and their backend column types",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), typeTable().String())
			fmt.Fprint(cmd.OutOrStdout(), "\n"+cli.FormatNote("std::optional<T> makes any of these nullable"))
			return nil
		},
	}
}

// typeTable renders one row per canonical type with a column per dialect.
func typeTable() *cli.Table {
	dialects := dialect.All()
	headers := []string{"KIND", "C++"}
	for _, d := range dialects {
		headers = append(headers, d.Name())
	}

	t := cli.NewTable(headers...)
	for _, td := range types.All() {
		row := []string{td.Name, td.CppType()}
		for _, d := range dialects {
			row = append(row, d.ColumnType(td))
		}
		t.AddRow(row...)
	}
	return t
}
