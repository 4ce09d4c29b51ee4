package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pedagogy-studio/internal/pedagogy"
)

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the pedagogies the backend offers",
		Long: `List the pedagogies the backend offers with their parameters.

When the backend cannot be reached the built-in catalog is shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.backend()
			catalog, err := c.catalog.Catalog(cmd.Context())
			if err != nil || len(catalog) == 0 {
				catalog = pedagogy.BuiltinCatalog()
			}

			out := cmd.OutOrStdout()
			if ok, err := c.emit(out, catalog); ok {
				return err
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PEDAGOGY\tPARAMETERS\tDESCRIPTION")
			for _, info := range catalog {
				names := make([]string, len(info.Parameters))
				for i, p := range info.Parameters {
					names[i] = p.Name
				}
				fmt.Fprintf(w, "%s %s\t%s\t%s\n", pedagogy.Icon(info.Name), info.Name, strings.Join(names, ", "), info.Description)
			}
			return w.Flush()
		},
	}
}
