package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print every key/value pair in the database",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := appCtx.KV.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			// Same layout as the database file.
			if plain {
				for _, e := range entries {
					fmt.Fprintf(out, "%s\t%s\n", e.Key, e.Value)
				}
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Key", "Value"})
			table.SetAutoWrapText(false)
			for _, e := range entries {
				table.Append([]string{e.Key, e.Value})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print KEY<TAB>VALUE lines instead of a table")
	return cmd
}
