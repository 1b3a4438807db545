package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"kvstore/internal/input"
)

func importCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "import [FILE]",
		Short: "Load KEY<TAB>VALUE lines from FILE, or stdin when FILE is - or absent",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := input.Stdin
			if len(args) == 1 {
				name = args[0]
			}
			rc, err := input.Open(name)
			if err != nil {
				return err
			}
			defer rc.Close()

			n, err := appCtx.KV.Import(rc, force)
			if err != nil {
				return fmt.Errorf("imported %d records before failing: %w", n, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records.\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing keys")
	return cmd
}
