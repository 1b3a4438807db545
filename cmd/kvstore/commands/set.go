package commands

import (
	"github.com/spf13/cobra"
)

func setCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Sets the key/value pair in the database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return appCtx.KV.Set(args[0], args[1], force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing key")
	return cmd
}
