package cmd

import (
	"github.com/spf13/cobra"
)

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete the key at index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.load()
			if err != nil {
				return err
			}
			i, err := keyAt(c, args[0])
			if err != nil {
				return err
			}
			c.DeleteKey(c.GetKeyHandle(i))
			return a.save(c)
		},
	}
}
