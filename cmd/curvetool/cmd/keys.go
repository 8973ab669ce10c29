package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newKeysCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the keys in time order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.load()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tTIME\tVALUE\tINTERP\tTANGENT\tARRIVE\tLEAVE")
			for i, k := range c.Keys() {
				fmt.Fprintf(w, "%d\t%g\t%g\t%s\t%s\t%g\t%g\n",
					i, k.Time, k.Value, k.InterpMode, k.TangentMode, k.ArriveTangent, k.LeaveTangent)
			}
			return w.Flush()
		},
	}
}
