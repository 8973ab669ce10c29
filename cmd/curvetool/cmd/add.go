package cmd

import (
	"fmt"

	"github.com/forestrie/go-keycurves/curve"
	"github.com/forestrie/go-keycurves/keyhandle"
	"github.com/spf13/cobra"
)

func newAddCommand(a *app) *cobra.Command {
	var interp string
	var replace bool
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "add <time> <value>",
		Short: "Add a key",
		Long: `Add a key in time order and print its index.

With --replace a key within --tolerance of time has its value set instead.

Examples:
  curvetool add 0 1
  curvetool add 2.5 4 --interp cubic
  curvetool add 2.5 3 --replace --tolerance 0.01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseFloat("time", args[0])
			if err != nil {
				return err
			}
			v, err := parseFloat("value", args[1])
			if err != nil {
				return err
			}
			mode, ok := curve.ParseInterpMode(interp)
			if !ok {
				return fmt.Errorf("unknown interpolation %q", interp)
			}

			c, err := a.load()
			if err != nil {
				return err
			}
			var key keyhandle.KeyHandle
			if replace {
				key = c.UpdateOrAddKey(t, v, tolerance)
			} else {
				key = c.AddKey(t, v)
			}
			if !replace || cmd.Flags().Changed("interp") {
				c.SetKeyInterpMode(key, mode)
			}
			if err := a.save(c); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.GetIndex(key))
			return nil
		},
	}

	cmd.Flags().StringVar(&interp, "interp", "linear", "interpolation leaving the key: constant, linear or cubic")
	cmd.Flags().BoolVar(&replace, "replace", false, "update a key already at time")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "time tolerance for --replace")
	return cmd
}
