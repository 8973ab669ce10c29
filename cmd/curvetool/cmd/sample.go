package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ErrSampleCount = errors.New("sample count must be at least 2")

func newSampleCommand(a *app) *cobra.Command {
	var from, to, fallback float64
	var count int

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Evaluate the curve at evenly spaced times",
		Long: `Evaluate the curve at --count evenly spaced times and print
"time value" pairs. Without --from and --to the key range is sampled.

Examples:
  curvetool sample --count 5
  curvetool sample --from=-1 --to=3 --count 9`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 2 {
				return fmt.Errorf("%d: %w", count, ErrSampleCount)
			}
			c, err := a.load()
			if err != nil {
				return err
			}
			first, last := c.TimeRange()
			if cmd.Flags().Changed("from") {
				first = from
			}
			if cmd.Flags().Changed("to") {
				last = to
			}
			step := (last - first) / float64(count-1)
			for i := range count {
				t := first + step*float64(i)
				if i == count-1 {
					t = last
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%g %g\n", t, c.Eval(t, fallback))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&from, "from", 0, "first sample time")
	cmd.Flags().Float64Var(&to, "to", 0, "last sample time")
	cmd.Flags().IntVar(&count, "count", 11, "number of samples")
	cmd.Flags().Float64Var(&fallback, "fallback", 0, "value of an empty curve without a default")
	return cmd
}
