package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEvalCommand(a *app) *cobra.Command {
	var fallback float64

	cmd := &cobra.Command{
		Use:   "eval <time>...",
		Short: "Evaluate the curve at one or more times",
		Long: `Evaluate the curve and print one value per line.

--fallback is used when the curve is empty and has no default value.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			times := make([]float64, len(args))
			for i, arg := range args {
				t, err := parseFloat("time", arg)
				if err != nil {
					return err
				}
				times[i] = t
			}
			c, err := a.load()
			if err != nil {
				return err
			}
			for _, t := range times {
				fmt.Fprintf(cmd.OutOrStdout(), "%g\n", c.Eval(t, fallback))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&fallback, "fallback", 0, "value of an empty curve without a default")
	return cmd
}
