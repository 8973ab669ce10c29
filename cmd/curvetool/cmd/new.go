package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/forestrie/go-keycurves/curve"
	"github.com/spf13/cobra"
)

func newNewCommand(a *app) *cobra.Command {
	var pre, post string
	var defaultValue float64
	var force bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty curve file",
		Long: `Create an empty curve file.

Extrapolation is one of constant, linear, cycle, cycle-offset, oscillate.

Examples:
  curvetool new --post cycle
  curvetool -f ramp.cbor new --default 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			preExtrap, ok := curve.ParseExtrapolation(pre)
			if !ok {
				return fmt.Errorf("unknown extrapolation %q", pre)
			}
			postExtrap, ok := curve.ParseExtrapolation(post)
			if !ok {
				return fmt.Errorf("unknown extrapolation %q", post)
			}
			if !force {
				if _, err := os.Stat(a.path); err == nil {
					return fmt.Errorf("%s: %w", a.path, ErrCurveExists)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}

			opts := []curve.Option{curve.WithExtrapolation(preExtrap, postExtrap)}
			if cmd.Flags().Changed("default") {
				opts = append(opts, curve.WithDefaultValue(defaultValue))
			}
			if err := a.save(curve.NewRichCurve(opts...)); err != nil {
				return err
			}
			a.log.Infof("created %s", a.path)
			return nil
		},
	}

	cmd.Flags().StringVar(&pre, "pre", "constant", "extrapolation before the first key")
	cmd.Flags().StringVar(&post, "post", "constant", "extrapolation after the last key")
	cmd.Flags().Float64Var(&defaultValue, "default", 0, "value of the curve while it has no keys")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
