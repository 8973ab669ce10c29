// Package cmd implements the curvetool command line.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-keycurves/curve"
	"github.com/spf13/cobra"
)

var ErrCurveExists = errors.New("curve file already exists")

// app is the state shared by every subcommand.
type app struct {
	path     string
	logLevel string
	log      logger.Logger
}

// NewCommand returns the root command for curvetool.
func NewCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "curvetool",
		Short: "Edit and evaluate keyframe curves",
		Long: `curvetool edits a rich curve stored in a CBOR file and evaluates it.

Keys are addressed by index in time order. The file holds keys and
extrapolation settings only.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.New(a.logLevel)
			a.log = logger.Sugar.WithServiceName("curvetool")
			return nil
		},
	}

	cmd.AddCommand(
		newNewCommand(a),
		newAddCommand(a),
		newDeleteCommand(a),
		newKeysCommand(a),
		newEvalCommand(a),
		newSampleCommand(a),
	)

	cmd.PersistentFlags().StringVarP(&a.path, "file", "f", CurveFile(), "curve file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", LogLevel(), "log level")
	return cmd
}

// Execute runs the root command
func Execute() {
	defer logger.OnExit()
	if err := NewCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) load() (*curve.RichCurve, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, err
	}
	c := curve.NewRichCurve()
	if err := c.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%s: %w", a.path, err)
	}
	a.log.Debugf("loaded %s: %d keys", a.path, c.NumKeys())
	return c, nil
}

// save writes through a temporary file so a failed write never truncates
// the curve.
func (a *app) save(c *curve.RichCurve) error {
	data, err := c.MarshalBinary()
	if err != nil {
		return err
	}
	tmp := a.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, a.path); err != nil {
		return err
	}
	a.log.Debugf("saved %s: %d keys", a.path, c.NumKeys())
	return nil
}

// keyAt parses a command line key index and checks it against c.
func keyAt(c *curve.RichCurve, arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return curve.IndexNone, fmt.Errorf("key index: %w", err)
	}
	if i < 0 || i >= c.NumKeys() {
		return curve.IndexNone, fmt.Errorf("key index %d of %d: %w", i, c.NumKeys(), curve.ErrKeyIndexRange)
	}
	return i, nil
}

func parseFloat(name, arg string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}
