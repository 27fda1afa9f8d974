package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the tabtrain command tree.
func NewRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:   "tabtrain",
		Short: "Batch tab-delimited training data into matrices and train on it",
		Long: `tabtrain - read a tab-delimited file with a header line, one-hot encode a
label column and deliver the rest as numeric feature batches.

Examples:
  # Show columns, classes and batch sizes
  tabtrain inspect --input iris.tbl --label-column species --labels setosa,versicolor,virginica

  # Train from a config file, overriding the batch size
  tabtrain train --config iris.yaml --batch-size 30 --plot loss.png`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newInspectCmd(), newTrainCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// newLogger returns a text logger on w at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
