package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tabtrain/pkg/data"
	"tabtrain/pkg/tabular"
)

func newInspectCmd() *cobra.Command {
	var flags Config
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the schema and batch layout of a training file",
		Args:  cobra.NoArgs,
	}
	configPath := bindFlags(cmd, &flags, false)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveConfig(cmd, *configPath, &flags)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
		if err != nil {
			return err
		}
		r, err := openReader(cfg, log)
		if err != nil {
			return err
		}
		defer r.Close()

		var sizes []int
		for b, err := range r.All() {
			if err != nil {
				return fmt.Errorf("batch %d: %w", len(sizes)+1, err)
			}
			sizes = append(sizes, b.Len())
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), renderSchema(cfg.Input, r.Schema(), sizes))
		return err
	}
	return cmd
}

// openReader opens cfg.Input as a batched training-set reader.
func openReader(cfg *Config, log *slog.Logger) (*data.Reader, error) {
	delim, err := cfg.delimiter()
	if err != nil {
		return nil, err
	}
	r, err := data.Open(cfg.Input, tabular.ParseColumnRef(cfg.LabelColumn), cfg.Labels,
		data.WithLogger(log),
		data.WithSourceOptions(tabular.WithDelimiter(delim), tabular.WithLogger(log)))
	if err != nil {
		return nil, err
	}
	if err := r.SetBatchSize(cfg.BatchSize); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}
