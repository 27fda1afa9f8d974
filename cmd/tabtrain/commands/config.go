package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"tabtrain/pkg/data"
	"tabtrain/pkg/pipeline"
	"tabtrain/pkg/stats"
)

// Normalizer names accepted by the normalizer key.
const (
	NormalizeStandard     = "standard"
	NormalizeMinMax       = "minmax"
	NormalizeClipStandard = "clip+standard"
	NormalizeNone         = "none"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid")

// Config is a training run description. It is read from YAML and then
// overridden by any flag given on the command line.
type Config struct {
	// Input is the path of the tab-delimited training file.
	Input string `yaml:"input"`

	// Delimiter is the field separator: a single character, or "tab".
	Delimiter string `yaml:"delimiter,omitempty"`

	// LabelColumn names the label column, or gives its 1-based ordinal.
	// "0" selects the last column.
	LabelColumn string `yaml:"label_column"`

	// Labels lists the class names; a label's position is its class index.
	Labels []string `yaml:"labels"`

	BatchSize    int     `yaml:"batch_size,omitempty"`
	Iterations   int     `yaml:"iterations,omitempty"`
	LearningRate float64 `yaml:"learning_rate,omitempty"`
	Momentum     float64 `yaml:"momentum,omitempty"`
	Seed         int64   `yaml:"seed,omitempty"`

	// Normalizer is fitted on the held-out batch: standard, minmax,
	// clip+standard or none.
	Normalizer string `yaml:"normalizer,omitempty"`

	// LogEvery logs the loss every LogEvery updates.
	LogEvery int `yaml:"log_every,omitempty"`

	// Plot, if set, is the path of a PNG learning curve.
	Plot string `yaml:"plot,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`
}

// DefaultConfig returns the settings used when neither file nor flag gives one.
func DefaultConfig() Config {
	return Config{
		Delimiter:    "tab",
		LabelColumn:  "0",
		BatchSize:    40,
		Iterations:   600,
		LearningRate: 0.1,
		Momentum:     0.9,
		Seed:         123,
		Normalizer:   NormalizeStandard,
		LogEvery:     500,
		LogLevel:     "info",
	}
}

// LoadConfig reads a YAML config on top of DefaultConfig. Unknown keys are
// rejected.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalWithOptions(raw, &cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks that the config describes a runnable job.
func (c *Config) Validate() error {
	switch {
	case c.Input == "":
		return fmt.Errorf("%w: input is required", ErrInvalidConfig)
	case len(c.Labels) == 0:
		return fmt.Errorf("%w: labels are required", ErrInvalidConfig)
	case c.BatchSize < 1:
		return fmt.Errorf("%w: batch_size must be positive, got %d", ErrInvalidConfig, c.BatchSize)
	case c.Iterations < 1:
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	case c.LearningRate <= 0:
		return fmt.Errorf("%w: learning_rate must be positive, got %g", ErrInvalidConfig, c.LearningRate)
	case c.Momentum < 0 || c.Momentum >= 1:
		return fmt.Errorf("%w: momentum must be in [0, 1), got %g", ErrInvalidConfig, c.Momentum)
	}
	if _, err := c.delimiter(); err != nil {
		return err
	}
	if _, err := c.normalizer(); err != nil {
		return err
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); c.LogLevel != "" && err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

func (c *Config) delimiter() (rune, error) {
	switch c.Delimiter {
	case "", "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size != len(c.Delimiter) || r == utf8.RuneError || r == '\n' || r == '\r' || r == '"' {
		return 0, fmt.Errorf("%w: delimiter %q must be a single character", ErrInvalidConfig, c.Delimiter)
	}
	return r, nil
}

// normalizer builds an unfitted normalizer, or nil for none.
func (c *Config) normalizer() (data.FitNormalizer, error) {
	switch strings.ToLower(c.Normalizer) {
	case "", NormalizeStandard:
		return stats.NewStandardScaler(), nil
	case NormalizeMinMax:
		return stats.NewMinMaxScaler(), nil
	case NormalizeClipStandard:
		clip, err := stats.NewPercentileClipper(1, 99)
		if err != nil {
			return nil, err
		}
		return pipeline.NewPipeline(clip, stats.NewStandardScaler()), nil
	case NormalizeNone:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: unknown normalizer %q", ErrInvalidConfig, c.Normalizer)
}

// bindFlags registers the config flags on cmd, writing into f. Training-only
// flags are added when training is set.
func bindFlags(cmd *cobra.Command, f *Config, training bool) *string {
	var configPath string
	fs := cmd.Flags()
	fs.StringVarP(&configPath, "config", "c", "", "YAML config file")
	fs.StringVarP(&f.Input, "input", "i", "", "tab-delimited training file")
	fs.StringVar(&f.Delimiter, "delimiter", "", `field delimiter (default "tab")`)
	fs.StringVar(&f.LabelColumn, "label-column", "", "label column name or 1-based ordinal, 0 for the last column")
	fs.StringSliceVar(&f.Labels, "labels", nil, "comma-separated class names")
	fs.IntVarP(&f.BatchSize, "batch-size", "b", 0, "rows per batch")
	if training {
		fs.IntVarP(&f.Iterations, "iterations", "n", 0, "updates per batch")
		fs.Float64Var(&f.LearningRate, "learning-rate", 0, "SGD learning rate")
		fs.Float64Var(&f.Momentum, "momentum", 0, "SGD momentum")
		fs.Int64Var(&f.Seed, "seed", 0, "weight initialization seed")
		fs.StringVar(&f.Normalizer, "normalizer", "", "standard, minmax, clip+standard or none")
		fs.IntVar(&f.LogEvery, "log-every", 0, "log the loss every n updates")
		fs.StringVar(&f.Plot, "plot", "", "write a PNG learning curve to this path")
	}
	return &configPath
}

// resolveConfig loads the config file, if any, and applies the flags the user
// actually set.
func resolveConfig(cmd *cobra.Command, configPath string, f *Config) (*Config, error) {
	cfg := DefaultConfig()
	if configPath != "" {
		loaded, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("input", func() { cfg.Input = f.Input })
	set("delimiter", func() { cfg.Delimiter = f.Delimiter })
	set("label-column", func() { cfg.LabelColumn = f.LabelColumn })
	set("labels", func() { cfg.Labels = f.Labels })
	set("batch-size", func() { cfg.BatchSize = f.BatchSize })
	set("iterations", func() { cfg.Iterations = f.Iterations })
	set("learning-rate", func() { cfg.LearningRate = f.LearningRate })
	set("momentum", func() { cfg.Momentum = f.Momentum })
	set("seed", func() { cfg.Seed = f.Seed })
	set("normalizer", func() { cfg.Normalizer = f.Normalizer })
	set("log-every", func() { cfg.LogEvery = f.LogEvery })
	set("plot", func() { cfg.Plot = f.Plot })
	if fs.Changed("log-level") {
		level, err := fs.GetString("log-level")
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
