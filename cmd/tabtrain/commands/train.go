package commands

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tabtrain/pkg/data"
	"tabtrain/pkg/model"
	"tabtrain/pkg/optim"
)

func newTrainCmd() *cobra.Command {
	var flags Config
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a softmax classifier and evaluate it on the first batch",
		Long: `Train a softmax classifier batch by batch.

The first batch is held out as test data. The normalizer is fitted on it and
then applied to every later batch. Each later batch is fitted --iterations
times, and the model is finally evaluated on the held-out batch.`,
		Args: cobra.NoArgs,
	}
	configPath := bindFlags(cmd, &flags, true)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveConfig(cmd, *configPath, &flags)
		if err != nil {
			return err
		}
		return runTrain(cmd, cfg)
	}
	return cmd
}

func runTrain(cmd *cobra.Command, cfg *Config) error {
	log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	run := runSummary{ID: uuid.NewString()}
	log = log.With("run", run.ID)

	r, err := openReader(cfg, log)
	if err != nil {
		return err
	}
	defer r.Close()

	test, err := r.Next()
	if errors.Is(err, data.ErrNoMoreData) {
		return fmt.Errorf("%s: no data rows", cfg.Input)
	}
	if err != nil {
		return fmt.Errorf("read test batch: %w", err)
	}
	run.TestRows = test.Len()

	norm, err := cfg.normalizer()
	if err != nil {
		return err
	}
	if norm != nil {
		if err := norm.Fit(test); err != nil {
			return fmt.Errorf("fit normalizer: %w", err)
		}
		if err := norm.Transform(test); err != nil {
			return fmt.Errorf("normalize test batch: %w", err)
		}
		r.SetNormalizer(norm)
	}
	log.Info("test batch held out", "rows", test.Len(), "normalizer", cfg.Normalizer)

	m := model.NewSoftmaxRegression(r.NumFeatures(), len(cfg.Labels),
		optim.NewMomentumSGD(cfg.LearningRate, cfg.Momentum),
		rand.New(rand.NewSource(cfg.Seed)))

	var losses []float64
	observe := func(step int, loss float64) {
		losses = append(losses, loss)
		if step%cfg.Iterations == 0 {
			run.Batches++
		}
		if cfg.LogEvery > 0 && step%cfg.LogEvery == 0 {
			log.Info("training", "step", step, "loss", loss)
		}
	}
	run.Steps, err = model.Fit(m, r.All(), cfg.Iterations, observe)
	if err != nil {
		return err
	}
	if run.Steps == 0 {
		log.Warn("no training batches after the held-out batch", "batch_size", cfg.BatchSize)
	} else {
		run.FinalLoss = losses[len(losses)-1]
	}

	output, err := m.PredictProba(test.Features)
	if err != nil {
		return err
	}
	ev := model.NewEvaluation(cfg.Labels)
	if err := ev.Eval(test.Labels, output); err != nil {
		return err
	}
	log.Info("evaluated", "accuracy", ev.Accuracy(), "updates", run.Steps)

	if cfg.Plot != "" && run.Steps > 0 {
		if err := saveLearningCurve(losses, cfg.Plot); err != nil {
			return err
		}
		log.Info("learning curve saved", "path", cfg.Plot)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), renderEvaluation(run, ev))
	return err
}
