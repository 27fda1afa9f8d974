package model

import (
	"fmt"
	"iter"

	"gonum.org/v1/gonum/mat"

	"tabtrain/pkg/data"
)

// Trainer learns from one batch at a time.
type Trainer interface {
	// FitBatch performs one update from b and returns the loss before the update.
	FitBatch(b *data.Batch) (float64, error)
	// PredictProba returns one row of class probabilities per row of X.
	PredictProba(X mat.Matrix) (*mat.Dense, error)
}

// Fit drives m over every batch, fitting each one iterations times. observe, if
// not nil, receives the running step count and loss after every update.
// Fit stops at the first batch or fit error.
func Fit(m Trainer, batches iter.Seq2[*data.Batch, error], iterations int, observe func(step int, loss float64)) (int, error) {
	if iterations < 1 {
		return 0, fmt.Errorf("model: iterations must be positive, got %d", iterations)
	}
	step := 0
	n := 0
	for b, err := range batches {
		if err != nil {
			return step, err
		}
		n++
		for range iterations {
			loss, err := m.FitBatch(b)
			if err != nil {
				return step, fmt.Errorf("model: batch %d: %w", n, err)
			}
			step++
			if observe != nil {
				observe(step, loss)
			}
		}
	}
	return step, nil
}
