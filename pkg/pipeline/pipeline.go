// Package pipeline chains normalizers into one.
package pipeline

import (
	"fmt"

	"tabtrain/pkg/data"
)

// Pipeline applies its steps in order. Fitting step k sees the batch as
// transformed by steps 0..k-1.
type Pipeline struct {
	steps []data.FitNormalizer
}

func NewPipeline(steps ...data.FitNormalizer) *Pipeline {
	return &Pipeline{steps: steps}
}

// Len returns the number of steps.
func (p *Pipeline) Len() int { return len(p.steps) }

// Fit fits every step on a copy of b; b itself is not modified.
func (p *Pipeline) Fit(b *data.Batch) error {
	work := b.Clone()
	for i, step := range p.steps {
		if err := step.Fit(work); err != nil {
			return fmt.Errorf("pipeline: fit step %d: %w", i, err)
		}
		if err := step.Transform(work); err != nil {
			return fmt.Errorf("pipeline: transform step %d: %w", i, err)
		}
	}
	return nil
}

// Transform applies every step to b in place.
func (p *Pipeline) Transform(b *data.Batch) error {
	for i, step := range p.steps {
		if err := step.Transform(b); err != nil {
			return fmt.Errorf("pipeline: transform step %d: %w", i, err)
		}
	}
	return nil
}

// FitTransform fits the pipeline on b and then transforms b.
func (p *Pipeline) FitTransform(b *data.Batch) error {
	if err := p.Fit(b); err != nil {
		return err
	}
	return p.Transform(b)
}

var _ data.FitNormalizer = (*Pipeline)(nil)
