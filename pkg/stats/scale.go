package stats

import (
	"fmt"

	"tabtrain/pkg/data"
)

// StandardScaler rescales each feature to zero mean and unit variance using the
// population statistics of the batch it was fitted on. A feature with zero
// spread is only centered.
type StandardScaler struct {
	Mean []float64
	Std  []float64
	fit  bool
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit computes per-feature mean and standard deviation from b.
func (s *StandardScaler) Fit(b *data.Batch) error {
	s.Mean, s.Std = ColumnMeanStd(b.Features)
	for j, sd := range s.Std {
		if sd == 0 {
			s.Std[j] = 1
		}
	}
	s.fit = true
	return nil
}

// Transform standardizes b's features in place.
func (s *StandardScaler) Transform(b *data.Batch) error {
	if !s.fit {
		return ErrNotFitted
	}
	if err := checkWidth(b, len(s.Mean)); err != nil {
		return err
	}
	r, _ := b.Features.Dims()
	for i := range r {
		row := b.Features.RawRowView(i)
		for j := range row {
			row[j] = (row[j] - s.Mean[j]) / s.Std[j]
		}
	}
	return nil
}

// FitTransform fits on b and then transforms it.
func (s *StandardScaler) FitTransform(b *data.Batch) error {
	if err := s.Fit(b); err != nil {
		return err
	}
	return s.Transform(b)
}

// MinMaxScaler maps each feature onto [0, 1] using the minimum and maximum seen
// by Fit. Values outside the fitted range land outside [0, 1]. A constant feature
// maps to 0.
type MinMaxScaler struct {
	Min []float64
	Max []float64
	fit bool
}

func NewMinMaxScaler() *MinMaxScaler { return &MinMaxScaler{} }

// Fit records per-feature minimum and maximum from b.
func (s *MinMaxScaler) Fit(b *data.Batch) error {
	s.Min, s.Max = ColumnMinMax(b.Features)
	s.fit = true
	return nil
}

// Transform rescales b's features in place.
func (s *MinMaxScaler) Transform(b *data.Batch) error {
	if !s.fit {
		return ErrNotFitted
	}
	if err := checkWidth(b, len(s.Min)); err != nil {
		return err
	}
	r, _ := b.Features.Dims()
	for i := range r {
		row := b.Features.RawRowView(i)
		for j := range row {
			if span := s.Max[j] - s.Min[j]; span != 0 {
				row[j] = (row[j] - s.Min[j]) / span
			} else {
				row[j] = 0
			}
		}
	}
	return nil
}

// FitTransform fits on b and then transforms it.
func (s *MinMaxScaler) FitTransform(b *data.Batch) error {
	if err := s.Fit(b); err != nil {
		return err
	}
	return s.Transform(b)
}

func checkWidth(b *data.Batch, want int) error {
	if got := b.NumFeatures(); got != want {
		return fmt.Errorf("%w: fitted on %d, batch has %d", ErrDimensionMismatch, want, got)
	}
	return nil
}

var (
	_ data.FitNormalizer = (*StandardScaler)(nil)
	_ data.FitNormalizer = (*MinMaxScaler)(nil)
	_ data.FitNormalizer = (*PercentileClipper)(nil)
)
