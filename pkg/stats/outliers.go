package stats

import (
	"fmt"

	"tabtrain/pkg/data"
)

// PercentileClipper clips each feature to the [Lower, Upper] percentile range of
// the batch it was fitted on.
type PercentileClipper struct {
	Lower, Upper float64 // percent, 0..100
	Lo, Hi       []float64
	fit          bool
}

// NewPercentileClipper returns a clipper for the given percentile bounds.
func NewPercentileClipper(lower, upper float64) (*PercentileClipper, error) {
	if lower < 0 || upper > 100 || lower > upper {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrBadPercentile, lower, upper)
	}
	return &PercentileClipper{Lower: lower, Upper: upper}, nil
}

// Fit computes the per-feature clip bounds from b.
func (c *PercentileClipper) Fit(b *data.Batch) error {
	c.Lo = ColumnPercentile(b.Features, c.Lower)
	c.Hi = ColumnPercentile(b.Features, c.Upper)
	c.fit = true
	return nil
}

// Transform clips b's features in place.
func (c *PercentileClipper) Transform(b *data.Batch) error {
	if !c.fit {
		return ErrNotFitted
	}
	if err := checkWidth(b, len(c.Lo)); err != nil {
		return err
	}
	r, _ := b.Features.Dims()
	for i := range r {
		row := b.Features.RawRowView(i)
		for j, v := range row {
			switch {
			case v < c.Lo[j]:
				row[j] = c.Lo[j]
			case v > c.Hi[j]:
				row[j] = c.Hi[j]
			}
		}
	}
	return nil
}
