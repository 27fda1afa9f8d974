package stats

import "errors"

var (
	// ErrNotFitted is returned by Transform before Fit has succeeded.
	ErrNotFitted = errors.New("stats: normalizer is not fitted")

	// ErrDimensionMismatch is returned when a batch's feature count differs from
	// the one the normalizer was fitted on.
	ErrDimensionMismatch = errors.New("stats: feature count mismatch")

	// ErrBadPercentile is returned for percentile bounds outside 0..100 or lower > upper.
	ErrBadPercentile = errors.New("stats: invalid percentile bounds")
)
