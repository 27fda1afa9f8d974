package data

import "errors"

var (
	// ErrInvalidLabel is returned when a label cell is not in the reader's label set.
	// The wrapping error names the offending value and its line.
	ErrInvalidLabel = errors.New("data: invalid label")

	// ErrNoMoreData is returned by Next once the source is exhausted.
	ErrNoMoreData = errors.New("data: no more data")

	// ErrBadBatchSize is returned for a batch size below 1.
	ErrBadBatchSize = errors.New("data: batch size must be positive")

	// ErrNoFeatures is returned when the source has no column besides the label.
	ErrNoFeatures = errors.New("data: source has no feature columns")
)
