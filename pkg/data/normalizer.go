package data

// Normalizer adjusts a batch in place. The reader calls Transform on every batch
// it returns while a Normalizer is set. Implementations shared between readers
// must not change their fitted state in Transform.
type Normalizer interface {
	Transform(b *Batch) error
}

// FitNormalizer is a Normalizer that learns its parameters from a batch.
// The reader never calls Fit; callers do, typically on the first batch.
type FitNormalizer interface {
	Normalizer
	Fit(b *Batch) error
}
