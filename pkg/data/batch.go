package data

import "gonum.org/v1/gonum/mat"

// Batch is one training unit: a feature matrix and a one-hot label matrix with
// the same number of rows. Row r of Labels has a single 1 at the class index of
// the example in row r of Features.
type Batch struct {
	Features *mat.Dense
	Labels   *mat.Dense
}

// Len returns the number of examples.
func (b *Batch) Len() int {
	r, _ := b.Features.Dims()
	return r
}

// NumFeatures returns the width of the feature matrix.
func (b *Batch) NumFeatures() int {
	_, c := b.Features.Dims()
	return c
}

// NumClasses returns the width of the label matrix.
func (b *Batch) NumClasses() int {
	_, c := b.Labels.Dims()
	return c
}

// Class returns the class index of example i: the column of the largest entry in
// its label row, the first one on ties.
func (b *Batch) Class(i int) int {
	row := b.Labels.RawRowView(i)
	best := 0
	for j, v := range row {
		if v > row[best] {
			best = j
		}
	}
	return best
}

// Clone returns a deep copy of the batch.
func (b *Batch) Clone() *Batch {
	return &Batch{
		Features: mat.DenseCopyOf(b.Features),
		Labels:   mat.DenseCopyOf(b.Labels),
	}
}
