// Package stats provides per-feature statistics and the normalizers built on them.
//
// Every normalizer here implements data.FitNormalizer: Fit learns per-column
// parameters from a batch's feature matrix, Transform rewrites a batch's features
// in place. Transform never changes fitted state, so one fitted normalizer can be
// shared by several readers.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ColumnMeanStd returns the population mean and standard deviation of each column.
func ColumnMeanStd(m mat.Matrix) (means, stds []float64) {
	r, c := m.Dims()
	means = make([]float64, c)
	stds = make([]float64, c)
	col := make([]float64, r)
	for j := range c {
		mat.Col(col, j, m)
		means[j], stds[j] = stat.PopMeanStdDev(col, nil)
	}
	return means, stds
}

// ColumnMinMax returns the smallest and largest value of each column.
func ColumnMinMax(m mat.Matrix) (mins, maxs []float64) {
	r, c := m.Dims()
	mins = make([]float64, c)
	maxs = make([]float64, c)
	col := make([]float64, r)
	for j := range c {
		mat.Col(col, j, m)
		mins[j], maxs[j] = floats.Min(col), floats.Max(col)
	}
	return mins, maxs
}

// ColumnPercentile returns the p-th percentile (0 <= p <= 100) of each column,
// interpolated linearly on the empirical distribution (stat.LinInterp).
func ColumnPercentile(m mat.Matrix, p float64) []float64 {
	r, c := m.Dims()
	out := make([]float64, c)
	if r == 0 {
		return out
	}
	q := min(max(p/100, 0), 1)
	col := make([]float64, r)
	for j := range c {
		mat.Col(col, j, m)
		sort.Float64s(col)
		out[j] = stat.Quantile(q, stat.LinInterp, col, nil)
	}
	return out
}
