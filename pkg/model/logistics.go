package model

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"tabtrain/pkg/NeuralNetwork"
	"tabtrain/pkg/data"
	"tabtrain/pkg/optim"
)

// ErrShapeMismatch is returned when inputs do not match the model's dimensions.
var ErrShapeMismatch = errors.New("model: shape mismatch")

// SoftmaxRegression is multinomial logistic regression: a single linear layer
// followed by softmax, trained with cross-entropy and SGD.
type SoftmaxRegression struct {
	W   *mat.Dense // features x classes
	B   []float64  // per-class bias
	Opt *optim.SGD
}

// NewSoftmaxRegression initializes a model with small random weights drawn from rng.
func NewSoftmaxRegression(nFeatures, nClasses int, opt *optim.SGD, rng *rand.Rand) *SoftmaxRegression {
	w := mat.NewDense(nFeatures, nClasses, nil)
	raw := w.RawMatrix().Data
	// Small random values break symmetry between classes.
	for i := range raw {
		raw[i] = rng.NormFloat64() * 0.01
	}
	return &SoftmaxRegression{
		W:   w,
		B:   make([]float64, nClasses),
		Opt: opt,
	}
}

// PredictProba returns softmax(X·W + B), one row per example.
func (m *SoftmaxRegression) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	r, c := X.Dims()
	f, k := m.W.Dims()
	if c != f {
		return nil, fmt.Errorf("%w: %d features, model expects %d", ErrShapeMismatch, c, f)
	}
	out := mat.NewDense(r, k, nil)
	out.Mul(X, m.W)
	for i := range r {
		row := out.RawRowView(i)
		floats.Add(row, m.B)
	}
	NeuralNetwork.SoftmaxRows(out)
	return out, nil
}

// Predict returns the most probable class index for every row of X.
func (m *SoftmaxRegression) Predict(X mat.Matrix) ([]int, error) {
	p, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	r, _ := p.Dims()
	out := make([]int, r)
	for i := range r {
		out[i] = floats.MaxIdx(p.RawRowView(i))
	}
	return out, nil
}

// FitBatch takes one gradient step on b.
func (m *SoftmaxRegression) FitBatch(b *data.Batch) (float64, error) {
	f, k := m.W.Dims()
	if b.NumClasses() != k {
		return 0, fmt.Errorf("%w: %d classes, model expects %d", ErrShapeMismatch, b.NumClasses(), k)
	}
	// Forward pass.
	p, err := m.PredictProba(b.Features)
	if err != nil {
		return 0, err
	}
	loss, dz := NeuralNetwork.CrossEntropy(b.Labels, p)

	// Backward pass: dW = Xᵀ·dZ, dB = column sums of dZ.
	gW := mat.NewDense(f, k, nil)
	gW.Mul(b.Features.T(), dz)
	gB := make([]float64, k)
	r, _ := dz.Dims()
	for i := range r {
		floats.Add(gB, dz.RawRowView(i))
	}

	m.Opt.Step(m.W.RawMatrix().Data, gW.RawMatrix().Data)
	m.Opt.Step(m.B, gB)
	return loss, nil
}

var _ Trainer = (*SoftmaxRegression)(nil)
