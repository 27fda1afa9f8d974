package NeuralNetwork

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Softmax replaces x with softmax(x) in place. The maximum is subtracted first
// so large logits do not overflow.
func Softmax(x []float64) {
	if len(x) == 0 {
		return
	}
	m := floats.Max(x)
	for i, v := range x {
		x[i] = math.Exp(v - m)
	}
	floats.Scale(1/floats.Sum(x), x)
}

// SoftmaxRows applies Softmax to every row of m.
func SoftmaxRows(m *mat.Dense) {
	r, _ := m.Dims()
	for i := range r {
		Softmax(m.RawRowView(i))
	}
}
