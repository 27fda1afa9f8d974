package NeuralNetwork_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"tabtrain/pkg/NeuralNetwork"
)

func TestSoftmax(t *testing.T) {
	t.Parallel()

	x := []float64{1, 2, 3}
	NeuralNetwork.Softmax(x)
	e := []float64{math.Exp(-2), math.Exp(-1), 1}
	sum := e[0] + e[1] + e[2]
	require.InDeltaSlice(t, []float64{e[0] / sum, e[1] / sum, e[2] / sum}, x, 1e-12)

	big := []float64{1000, 1000}
	NeuralNetwork.Softmax(big)
	require.InDeltaSlice(t, []float64{0.5, 0.5}, big, 1e-12)

	NeuralNetwork.Softmax(nil)
}

func TestSoftmaxRows(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(2, 2, []float64{0, 0, 5, 5})
	NeuralNetwork.SoftmaxRows(m)
	require.True(t, mat.EqualApprox(mat.NewDense(2, 2, []float64{.5, .5, .5, .5}), m, 1e-12))
}

func TestCrossEntropy(t *testing.T) {
	t.Parallel()

	yTrue := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	yPred := mat.NewDense(2, 2, []float64{0.8, 0.2, 0.4, 0.6})
	loss, grad := NeuralNetwork.CrossEntropy(yTrue, yPred)
	require.InDelta(t, -(math.Log(0.8)+math.Log(0.6))/2, loss, 1e-12)
	require.True(t, mat.EqualApprox(mat.NewDense(2, 2, []float64{-0.1, 0.1, 0.2, -0.2}), grad, 1e-12))

	// Zero probability on the true class is clipped, not infinite.
	loss, _ = NeuralNetwork.CrossEntropy(mat.NewDense(1, 2, []float64{1, 0}), mat.NewDense(1, 2, []float64{0, 1}))
	require.False(t, math.IsInf(loss, 0))
}
