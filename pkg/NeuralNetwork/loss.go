package NeuralNetwork

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// CrossEntropy returns the mean categorical cross-entropy of predicted class
// probabilities yPred against one-hot targets yTrue, and its gradient with
// respect to the softmax inputs, (yPred - yTrue) / n.
// Use this loss with a softmax output layer (multi-class classification).
func CrossEntropy(yTrue, yPred mat.Matrix) (float64, *mat.Dense) {
	n, k := yTrue.Dims()
	grad := mat.NewDense(n, k, nil)
	grad.Sub(yPred, yTrue)
	grad.Scale(1/float64(n), grad)

	s := 0.0
	for i := range n {
		for j := range k {
			if y := yTrue.At(i, j); y != 0 {
				p := math.Min(math.Max(yPred.At(i, j), 1e-12), 1-1e-12)
				s -= y * math.Log(p)
			}
		}
	}
	return s / float64(n), grad
}
