package NeuralNetwork

import "math"

// Binary cross-entropy loss and gradient for logistic regression.
// yPred holds probabilities; the gradient is with respect to the logit,
// averaged over the batch.
func BCE(yTrue, yPred []float64) (float64, []float64) {
	n := len(yTrue)
	if n == 0 {
		return 0, nil
	}
	s := 0.0
	grad := make([]float64, n)

	for i := range n {
		p := math.Min(math.Max(yPred[i], 1e-12), 1-1e-12)
		y := yTrue[i]
		s += -(y*math.Log(p) + (1-y)*math.Log(1-p))
		grad[i] = (p - y) / float64(n)
	}
	return s / float64(n), grad
}

// LogLoss returns the summed cross-entropy of logits z against labels y,
// computed from the logits directly so saturated predictions stay finite.
func LogLoss(y, z []float64) float64 {
	s := 0.0
	for i := range y {
		s += Softplus(z[i]) - y[i]*z[i]
	}
	return s
}
