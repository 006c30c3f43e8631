package NeuralNetwork

import "math"

// Sigmoid maps a logit to a probability. Large negative inputs are folded
// through exp(x) so the result never rounds through 1/(1+Inf).
func Sigmoid(x float64) float64 {
	if x >= 0 {
		return 1.0 / (1.0 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1.0 + e)
}

// Softplus computes log(1 + exp(x)) without overflowing for large x.
func Softplus(x float64) float64 {
	return math.Max(x, 0) + math.Log1p(math.Exp(-math.Abs(x)))
}
