package model

import "gonum.org/v1/gonum/mat"

// Model is a generic supervised learning interface.
type Model interface {
	Fit(X mat.Matrix, y []float64) error
	Predict(X mat.Matrix) []float64
}

// Classifier optionally exposes probabilities.
type Classifier interface {
	Model
	PredictProba(X mat.Matrix) []float64 // returns p(y=1) for binary classifiers
}

// Transformer is for preprocessing steps (fit on train, transform both).
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (*mat.Dense, error)
	FitTransform(X mat.Matrix) (*mat.Dense, error)
}

var _ Classifier = (*LogisticRegression)(nil)
