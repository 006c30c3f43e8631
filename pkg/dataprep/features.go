package dataprep

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// FeatureSelect copies the given columns of X, in the given order.
func FeatureSelect(X mat.Matrix, indices []int) *mat.Dense {
	r, _ := X.Dims()
	out := mat.NewDense(r, len(indices), nil)
	for j, idx := range indices {
		out.SetCol(j, mat.Col(nil, idx, X))
	}
	return out
}

// SelectRows copies the given rows of X and y, in the given order.
func SelectRows(X mat.Matrix, y []float64, indices []int) (*mat.Dense, []float64) {
	_, c := X.Dims()
	out := mat.NewDense(len(indices), c, nil)
	labels := make([]float64, len(indices))
	for i, idx := range indices {
		out.SetRow(i, mat.Row(nil, idx, X))
		labels[i] = y[idx]
	}
	return out, labels
}

// TopByMagnitude returns the indices of the k values with the largest
// absolute value, smallest first. Ties keep index order.
func TopByMagnitude(values []float64, k int) []int {
	idx := sortedIndices(values, func(a, b float64) bool { return math.Abs(a) < math.Abs(b) })
	if k < len(idx) {
		idx = idx[len(idx)-k:]
	}
	return idx
}

// Extremes returns the indices of the k largest values followed by the k
// smallest, in descending order of value, without repeats.
func Extremes(values []float64, k int) []int {
	desc := sortedIndices(values, func(a, b float64) bool { return a > b })
	if 2*k >= len(desc) {
		return desc
	}
	out := make([]int, 0, 2*k)
	out = append(out, desc[:k]...)
	return append(out, desc[len(desc)-k:]...)
}

func sortedIndices(values []float64, less func(a, b float64) bool) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return less(values[idx[a]], values[idx[b]]) })
	return idx
}
