package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Median returns the median value of the slice (allocates a copy). Even
// lengths average the two middle values.
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	mid := n >> 1 // bitwise division by 2
	if n&1 == 0 { // even
		return (cp[mid-1] + cp[mid]) * 0.5
	}
	return cp[mid]
}

// Correlation computes the Pearson correlation coefficient between two
// slices. A constant input has no defined correlation and yields 0.
func Correlation(x, y []float64) float64 {
	if len(x) < 2 || len(y) != len(x) {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// CorrelationWith returns the correlation of every column of X against y.
func CorrelationWith(X mat.Matrix, y []float64) []float64 {
	_, c := X.Dims()
	out := make([]float64, c)
	col := make([]float64, len(y))
	for j := range c {
		mat.Col(col, j, X)
		out[j] = Correlation(col, y)
	}
	return out
}

// CorrelationMatrix returns the symmetric matrix of pairwise column
// correlations with ones on the diagonal.
func CorrelationMatrix(X mat.Matrix) *mat.SymDense {
	_, c := X.Dims()
	cols := make([][]float64, c)
	for j := range c {
		cols[j] = mat.Col(nil, j, X)
	}
	out := mat.NewSymDense(c, nil)
	for i := range c {
		out.SetSym(i, i, 1)
		for j := i + 1; j < c; j++ {
			out.SetSym(i, j, Correlation(cols[i], cols[j]))
		}
	}
	return out
}
