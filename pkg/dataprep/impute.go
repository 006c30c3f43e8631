package dataprep

import (
	"math"

	"github.com/logiop/customer-churn-analysis/pkg/stats"
)

// Imputation records what a fill step did to one column.
type Imputation struct {
	Column  string
	Missing int
	Value   float64
}

// ImputeMedian replaces NaN entries with the median of the remaining values.
// A column with no observed values is filled with 0.
func ImputeMedian(col []float64) ([]float64, float64) {
	observed := make([]float64, 0, len(col))
	for _, v := range col {
		if !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}
	median := stats.Median(observed)

	out := make([]float64, len(col))
	for i, v := range col {
		if math.IsNaN(v) {
			out[i] = median
		} else {
			out[i] = v
		}
	}
	return out, median
}
