package dataprep

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/logiop/customer-churn-analysis/pkg/data"
)

// BinarizeLabel maps the label column to 1 where it equals positive and 0
// otherwise. The column is replaced in the returned frame and the labels are
// also returned on their own.
func BinarizeLabel(df dataframe.DataFrame, col, positive string) (dataframe.DataFrame, []float64, error) {
	raw, err := data.Column(df, col)
	if err != nil {
		return df, nil, err
	}
	y := make([]float64, len(raw))
	for i, v := range raw {
		if v == positive {
			y[i] = 1
		}
	}
	out := df.Mutate(series.New(y, series.Float, col))
	if out.Err != nil {
		return df, nil, fmt.Errorf("binarize %q: %w", col, out.Err)
	}
	return out, y, nil
}

// CoerceNumeric parses a text column as float64. Values that do not parse
// (blank strings included) become NaN; missing reports how many.
func CoerceNumeric(raw []string) (vals []float64, missing int) {
	vals = make([]float64, len(raw))
	for i, v := range raw {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) {
			vals[i] = math.NaN()
			missing++
			continue
		}
		vals[i] = f
	}
	return vals, missing
}

// CleanNumericColumn coerces col to numbers and fills the gaps with the
// median of the whole column. The median is taken over every row, including
// rows that later land in the test partition.
func CleanNumericColumn(df dataframe.DataFrame, col string) (dataframe.DataFrame, Imputation, error) {
	raw, err := data.Column(df, col)
	if err != nil {
		return df, Imputation{}, err
	}
	vals, missing := CoerceNumeric(raw)
	vals, median := ImputeMedian(vals)

	out := df.Mutate(series.New(vals, series.Float, col))
	if out.Err != nil {
		return df, Imputation{}, fmt.Errorf("clean %q: %w", col, out.Err)
	}
	return out, Imputation{Column: col, Missing: missing, Value: median}, nil
}

// DropColumn removes a column by name.
func DropColumn(df dataframe.DataFrame, col string) (dataframe.DataFrame, error) {
	if _, err := data.Column(df, col); err != nil {
		return df, err
	}
	out := df.Drop(col)
	if out.Err != nil {
		return df, fmt.Errorf("drop %q: %w", col, out.Err)
	}
	return out, nil
}
