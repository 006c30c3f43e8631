package dataprep

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"
)

// Encoded is the numeric feature matrix built from a table. Names[j] labels
// column j of X.
type Encoded struct {
	X     *mat.Dense
	Names []string
	// Levels lists, per categorical source column, the levels that received
	// an indicator column. The dropped reference level is Reference[col].
	Levels      map[string][]string
	Reference   map[string]string
	Numeric     []string
	Categorical []string
}

// OneHotDropFirst one-hot encodes a categorical column, dropping the
// lexicographically first level as the reference. A column with k levels
// yields k-1 indicator columns; a constant column yields none.
func OneHotDropFirst(col []string) (out [][]float64, levels []string, reference string) {
	seen := map[string]struct{}{}
	for _, v := range col {
		seen[v] = struct{}{}
	}
	all := make([]string, 0, len(seen))
	for v := range seen {
		all = append(all, v)
	}
	sort.Strings(all)
	if len(all) > 0 {
		reference = all[0]
		levels = all[1:]
	}

	index := make(map[string]int, len(levels))
	for i, v := range levels {
		index[v] = i
	}
	out = make([][]float64, len(col))
	for i, v := range col {
		vec := make([]float64, len(levels))
		if j, ok := index[v]; ok {
			vec[j] = 1
		}
		out[i] = vec
	}
	return out, levels, reference
}

// numericValues reports the column as floats when every value is numeric.
// Float and Int series pass through; string series qualify only if every
// record parses.
func numericValues(s series.Series) ([]float64, bool) {
	switch s.Type() {
	case series.Float, series.Int:
		return s.Float(), true
	}
	recs := s.Records()
	vals := make([]float64, len(recs))
	for i, r := range recs {
		f, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return nil, false
		}
		vals[i] = f
	}
	return vals, true
}

// Encode turns every column of df except the excluded ones into numeric
// features. Columns keep their table order; the indicator columns of one
// categorical field stay contiguous and are named <field>_<level>.
func Encode(df dataframe.DataFrame, exclude ...string) (*Encoded, error) {
	skip := map[string]bool{}
	for _, e := range exclude {
		skip[e] = true
	}

	rows := df.Nrow()
	enc := &Encoded{Levels: map[string][]string{}, Reference: map[string]string{}}
	var cols [][]float64

	for _, name := range df.Names() {
		if skip[name] {
			continue
		}
		s := df.Col(name)
		if s.Err != nil {
			return nil, fmt.Errorf("encode %q: %w", name, s.Err)
		}

		if vals, ok := numericValues(s); ok {
			cols = append(cols, vals)
			enc.Names = append(enc.Names, name)
			enc.Numeric = append(enc.Numeric, name)
			continue
		}

		oh, levels, ref := OneHotDropFirst(s.Records())
		enc.Levels[name] = levels
		enc.Categorical = append(enc.Categorical, name)
		enc.Reference[name] = ref
		for j, level := range levels {
			col := make([]float64, rows)
			for i := range rows {
				col[i] = oh[i][j]
			}
			cols = append(cols, col)
			enc.Names = append(enc.Names, name+"_"+level)
		}
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf("encode: no feature columns left")
	}
	X := mat.NewDense(rows, len(cols), nil)
	for j, col := range cols {
		X.SetCol(j, col)
	}
	enc.X = X
	return enc, nil
}
