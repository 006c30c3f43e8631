package data

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrDatasetMissing is returned by LoadTable when the CSV has not been fetched yet.
var ErrDatasetMissing = errors.New("dataset not found")

// LoadTable reads a CSV with a header row into a DataFrame. Every column is
// kept as text; numeric detection happens during encoding so the loader never
// guesses types from a prefix of the file.
func LoadTable(path string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return dataframe.DataFrame{}, fmt.Errorf(
				"%w at %s\nPlease run: go run ./cmd/fetch-dataset\n"+
					"Or download from: https://www.kaggle.com/blastchar/telco-customer-churn",
				ErrDatasetMissing, path)
		}
		return dataframe.DataFrame{}, err
	}
	defer file.Close()

	return ReadTable(bufio.NewReader(file))
}

// ReadTable parses CSV text into an all-string DataFrame.
func ReadTable(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse csv: %w", df.Err)
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, errors.New("parse csv: no data rows")
	}
	return df, nil
}

// Column returns the raw text of a named column.
func Column(df dataframe.DataFrame, name string) ([]string, error) {
	s := df.Col(name)
	if s.Err != nil {
		return nil, fmt.Errorf("column %q: %w", name, s.Err)
	}
	return s.Records(), nil
}

// Batch represents a collection of data points.
type Batch struct {
	X [][]float64
	Y []float64
}

// Batches shuffles row order with rng and cuts X, Y into mini-batches of at
// most batchSize rows. The final batch may be short.
func Batches(X [][]float64, Y []float64, batchSize int, rng *rand.Rand) []Batch {
	n := len(X)
	if n == 0 || batchSize <= 0 {
		return nil
	}
	order := rng.Perm(n)

	out := make([]Batch, 0, (n+batchSize-1)/batchSize)
	for start := 0; start < n; start += batchSize {
		end := min(start+batchSize, n)
		b := Batch{X: make([][]float64, 0, end-start), Y: make([]float64, 0, end-start)}
		for _, idx := range order[start:end] {
			b.X = append(b.X, X[idx])
			b.Y = append(b.Y, Y[idx])
		}
		out = append(out, b)
	}
	return out
}
