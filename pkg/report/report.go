// Package report serialises the numbers behind a run's plots.
package report

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type Summary struct {
	Dataset string  `yaml:"dataset"`
	Rows    int     `yaml:"rows"`
	Train   int     `yaml:"train_rows"`
	Test    int     `yaml:"test_rows"`
	Solver  string  `yaml:"solver"`
	Iters   int     `yaml:"iterations"`
	AUC     float64 `yaml:"auc"`

	Confusion Confusion `yaml:"confusion"`
	Imputed   Imputed   `yaml:"imputed"`

	Schema       Schema        `yaml:"schema"`
	Coefficients []Coefficient `yaml:"top_coefficients"`
	Plots        []string      `yaml:"plots"`
}

type Confusion struct {
	TN        int     `yaml:"tn"`
	FP        int     `yaml:"fp"`
	FN        int     `yaml:"fn"`
	TP        int     `yaml:"tp"`
	Accuracy  float64 `yaml:"accuracy"`
	Precision float64 `yaml:"precision"`
	Recall    float64 `yaml:"recall"`
}

type Imputed struct {
	Column  string  `yaml:"column"`
	Missing int     `yaml:"missing"`
	Median  float64 `yaml:"median"`
}

// Schema describes the encoded feature space.
type Schema struct {
	Features    int                 `yaml:"features"`
	Numeric     []string            `yaml:"numeric"`
	Categorical map[string][]string `yaml:"categorical"`
}

type Coefficient struct {
	Feature string  `yaml:"feature"`
	Value   float64 `yaml:"value"`
}

// Marshal renders the summary as YAML. Map keys are emitted sorted, so equal
// summaries marshal to equal bytes.
func (s Summary) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return out, nil
}

// Parse decodes a summary previously written by Marshal.
func Parse(b []byte) (Summary, error) {
	var s Summary
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Summary{}, fmt.Errorf("parse report: %w", err)
	}
	return s, nil
}
