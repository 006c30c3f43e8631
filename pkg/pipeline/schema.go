package pipeline

import (
	"github.com/logiop/customer-churn-analysis/pkg/dataprep"
	"github.com/logiop/customer-churn-analysis/pkg/report"
)

// DescribeSchema summarises the encoded feature space: which source columns
// stayed numeric and which levels each categorical column kept.
func DescribeSchema(enc *dataprep.Encoded) report.Schema {
	cat := make(map[string][]string, len(enc.Categorical))
	for _, name := range enc.Categorical {
		cat[name] = append([]string{enc.Reference[name] + " (reference)"}, enc.Levels[name]...)
	}
	return report.Schema{
		Features:    len(enc.Names),
		Numeric:     enc.Numeric,
		Categorical: cat,
	}
}
