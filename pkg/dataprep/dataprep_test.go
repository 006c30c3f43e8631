package dataprep

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"

	"github.com/logiop/customer-churn-analysis/pkg/data"
)

const table = `customerID,gender,SeniorCitizen,Contract,tenure,TotalCharges,Churn
a,Female,0,Month-to-month,1,29.85,No
b,Male,1,One year,34, ,Yes
c,Male,0,Two year,2,108.15,Yes
d,Female,0,Month-to-month,45,1840.75,No
e,Female,1,One year,8, ,No
`

func loadTable(t *testing.T) (df dataframe.DataFrame, encoded *Encoded, y []float64, imp Imputation) {
	t.Helper()
	df, err := data.ReadTable(strings.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}
	df, y, err = BinarizeLabel(df, "Churn", "Yes")
	if err != nil {
		t.Fatal(err)
	}
	df, imp, err = CleanNumericColumn(df, "TotalCharges")
	if err != nil {
		t.Fatal(err)
	}
	df, err = DropColumn(df, "customerID")
	if err != nil {
		t.Fatal(err)
	}
	encoded, err = Encode(df, "Churn")
	if err != nil {
		t.Fatal(err)
	}
	return df, encoded, y, imp
}

func TestBinarizeLabel(t *testing.T) {
	_, _, y, _ := loadTable(t)
	want := []float64{0, 1, 1, 0, 0}
	for i := range want {
		if y[i] != want[i] {
			t.Fatalf("y = %v, want %v", y, want)
		}
	}
}

func TestCoerceNumericMarksBlanks(t *testing.T) {
	vals, missing := CoerceNumeric([]string{"1.5", " ", "", "abc", "2"})
	if missing != 3 {
		t.Fatalf("missing = %d, want 3", missing)
	}
	if vals[0] != 1.5 || vals[4] != 2 || !math.IsNaN(vals[1]) {
		t.Fatalf("unexpected values %v", vals)
	}
}

func TestImputeMedianUsesWholeColumn(t *testing.T) {
	out, median := ImputeMedian([]float64{1, math.NaN(), 3, 10, math.NaN()})
	if median != 3 {
		t.Fatalf("median = %v, want 3", median)
	}
	if out[1] != 3 || out[4] != 3 || out[3] != 10 {
		t.Fatalf("imputed = %v", out)
	}
}

func TestCleanNumericColumnReportsImputation(t *testing.T) {
	_, enc, _, imp := loadTable(t)
	if imp.Missing != 2 {
		t.Fatalf("missing = %d, want 2", imp.Missing)
	}
	// observed: 29.85, 108.15, 1840.75 -> median 108.15
	if imp.Value != 108.15 {
		t.Fatalf("median = %v, want 108.15", imp.Value)
	}

	col := -1
	for j, n := range enc.Names {
		if n == "TotalCharges" {
			col = j
		}
	}
	if col < 0 {
		t.Fatalf("TotalCharges not numeric: %v", enc.Names)
	}
	if enc.X.At(1, col) != 108.15 {
		t.Fatalf("row 1 TotalCharges = %v", enc.X.At(1, col))
	}
}

func TestEncodeDropsOneLevelPerCategoricalField(t *testing.T) {
	df, enc, _, _ := loadTable(t)

	rows, cols := enc.X.Dims()
	if rows != df.Nrow() {
		t.Fatalf("row count changed: %d vs %d", rows, df.Nrow())
	}

	distinct := map[string]int{"gender": 2, "Contract": 3}
	want := len(enc.Numeric)
	for field, k := range distinct {
		if got := len(enc.Levels[field]); got != k-1 {
			t.Fatalf("%s: %d indicator columns, want %d", field, got, k-1)
		}
		want += k - 1
	}
	if cols != want {
		t.Fatalf("encoded %d columns, want %d (%v)", cols, want, enc.Names)
	}
	if enc.Reference["Contract"] != "Month-to-month" {
		t.Fatalf("reference level = %q", enc.Reference["Contract"])
	}
	for _, n := range enc.Names {
		if n == "Churn" || n == "customerID" {
			t.Fatalf("%s leaked into features", n)
		}
	}
}

func TestEncodeKeepsSourceOrder(t *testing.T) {
	_, enc, _, _ := loadTable(t)
	want := []string{
		"gender_Male", "SeniorCitizen",
		"Contract_One year", "Contract_Two year",
		"tenure", "TotalCharges",
	}
	if strings.Join(enc.Names, "|") != strings.Join(want, "|") {
		t.Fatalf("names = %v, want %v", enc.Names, want)
	}
	if enc.X.At(2, 3) != 1 || enc.X.At(2, 2) != 0 {
		t.Fatalf("row 2 should be Two year: %v %v", enc.X.At(2, 2), enc.X.At(2, 3))
	}
}

func TestOneHotDropFirstConstantColumn(t *testing.T) {
	out, levels, ref := OneHotDropFirst([]string{"x", "x"})
	if len(levels) != 0 || ref != "x" || len(out[0]) != 0 {
		t.Fatalf("constant column: levels %v ref %q width %d", levels, ref, len(out[0]))
	}
}

func TestTopByMagnitude(t *testing.T) {
	idx := TopByMagnitude([]float64{0.1, -3, 2, -0.5}, 2)
	if len(idx) != 2 || idx[0] != 2 || idx[1] != 1 {
		t.Fatalf("TopByMagnitude = %v, want [2 1]", idx)
	}
}

func TestExtremes(t *testing.T) {
	vals := []float64{0.3, -0.4, 0.1, 0.5, -0.2, 0}
	idx := Extremes(vals, 2)
	want := []int{3, 0, 4, 1}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("Extremes = %v, want %v", idx, want)
		}
	}
	if got := Extremes(vals, 5); len(got) != len(vals) {
		t.Fatalf("k larger than half should return all, got %v", got)
	}
}

func TestSelectRowsAndFeatures(t *testing.T) {
	_, enc, y, _ := loadTable(t)
	X, labels := SelectRows(enc.X, y, []int{2, 0})
	if labels[0] != 1 || labels[1] != 0 {
		t.Fatalf("labels = %v", labels)
	}
	sub := FeatureSelect(X, []int{4})
	if sub.At(0, 0) != 2 || sub.At(1, 0) != 1 {
		t.Fatalf("tenure column = %v, %v", sub.At(0, 0), sub.At(1, 0))
	}
}
