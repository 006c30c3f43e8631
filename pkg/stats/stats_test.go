package stats

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMedian(t *testing.T) {
	cases := []struct {
		in   []float64
		want float64
	}{
		{nil, 0},
		{[]float64{3}, 3},
		{[]float64{5, 1, 3}, 3},
		{[]float64{4, 1, 3, 2}, 2.5},
	}
	for _, tc := range cases {
		if got := Median(tc.in); got != tc.want {
			t.Fatalf("Median(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	Median(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	if got := Correlation(x, []float64{2, 4, 6, 8}); math.Abs(got-1) > 1e-12 {
		t.Fatalf("perfect positive correlation = %v", got)
	}
	if got := Correlation(x, []float64{8, 6, 4, 2}); math.Abs(got+1) > 1e-12 {
		t.Fatalf("perfect negative correlation = %v", got)
	}
	if got := Correlation(x, []float64{1, 1, 1, 1}); got != 0 {
		t.Fatalf("constant column correlation = %v, want 0", got)
	}
}

func TestCorrelationMatrixSymmetric(t *testing.T) {
	X := mat.NewDense(4, 3, []float64{
		1, 2, 0,
		2, 1, 1,
		3, 4, 0,
		4, 3, 1,
	})
	c := CorrelationMatrix(X)
	for i := 0; i < 3; i++ {
		if c.At(i, i) != 1 {
			t.Fatalf("diagonal %d = %v", i, c.At(i, i))
		}
		for j := 0; j < 3; j++ {
			if c.At(i, j) != c.At(j, i) {
				t.Fatalf("asymmetric at %d,%d", i, j)
			}
		}
	}
	with := CorrelationWith(X, []float64{0, 1, 0, 1})
	if math.Abs(with[2]-1) > 1e-12 {
		t.Fatalf("column 2 equals y, correlation = %v", with[2])
	}
}

func TestStandardScalerUsesTrainingStatistics(t *testing.T) {
	train := mat.NewDense(4, 2, []float64{
		1, 5,
		2, 5,
		3, 5,
		4, 5,
	})
	s := NewStandardScaler()
	scaled, err := s.FitTransform(train)
	if err != nil {
		t.Fatal(err)
	}

	if s.Mean[0] != 2.5 || math.Abs(s.Std[0]-math.Sqrt(1.25)) > 1e-12 {
		t.Fatalf("population stats wrong: mean %v std %v", s.Mean[0], s.Std[0])
	}
	if s.Std[1] != 1 {
		t.Fatalf("zero-variance column should get std 1, got %v", s.Std[1])
	}
	if scaled.At(0, 1) != 0 {
		t.Fatalf("constant column should center to 0, got %v", scaled.At(0, 1))
	}

	test := mat.NewDense(1, 2, []float64{2.5, 6})
	out, err := s.Transform(test)
	if err != nil {
		t.Fatal(err)
	}
	if out.At(0, 0) != 0 || out.At(0, 1) != 1 {
		t.Fatalf("test row scaled with wrong stats: %v", mat.Formatted(out))
	}
}

func TestStandardScalerErrors(t *testing.T) {
	s := NewStandardScaler()
	if _, err := s.Transform(mat.NewDense(1, 1, nil)); err == nil {
		t.Fatal("expected error before Fit")
	}
	if err := s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Transform(mat.NewDense(1, 3, nil)); err == nil {
		t.Fatal("expected column mismatch error")
	}
}
