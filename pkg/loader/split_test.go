package loader

import (
	"math"
	"testing"
)

func labels(pos, neg int) []float64 {
	y := make([]float64, pos+neg)
	for i := 0; i < pos; i++ {
		y[i] = 1
	}
	return y
}

func TestStratifiedSplitPreservesProportions(t *testing.T) {
	y := make([]float64, 1000)
	for i := range y {
		if i%4 == 0 {
			y[i] = 1
		}
	}

	s, err := StratifiedSplit(y, 0.2, 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Test) != 200 || len(s.Train) != 800 {
		t.Fatalf("sizes train=%d test=%d", len(s.Train), len(s.Test))
	}

	rate := func(idx []int) float64 {
		pos := 0
		for _, i := range idx {
			pos += int(y[i])
		}
		return float64(pos) / float64(len(idx))
	}
	overall := 0.25
	for name, part := range map[string][]int{"train": s.Train, "test": s.Test} {
		if math.Abs(rate(part)-overall) > 1.0/float64(len(part)) {
			t.Fatalf("%s positive rate %v drifts from %v", name, rate(part), overall)
		}
	}
}

func TestStratifiedSplitDisjointAndComplete(t *testing.T) {
	y := labels(30, 70)
	s, err := StratifiedSplit(y, 0.2, 1)
	if err != nil {
		t.Fatal(err)
	}

	seen := make([]int, len(y))
	for _, i := range s.Train {
		seen[i]++
	}
	for _, i := range s.Test {
		seen[i]++
	}
	for i, n := range seen {
		if n != 1 {
			t.Fatalf("row %d assigned %d times", i, n)
		}
	}
}

func TestStratifiedSplitDeterministic(t *testing.T) {
	y := labels(30, 70)
	a, _ := StratifiedSplit(y, 0.2, 42)
	b, _ := StratifiedSplit(y, 0.2, 42)
	c, _ := StratifiedSplit(y, 0.2, 43)

	same := func(x, y []int) bool {
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	}
	if !same(a.Test, b.Test) {
		t.Fatal("same seed produced different splits")
	}
	if same(a.Test, c.Test) {
		t.Fatal("different seeds produced identical splits")
	}
}

func TestStratifiedSplitRejectsBadInput(t *testing.T) {
	if _, err := StratifiedSplit([]float64{0, 1}, 0, 1); err == nil {
		t.Fatal("expected error for zero ratio")
	}
	if _, err := StratifiedSplit([]float64{0}, 0.2, 1); err == nil {
		t.Fatal("expected error when a partition would be empty")
	}
}
