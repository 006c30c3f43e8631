package viz

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/logiop/customer-churn-analysis/pkg/model"
)

func render(t *testing.T, p *plot.Plot) []byte {
	t.Helper()
	b, err := PNG(p, 4*vg.Inch, 3*vg.Inch, 72)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(b)); err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	return b
}

func sampleROC(t *testing.T) model.ROC {
	t.Helper()
	roc, err := model.ROCCurve(
		[]float64{0, 0, 1, 1, 0, 1},
		[]float64{0.1, 0.4, 0.35, 0.8, 0.3, 0.9},
	)
	if err != nil {
		t.Fatal(err)
	}
	return roc
}

func TestROCCurveRendersDeterministically(t *testing.T) {
	build := func() []byte {
		p, err := ROCCurve(sampleROC(t))
		if err != nil {
			t.Fatal(err)
		}
		return render(t, p)
	}
	if !bytes.Equal(build(), build()) {
		t.Fatal("same input produced different PNG bytes")
	}
}

func TestCorrelationHeatmap(t *testing.T) {
	corr := mat.NewSymDense(3, []float64{
		1, 0.5, -0.3,
		0.5, 1, 0.1,
		-0.3, 0.1, 1,
	})
	p, err := CorrelationHeatmap([]string{"tenure", "Contract_Two year", "Churn"}, corr)
	if err != nil {
		t.Fatal(err)
	}
	render(t, p)

	if _, err := CorrelationHeatmap([]string{"a"}, corr); err == nil {
		t.Fatal("expected error for mismatched names")
	}
}

func TestFeatureImportance(t *testing.T) {
	p, err := FeatureImportance(
		[]string{"tenure", "MonthlyCharges", "Contract_Two year"},
		[]float64{0.2, -0.6, -1.3}, 3)
	if err != nil {
		t.Fatal(err)
	}
	render(t, p)

	if _, err := FeatureImportance(nil, nil, 3); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestConfusionMatrix(t *testing.T) {
	p, err := ConfusionMatrix(model.ConfusionMatrix{TN: 900, FP: 100, FN: 150, TP: 250})
	if err != nil {
		t.Fatal(err)
	}
	render(t, p)

	if _, err := ConfusionMatrix(model.ConfusionMatrix{}); err != nil {
		t.Fatalf("all-zero matrix should still render: %v", err)
	}
}

func TestGradientEndpoints(t *testing.T) {
	g := newGradient(5, red, green)
	if g[0] != red || g[4] != green {
		t.Fatalf("endpoints %v %v", g[0], g[4])
	}
}

func TestWriteAllOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if _, err := WriteAll(dir, []Artifact{{Name: "a.png", Data: []byte("old")}}); err != nil {
		t.Fatal(err)
	}
	paths, err := WriteAll(dir, []Artifact{{Name: "a.png", Data: []byte("new")}})
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("file not overwritten: %q", got)
	}
}
