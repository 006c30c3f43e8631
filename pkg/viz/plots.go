// Package viz renders the diagnostic charts with gonum/plot.
package viz

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/logiop/customer-churn-analysis/pkg/model"
)

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.Padding = vg.Points(12)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	return p
}

func newGrid(vertical, horizontal bool) *plotter.Grid {
	g := plotter.NewGrid()
	g.Vertical.Color = nil
	g.Horizontal.Color = nil
	if vertical {
		g.Vertical.Color = gridGy
	}
	if horizontal {
		g.Horizontal.Color = gridGy
	}
	return g
}

// ROCCurve plots the curve against the chance diagonal with the AUC in the
// legend.
func ROCCurve(roc model.ROC) (*plot.Plot, error) {
	p := newPlot("ROC Curve - Model Performance", "False Positive Rate", "True Positive Rate")
	p.Add(newGrid(true, true))

	pts := make(plotter.XYs, len(roc.FPR))
	for i := range pts {
		pts[i].X = roc.FPR[i]
		pts[i].Y = roc.TPR[i]
	}
	curve, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("roc line: %w", err)
	}
	curve.Color = blue
	curve.LineStyle.Width = vg.Points(3)

	chance, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return nil, fmt.Errorf("roc diagonal: %w", err)
	}
	chance.Color = black
	chance.LineStyle.Width = vg.Points(2)
	chance.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	p.Add(chance, curve)
	p.Legend.Add(fmt.Sprintf("ROC Curve (AUC = %.3f)", roc.AUC()), curve)
	p.Legend.Add("Random Classifier", chance)
	p.Legend.Top = false
	p.Legend.Left = false
	p.Legend.XOffs = -vg.Points(10)
	p.Legend.YOffs = vg.Points(10)

	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	return p, nil
}

// cellGrid adapts a row-major table to plotter.GridXYZ with row 0 drawn at
// the top.
type cellGrid [][]float64

func (g cellGrid) Dims() (c, r int)   { return len(g[0]), len(g) }
func (g cellGrid) Z(c, r int) float64 { return g[len(g)-1-r][c] }
func (g cellGrid) X(c int) float64    { return float64(c) }
func (g cellGrid) Y(r int) float64    { return float64(r) }

// cellLabels annotates every cell of g. Cells for which light returns true
// get white text.
func cellLabels(g cellGrid, format func(float64) string, light func(float64) bool) (*plotter.Labels, error) {
	var xyl plotter.XYLabels
	var values []float64
	for i, row := range g {
		for j, v := range row {
			xyl.XYs = append(xyl.XYs, plotter.XY{X: float64(j), Y: float64(len(g) - 1 - i)})
			xyl.Labels = append(xyl.Labels, format(v))
			values = append(values, v)
		}
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
		if light(values[i]) {
			labels.TextStyle[i].Color = white
		}
	}
	return labels, nil
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// CorrelationHeatmap draws a correlation matrix with annotated cells on a
// red-yellow-green scale pinned to [-1, 1].
func CorrelationHeatmap(names []string, corr mat.Symmetric) (*plot.Plot, error) {
	n := corr.SymmetricDim()
	if n < 2 || len(names) != n {
		return nil, fmt.Errorf("heatmap: need at least 2 named columns, got %d names for %d columns", len(names), n)
	}
	g := make(cellGrid, n)
	for i := range g {
		g[i] = make([]float64, n)
		for j := range g[i] {
			g[i][j] = corr.At(i, j)
		}
	}

	p := newPlot("Feature Correlation Matrix (Top Features vs Churn)", "", "")
	h := plotter.NewHeatMap(g, redYellowGreen)
	h.Min, h.Max = -1, 1
	p.Add(h)

	labels, err := cellLabels(g,
		func(v float64) string { return fmt.Sprintf("%.2f", v) },
		func(v float64) bool { return math.Abs(v) > 0.75 })
	if err != nil {
		return nil, fmt.Errorf("heatmap labels: %w", err)
	}
	p.Add(labels)

	p.NominalX(names...)
	p.NominalY(reversed(names)...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	return p, nil
}

// FeatureImportance draws horizontal bars of |coefficient|. names and coefs
// are plotted bottom to top; positive coefficients are red, negative green.
func FeatureImportance(names []string, coefs []float64, k int) (*plot.Plot, error) {
	if len(names) == 0 || len(names) != len(coefs) {
		return nil, errors.New("importance: names and coefficients must be non-empty and aligned")
	}
	up := make(plotter.Values, len(coefs))
	down := make(plotter.Values, len(coefs))
	for i, c := range coefs {
		if c > 0 {
			up[i] = c
		} else {
			down[i] = -c
		}
	}

	p := newPlot(fmt.Sprintf("Top %d Features - Feature Importance (Logistic Regression)", k),
		"Absolute Coefficient Value", "")
	p.Add(newGrid(true, false))

	width := vg.Points(16)
	for _, series := range []struct {
		vals  plotter.Values
		fill  color.Color
		label string
	}{
		{up, red, "Raises churn odds"},
		{down, green, "Lowers churn odds"},
	} {
		bars, err := plotter.NewBarChart(series.vals, width)
		if err != nil {
			return nil, fmt.Errorf("importance bars: %w", err)
		}
		bars.Horizontal = true
		bars.Color = series.fill
		p.Add(bars)
		p.Legend.Add(series.label, bars)
	}

	p.NominalY(names...)
	p.Legend.Top = false
	p.Legend.Left = false
	p.X.Min = 0
	return p, nil
}

// ConfusionMatrix draws the 2x2 count grid, actual classes as rows, with
// accuracy, precision and recall in the title.
func ConfusionMatrix(cm model.ConfusionMatrix) (*plot.Plot, error) {
	counts := cm.Counts()
	g := cellGrid{
		{float64(counts[0][0]), float64(counts[0][1])},
		{float64(counts[1][0]), float64(counts[1][1])},
	}
	hi := 0.0
	for _, row := range g {
		for _, v := range row {
			hi = math.Max(hi, v)
		}
	}
	if hi == 0 {
		hi = 1
	}

	title := fmt.Sprintf("Confusion Matrix\nAccuracy: %.1f%%   Precision: %.1f%%   Recall: %.1f%%",
		100*cm.Accuracy(), 100*cm.Precision(), 100*cm.Recall())
	p := newPlot(title, "Predicted", "Actual")

	h := plotter.NewHeatMap(g, blues)
	h.Min, h.Max = 0, hi
	p.Add(h)

	labels, err := cellLabels(g,
		func(v float64) string { return fmt.Sprintf("%d", int(v)) },
		func(v float64) bool { return v > hi/2 })
	if err != nil {
		return nil, fmt.Errorf("confusion labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = vg.Points(14)
	}
	p.Add(labels)

	classes := []string{"No Churn", "Churn"}
	p.NominalX(classes...)
	p.NominalY(reversed(classes)...)
	return p, nil
}
