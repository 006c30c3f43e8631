package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/logiop/customer-churn-analysis/pkg/config"
	"github.com/logiop/customer-churn-analysis/pkg/data"
	"github.com/logiop/customer-churn-analysis/pkg/dataprep"
	"github.com/logiop/customer-churn-analysis/pkg/loader"
	"github.com/logiop/customer-churn-analysis/pkg/model"
	"github.com/logiop/customer-churn-analysis/pkg/report"
	"github.com/logiop/customer-churn-analysis/pkg/stats"
	"github.com/logiop/customer-churn-analysis/pkg/viz"
)

// Output file names. Reruns overwrite them.
const (
	ROCFile         = "04_roc_curve.png"
	CorrelationFile = "05_correlation_heatmap.png"
	ImportanceFile  = "06_feature_importance.png"
	ConfusionFile   = "07_confusion_matrix.png"
	ReportFile      = "metrics.yaml"
)

// Prepared is the model input after cleaning, encoding, splitting and
// scaling.
type Prepared struct {
	Encoded    *dataprep.Encoded
	Labels     []float64
	Imputation dataprep.Imputation
	Split      loader.Split

	XTrain, XTest *mat.Dense // standardized
	YTrain, YTest []float64
}

// Evaluation holds test-partition results of a fitted model.
type Evaluation struct {
	Proba     []float64
	Predicted []float64
	ROC       model.ROC
	Confusion model.ConfusionMatrix
}

// Prepare runs the fixed preprocessing stages on a raw table.
func Prepare(df dataframe.DataFrame, cfg config.Config) (*Prepared, error) {
	df, y, err := dataprep.BinarizeLabel(df, cfg.LabelColumn, cfg.PositiveLabel)
	if err != nil {
		return nil, err
	}

	var imp dataprep.Imputation
	if cfg.CoerceColumn != "" {
		df, imp, err = dataprep.CleanNumericColumn(df, cfg.CoerceColumn)
		if err != nil {
			return nil, err
		}
		if imp.Missing > 0 {
			slog.Info("Imputed missing values", "column", imp.Column, "count", imp.Missing, "median", imp.Value)
		}
	}
	if cfg.IDColumn != "" {
		if df, err = dataprep.DropColumn(df, cfg.IDColumn); err != nil {
			return nil, err
		}
	}

	enc, err := dataprep.Encode(df, cfg.LabelColumn)
	if err != nil {
		return nil, err
	}

	split, err := loader.StratifiedSplit(y, cfg.TestRatio, cfg.Seed)
	if err != nil {
		return nil, err
	}
	xTrain, yTrain := dataprep.SelectRows(enc.X, y, split.Train)
	xTest, yTest := dataprep.SelectRows(enc.X, y, split.Test)

	scaling := NewPipeline(stats.NewStandardScaler())
	if err := scaling.Fit(xTrain); err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}
	if xTrain, err = scaling.Transform(xTrain); err != nil {
		return nil, err
	}
	if xTest, err = scaling.Transform(xTest); err != nil {
		return nil, err
	}

	return &Prepared{
		Encoded:    enc,
		Labels:     y,
		Imputation: imp,
		Split:      split,
		XTrain:     xTrain,
		XTest:      xTest,
		YTrain:     yTrain,
		YTest:      yTest,
	}, nil
}

// Train fits the configured logistic regression on the training partition.
func Train(p *Prepared, cfg config.Config) (*model.LogisticRegression, error) {
	m := model.NewLogisticRegression(model.Options{
		C:         cfg.C,
		MaxIter:   cfg.MaxIter,
		Solver:    cfg.Solver,
		Seed:      cfg.Seed,
		Lr:        cfg.LearningRate,
		BatchSize: cfg.BatchSize,
	})
	if err := m.Fit(p.XTrain, p.YTrain); err != nil {
		return nil, err
	}
	return m, nil
}

// Evaluate scores the test partition.
func Evaluate(m model.Classifier, p *Prepared) (*Evaluation, error) {
	proba := m.PredictProba(p.XTest)
	roc, err := model.ROCCurve(p.YTest, proba)
	if err != nil {
		return nil, err
	}
	pred := m.Predict(p.XTest)
	cm, err := model.NewConfusionMatrix(p.YTest, pred)
	if err != nil {
		return nil, err
	}
	return &Evaluation{Proba: proba, Predicted: pred, ROC: roc, Confusion: cm}, nil
}

type figure struct {
	name string
	w, h vg.Length
	draw func() (*plot.Plot, error)
}

// Render draws the four plots into memory. Nothing touches the disk here.
func Render(p *Prepared, m *model.LogisticRegression, ev *Evaluation, cfg config.Config) ([]viz.Artifact, error) {
	corrNames, corr := correlationInput(p, cfg)
	impNames, impVals := importanceInput(p.Encoded.Names, m.Coefficients(), cfg.TopFeatures)

	figures := []figure{
		{ROCFile, 10 * vg.Inch, 8 * vg.Inch, func() (*plot.Plot, error) {
			return viz.ROCCurve(ev.ROC)
		}},
		{CorrelationFile, 12 * vg.Inch, 10 * vg.Inch, func() (*plot.Plot, error) {
			return viz.CorrelationHeatmap(corrNames, corr)
		}},
		{ImportanceFile, 10 * vg.Inch, 8 * vg.Inch, func() (*plot.Plot, error) {
			return viz.FeatureImportance(impNames, impVals, len(impNames))
		}},
		{ConfusionFile, 8 * vg.Inch, 7 * vg.Inch, func() (*plot.Plot, error) {
			return viz.ConfusionMatrix(ev.Confusion)
		}},
	}

	out := make([]viz.Artifact, 0, len(figures))
	for _, f := range figures {
		pl, err := f.draw()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		b, err := viz.PNG(pl, f.w, f.h, cfg.DPI)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		out = append(out, viz.Artifact{Name: f.name, Data: b})
	}
	return out, nil
}

// correlationInput picks the features most positively and most negatively
// correlated with the label over the full encoded dataset, and returns their
// correlation matrix with the label appended as the last column.
func correlationInput(p *Prepared, cfg config.Config) ([]string, *mat.SymDense) {
	withLabel := stats.CorrelationWith(p.Encoded.X, p.Labels)
	idx := dataprep.Extremes(withLabel, cfg.CorrFeatures)

	sub := dataprep.FeatureSelect(p.Encoded.X, idx)
	r, c := sub.Dims()
	full := mat.NewDense(r, c+1, nil)
	full.Slice(0, r, 0, c).(*mat.Dense).Copy(sub)
	full.SetCol(c, p.Labels)

	names := make([]string, 0, c+1)
	for _, j := range idx {
		names = append(names, p.Encoded.Names[j])
	}
	names = append(names, cfg.LabelColumn)
	return names, stats.CorrelationMatrix(full)
}

// importanceInput returns the k largest-magnitude coefficients, smallest
// first so the biggest bar is drawn on top.
func importanceInput(names []string, coefs []float64, k int) ([]string, []float64) {
	idx := dataprep.TopByMagnitude(coefs, k)
	outNames := make([]string, len(idx))
	outVals := make([]float64, len(idx))
	for i, j := range idx {
		outNames[i] = names[j]
		outVals[i] = coefs[j]
	}
	return outNames, outVals
}

// Summarize collects the numbers behind the plots for the run report.
func Summarize(p *Prepared, m *model.LogisticRegression, ev *Evaluation, cfg config.Config) report.Summary {
	names, vals := importanceInput(p.Encoded.Names, m.Coefficients(), cfg.TopFeatures)
	coefs := make([]report.Coefficient, len(names))
	for i := range names {
		// largest magnitude first
		j := len(names) - 1 - i
		coefs[i] = report.Coefficient{Feature: names[j], Value: vals[j]}
	}

	cm := ev.Confusion
	return report.Summary{
		Dataset: cfg.Dataset,
		Rows:    len(p.Labels),
		Train:   len(p.YTrain),
		Test:    len(p.YTest),
		Solver:  m.Solver,
		Iters:   m.Iterations,
		AUC:     ev.ROC.AUC(),
		Confusion: report.Confusion{
			TN: cm.TN, FP: cm.FP, FN: cm.FN, TP: cm.TP,
			Accuracy:  cm.Accuracy(),
			Precision: cm.Precision(),
			Recall:    cm.Recall(),
		},
		Imputed: report.Imputed{
			Column:  p.Imputation.Column,
			Missing: p.Imputation.Missing,
			Median:  p.Imputation.Value,
		},
		Schema:       DescribeSchema(p.Encoded),
		Coefficients: coefs,
		Plots:        []string{ROCFile, CorrelationFile, ImportanceFile, ConfusionFile},
	}
}

// Run executes the analyzer end to end: load, prepare, fit, evaluate,
// render, then write every artifact. A missing dataset fails before the
// output directory is touched.
func Run(cfg config.Config) (*report.Summary, error) {
	df, err := data.LoadTable(cfg.DatasetPath())
	if err != nil {
		return nil, err
	}
	slog.Info("Dataset loaded", "path", cfg.DatasetPath(), "rows", df.Nrow(), "columns", df.Ncol())

	prep, err := Prepare(df, cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("Features encoded", "features", len(prep.Encoded.Names),
		"train_rows", len(prep.YTrain), "test_rows", len(prep.YTest))

	m, err := Train(prep, cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("Model trained", "solver", m.Solver, "iterations", m.Iterations)

	ev, err := Evaluate(m, prep)
	if err != nil {
		return nil, err
	}

	artifacts, err := Render(prep, m, ev, cfg)
	if err != nil {
		return nil, err
	}
	summary := Summarize(prep, m, ev, cfg)
	b, err := summary.Marshal()
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, viz.Artifact{Name: ReportFile, Data: b})

	paths, err := viz.WriteAll(cfg.OutputDir, artifacts)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		slog.Info("Saved", "path", path)
	}
	slog.Info("Evaluation", "auc", fmt.Sprintf("%.3f", summary.AUC),
		"accuracy", fmt.Sprintf("%.3f", summary.Confusion.Accuracy))
	return &summary, nil
}
