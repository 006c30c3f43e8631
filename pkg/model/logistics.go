package model

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/logiop/customer-churn-analysis/pkg/NeuralNetwork"
	"github.com/logiop/customer-churn-analysis/pkg/data"
	"github.com/logiop/customer-churn-analysis/pkg/optim"
)

// Solver names accepted by LogisticRegression.
const (
	SolverLBFGS = "lbfgs"
	SolverSGD   = "sgd"
)

// LogisticRegression (binary) with sigmoid link and L2 penalty on the
// weights. C is the inverse regularisation strength; the bias is not
// penalised.
type LogisticRegression struct {
	W []float64 // weights
	b float64   // bias

	C       float64
	MaxIter int
	Solver  string
	Seed    int64

	// Mini-batch settings, used by the sgd solver only.
	Lr        float64
	BatchSize int

	// Iterations is how many optimizer iterations (lbfgs) or epochs (sgd)
	// the last Fit ran.
	Iterations int
}

// Options configure NewLogisticRegression.
type Options struct {
	C         float64
	MaxIter   int
	Solver    string
	Seed      int64
	Lr        float64
	BatchSize int
}

func NewLogisticRegression(opts Options) *LogisticRegression {
	if opts.Solver == "" {
		opts.Solver = SolverLBFGS
	}
	return &LogisticRegression{
		C:         opts.C,
		MaxIter:   opts.MaxIter,
		Solver:    opts.Solver,
		Seed:      opts.Seed,
		Lr:        opts.Lr,
		BatchSize: opts.BatchSize,
	}
}

// Bias returns the fitted intercept.
func (m *LogisticRegression) Bias() float64 { return m.b }

// Coefficients returns a copy of the fitted weights.
func (m *LogisticRegression) Coefficients() []float64 {
	return append([]float64(nil), m.W...)
}

// Fit trains the model on X (rows of features) and 0/1 labels y.
func (m *LogisticRegression) Fit(X mat.Matrix, y []float64) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.New("logistic: empty training matrix")
	}
	if r != len(y) {
		return fmt.Errorf("logistic: %d rows but %d labels", r, len(y))
	}
	if m.C <= 0 || m.MaxIter <= 0 {
		return fmt.Errorf("logistic: need positive C and MaxIter, got %v and %d", m.C, m.MaxIter)
	}

	switch m.Solver {
	case SolverLBFGS:
		return m.fitLBFGS(mat.DenseCopyOf(X), y)
	case SolverSGD:
		return m.fitSGD(mat.DenseCopyOf(X), y)
	default:
		return fmt.Errorf("logistic: unknown solver %q", m.Solver)
	}
}

// fitLBFGS minimises 0.5*|w|^2 + C*sum(logloss) with zero starting weights.
// The parameter vector is the weights followed by the bias.
func (m *LogisticRegression) fitLBFGS(X *mat.Dense, y []float64) error {
	r, c := X.Dims()
	z := make([]float64, r)
	resid := make([]float64, r)

	logits := func(params []float64) {
		w := mat.NewVecDense(c, params[:c])
		zv := mat.NewVecDense(r, z)
		zv.MulVec(X, w)
		floats.AddConst(params[c], z)
	}

	problem := optimize.Problem{
		Func: func(params []float64) float64 {
			logits(params)
			w := params[:c]
			return 0.5*floats.Dot(w, w) + m.C*NeuralNetwork.LogLoss(y, z)
		},
		Grad: func(grad, params []float64) {
			logits(params)
			for i := range z {
				resid[i] = NeuralNetwork.Sigmoid(z[i]) - y[i]
			}
			gw := mat.NewVecDense(c, grad[:c])
			gw.MulVec(X.T(), mat.NewVecDense(r, resid))
			floats.Scale(m.C, grad[:c])
			floats.Add(grad[:c], params[:c])
			grad[c] = m.C * floats.Sum(resid)
		},
	}

	settings := &optimize.Settings{
		MajorIterations:   m.MaxIter,
		GradientThreshold: 1e-4,
	}
	res, err := optimize.Minimize(problem, make([]float64, c+1), settings, &optimize.LBFGS{})
	if res == nil {
		return fmt.Errorf("logistic: lbfgs: %w", err)
	}
	if err != nil {
		slog.Warn("lbfgs stopped before convergence", "status", res.Status.String(), "error", err)
	}

	m.W = append([]float64(nil), res.X[:c]...)
	m.b = res.X[c]
	m.Iterations = res.Stats.MajorIterations
	return nil
}

// fitSGD runs MaxIter epochs of mini-batch gradient descent. Weight init and
// batch order come from a generator seeded with m.Seed.
func (m *LogisticRegression) fitSGD(X *mat.Dense, y []float64) error {
	r, c := X.Dims()
	if m.Lr <= 0 || m.BatchSize <= 0 {
		return errors.New("logistic: sgd needs positive Lr and BatchSize")
	}
	rng := rand.New(rand.NewSource(m.Seed))

	m.W = make([]float64, c)
	// Initialize weights with small random values to break symmetry.
	for i := range m.W {
		m.W[i] = rng.NormFloat64() * 0.01
	}
	m.b = 0

	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = X.RawRowView(i)
	}
	// The per-row penalty that makes the summed objective match lbfgs.
	opt := optim.NewSGD(m.Lr, 1/(m.C*float64(r)))

	for ep := 0; ep < m.MaxIter; ep++ {
		for _, batch := range data.Batches(rows, y, m.BatchSize, rng) {
			p := m.predictRows(batch.X)
			_, dy := NeuralNetwork.BCE(batch.Y, p)

			gW := make([]float64, c)
			gb := 0.0
			for i, row := range batch.X {
				d := dy[i]
				for j, xij := range row {
					gW[j] += d * xij
				}
				gb += d
			}
			opt.Step(m.W, gW)
			m.b -= m.Lr * gb
		}
	}
	m.Iterations = m.MaxIter
	return nil
}

func (m *LogisticRegression) predictRows(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = NeuralNetwork.Sigmoid(m.b + floats.Dot(m.W, row))
	}
	return out
}

// PredictProba returns P(y=1) for each row of X.
func (m *LogisticRegression) PredictProba(X mat.Matrix) []float64 {
	r, c := X.Dims()
	if r == 0 || len(m.W) != c {
		return nil
	}
	z := mat.NewVecDense(r, nil)
	z.MulVec(X, mat.NewVecDense(c, m.W))
	out := make([]float64, r)
	for i := range out {
		out[i] = NeuralNetwork.Sigmoid(z.AtVec(i) + m.b)
	}
	return out
}

// Predict returns the class labels (0 or 1) based on a 0.5 probability threshold.
func (m *LogisticRegression) Predict(X mat.Matrix) []float64 {
	proba := m.PredictProba(X)
	out := make([]float64, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out
}
