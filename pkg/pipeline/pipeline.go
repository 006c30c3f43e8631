package pipeline

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/logiop/customer-churn-analysis/pkg/model"
)

// Pipeline chains transformers that are fit on one matrix and then applied
// to others.
type Pipeline struct {
	steps []model.Transformer
}

func NewPipeline(steps ...model.Transformer) *Pipeline {
	return &Pipeline{steps: steps}
}

// Fit fits each step on the output of the previous one.
func (p *Pipeline) Fit(X mat.Matrix) error {
	for _, step := range p.steps {
		out, err := step.FitTransform(X)
		if err != nil {
			return err
		}
		X = out
	}
	return nil
}

// Transform runs X through every fitted step.
func (p *Pipeline) Transform(X mat.Matrix) (*mat.Dense, error) {
	if len(p.steps) == 0 {
		return nil, errors.New("pipeline: no steps")
	}
	var out *mat.Dense
	for _, step := range p.steps {
		var err error
		out, err = step.Transform(X)
		if err != nil {
			return nil, err
		}
		X = out
	}
	return out, nil
}
