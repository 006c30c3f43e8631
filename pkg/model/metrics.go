package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ConfusionMatrix holds binary classification counts, label 1 positive.
type ConfusionMatrix struct {
	TN, FP, FN, TP int
}

// NewConfusionMatrix tallies predictions against truth. Any nonzero value
// counts as the positive class.
func NewConfusionMatrix(yTrue, yPred []float64) (ConfusionMatrix, error) {
	if len(yTrue) != len(yPred) {
		return ConfusionMatrix{}, fmt.Errorf("confusion: %d labels vs %d predictions", len(yTrue), len(yPred))
	}
	var cm ConfusionMatrix
	for i := range yTrue {
		actual, predicted := yTrue[i] != 0, yPred[i] != 0
		switch {
		case actual && predicted:
			cm.TP++
		case actual:
			cm.FN++
		case predicted:
			cm.FP++
		default:
			cm.TN++
		}
	}
	return cm, nil
}

func (c ConfusionMatrix) Total() int { return c.TN + c.FP + c.FN + c.TP }

// Counts returns the matrix with actual classes as rows and predicted
// classes as columns: [[TN FP] [FN TP]].
func (c ConfusionMatrix) Counts() [2][2]int {
	return [2][2]int{{c.TN, c.FP}, {c.FN, c.TP}}
}

// Accuracy is (TP+TN)/total.
func (c ConfusionMatrix) Accuracy() float64 { return ratio(c.TP+c.TN, c.Total()) }

// Precision is TP/(TP+FP), 0 when nothing was predicted positive.
func (c ConfusionMatrix) Precision() float64 { return ratio(c.TP, c.TP+c.FP) }

// Recall is TP/(TP+FN), 0 when there are no actual positives.
func (c ConfusionMatrix) Recall() float64 { return ratio(c.TP, c.TP+c.FN) }

func (c ConfusionMatrix) F1() float64 {
	p, r := c.Precision(), c.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// ROC is a receiver operating characteristic curve. Points run from (0,0) to
// (1,1); Thresholds[i] is the score cutoff that produces point i (+Inf for
// the origin).
type ROC struct {
	FPR, TPR, Thresholds []float64
}

// ROCCurve computes the ROC of scores against 0/1 labels, emitting one point
// per distinct score. Both classes must be present.
func ROCCurve(yTrue, scores []float64) (ROC, error) {
	if len(yTrue) != len(scores) {
		return ROC{}, fmt.Errorf("roc: %d labels vs %d scores", len(yTrue), len(scores))
	}
	pos, neg := 0, 0
	for _, y := range yTrue {
		if y != 0 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return ROC{}, errors.New("roc: need both positive and negative samples")
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	roc := ROC{FPR: []float64{0}, TPR: []float64{0}, Thresholds: []float64{math.Inf(1)}}
	tp, fp := 0, 0
	for k, idx := range order {
		if yTrue[idx] != 0 {
			tp++
		} else {
			fp++
		}
		if k+1 < len(order) && scores[order[k+1]] == scores[idx] {
			continue
		}
		roc.FPR = append(roc.FPR, float64(fp)/float64(neg))
		roc.TPR = append(roc.TPR, float64(tp)/float64(pos))
		roc.Thresholds = append(roc.Thresholds, scores[idx])
	}
	return roc, nil
}

// AUC integrates TPR over FPR with the trapezoid rule.
func (r ROC) AUC() float64 {
	area := 0.0
	for i := 1; i < len(r.FPR); i++ {
		area += (r.FPR[i] - r.FPR[i-1]) * (r.TPR[i] + r.TPR[i-1]) / 2
	}
	return area
}
