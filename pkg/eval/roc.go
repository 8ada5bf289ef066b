package eval

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// ROCReport holds the receiver-operating-characteristic curve for a binary
// target: paired true/false positive rates at each score cutoff, ordered by
// ascending false positive rate, plus the area under the curve.
type ROCReport struct {
	TPR        []float64
	FPR        []float64
	Thresholds []float64
	AUC        float64
}

// ROC sweeps the decision threshold over the predicted scores of the
// positive class (label 1) and computes the resulting curve. yTrue must be
// 0/1 labels; scores are the predicted probability or score of class 1.
func ROC(yTrue []int, scores []float64) (*ROCReport, error) {
	if err := checkShapes("roc", len(yTrue), len(scores)); err != nil {
		return nil, err
	}

	// gonum's stat.ROC wants scores ascending with class flags aligned.
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return scores[order[a]] < scores[order[b]] })

	y := make([]float64, len(scores))
	classes := make([]bool, len(scores))
	for k, i := range order {
		y[k] = scores[i]
		classes[k] = yTrue[i] == 1
	}

	tpr, fpr, thresholds := stat.ROC(nil, y, classes, nil)

	// Orient the curve by ascending FPR before integrating.
	if len(fpr) > 1 && fpr[0] > fpr[len(fpr)-1] {
		reverse(tpr)
		reverse(fpr)
		reverse(thresholds)
	}
	auc := integrate.Trapezoidal(fpr, tpr)
	if math.IsNaN(auc) {
		auc = 0
	}

	return &ROCReport{TPR: tpr, FPR: fpr, Thresholds: thresholds, AUC: auc}, nil
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
