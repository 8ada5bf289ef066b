// Package eval computes held-out metrics reports for fitted predictors:
// classification (confusion matrix, accuracy, precision/recall, ROC),
// regression against a constant-mean baseline, and ranked feature
// importances. It produces report structures only; rendering is out of scope.
package eval

import "sort"

// ConfusionMatrix counts observed-by-predicted class pairs over the union of
// classes seen in either vector, sorted ascending.
type ConfusionMatrix struct {
	Classes []int
	Counts  [][]int

	index map[int]int
}

// Count returns the number of records with the given observed and predicted
// classes. Unknown classes count zero.
func (m *ConfusionMatrix) Count(observed, predicted int) int {
	i, ok := m.index[observed]
	if !ok {
		return 0
	}
	j, ok := m.index[predicted]
	if !ok {
		return 0
	}
	return m.Counts[i][j]
}

// ClassificationReport summarizes held-out classification quality.
type ClassificationReport struct {
	Confusion *ConfusionMatrix
	Accuracy  float64
	// Precision and Recall are per-class, keyed by class label, with an
	// entry for every class in the matrix: a class never predicted has
	// precision 0, a class never observed has recall 0.
	Precision map[int]float64
	Recall    map[int]float64
}

// Classification builds the report for a held-out set.
func Classification(yTrue, yPred []int) (*ClassificationReport, error) {
	if err := checkShapes("classification", len(yTrue), len(yPred)); err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	for _, c := range yTrue {
		seen[c] = true
	}
	for _, c := range yPred {
		seen[c] = true
	}
	classes := make([]int, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	index := make(map[int]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	counts := make([][]int, len(classes))
	for i := range counts {
		counts[i] = make([]int, len(classes))
	}

	correct := 0
	for k := range yTrue {
		counts[index[yTrue[k]]][index[yPred[k]]]++
		if yTrue[k] == yPred[k] {
			correct++
		}
	}

	precision := make(map[int]float64, len(classes))
	recall := make(map[int]float64, len(classes))
	for i, c := range classes {
		var predicted, observed int
		for j := range classes {
			predicted += counts[j][i]
			observed += counts[i][j]
		}
		precision[c], recall[c] = 0, 0
		if predicted > 0 {
			precision[c] = float64(counts[i][i]) / float64(predicted)
		}
		if observed > 0 {
			recall[c] = float64(counts[i][i]) / float64(observed)
		}
	}

	return &ClassificationReport{
		Confusion: &ConfusionMatrix{Classes: classes, Counts: counts, index: index},
		Accuracy:  float64(correct) / float64(len(yTrue)),
		Precision: precision,
		Recall:    recall,
	}, nil
}
