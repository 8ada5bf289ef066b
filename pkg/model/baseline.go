package model

import "errors"

// MeanRegressor predicts the training-set mean for every record. It is the
// reference baseline for the regression error-reduction metric.
type MeanRegressor struct {
	mean   float64
	fitted bool
}

// NewMeanRegressor returns an unfitted baseline regressor.
func NewMeanRegressor() *MeanRegressor { return &MeanRegressor{} }

// Fit stores the mean of y.
func (m *MeanRegressor) Fit(_ [][]float64, y []float64) error {
	if len(y) == 0 {
		return errors.New("model: mean regressor: empty y")
	}
	s := 0.0
	for _, v := range y {
		s += v
	}
	m.mean = s / float64(len(y))
	m.fitted = true
	return nil
}

// Predict returns the stored mean for every row.
func (m *MeanRegressor) Predict(X [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, errors.New("model: mean regressor not fitted")
	}
	out := make([]float64, len(X))
	for i := range out {
		out[i] = m.mean
	}
	return out, nil
}

// Mean returns the fitted training mean.
func (m *MeanRegressor) Mean() float64 { return m.mean }

// MajorityClassifier predicts the most frequent training label. Ties resolve
// to the smallest label for determinism.
type MajorityClassifier struct {
	label  int
	fitted bool
}

// NewMajorityClassifier returns an unfitted baseline classifier.
func NewMajorityClassifier() *MajorityClassifier { return &MajorityClassifier{} }

// Fit stores the majority label of y.
func (m *MajorityClassifier) Fit(_ [][]float64, y []int) error {
	if len(y) == 0 {
		return errors.New("model: majority classifier: empty y")
	}
	counts := make(map[int]int)
	for _, c := range y {
		counts[c]++
	}
	best, bestCount := 0, -1
	for c, n := range counts {
		if n > bestCount || (n == bestCount && c < best) {
			best, bestCount = c, n
		}
	}
	m.label = best
	m.fitted = true
	return nil
}

// Predict returns the majority label for every row.
func (m *MajorityClassifier) Predict(X [][]float64) ([]int, error) {
	if !m.fitted {
		return nil, errors.New("model: majority classifier not fitted")
	}
	out := make([]int, len(X))
	for i := range out {
		out[i] = m.label
	}
	return out, nil
}
