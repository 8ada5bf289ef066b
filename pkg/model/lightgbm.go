package model

import (
	"errors"
	"fmt"

	"github.com/YuminosukeSato/scigo/sklearn/lightgbm"
	"gonum.org/v1/gonum/mat"
)

// GradientBoostedClassifier trains a gradient-boosted tree ensemble
// (LightGBM) on the matrix it is fitted with. The boosting algorithm itself
// is an external primitive; this adapter only converts between the harness
// matrix types and the library's gonum-based API.
type GradientBoostedClassifier struct {
	clf *lightgbm.LGBMClassifier
}

// NewGradientBoostedClassifier returns an unfitted boosted classifier with
// the library's default parameters.
func NewGradientBoostedClassifier() *GradientBoostedClassifier {
	return &GradientBoostedClassifier{}
}

// Fit trains the ensemble on X and y.
func (g *GradientBoostedClassifier) Fit(X [][]float64, y []int) error {
	Xm, err := denseMatrix(X)
	if err != nil {
		return err
	}
	if len(y) != len(X) {
		return fmt.Errorf("model: %d labels for %d rows", len(y), len(X))
	}
	yv := make([]float64, len(y))
	for i, c := range y {
		yv[i] = float64(c)
	}
	clf := lightgbm.NewLGBMClassifier()
	if err := clf.Fit(Xm, mat.NewDense(len(y), 1, yv)); err != nil {
		return fmt.Errorf("model: fit boosted classifier: %w", err)
	}
	g.clf = clf
	return nil
}

// Predict classifies the rows of X.
func (g *GradientBoostedClassifier) Predict(X [][]float64) ([]int, error) {
	if g.clf == nil {
		return nil, errors.New("model: boosted classifier not fitted")
	}
	Xm, err := denseMatrix(X)
	if err != nil {
		return nil, err
	}
	out, err := g.clf.Predict(Xm)
	if err != nil {
		return nil, fmt.Errorf("model: boosted predict: %w", err)
	}
	labels := make([]int, len(X))
	for i := range labels {
		labels[i] = int(out.At(i, 0))
	}
	return labels, nil
}

// PredictProba returns the predicted score of the positive class per row.
// The library emits one column per class; the last column is class 1 for a
// binary target.
func (g *GradientBoostedClassifier) PredictProba(X [][]float64) ([]float64, error) {
	if g.clf == nil {
		return nil, errors.New("model: boosted classifier not fitted")
	}
	Xm, err := denseMatrix(X)
	if err != nil {
		return nil, err
	}
	out, err := g.clf.PredictProba(Xm)
	if err != nil {
		return nil, fmt.Errorf("model: boosted score: %w", err)
	}
	_, cols := out.Dims()
	scores := make([]float64, len(X))
	for i := range scores {
		scores[i] = out.At(i, cols-1)
	}
	return scores, nil
}

// GradientBoostedRegressor trains a gradient-boosted ensemble with a
// regression objective.
type GradientBoostedRegressor struct {
	reg *lightgbm.LGBMRegressor
}

// NewGradientBoostedRegressor returns an unfitted boosted regressor with the
// library's default parameters.
func NewGradientBoostedRegressor() *GradientBoostedRegressor {
	return &GradientBoostedRegressor{}
}

// Fit trains the ensemble on X and y.
func (g *GradientBoostedRegressor) Fit(X [][]float64, y []float64) error {
	Xm, err := denseMatrix(X)
	if err != nil {
		return err
	}
	if len(y) != len(X) {
		return fmt.Errorf("model: %d targets for %d rows", len(y), len(X))
	}
	reg := lightgbm.NewLGBMRegressor()
	if err := reg.Fit(Xm, mat.NewDense(len(y), 1, append([]float64(nil), y...))); err != nil {
		return fmt.Errorf("model: fit boosted regressor: %w", err)
	}
	g.reg = reg
	return nil
}

// Predict returns the predicted value per row.
func (g *GradientBoostedRegressor) Predict(X [][]float64) ([]float64, error) {
	if g.reg == nil {
		return nil, errors.New("model: boosted regressor not fitted")
	}
	Xm, err := denseMatrix(X)
	if err != nil {
		return nil, err
	}
	out, err := g.reg.Predict(Xm)
	if err != nil {
		return nil, fmt.Errorf("model: boosted predict: %w", err)
	}
	values := make([]float64, len(X))
	for i := range values {
		values[i] = out.At(i, 0)
	}
	return values, nil
}

// denseMatrix converts a rectangular row-major matrix into gonum form.
func denseMatrix(X [][]float64) (*mat.Dense, error) {
	if len(X) == 0 {
		return nil, errors.New("model: empty feature matrix")
	}
	p := len(X[0])
	if p == 0 {
		return nil, errors.New("model: rows have no features")
	}
	flat := make([]float64, 0, len(X)*p)
	for i := range X {
		if len(X[i]) != p {
			return nil, fmt.Errorf("model: row %d has %d features, want %d", i, len(X[i]), p)
		}
		flat = append(flat, X[i]...)
	}
	return mat.NewDense(len(X), p, flat), nil
}
