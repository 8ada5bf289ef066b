// Package model defines the predictor abstraction the evaluation harness
// fits and scores, plus adapters over the external model libraries that
// supply the actual tree, forest, and boosting implementations.
package model

// Classifier is a supervised class predictor.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) ([]int, error)
}

// ProbClassifier additionally exposes the predicted score of the positive
// class (label 1) for binary targets, which the ROC sweep needs.
type ProbClassifier interface {
	Classifier
	PredictProba(X [][]float64) ([]float64, error)
}

// Regressor is a supervised value predictor.
type Regressor interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) ([]float64, error)
}

// FeatureRanker exposes a fitted ensemble's native per-feature importance
// scores, aligned with the predictor columns it was fitted on. Predictors
// whose backing library publishes no importances simply do not implement it.
type FeatureRanker interface {
	FeatureImportances() []float64
}
