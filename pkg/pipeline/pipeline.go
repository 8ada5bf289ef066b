// Package pipeline runs one parametrized analysis: derive a target for a
// substance, split reproducibly, resolve missing predictors, fit a supplied
// predictor, and evaluate it on the held-out subset. A run either returns a
// complete report or fails; there are no partial results.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/senaisle/DATA-5322/pkg/dataset"
	"github.com/senaisle/DATA-5322/pkg/eval"
	"github.com/senaisle/DATA-5322/pkg/model"
	"github.com/senaisle/DATA-5322/pkg/split"
	"github.com/senaisle/DATA-5322/pkg/stats"
	"github.com/senaisle/DATA-5322/pkg/target"
)

// Kind selects which target is derived for the configured substance.
type Kind int

const (
	// BinaryTarget: used within the reference window, yes/no.
	BinaryTarget Kind = iota
	// CategoricalTarget: ordered days-of-use frequency bucket.
	CategoricalTarget
	// ContinuousTarget: count of days used in the reference period.
	ContinuousTarget
)

func (k Kind) String() string {
	switch k {
	case BinaryTarget:
		return "binary"
	case CategoricalTarget:
		return "categorical"
	case ContinuousTarget:
		return "continuous"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Config parametrizes one analysis run.
type Config struct {
	Substance     string
	Kind          Kind
	TrainFraction float64
	Seed          int64
	Missing       split.MissingPolicy
	// MinRows is the minimum viable subset size after splitting and
	// missingness handling; 0 means the predictor count.
	MinRows int
	Logger  *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Report is the complete result of one run.
type Report struct {
	Substance  string
	Kind       Kind
	Predictors []string
	TrainRows  int
	TestRows   int

	Classification *eval.ClassificationReport
	ROC            *eval.ROCReport
	Regression     *eval.RegressionReport
	Importances    []eval.Importance
}

// RunClassification derives a binary or categorical target and evaluates the
// classifier on the held-out subset. For binary targets the ROC curve is
// added when the classifier exposes scores, and ranked importances when it
// exposes them.
func RunClassification(tbl *dataset.Table, clf model.Classifier, cfg Config) (*Report, error) {
	if cfg.Kind == ContinuousTarget {
		return nil, fmt.Errorf("pipeline: %s target needs RunRegression", cfg.Kind)
	}
	log := cfg.logger().With("substance", cfg.Substance, "target", cfg.Kind.String())

	var derived *target.Derived
	var err error
	if cfg.Kind == BinaryTarget {
		derived, err = target.Binary(tbl, cfg.Substance)
	} else {
		derived, err = target.Categorical(tbl, cfg.Substance)
	}
	if err != nil {
		return nil, err
	}
	log.Info("target derived", "records", len(derived.Labels), "predictors", derived.Predictors.NumCols())

	prep, err := prepare(derived.Predictors, cfg)
	if err != nil {
		return nil, err
	}
	trainY := pickInts(derived.Labels, prep.trainRows)
	testY := pickInts(derived.Labels, prep.testRows)
	log.Info("split prepared", "train", prep.trainX.Len(), "test", prep.testX.Len())

	if err := clf.Fit(prep.trainX.Matrix(), trainY); err != nil {
		return nil, fmt.Errorf("pipeline: fit (%d train records): %w", prep.trainX.Len(), err)
	}
	preds, err := clf.Predict(prep.testX.Matrix())
	if err != nil {
		return nil, fmt.Errorf("pipeline: predict (%d held-out records): %w", prep.testX.Len(), err)
	}

	report := &Report{
		Substance:  cfg.Substance,
		Kind:       cfg.Kind,
		Predictors: prep.trainX.Columns(),
		TrainRows:  prep.trainX.Len(),
		TestRows:   prep.testX.Len(),
	}
	report.Classification, err = eval.Classification(testY, preds)
	if err != nil {
		return nil, err
	}

	if cfg.Kind == BinaryTarget {
		if scorer, ok := clf.(model.ProbClassifier); ok {
			scores, err := scorer.PredictProba(prep.testX.Matrix())
			if err != nil {
				return nil, fmt.Errorf("pipeline: score (%d held-out records): %w", prep.testX.Len(), err)
			}
			report.ROC, err = eval.ROC(testY, scores)
			if err != nil {
				return nil, err
			}
		}
	}
	if ranker, ok := clf.(model.FeatureRanker); ok {
		report.Importances, err = eval.RankImportances(report.Predictors, ranker.FeatureImportances())
		if err != nil {
			return nil, err
		}
	}
	log.Info("evaluated", "accuracy", report.Classification.Accuracy)
	return report, nil
}

// RunRegression derives the continuous target and evaluates the regressor
// against the training-mean baseline.
func RunRegression(tbl *dataset.Table, reg model.Regressor, cfg Config) (*Report, error) {
	if cfg.Kind != ContinuousTarget {
		return nil, fmt.Errorf("pipeline: %s target needs RunClassification", cfg.Kind)
	}
	log := cfg.logger().With("substance", cfg.Substance, "target", cfg.Kind.String())

	derived, err := target.Continuous(tbl, cfg.Substance)
	if err != nil {
		return nil, err
	}
	log.Info("target derived", "records", len(derived.Values), "predictors", derived.Predictors.NumCols())

	prep, err := prepare(derived.Predictors, cfg)
	if err != nil {
		return nil, err
	}
	trainY := pickFloats(derived.Values, prep.trainRows)
	testY := pickFloats(derived.Values, prep.testRows)
	log.Info("split prepared", "train", prep.trainX.Len(), "test", prep.testX.Len())

	if err := reg.Fit(prep.trainX.Matrix(), trainY); err != nil {
		return nil, fmt.Errorf("pipeline: fit (%d train records): %w", prep.trainX.Len(), err)
	}
	preds, err := reg.Predict(prep.testX.Matrix())
	if err != nil {
		return nil, fmt.Errorf("pipeline: predict (%d held-out records): %w", prep.testX.Len(), err)
	}

	report := &Report{
		Substance:  cfg.Substance,
		Kind:       cfg.Kind,
		Predictors: prep.trainX.Columns(),
		TrainRows:  prep.trainX.Len(),
		TestRows:   prep.testX.Len(),
	}
	report.Regression, err = eval.Regression(testY, preds, stats.Mean(trainY))
	if err != nil {
		return nil, err
	}
	if ranker, ok := reg.(model.FeatureRanker); ok {
		report.Importances, err = eval.RankImportances(report.Predictors, ranker.FeatureImportances())
		if err != nil {
			return nil, err
		}
	}
	log.Info("evaluated", "error_reduction", report.Regression.ErrorReduction)
	return report, nil
}

// prepared holds the train/test predictor tables and the rows of the derived
// record set each one kept.
type prepared struct {
	trainX, testX       *dataset.Table
	trainRows, testRows []int
}

// prepare splits the predictor table and applies the missingness policy
// independently, and consistently, to both subsets.
func prepare(predictors *dataset.Table, cfg Config) (*prepared, error) {
	part, err := split.Split(predictors.Len(), cfg.TrainFraction, cfg.Seed)
	if err != nil {
		return nil, err
	}
	trainX, err := predictors.Subset(part.TrainIdx)
	if err != nil {
		return nil, err
	}
	testX, err := predictors.Subset(part.TestIdx)
	if err != nil {
		return nil, err
	}

	trainRows := part.TrainIdx
	testRows := part.TestIdx
	switch cfg.Missing {
	case split.MissingDrop:
		trainKeep := split.CompleteCases(trainX)
		testKeep := split.CompleteCases(testX)
		if trainX, err = trainX.Subset(trainKeep); err != nil {
			return nil, err
		}
		if testX, err = testX.Subset(testKeep); err != nil {
			return nil, err
		}
		trainRows = pickInts(part.TrainIdx, trainKeep)
		testRows = pickInts(part.TestIdx, testKeep)
	case split.MissingImputeMode:
		imputer, err := split.NewModeImputer(trainX)
		if err != nil {
			return nil, err
		}
		if trainX, err = imputer.Apply(trainX); err != nil {
			return nil, err
		}
		if testX, err = imputer.Apply(testX); err != nil {
			return nil, err
		}
	}

	minRows := cfg.MinRows
	if minRows <= 0 {
		minRows = predictors.NumCols()
	}
	if err := split.CheckViable("train subset", trainX.Len(), minRows); err != nil {
		return nil, err
	}
	if err := split.CheckViable("held-out subset", testX.Len(), minRows); err != nil {
		return nil, err
	}
	return &prepared{trainX: trainX, testX: testX, trainRows: trainRows, testRows: testRows}, nil
}

func pickInts(src []int, rows []int) []int {
	out := make([]int, len(rows))
	for k, i := range rows {
		out[k] = src[i]
	}
	return out
}

func pickFloats(src []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for k, i := range rows {
		out[k] = src[i]
	}
	return out
}
