// Command analysis runs the full youth survey study as one batch: for each
// configured substance it derives the binary, categorical, and continuous
// targets, fits the configured tree-based models, and prints the held-out
// metrics reports. Configuration comes from analysis.yaml and the
// YOUTHRISK_* environment; there are no flags.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/viper"

	"github.com/senaisle/DATA-5322/pkg/dataset"
	"github.com/senaisle/DATA-5322/pkg/model"
	"github.com/senaisle/DATA-5322/pkg/pipeline"
	"github.com/senaisle/DATA-5322/pkg/split"
)

func main() {
	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("analysis failed", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var opts []dataset.LoadOption
	if len(cfg.MissingCodes) > 0 {
		opts = append(opts, dataset.WithMissingCodes(cfg.MissingCodes))
	}
	if len(cfg.UnknownCategory) > 0 {
		opts = append(opts, dataset.WithUnknownCategory(cfg.UnknownCategory))
	}
	tbl, err := dataset.Load(cfg.Data, opts...)
	if err != nil {
		return err
	}
	log.Info("dataset loaded", "path", cfg.Data, "records", tbl.Len(), "columns", tbl.NumCols())

	for _, substance := range cfg.Substances {
		if err := analyzeSubstance(log, tbl, substance, cfg); err != nil {
			return fmt.Errorf("substance %s: %w", substance, err)
		}
	}
	return nil
}

func analyzeSubstance(log *slog.Logger, tbl *dataset.Table, substance string, cfg config) error {
	base := pipeline.Config{
		Substance:     substance,
		TrainFraction: cfg.TrainFraction,
		Seed:          cfg.Seed,
		Missing:       cfg.Missing,
		Logger:        log,
	}

	classifiers := []struct {
		name string
		clf  model.Classifier
	}{
		{"decision tree", model.NewDecisionTree(cfg.TreePrune)},
		{"bagged trees", model.NewBaggedTrees(cfg.ForestTrees, 0)},
		{"random forest", model.NewRandomForest(cfg.ForestTrees, cfg.ForestFeatures)},
	}

	for _, kind := range []pipeline.Kind{pipeline.BinaryTarget, pipeline.CategoricalTarget} {
		runCfg := base
		runCfg.Kind = kind
		for _, m := range classifiers {
			report, err := pipeline.RunClassification(tbl, m.clf, runCfg)
			if err != nil {
				return err
			}
			printReport(m.name, report)
		}
		if kind == pipeline.BinaryTarget {
			// The boosted classifier trains with a binary objective.
			report, err := pipeline.RunClassification(tbl, model.NewGradientBoostedClassifier(), runCfg)
			if err != nil {
				return err
			}
			printReport("gradient boosting", report)
		}
	}

	runCfg := base
	runCfg.Kind = pipeline.ContinuousTarget
	regressors := []struct {
		name string
		reg  model.Regressor
	}{
		{"mean baseline", model.NewMeanRegressor()},
		{"gradient boosting", model.NewGradientBoostedRegressor()},
	}
	for _, m := range regressors {
		report, err := pipeline.RunRegression(tbl, m.reg, runCfg)
		if err != nil {
			return err
		}
		printReport(m.name, report)
	}
	return nil
}

func printReport(name string, r *pipeline.Report) {
	fmt.Printf("\n=== %s / %s target / %s (train %d, held-out %d)\n",
		r.Substance, r.Kind, name, r.TrainRows, r.TestRows)

	if c := r.Classification; c != nil {
		fmt.Printf("accuracy: %.4f\n", c.Accuracy)
		fmt.Printf("confusion (observed x predicted), classes %v:\n", c.Confusion.Classes)
		for i, row := range c.Confusion.Counts {
			fmt.Printf("  %4d | %v\n", c.Confusion.Classes[i], row)
		}
		for _, class := range c.Confusion.Classes {
			fmt.Printf("  class %d: precision %.4f recall %.4f\n",
				class, c.Precision[class], c.Recall[class])
		}
	}
	if r.ROC != nil {
		fmt.Printf("ROC AUC: %.4f (%d cutoffs)\n", r.ROC.AUC, len(r.ROC.Thresholds))
	}
	if g := r.Regression; g != nil {
		fmt.Printf("baseline MSE %.4f, model MSE %.4f, error reduction %.4f\n",
			g.BaselineMSE, g.ModelMSE, g.ErrorReduction)
	}
	if len(r.Importances) > 0 {
		fmt.Println("feature importances:")
		for _, imp := range r.Importances {
			fmt.Printf("  %-12s %.5f\n", imp.Feature, imp.Score)
		}
	}
}

type config struct {
	Data            string
	Substances      []string
	Seed            int64
	TrainFraction   float64
	Missing         split.MissingPolicy
	TreePrune       float64
	ForestTrees     int
	ForestFeatures  int
	MissingCodes    map[string][]float64
	UnknownCategory map[string]float64
}

func loadConfig() (config, error) {
	v := viper.New()
	v.SetConfigName("analysis")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("youthrisk")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data", "youth_data.csv")
	v.SetDefault("substances", []string{"marijuana", "alcohol", "tobacco"})
	v.SetDefault("seed", 5322)
	v.SetDefault("train_fraction", 0.75)
	v.SetDefault("missing_policy", "drop")
	v.SetDefault("tree_prune", 0.6)
	v.SetDefault("forest_trees", 100)
	v.SetDefault("forest_features", 4)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}

	policy, err := split.ParseMissingPolicy(v.GetString("missing_policy"))
	if err != nil {
		return config{}, err
	}

	cfg := config{
		Data:           v.GetString("data"),
		Substances:     v.GetStringSlice("substances"),
		Seed:           v.GetInt64("seed"),
		TrainFraction:  v.GetFloat64("train_fraction"),
		Missing:        policy,
		TreePrune:      v.GetFloat64("tree_prune"),
		ForestTrees:    v.GetInt("forest_trees"),
		ForestFeatures: v.GetInt("forest_features"),
	}
	if err := v.UnmarshalKey("missing_codes", &cfg.MissingCodes); err != nil {
		return config{}, fmt.Errorf("missing_codes: %w", err)
	}
	if err := v.UnmarshalKey("unknown_category", &cfg.UnknownCategory); err != nil {
		return config{}, fmt.Errorf("unknown_category: %w", err)
	}
	return cfg, nil
}
