// Package target derives supervised-learning targets from raw survey codes.
//
// Three derivations are supported per substance: a binary use/no-use label
// thresholded from the last-use recency code, an ordered frequency bucket,
// and a continuous count of days used in the reference period. Each
// derivation also produces the matching predictor table with every
// near-duplicate encoding of the target removed, so a model can never learn
// the label from a leaked column.
package target

import (
	"fmt"
	"math"

	"github.com/senaisle/DATA-5322/pkg/dataset"
)

// Survey code boundaries from the codebook. Recency codes below
// sentinelFloor indicate use within the reference window; codes at or above
// it (91 "never used", 93 "did not use in window", and the bad-data family)
// do not. Day counts above maxDayCount are "did not use" sentinels.
const (
	sentinelFloor = 91
	maxDayCount   = 90
	noUseBucket   = 5
	noneBucket    = 0
)

// ConfigurationError reports a request for a substance the codebook does not
// define.
type ConfigurationError struct {
	Substance string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("target: unknown substance %q", e.Substance)
}

// Derived pairs a target vector with the leak-free predictor table it was
// derived from. Exactly one of Labels or Values is set, depending on whether
// the derivation is categorical or continuous.
type Derived struct {
	Substance  Substance
	Labels     []int
	Values     []float64
	Predictors *dataset.Table
}

// Binary derives a use-within-window label: 1 if the recency code indicates
// use inside the reference period, 0 for every sentinel at or above 91.
func Binary(tbl *dataset.Table, substance string) (*Derived, error) {
	sub, err := Lookup(substance)
	if err != nil {
		return nil, err
	}
	return deriveLabels(tbl, sub, sub.RecencyColumn, func(code float64) int {
		if code < sentinelFloor {
			return 1
		}
		return 0
	})
}

// Categorical derives the ordered frequency bucket. The "no use" sentinel
// bucket is remapped onto the "none" bucket so categories are contiguous:
// 0 none, 1-4 increasing days of use.
func Categorical(tbl *dataset.Table, substance string) (*Derived, error) {
	sub, err := Lookup(substance)
	if err != nil {
		return nil, err
	}
	return deriveLabels(tbl, sub, sub.BucketColumn, func(code float64) int {
		if code == noUseBucket {
			return noneBucket
		}
		return int(code)
	})
}

// Continuous derives the count of days used in the reference period.
// Out-of-range sentinel codes (meaning "did not use") become zero.
func Continuous(tbl *dataset.Table, substance string) (*Derived, error) {
	sub, err := Lookup(substance)
	if err != nil {
		return nil, err
	}
	raw, err := tbl.Column(sub.CountColumn)
	if err != nil {
		return nil, fmt.Errorf("target: %s: %w", sub.Name, err)
	}
	keep := presentRows(raw)
	sub3, err := tbl.Subset(keep)
	if err != nil {
		return nil, fmt.Errorf("target: %s: %w", sub.Name, err)
	}
	values := make([]float64, len(keep))
	for k, i := range keep {
		v := raw[i]
		if v > maxDayCount {
			v = 0
		}
		values[k] = v
	}
	return &Derived{
		Substance:  sub,
		Values:     values,
		Predictors: sub3.Drop(sub.targetColumns()...),
	}, nil
}

func deriveLabels(tbl *dataset.Table, sub Substance, column string, rule func(float64) int) (*Derived, error) {
	raw, err := tbl.Column(column)
	if err != nil {
		return nil, fmt.Errorf("target: %s: %w", sub.Name, err)
	}
	keep := presentRows(raw)
	subset, err := tbl.Subset(keep)
	if err != nil {
		return nil, fmt.Errorf("target: %s: %w", sub.Name, err)
	}
	labels := make([]int, len(keep))
	for k, i := range keep {
		labels[k] = rule(raw[i])
	}
	return &Derived{
		Substance:  sub,
		Labels:     labels,
		Predictors: subset.Drop(sub.targetColumns()...),
	}, nil
}

// presentRows lists rows whose target source code is not missing. Records
// with a missing source carry no label and are excluded before splitting.
func presentRows(raw []float64) []int {
	keep := make([]int, 0, len(raw))
	for i, v := range raw {
		if !math.IsNaN(v) {
			keep = append(keep, i)
		}
	}
	return keep
}
