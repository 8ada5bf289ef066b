// Package split partitions records into reproducible train/test subsets and
// manages missing predictor values ahead of model fitting.
package split

import (
	"fmt"
	"math/rand"
)

// InsufficientDataError reports a subset too small to support fitting or
// evaluation.
type InsufficientDataError struct {
	Step string
	Rows int
	Min  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("split: %s left %d records, need at least %d", e.Step, e.Rows, e.Min)
}

// Partition holds disjoint train and held-out row indices that together cover
// the full record set.
type Partition struct {
	TrainIdx []int
	TestIdx  []int
}

// Split draws a uniform random partition of n records without replacement.
// The partition is fully determined by the seed: identical inputs and seed
// reproduce an identical partition.
func Split(n int, trainFraction float64, seed int64) (Partition, error) {
	if trainFraction <= 0 || trainFraction >= 1 {
		return Partition{}, fmt.Errorf("split: train fraction %v outside (0,1)", trainFraction)
	}
	nTrain := int(float64(n) * trainFraction)
	if nTrain == 0 || nTrain == n {
		return Partition{}, &InsufficientDataError{Step: "split", Rows: min(nTrain, n-nTrain), Min: 1}
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return Partition{
		TrainIdx: append([]int(nil), perm[:nTrain]...),
		TestIdx:  append([]int(nil), perm[nTrain:]...),
	}, nil
}

// CheckViable fails when a subset is below the minimum viable size for the
// named analysis step.
func CheckViable(step string, rows, minRows int) error {
	if rows < minRows {
		return &InsufficientDataError{Step: step, Rows: rows, Min: minRows}
	}
	return nil
}
