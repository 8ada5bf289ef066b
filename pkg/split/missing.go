package split

import (
	"fmt"
	"math"

	"github.com/senaisle/DATA-5322/pkg/dataset"
	"github.com/senaisle/DATA-5322/pkg/stats"
)

// MissingPolicy selects how records with missing predictors are handled
// before fitting algorithms that cannot tolerate them.
type MissingPolicy int

const (
	// MissingDrop removes incomplete records (complete-case analysis).
	MissingDrop MissingPolicy = iota
	// MissingImputeMode fills each missing predictor with the column mode
	// observed on the training subset.
	MissingImputeMode
)

// ParseMissingPolicy maps a config string onto a policy value.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch s {
	case "", "drop":
		return MissingDrop, nil
	case "impute", "impute-mode":
		return MissingImputeMode, nil
	}
	return 0, fmt.Errorf("split: unknown missing policy %q", s)
}

// CompleteCases lists the rows of tbl with no missing predictor value.
// Selecting these rows is idempotent: a complete-case subset is its own
// complete-case subset.
func CompleteCases(tbl *dataset.Table) []int {
	keep := make([]int, 0, tbl.Len())
	cols := tbl.Columns()
rows:
	for i := 0; i < tbl.Len(); i++ {
		for _, c := range cols {
			v, err := tbl.At(i, c)
			if err != nil {
				continue rows
			}
			if math.IsNaN(v) {
				continue rows
			}
		}
		keep = append(keep, i)
	}
	return keep
}

// DropIncomplete returns the complete-case subset of tbl.
func DropIncomplete(tbl *dataset.Table) (*dataset.Table, error) {
	return tbl.Subset(CompleteCases(tbl))
}

// ModeImputer fills missing predictor values with per-column modes. The
// modes are learned from the training subset only and then applied to both
// subsets, so the held-out data never informs the fill values.
type ModeImputer struct {
	cols  []string
	modes []float64
}

// NewModeImputer learns the per-column modes of the training subset.
func NewModeImputer(train *dataset.Table) (*ModeImputer, error) {
	cols := train.Columns()
	modes := make([]float64, len(cols))
	for j, c := range cols {
		col, err := train.Column(c)
		if err != nil {
			return nil, fmt.Errorf("split: imputer: %w", err)
		}
		modes[j] = stats.Mode(col)
	}
	return &ModeImputer{cols: cols, modes: modes}, nil
}

// Apply returns a copy of tbl with missing values replaced by the learned
// modes. Columns whose training mode is itself missing stay untouched.
func (m *ModeImputer) Apply(tbl *dataset.Table) (*dataset.Table, error) {
	out := tbl
	var err error
	for j, c := range m.cols {
		if math.IsNaN(m.modes[j]) {
			continue
		}
		out, err = out.Replace(c, math.NaN(), m.modes[j])
		if err != nil {
			return nil, fmt.Errorf("split: imputer: %w", err)
		}
	}
	return out, nil
}
