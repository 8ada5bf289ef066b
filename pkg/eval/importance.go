package eval

import "sort"

// Importance is one feature's relative importance score.
type Importance struct {
	Feature string
	Score   float64
}

// RankImportances orders an ensemble's native per-feature importance scores
// descending. Ties break on the feature name ascending so the ranking is
// deterministic.
func RankImportances(names []string, scores []float64) ([]Importance, error) {
	if len(names) == 0 {
		return nil, &EmptyInputError{Step: "importance"}
	}
	if len(scores) != len(names) {
		return nil, &ShapeMismatchError{Step: "importance", Got: len(scores), Want: len(names)}
	}
	out := make([]Importance, len(names))
	for i := range names {
		out[i] = Importance{Feature: names[i], Score: scores[i]}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		return out[a].Feature < out[b].Feature
	})
	return out, nil
}
