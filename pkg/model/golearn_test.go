package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separableData builds 20 records with two features that both separate the
// classes cleanly: class 0 clusters near the origin, class 1 near 100.
func separableData() ([][]float64, []int) {
	X := make([][]float64, 20)
	y := make([]int, 20)
	for i := range X {
		base := 0.0
		if i%2 == 1 {
			base = 100
			y[i] = 1
		}
		X[i] = []float64{base + float64(i%5), base + float64(i%3)}
	}
	return X, y
}

func TestHeaderRoundTripsLabels(t *testing.T) {
	X := [][]float64{{1.5, 2}, {3, 4.25}, {5, 6}}
	y := []int{0, 2, 4}

	header, err := newHeader(2, []string{"sex", "income"}, y)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4}, header.classValues)

	inst, err := header.instances(X, y)
	require.NoError(t, err)

	// Decoding the class column of the instances we just encoded must give
	// back the original labels.
	got, err := labels(inst, len(y))
	require.NoError(t, err)
	assert.Equal(t, y, got)
}

func TestHeaderContracts(t *testing.T) {
	_, err := newHeader(2, nil, nil)
	require.Error(t, err, "empty training labels must fail")

	_, err = newHeader(2, []string{"only-one"}, []int{0, 1})
	require.Error(t, err, "name count must match feature count")

	header, err := newHeader(2, nil, []int{0, 1})
	require.NoError(t, err)

	_, err = header.instances(nil, nil)
	require.Error(t, err, "empty matrix must fail")

	_, err = header.instances([][]float64{{1, 2}, {3}}, nil)
	require.Error(t, err, "ragged rows must fail")
}

func TestDecisionTreeLearnsSeparableData(t *testing.T) {
	X, y := separableData()

	tree := NewDecisionTree(0)
	_, err := tree.Predict(X)
	require.Error(t, err, "predicting before fitting must fail")

	require.NoError(t, tree.Fit(X, y))

	preds, err := tree.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, y, preds, "an unpruned tree must separate these clusters")
}

func TestBaggedTreesLearnSeparableData(t *testing.T) {
	X, y := separableData()

	bag := NewBaggedTrees(10, 2)
	_, err := bag.Predict(X)
	require.Error(t, err, "predicting before fitting must fail")

	require.NoError(t, bag.Fit(X, y))

	preds, err := bag.Predict(X)
	require.NoError(t, err)
	require.Len(t, preds, len(y))
	correct := 0
	for i, p := range preds {
		assert.Contains(t, []int{0, 1}, p)
		if p == y[i] {
			correct++
		}
	}
	assert.Greater(t, correct, len(y)/2, "the vote must beat coin flipping on separable data")
}

func TestRandomForestLearnsSeparableData(t *testing.T) {
	X, y := separableData()

	forest := NewRandomForest(10, 2)
	_, err := forest.Predict(X)
	require.Error(t, err, "predicting before fitting must fail")

	require.NoError(t, forest.Fit(X, y))

	preds, err := forest.Predict(X)
	require.NoError(t, err)
	require.Len(t, preds, len(y))
	correct := 0
	for i, p := range preds {
		assert.Contains(t, []int{0, 1}, p)
		if p == y[i] {
			correct++
		}
	}
	assert.Greater(t, correct, len(y)/2, "the vote must beat coin flipping on separable data")
}
