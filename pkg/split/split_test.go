package split

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senaisle/DATA-5322/pkg/dataset"
)

func TestSplitIsDeterministic(t *testing.T) {
	a, err := Split(100, 0.75, 42)
	require.NoError(t, err)
	b, err := Split(100, 0.75, 42)
	require.NoError(t, err)

	assert.Equal(t, a.TrainIdx, b.TrainIdx)
	assert.Equal(t, a.TestIdx, b.TestIdx)

	c, err := Split(100, 0.75, 43)
	require.NoError(t, err)
	assert.NotEqual(t, a.TrainIdx, c.TrainIdx, "a different seed should shuffle differently")
}

func TestSplitIsDisjointAndExhaustive(t *testing.T) {
	const n = 97
	p, err := Split(n, 0.75, 7)
	require.NoError(t, err)

	assert.Len(t, p.TrainIdx, 72)
	assert.Len(t, p.TestIdx, 25)

	all := append(append([]int(nil), p.TrainIdx...), p.TestIdx...)
	sort.Ints(all)
	for i, v := range all {
		require.Equal(t, i, v, "train and test must partition the record set")
	}
}

func TestSplitRejectsBadFraction(t *testing.T) {
	_, err := Split(10, 0, 1)
	require.Error(t, err)
	_, err = Split(10, 1, 1)
	require.Error(t, err)
}

func TestSplitTooSmall(t *testing.T) {
	_, err := Split(3, 0.1, 1)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
}

func TestCheckViable(t *testing.T) {
	require.NoError(t, CheckViable("train subset", 10, 10))

	err := CheckViable("train subset", 3, 10)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "train subset", insufficient.Step)
	assert.Equal(t, 3, insufficient.Rows)
	assert.Equal(t, 10, insufficient.Min)
}

func withMissing(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New(
		[]string{"a", "b"},
		[][]float64{
			{1, 2},
			{math.NaN(), 2},
			{3, 3},
			{3, math.NaN()},
			{1, 3},
		},
	)
	require.NoError(t, err)
	return tbl
}

func TestDropIncompleteIsIdempotent(t *testing.T) {
	tbl := withMissing(t)

	once, err := DropIncomplete(tbl)
	require.NoError(t, err)
	assert.Equal(t, 3, once.Len())

	twice, err := DropIncomplete(once)
	require.NoError(t, err)
	assert.Equal(t, once.Matrix(), twice.Matrix())
}

func TestCompleteCases(t *testing.T) {
	assert.Equal(t, []int{0, 2, 4}, CompleteCases(withMissing(t)))
}

func TestModeImputerUsesTrainModes(t *testing.T) {
	train := withMissing(t)

	imputer, err := NewModeImputer(train)
	require.NoError(t, err)

	test, err := dataset.New(
		[]string{"a", "b"},
		[][]float64{{math.NaN(), math.NaN()}},
	)
	require.NoError(t, err)

	filled, err := imputer.Apply(test)
	require.NoError(t, err)

	// Train modes: a has {1:2, 3:2} tying to the smaller value 1;
	// b has {2:2, 3:2} tying to 2.
	a, err := filled.At(0, "a")
	require.NoError(t, err)
	b, err := filled.At(0, "b")
	require.NoError(t, err)
	assert.Equal(t, 1.0, a)
	assert.Equal(t, 2.0, b)
}

func TestParseMissingPolicy(t *testing.T) {
	p, err := ParseMissingPolicy("drop")
	require.NoError(t, err)
	assert.Equal(t, MissingDrop, p)

	p, err = ParseMissingPolicy("impute-mode")
	require.NoError(t, err)
	assert.Equal(t, MissingImputeMode, p)

	_, err = ParseMissingPolicy("wish")
	require.Error(t, err)
}
