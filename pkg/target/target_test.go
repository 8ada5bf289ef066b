package target

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senaisle/DATA-5322/pkg/dataset"
)

func surveyTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New(
		[]string{"mjrec", "mrjmdays", "mjday30a", "mrjflag", "sex", "income"},
		[][]float64{
			{1, 2, 15, 1, 1, 2},
			{2, 4, 30, 1, 2, 3},
			{91, 5, 91, 0, 1, 1},
			{93, 5, 93, 1, 2, 2},
			{90, 0, 90, 1, 1, 3},
		},
	)
	require.NoError(t, err)
	return tbl
}

func TestBinaryThresholdsRecency(t *testing.T) {
	d, err := Binary(surveyTable(t), "marijuana")
	require.NoError(t, err)

	// Codes below 91 mean use within the window; 91 and 93 are sentinels.
	assert.Equal(t, []int{1, 1, 0, 0, 1}, d.Labels)
}

func TestBinaryExcludesLeakyColumns(t *testing.T) {
	d, err := Binary(surveyTable(t), "marijuana")
	require.NoError(t, err)

	cols := d.Predictors.Columns()
	assert.Equal(t, []string{"sex", "income"}, cols)
	assert.False(t, d.Predictors.Has("mjrec"))
	assert.False(t, d.Predictors.Has("mrjmdays"))
	assert.False(t, d.Predictors.Has("mjday30a"))
	assert.False(t, d.Predictors.Has("mrjflag"))
}

func TestCategoricalRemapsNoUseBucket(t *testing.T) {
	d, err := Categorical(surveyTable(t), "marijuana")
	require.NoError(t, err)

	// Bucket 5 ("no use") collapses onto 0 ("none"); 0-4 pass through.
	assert.Equal(t, []int{2, 4, 0, 0, 0}, d.Labels)
}

func TestContinuousZeroesSentinelCounts(t *testing.T) {
	d, err := Continuous(surveyTable(t), "marijuana")
	require.NoError(t, err)

	// Counts above 90 are "did not use" sentinels.
	assert.Equal(t, []float64{15, 30, 0, 0, 90}, d.Values)
}

func TestMissingSourceRowsAreDropped(t *testing.T) {
	tbl, err := dataset.New(
		[]string{"mjrec", "mrjmdays", "mjday30a", "sex"},
		[][]float64{
			{1, 2, 3, 1},
			{math.NaN(), 5, 91, 2},
			{93, 5, 93, 1},
		},
	)
	require.NoError(t, err)

	d, err := Binary(tbl, "marijuana")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, d.Labels)
	assert.Equal(t, 2, d.Predictors.Len())
}

func TestUnknownSubstance(t *testing.T) {
	_, err := Binary(surveyTable(t), "caffeine")
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "caffeine", cfgErr.Substance)
}

func TestSubstancesSorted(t *testing.T) {
	assert.Equal(t, []string{"alcohol", "marijuana", "tobacco"}, Substances())
}
