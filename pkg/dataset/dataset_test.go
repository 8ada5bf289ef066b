package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(
		[]string{"sex", "income", "mjrec"},
		[][]float64{
			{1, 2, 1},
			{2, 3, 91},
			{1, 1, 93},
		},
	)
	require.NoError(t, err)
	return tbl
}

func TestNewRejectsRaggedRows(t *testing.T) {
	_, err := New([]string{"a", "b"}, [][]float64{{1, 2}, {3}})
	require.Error(t, err)

	_, err = New([]string{"a", "a"}, nil)
	require.Error(t, err)
}

func TestColumnReturnsCopy(t *testing.T) {
	tbl := sample(t)

	col, err := tbl.Column("income")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 1}, col)

	col[0] = 99
	again, err := tbl.Column("income")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 1}, again, "mutating a returned column must not touch the table")
}

func TestColumnUnknown(t *testing.T) {
	tbl := sample(t)
	_, err := tbl.Column("nope")
	require.ErrorIs(t, err, ErrNoColumn)
}

func TestSelectAndDrop(t *testing.T) {
	tbl := sample(t)

	sel, err := tbl.Select("mjrec", "sex")
	require.NoError(t, err)
	assert.Equal(t, []string{"mjrec", "sex"}, sel.Columns())
	v, err := sel.At(0, "mjrec")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	dropped := tbl.Drop("mjrec", "not-a-column")
	assert.Equal(t, []string{"sex", "income"}, dropped.Columns())
	assert.Equal(t, 3, dropped.Len())
}

func TestSubset(t *testing.T) {
	tbl := sample(t)

	sub, err := tbl.Subset([]int{2, 0})
	require.NoError(t, err)
	require.Equal(t, 2, sub.Len())
	v, err := sub.At(0, "mjrec")
	require.NoError(t, err)
	assert.Equal(t, 93.0, v)

	_, err = tbl.Subset([]int{7})
	require.Error(t, err)
}

func TestReplaceHandlesNaN(t *testing.T) {
	tbl := sample(t)

	recoded, err := tbl.Replace("income", 3, math.NaN())
	require.NoError(t, err)
	v, err := recoded.At(1, "income")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	// The original handle is untouched.
	orig, err := tbl.At(1, "income")
	require.NoError(t, err)
	assert.Equal(t, 3.0, orig)

	filled, err := recoded.Replace("income", math.NaN(), 9)
	require.NoError(t, err)
	v, err = filled.At(1, "income")
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)
}

func TestLoadRecodesSentinels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "youth.csv")
	csv := "sex,income,mjrec\n1,2,91\n2,994,1\n1,3,93\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	tbl, err := Load(path, WithMissingCodes(map[string][]float64{"income": {994}}))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"sex", "income", "mjrec"}, tbl.Columns())

	v, err := tbl.At(1, "income")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v), "sentinel 994 should load as missing")

	v, err = tbl.At(0, "mjrec")
	require.NoError(t, err)
	assert.Equal(t, 91.0, v)
}

func TestLoadUnknownCategory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "youth.csv")
	csv := "sex,income\n1,994\n2,2\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	tbl, err := Load(path,
		WithMissingCodes(map[string][]float64{"income": {994}}),
		WithUnknownCategory(map[string]float64{"income": 0}),
	)
	require.NoError(t, err)
	v, err := tbl.At(0, "income")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v, "missing income should become the explicit unknown category")
}
