package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanSkipsMissing(t *testing.T) {
	assert.Equal(t, 2.0, Mean([]float64{1, math.NaN(), 3}))
	assert.True(t, math.IsNaN(Mean([]float64{math.NaN()})))
	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.0, Median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, math.NaN(), 2, 3}))
	assert.True(t, math.IsNaN(Median(nil)))
}

func TestModeTieBreaksLow(t *testing.T) {
	assert.Equal(t, 1.0, Mode([]float64{3, 1, 3, 1, math.NaN()}))
	assert.Equal(t, 5.0, Mode([]float64{5, 5, 2}))
	assert.True(t, math.IsNaN(Mode([]float64{math.NaN()})))
}
