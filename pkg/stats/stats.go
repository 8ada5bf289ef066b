// Package stats carries the small summary statistics the imputer needs.
// All functions skip missing (NaN) entries so they can run directly on raw
// survey columns.
package stats

import (
	"math"
	"sort"
)

// Mean computes the average of the present values in a slice.
func Mean(x []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Median returns the median of the present values (allocates a copy).
func Median(x []float64) float64 {
	cp := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			cp = append(cp, v)
		}
	}
	n := len(cp)
	if n == 0 {
		return math.NaN()
	}
	sort.Float64s(cp)
	mid := n >> 1
	if n&1 == 0 {
		return (cp[mid-1] + cp[mid]) * 0.5
	}
	return cp[mid]
}

// Mode returns the most frequent present value. Ties resolve to the smallest
// value so the result is deterministic.
func Mode(x []float64) float64 {
	counts := make(map[float64]int)
	for _, v := range x {
		if !math.IsNaN(v) {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return math.NaN()
	}
	mode := math.Inf(1)
	maxCount := 0
	for v, c := range counts {
		if c > maxCount || (c == maxCount && v < mode) {
			maxCount = c
			mode = v
		}
	}
	return mode
}
