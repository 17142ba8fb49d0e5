// Package statistics implements the robust statistics kernel: median, MAD,
// mean, population standard deviation, and Pearson correlation over plain
// float64 slices.
package statistics

import (
	"math"
	"sort"
)

// Median returns the exact middle value for odd-length input and the
// average of the two middle values for even-length input. An empty slice
// returns 0.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2.0
	}
	return sorted[n/2]
}

// MAD returns the median absolute deviation of values around med. An empty
// slice returns 0.
func MAD(values []float64, med float64) float64 {
	if len(values) == 0 {
		return 0
	}
	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = math.Abs(v - med)
	}
	return Median(deviations)
}

// Mean returns the arithmetic mean of values and true, or (0, false) if
// values is empty.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// StdDeviation returns the population standard deviation of values (divide
// by N, not N-1) and true, or (0, false) if values is empty.
func StdDeviation(values []float64) (float64, bool) {
	mean, ok := Mean(values)
	if !ok {
		return 0, false
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values))), true
}

// PearsonCorrelation returns the (0,1) entry of the 2x2 Pearson correlation
// matrix of a and b, i.e. the standard Pearson correlation coefficient. a
// and b must have equal, non-zero length; ok is false otherwise or when
// either series has zero variance.
func PearsonCorrelation(a, b []float64) (rho float64, ok bool) {
	n := len(a)
	if n == 0 || n != len(b) {
		return 0, false
	}
	meanA, _ := Mean(a)
	meanB, _ := Mean(b)

	var cov, varA, varB float64
	for i := 0; i < n; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return 0, false
	}
	return cov / math.Sqrt(varA*varB), true
}
