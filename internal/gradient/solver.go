package gradient

import "math"

// pivotTolerance is the minimum absolute pivot magnitude solveDense accepts
// before treating a column as singular and leaving its solution at 0.
const pivotTolerance = 1e-15

// solveDense solves a*x = b via Gaussian elimination with partial pivoting
// and back substitution. a must be square; a and b are not modified. Used
// by the Huber and Quantile95 IRLS loops to solve their weighted normal
// equations each iteration. A column whose pivot is too small after row
// swapping is skipped, leaving that coordinate at 0 rather than failing —
// this solver is best-effort, unlike the Ridge path's strict singularity
// check.
func solveDense(a [][]float64, b []float64) []float64 {
	n := len(b)
	if n == 0 {
		return nil
	}

	aug := make([][]float64, n)
	for i := range a {
		row := make([]float64, n+1)
		copy(row, a[i])
		row[n] = b[i]
		aug[i] = row
	}

	for col := 0; col < n; col++ {
		maxRow := col
		maxAbs := math.Abs(aug[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(aug[r][col]); v > maxAbs {
				maxAbs = v
				maxRow = r
			}
		}
		aug[col], aug[maxRow] = aug[maxRow], aug[col]

		pivot := aug[col][col]
		if math.Abs(pivot) < pivotTolerance {
			continue
		}
		for row := col + 1; row < n; row++ {
			factor := aug[row][col] / pivot
			for j := col; j <= n; j++ {
				aug[row][j] -= factor * aug[col][j]
			}
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := aug[i][n]
		for j := i + 1; j < n; j++ {
			sum -= aug[i][j] * x[j]
		}
		if math.Abs(aug[i][i]) > pivotTolerance {
			x[i] = sum / aug[i][i]
		} else {
			x[i] = 0
		}
	}
	return x
}
