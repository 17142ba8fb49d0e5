package gradient

import "math"

// ridgePivotTolerance is the minimum diagonal pivot magnitude the Ridge
// solve accepts; anything smaller (or non-finite) is a fatal singular
// system, unlike solveDense's best-effort skip.
const ridgePivotTolerance = 1e-18

// Ridge fits a closed-form L2-regularized linear model of DBTimeDelta on
// the standardized event deltas: (X'X + lambda*I) coef = X'y, solved by
// full Gauss-Jordan elimination with diagonal pivoting (no row swapping —
// the normal equations matrix is symmetric positive (semi-)definite once
// regularized, so the original never needed partial pivoting here).
func Ridge(p *Preprocessed, lambda float64) (map[string]float64, error) {
	names := p.Names
	n := len(names)
	y := p.DBTimeDelta

	a, b := buildNormalEquations(names, p.Standardized, y)
	for i := range names {
		a[i][i] += lambda
	}

	coef, err := gaussJordanSolve(names, a, b)
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, n)
	for i, name := range names {
		out[name] = coef[i]
	}
	return out, nil
}

// buildNormalEquations computes A = X'X and b = X'y over the dense feature
// matrix implied by names/standardized, row by row (one row per sample
// index), matching build_rows_by_time + build_normal_equations.
func buildNormalEquations(names []string, standardized map[string][]float64, y []float64) ([][]float64, []float64) {
	n := len(names)
	sampleCount := len(y)

	rows := make([][]float64, sampleCount)
	for t := 0; t < sampleCount; t++ {
		row := make([]float64, n)
		for i, name := range names {
			row[i] = standardized[name][t]
		}
		rows[t] = row
	}

	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
	}
	b := make([]float64, n)

	for t, row := range rows {
		yt := y[t]
		for i, xi := range row {
			b[i] += xi * yt
		}
		for i, xi := range row {
			for j, xj := range row {
				a[i][j] += xi * xj
			}
		}
	}
	return a, b
}

// gaussJordanSolve reduces a (modified in place) to the identity matrix,
// turning b into the solution vector. Each pivot is taken strictly from
// the diagonal in name order; a pivot smaller than ridgePivotTolerance (or
// non-finite) is a fatal numerical-singularity error.
func gaussJordanSolve(names []string, a [][]float64, b []float64) ([]float64, error) {
	n := len(names)
	for k := 0; k < n; k++ {
		pivot := a[k][k]
		if math.Abs(pivot) < ridgePivotTolerance || !isFiniteValue(pivot) {
			return nil, newError(KindNumericalSingularity, names[k], "singular or invalid pivot in Ridge solve")
		}

		for j := 0; j < n; j++ {
			a[k][j] /= pivot
		}
		b[k] /= pivot

		for i := 0; i < n; i++ {
			if i == k {
				continue
			}
			factor := a[i][k]
			if factor == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				a[i][j] -= factor * a[k][j]
			}
			b[i] -= factor * b[k]
			if math.Abs(a[i][k]) < 1e-15 {
				a[i][k] = 0
			}
		}
	}
	return b, nil
}

func isFiniteValue(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
