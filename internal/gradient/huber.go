package gradient

import "math"

// residualAbsFloor guards the Huber weight division when a residual is
// exactly zero.
const residualAbsFloor = 1e-15

// Huber fits a robust linear model via iteratively reweighted least
// squares: samples with |residual| > delta get down-weighted by
// delta/|residual| instead of the usual squared-error weight of 1. Each
// iteration solves a ridge-stabilized weighted least squares system with
// solveDense. Stops early once the largest coefficient change drops below
// tol.
func Huber(p *Preprocessed, delta float64, maxIter int, tol float64, ridgePenalty float64) map[string]float64 {
	names := p.Names
	n := len(p.DBTimeDelta)
	nFeatures := len(names)
	if nFeatures == 0 || n == 0 {
		return map[string]float64{}
	}

	x := make([][]float64, nFeatures)
	for j, name := range names {
		x[j] = p.Standardized[name]
	}
	y := p.DBTimeDelta

	beta := make([]float64, nFeatures)

	for iter := 0; iter < maxIter; iter++ {
		betaOld := append([]float64(nil), beta...)

		weights := make([]float64, n)
		for t := 0; t < n; t++ {
			var pred float64
			for j := 0; j < nFeatures; j++ {
				pred += beta[j] * x[j][t]
			}
			r := math.Abs(y[t] - pred)
			if r <= delta {
				weights[t] = 1
			} else {
				weights[t] = delta / math.Max(r, residualAbsFloor)
			}
		}

		xtwx := make([][]float64, nFeatures)
		for j := range xtwx {
			xtwx[j] = make([]float64, nFeatures)
		}
		xtwy := make([]float64, nFeatures)

		for t := 0; t < n; t++ {
			w := weights[t]
			for j := 0; j < nFeatures; j++ {
				xj := x[j][t]
				xtwy[j] += w * xj * y[t]
				for k := 0; k < nFeatures; k++ {
					xtwx[j][k] += w * xj * x[k][t]
				}
			}
		}
		for j := 0; j < nFeatures; j++ {
			xtwx[j][j] += ridgePenalty
		}

		beta = solveDense(xtwx, xtwy)

		maxChange := 0.0
		for i := range beta {
			if change := math.Abs(beta[i] - betaOld[i]); change > maxChange {
				maxChange = change
			}
		}
		if maxChange < tol {
			break
		}
	}

	out := make(map[string]float64, nFeatures)
	for j, name := range names {
		out[name] = beta[j]
	}
	return out
}

// computeResiduals returns y minus the fitted values of coef over the
// standardized feature matrix named by names, used to derive the Huber
// scale constant from the Ridge fit's residuals.
func computeResiduals(names []string, coef map[string]float64, standardized map[string][]float64, y []float64) []float64 {
	residuals := append([]float64(nil), y...)
	for _, name := range names {
		c := coef[name]
		if c == 0 {
			continue
		}
		series := standardized[name]
		for t := range residuals {
			residuals[t] -= c * series[t]
		}
	}
	return residuals
}
