package gradient

import "math"

// quantileEps avoids division by zero when a residual lands exactly on
// the fitted line.
const quantileEps = 1e-6

// quantileRidge is a small fixed regularizer added to every quantile IRLS
// normal-equations diagonal for numerical stability; it is not user
// configurable, unlike Ridge's lambda.
const quantileRidge = 1e-8

// Quantile fits a tau-quantile regression (tau=0.95 for the worst-case DB
// Time model) via IRLS with asymmetric weights: over-predictions and
// under-predictions are weighted tau/(1-tau) asymmetrically so the fit
// tracks the upper tail rather than the conditional mean.
func Quantile(p *Preprocessed, tau float64, maxIter int, tol float64) map[string]float64 {
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
			r := y[t] - pred
			absR := math.Max(math.Abs(r), quantileEps)
			if r >= 0 {
				weights[t] = tau / absR
			} else {
				weights[t] = (1 - tau) / absR
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
			xtwx[j][j] += quantileRidge
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
