// Package gradient implements the four-model gradient attribution engine:
// Ridge, Elastic Net, Huber, and Quantile95 regressions of Δ(DB Time) on
// the standardized Δ of every wait event / instance stat / SQL series,
// plus the cross-model triangulation classifier built on their rankings.
package gradient

import (
	"github.com/elchinoo/jasmin-awr-analyzer/internal/series"
)

// Config carries the tunable parameters of the four models. RidgeLambda
// also doubles as the Huber ridge-stabilization penalty, matching the
// original implementation's parameter reuse.
type Config struct {
	RidgeLambda       float64
	ElasticNetLambda  float64
	ElasticNetAlpha   float64
	ElasticNetMaxIter int
	ElasticNetTol     float64
}

// Result bundles every coefficient map and ranking produced by the four
// models, plus the standardization statistics used to compute them.
//
// RidgeError is set when Ridge alone failed (a singular or invalid pivot);
// per the documented "Ridge fails, caller continues with the remaining
// three models" rule, RidgeGradientByEvent/RidgeRanking are then simply
// empty rather than fabricated, while ElasticNet/Huber/Quantile95 are still
// computed and populated.
type Result struct {
	RidgeGradientByEvent      map[string]float64
	ElasticNetGradientByEvent map[string]float64
	HuberGradientByEvent      map[string]float64
	Quantile95GradientByEvent map[string]float64

	RidgeRanking      []Impact
	ElasticNetRanking []Impact
	HuberRanking      []Impact
	Quantile95Ranking []Impact

	EventDeltaMeanByEvent map[string]float64
	EventDeltaStdByEvent  map[string]float64
	EventDeltaMADByEvent  map[string]float64

	RidgeError error
}

// Compute runs the full gradient attribution pipeline for one DB Time
// series against a set of candidate event/stat/SQL series. A Ridge-only
// numerical singularity does not abort the whole computation: Elastic Net,
// Huber, and Quantile95 are independent of Ridge's fit and are still
// computed, per spec.md §9's "Ridge pivot < 1e-18 is a fatal error for
// Ridge only ... the caller records the condition and continues with the
// remaining three models".
func Compute(dbTime []float64, eventSeries series.Series, cfg Config) (*Result, error) {
	if cfg.RidgeLambda < 0 || cfg.ElasticNetLambda < 0 {
		return nil, newError(KindConfiguration, "", "regularization lambdas must be >= 0")
	}
	if cfg.ElasticNetAlpha < 0 || cfg.ElasticNetAlpha > 1 {
		return nil, newError(KindConfiguration, "", "elastic net alpha must be in [0, 1]")
	}

	p, err := Preprocess(dbTime, eventSeries)
	if err != nil {
		return nil, err
	}

	ridgeCoef, ridgeErr := Ridge(p, cfg.RidgeLambda)

	enCoef := ElasticNet(p, cfg.ElasticNetLambda, cfg.ElasticNetAlpha, cfg.ElasticNetMaxIter, cfg.ElasticNetTol)

	// Huber's scale constant is ordinarily derived from the Ridge fit's
	// residuals. When Ridge itself failed there is no fit to draw
	// residuals from, so fall back to the raw (unfitted) DB Time delta —
	// independent of ridgeCoef/ridgeErr, it still gives Huber a sane
	// robust scale estimate to iterate from.
	var huberDelta float64
	if ridgeErr == nil {
		ridgeResiduals := computeResiduals(p.Names, ridgeCoef, p.Standardized, p.DBTimeDelta)
		huberDelta = 1.345 * madOfSlice(ridgeResiduals)
	} else {
		huberDelta = 1.345 * madOfSlice(p.DBTimeDelta)
	}
	huberCoef := Huber(p, huberDelta, 100, cfg.ElasticNetTol, cfg.RidgeLambda)

	quantileCoef := Quantile(p, 0.95, 200, cfg.ElasticNetTol)

	result := &Result{
		ElasticNetGradientByEvent: enCoef,
		HuberGradientByEvent:      huberCoef,
		Quantile95GradientByEvent: quantileCoef,

		ElasticNetRanking: BuildRanking(p.Names, enCoef, p.MADByEvent),
		HuberRanking:      BuildRanking(p.Names, huberCoef, p.MADByEvent),
		Quantile95Ranking: BuildRanking(p.Names, quantileCoef, p.MADByEvent),

		EventDeltaMeanByEvent: p.MeanByEvent,
		EventDeltaStdByEvent:  p.StdByEvent,
		EventDeltaMADByEvent:  p.MADByEvent,

		RidgeError: ridgeErr,
	}

	if ridgeErr == nil {
		result.RidgeGradientByEvent = ridgeCoef
		result.RidgeRanking = BuildRanking(p.Names, ridgeCoef, p.MADByEvent)
	} else {
		result.RidgeGradientByEvent = map[string]float64{}
	}

	return result, nil
}
