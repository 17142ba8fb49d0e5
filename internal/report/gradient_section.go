package report

import "github.com/elchinoo/jasmin-awr-analyzer/internal/gradient"

// DefaultTopK caps each model's ranking list inside a gradient section.
const DefaultTopK = 50

// DefaultClassifyTopN is the top-N depth fed into cross-model
// classification per gradient section.
const DefaultClassifyTopN = 20

// GradientSettings records the hyperparameters a gradient section was
// computed with, plus a human-readable unit for the analyzed quantity
// (e.g. "seconds" for wait events, "count" for a counter-type instance
// stat), so the report is self-describing to a downstream reader.
type GradientSettings struct {
	RidgeLambda       float64 `json:"ridge_lambda"`
	ElasticNetLambda  float64 `json:"elastic_net_lambda"`
	ElasticNetAlpha   float64 `json:"elastic_net_alpha"`
	ElasticNetMaxIter int     `json:"elastic_net_max_iter"`
	ElasticNetTol     float64 `json:"elastic_net_tol"`
	Unit              string  `json:"unit"`
}

// GradientSection is one named gradient-attribution result (e.g.
// "db_time_gradient_fg_wait_events") in the report-for-AI tree.
type GradientSection struct {
	RidgeTop                  []gradient.Impact                   `json:"ridge_top"`
	ElasticNetTop             []gradient.Impact                   `json:"elastic_net_top"`
	HuberTop                  []gradient.Impact                   `json:"huber_top"`
	Quantile95Top             []gradient.Impact                   `json:"quantile95_top"`
	Settings                  GradientSettings                    `json:"settings"`
	CrossModelClassifications []gradient.CrossModelClassification `json:"cross_model_classifications"`
}

// BuildGradientSection caps each of the four rankings to topK entries (the
// Elastic Net list is additionally filtered to non-zero coefficients,
// since a zeroed coefficient means that model did not select the feature
// at all), then classifies the capped rankings with classifyTopN.
func BuildGradientSection(result *gradient.Result, settings GradientSettings, topK, classifyTopN int) GradientSection {
	ridgeTop := capRanking(result.RidgeRanking, topK)
	enTop := capRanking(nonZeroRanking(result.ElasticNetRanking), topK)
	huberTop := capRanking(result.HuberRanking, topK)
	q95Top := capRanking(result.Quantile95Ranking, topK)

	return GradientSection{
		RidgeTop:      ridgeTop,
		ElasticNetTop: enTop,
		HuberTop:      huberTop,
		Quantile95Top: q95Top,
		Settings:      settings,
		CrossModelClassifications: gradient.ClassifyCrossModel(
			ridgeTop, enTop, huberTop, q95Top, classifyTopN),
	}
}

func capRanking(ranking []gradient.Impact, topK int) []gradient.Impact {
	if topK <= 0 || topK >= len(ranking) {
		out := make([]gradient.Impact, len(ranking))
		copy(out, ranking)
		return out
	}
	out := make([]gradient.Impact, topK)
	copy(out, ranking[:topK])
	return out
}

func nonZeroRanking(ranking []gradient.Impact) []gradient.Impact {
	out := make([]gradient.Impact, 0, len(ranking))
	for _, item := range ranking {
		if item.GradientCoef != 0 {
			out = append(out, item)
		}
	}
	return out
}
