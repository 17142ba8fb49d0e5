package report

import (
	"testing"

	"github.com/elchinoo/jasmin-awr-analyzer/internal/gradient"
)

func impactList(n int) []gradient.Impact {
	out := make([]gradient.Impact, 0, n)
	for i := 0; i < n; i++ {
		coef := 1.0
		if i%3 == 0 {
			coef = 0
		}
		out = append(out, gradient.Impact{
			EventName:    string(rune('a' + i)),
			GradientCoef: coef,
			Impact:       float64(n - i),
		})
	}
	return out
}

func TestCapRanking(t *testing.T) {
	ranking := impactList(5)

	all := capRanking(ranking, 0)
	if len(all) != 5 {
		t.Errorf("topK<=0 should return all entries, got %d", len(all))
	}

	capped := capRanking(ranking, 2)
	if len(capped) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(capped))
	}
	if capped[0].EventName != ranking[0].EventName || capped[1].EventName != ranking[1].EventName {
		t.Errorf("capRanking did not preserve prefix order: %+v", capped)
	}

	overCap := capRanking(ranking, 100)
	if len(overCap) != 5 {
		t.Errorf("topK larger than input should return all entries, got %d", len(overCap))
	}
}

func TestCapRankingDoesNotAliasInput(t *testing.T) {
	ranking := impactList(3)
	capped := capRanking(ranking, 2)
	capped[0].EventName = "mutated"
	if ranking[0].EventName == "mutated" {
		t.Errorf("capRanking must copy, not alias, the backing array")
	}
}

func TestNonZeroRanking(t *testing.T) {
	ranking := impactList(6)
	nz := nonZeroRanking(ranking)
	for _, item := range nz {
		if item.GradientCoef == 0 {
			t.Errorf("nonZeroRanking leaked a zero-coefficient entry: %+v", item)
		}
	}
	if len(nz) != 4 {
		t.Errorf("expected 4 non-zero entries out of 6, got %d", len(nz))
	}
}

func TestBuildGradientSection(t *testing.T) {
	result := &gradient.Result{
		RidgeRanking:      impactList(3),
		ElasticNetRanking: impactList(3),
		HuberRanking:      impactList(3),
		Quantile95Ranking: impactList(3),
	}
	settings := GradientSettings{RidgeLambda: 1.0, Unit: "seconds"}

	section := BuildGradientSection(result, settings, 10, 5)

	if section.Settings.Unit != "seconds" {
		t.Errorf("expected settings to be carried through unchanged, got %+v", section.Settings)
	}
	if len(section.RidgeTop) != 3 {
		t.Errorf("expected uncapped ridge ranking of length 3, got %d", len(section.RidgeTop))
	}
	// ElasticNet entry at index 0 has coef 0 and should be filtered out.
	if len(section.ElasticNetTop) != 2 {
		t.Errorf("expected elastic net ranking filtered to non-zero coefficients (2), got %d", len(section.ElasticNetTop))
	}
}
