package gradient

import "testing"

// Scenario D (SPEC_FULL.md §8): a single outlier at index 4 pulls an
// ordinary least-squares fit toward it. A small Huber delta downweights
// that sample, so the converged coefficient stays far below the naive
// mean of y (7.125) instead of chasing the spike.
func TestHuberDownweightsOutlier(t *testing.T) {
	p := &Preprocessed{
		Names:       []string{"z"},
		DBTimeDelta: []float64{1, 1, 1, 1, 50, 1, 1, 1},
		Standardized: map[string][]float64{
			"z": {1, 1, 1, 1, 1, 1, 1, 1},
		},
	}
	coef := Huber(p, 2.0, 50, 1e-9, 0)
	if coef["z"] <= 0 {
		t.Errorf("coef[z] = %v, want a small positive value", coef["z"])
	}
	if coef["z"] > 3.0 {
		t.Errorf("coef[z] = %v, expected well below the unweighted mean 7.125 (outlier downweighted)", coef["z"])
	}
}

func TestHuberEmptyInputs(t *testing.T) {
	p := &Preprocessed{Names: nil, DBTimeDelta: nil, Standardized: map[string][]float64{}}
	coef := Huber(p, 1.0, 10, 1e-9, 0)
	if len(coef) != 0 {
		t.Errorf("expected empty result for empty input, got %v", coef)
	}
}

func TestComputeResidualsSkipsZeroCoefficients(t *testing.T) {
	names := []string{"a", "b"}
	coef := map[string]float64{"a": 0, "b": 2}
	standardized := map[string][]float64{
		"a": {100, 100, 100},
		"b": {1, 2, 3},
	}
	y := []float64{10, 10, 10}
	residuals := computeResiduals(names, coef, standardized, y)
	want := []float64{8, 6, 4} // y - 2*b, a's huge series ignored since its coef is 0
	for i, w := range want {
		if residuals[i] != w {
			t.Errorf("residuals[%d] = %v, want %v", i, residuals[i], w)
		}
	}
}
