package gradient

import (
	"math"
	"testing"
)

func TestSolveDenseIdentity(t *testing.T) {
	a := [][]float64{{1, 0}, {0, 1}}
	b := []float64{3, 4}
	x := solveDense(a, b)
	if math.Abs(x[0]-3) > 1e-9 || math.Abs(x[1]-4) > 1e-9 {
		t.Errorf("solveDense(I, b) = %v, want %v", x, b)
	}
}

func TestSolveDenseSimple2x2(t *testing.T) {
	// 2x + y = 5; x + 3y = 10 -> x = 1, y = 3.
	a := [][]float64{{2, 1}, {1, 3}}
	b := []float64{5, 10}
	x := solveDense(a, b)
	if math.Abs(x[0]-1) > 1e-9 {
		t.Errorf("x = %v, want 1", x[0])
	}
	if math.Abs(x[1]-3) > 1e-9 {
		t.Errorf("y = %v, want 3", x[1])
	}
}

func TestSolveDenseEmpty(t *testing.T) {
	if x := solveDense(nil, nil); x != nil {
		t.Errorf("expected nil result for empty system, got %v", x)
	}
}
