package kalman_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/somewisecrack/omnispread/internal/kalman"
)

func TestSeriesLengthAndSeeding(t *testing.T) {
	x := []float64{100, 101, 102, 103, 104}
	y := []float64{200, 202, 204, 206, 208}

	f := kalman.BetaFilter{}
	betas, err := f.Series(x, y, 2.0)
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if len(betas) != len(x) {
		t.Fatalf("history length = %d, want %d", len(betas), len(x))
	}
	// y is exactly 2x and the seed is correct: the estimate must hold.
	for i, b := range betas {
		if math.Abs(b-2.0) > 1e-9 {
			t.Errorf("beta[%d] = %v, want 2.0", i, b)
		}
	}
}

func TestSeriesTracksChangingRatio(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 13))
	n := 2000
	x := make([]float64, n)
	y := make([]float64, n)
	x[0] = 100
	for i := 1; i < n; i++ {
		x[i] = x[i-1] + rng.NormFloat64()*0.5
	}
	// Ratio drifts from 1.0 to 1.4 across the sample.
	for i := range x {
		ratio := 1.0 + 0.4*float64(i)/float64(n-1)
		y[i] = ratio*x[i] + rng.NormFloat64()*0.2
	}

	f := kalman.BetaFilter{}
	betas, err := f.Series(x, y, 1.0)
	if err != nil {
		t.Fatalf("Series: %v", err)
	}

	last := betas[len(betas)-1]
	if math.Abs(last-1.4) > 0.1 {
		t.Errorf("terminal beta = %v, want near 1.4", last)
	}
	// The filter must have moved from its seed.
	if math.Abs(betas[0]-last) < 0.1 {
		t.Errorf("beta did not adapt: first=%v last=%v", betas[0], last)
	}
}

func TestSeriesInputValidation(t *testing.T) {
	f := kalman.BetaFilter{}
	if _, err := f.Series([]float64{1, 2}, []float64{1}, 1.0); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	if _, err := f.Series(nil, nil, 1.0); err == nil {
		t.Error("expected error for empty input")
	}
}
