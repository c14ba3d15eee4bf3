package stats_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/somewisecrack/omnispread/internal/stats"
)

// ar1Series generates x[t] = phi*x[t-1] + eps with a seeded generator.
func ar1Series(n int, phi, sigma float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed))
	out := make([]float64, n)
	for t := 1; t < n; t++ {
		out[t] = phi*out[t-1] + sigma*rng.NormFloat64()
	}
	return out
}

func randomWalk(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed))
	out := make([]float64, n)
	out[0] = 100
	for t := 1; t < n; t++ {
		out[t] = out[t-1] + rng.NormFloat64()
	}
	return out
}

func TestADFStationarySeries(t *testing.T) {
	series := ar1Series(400, 0.5, 1.0, 11)

	res, err := stats.ADF(series)
	if err != nil {
		t.Fatalf("ADF: %v", err)
	}
	if res.Stat >= 0 {
		t.Errorf("tau = %v, want negative for a strongly mean-reverting series", res.Stat)
	}
	if res.PValue >= 0.05 {
		t.Errorf("p-value = %v, want < 0.05 for AR(1) with phi=0.5", res.PValue)
	}
	if res.UsedLag < 0 {
		t.Errorf("UsedLag = %d, want >= 0", res.UsedLag)
	}
}

func TestADFRandomWalk(t *testing.T) {
	// A pure random walk has a unit root; the test should rarely reject.
	rejections := 0
	for seed := uint64(1); seed <= 5; seed++ {
		series := randomWalk(400, seed)
		res, err := stats.ADF(series)
		if err != nil {
			t.Fatalf("ADF seed %d: %v", seed, err)
		}
		if res.PValue < 0.05 {
			rejections++
		}
	}
	if rejections > 1 {
		t.Errorf("ADF rejected the unit root in %d/5 random walks", rejections)
	}
}

func TestADFShortSeries(t *testing.T) {
	if _, err := stats.ADF(make([]float64, 10)); err == nil {
		t.Error("expected error for series shorter than 15")
	}
}

func TestADFPValueBounds(t *testing.T) {
	series := ar1Series(200, 0.9, 1.0, 3)
	res, err := stats.ADF(series)
	if err != nil {
		t.Fatalf("ADF: %v", err)
	}
	if res.PValue < 0 || res.PValue > 1 || math.IsNaN(res.PValue) {
		t.Errorf("p-value %v outside [0, 1]", res.PValue)
	}
}
