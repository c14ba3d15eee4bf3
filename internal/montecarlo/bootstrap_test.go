package montecarlo

import (
	"math/rand/v2"
	"testing"
)

func TestBlockBootstrapExactHorizon(t *testing.T) {
	resid := []float64{1, 2, 3, 4, 5}
	rng := rand.New(rand.NewPCG(1, 1))
	for _, horizon := range []int{1, 3, 7, 20} {
		eps := blockBootstrap(resid, horizon, 3, rng, nil)
		if len(eps) != horizon {
			t.Errorf("horizon %d: got %d draws", horizon, len(eps))
		}
	}
}

func TestBlockBootstrapValuesComeFromResiduals(t *testing.T) {
	resid := []float64{-1.5, 0.25, 3.75}
	allowed := map[float64]bool{-1.5: true, 0.25: true, 3.75: true}
	rng := rand.New(rand.NewPCG(2, 2))
	eps := blockBootstrap(resid, 50, 4, rng, nil)
	for i, v := range eps {
		if !allowed[v] {
			t.Fatalf("draw %d = %v not in residual set", i, v)
		}
	}
}

func TestBlockBootstrapContiguousWithinBlock(t *testing.T) {
	// With blockLen equal to the residual length and a single block per
	// horizon, each block is a circular rotation of the residuals.
	resid := []float64{10, 20, 30, 40}
	rng := rand.New(rand.NewPCG(3, 3))
	eps := blockBootstrap(resid, 4, 4, rng, nil)
	start := -1
	for i, v := range resid {
		if eps[0] == v {
			start = i
			break
		}
	}
	if start < 0 {
		t.Fatalf("first draw %v not found in residuals", eps[0])
	}
	for i := range eps {
		if eps[i] != resid[(start+i)%4] {
			t.Fatalf("draw %d = %v breaks circular order starting at %d", i, eps[i], start)
		}
	}
}

func TestBlockBootstrapEmptyResiduals(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	eps := blockBootstrap(nil, 10, 3, rng, nil)
	if len(eps) != 10 {
		t.Fatalf("got %d draws, want 10", len(eps))
	}
	varied := false
	for i := 1; i < len(eps); i++ {
		if eps[i] != eps[0] {
			varied = true
		}
	}
	if !varied {
		t.Error("normal fallback produced constant draws")
	}
}

func TestBlockBootstrapReusesBuffer(t *testing.T) {
	resid := []float64{1, 2, 3}
	rng := rand.New(rand.NewPCG(5, 5))
	buf := make([]float64, 8)
	eps := blockBootstrap(resid, 8, 2, rng, buf)
	if &eps[0] != &buf[0] {
		t.Error("expected the provided buffer to be reused")
	}
}
