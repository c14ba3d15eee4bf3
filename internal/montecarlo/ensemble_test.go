package montecarlo_test

import (
	"math/rand/v2"
	"testing"

	"go.uber.org/zap"

	"github.com/somewisecrack/omnispread/internal/montecarlo"
	"github.com/somewisecrack/omnispread/internal/screener"
	"github.com/somewisecrack/omnispread/pkg/types"
)

// fixture builds a screened result whose spread is a well-behaved AR(1)
// ending roughly two standard deviations below its mean.
func fixture() *screener.Result {
	rng := rand.New(rand.NewPCG(3, 3))
	n := 300
	spread := make([]float64, n)
	s := 0.0
	for i := 0; i < n; i++ {
		s = 0.8*s + rng.NormFloat64()
		spread[i] = s
	}
	spread[n-1] = -3.33

	beta := make([]float64, n)
	for i := range beta {
		beta[i] = 1.5
	}
	return &screener.Result{
		X:          "AAA",
		Y:          "BBB",
		Spread:     spread,
		BetaSeries: beta,
		HalfLife:   5,
		PX:         100,
		PY:         150,
		ZScore:     -2.5,
	}
}

func mcConfig() types.ScanConfig {
	cfg := types.DefaultConfig().Scan
	cfg.EnsembleSize = 20
	cfg.SimsPerDraw = 200
	return cfg
}

func TestRunProbabilityBand(t *testing.T) {
	out, err := montecarlo.NewEnsemble(zap.NewNop(), mcConfig()).Run(fixture())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if out.Draws != 20 {
		t.Errorf("draws = %d, want 20", out.Draws)
	}
	if out.ProbLow > out.ProbMedian || out.ProbMedian > out.ProbHigh {
		t.Errorf("band out of order: low %v, median %v, high %v",
			out.ProbLow, out.ProbMedian, out.ProbHigh)
	}
	for _, p := range []float64{out.ProbLow, out.ProbMedian, out.ProbHigh} {
		if p < 0 || p > 100 {
			t.Errorf("probability %v outside [0, 100]", p)
		}
	}
	// Reference reversion probability for this scenario (phi 0.8, unit
	// error std, start 3.33 below the mean, five-step horizon): the first
	// step alone crosses the entry with probability
	// Phi(3.33·(1-0.8)) ~= 0.75, and conditioning on surviving steps
	// compounds to ~0.97 overall. Allow 12 points for fit noise and
	// parameter-draw dispersion.
	if out.ProbMedian < 85 || out.ProbMedian > 100 {
		t.Errorf("median probability %v outside [85, 100] reference band", out.ProbMedian)
	}
}

func TestRunDeterministic(t *testing.T) {
	cfg := mcConfig()
	a, err := montecarlo.NewEnsemble(zap.NewNop(), cfg).Run(fixture())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := montecarlo.NewEnsemble(zap.NewNop(), cfg).Run(fixture())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.ProbMedian != b.ProbMedian || a.ProbLow != b.ProbLow || a.ProbHigh != b.ProbHigh {
		t.Errorf("identical seeds diverged: %+v vs %+v", a, b)
	}
}

func TestRunCapsTotalSimulations(t *testing.T) {
	cfg := mcConfig()
	cfg.EnsembleSize = 10
	cfg.SimsPerDraw = 100
	cfg.MaxTotalSims = 200

	out, err := montecarlo.NewEnsemble(zap.NewNop(), cfg).Run(fixture())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.SimsPerDraw != 20 {
		t.Errorf("sims per draw = %d, want 20 after capping", out.SimsPerDraw)
	}
	if out.TotalSims > 200 {
		t.Errorf("total sims = %d exceeds cap 200", out.TotalSims)
	}
}

func TestRunDisplayMetrics(t *testing.T) {
	out, err := montecarlo.NewEnsemble(zap.NewNop(), mcConfig()).Run(fixture())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// z is negative, so the move back to the mean must be positive.
	if out.MoveToMean <= 0 {
		t.Errorf("move to mean = %v, want positive for negative z", out.MoveToMean)
	}
	// |1.5·100| + |150| = 300.
	if out.UnitPrice != 300 {
		t.Errorf("unit price = %v, want 300", out.UnitPrice)
	}
	if out.ExpReturn < 0 {
		t.Errorf("expected return %v negative", out.ExpReturn)
	}
}

func TestRunRejectsBadHalfLife(t *testing.T) {
	res := fixture()
	res.HalfLife = 0
	if _, err := montecarlo.NewEnsemble(zap.NewNop(), mcConfig()).Run(res); err == nil {
		t.Error("expected error for half-life below 1")
	}
}
