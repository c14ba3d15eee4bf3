// Package montecarlo estimates the probability that a mean-reversion trade
// on a screened spread will be profitable. Instead of simulating from the
// point AR(1) estimate alone, it draws many parameter sets from the fit's
// sampling distribution and simulates a batch of forward paths per draw, so
// the reported probability carries a confidence band that reflects
// parameter uncertainty.
package montecarlo

import (
	"fmt"
	"math"
	"math/rand/v2"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/somewisecrack/omnispread/internal/screener"
	"github.com/somewisecrack/omnispread/internal/stats"
	"github.com/somewisecrack/omnispread/pkg/types"
	"github.com/somewisecrack/omnispread/pkg/utils"
)

// Outcome aggregates the ensemble for one pair. Probabilities are percent
// values rounded to one decimal; the display metrics are independent of the
// random draws.
type Outcome struct {
	Draws       int
	ProbMedian  float64
	ProbLow     float64
	ProbHigh    float64
	MoveToMean  float64
	UnitPrice   float64
	ExpReturn   float64
	TotalSims   int
	SimsPerDraw int
}

// Ensemble runs seeded ensemble Monte Carlo simulations.
type Ensemble struct {
	logger *zap.Logger
	cfg    types.ScanConfig
}

// NewEnsemble creates an Ensemble with the given configuration.
func NewEnsemble(logger *zap.Logger, cfg types.ScanConfig) *Ensemble {
	return &Ensemble{logger: logger, cfg: cfg}
}

// Run simulates the screened pair and returns its profit-probability
// estimate. Every pair gets its own generator seeded from the configured
// seed, so results are bit-identical across runs and unaffected by the
// order or parallelism of the surrounding scan.
//
// The generator is consumed in a fixed order per draw: the intercept
// normal, the AR-coefficient normal, the chi-square scale draw, then the
// error draws of each inner simulation in sequence. Reordering any of these
// breaks reproducibility.
func (e *Ensemble) Run(res *screener.Result) (*Outcome, error) {
	spread := res.Spread
	hl := res.HalfLife
	if hl < 1 {
		return nil, fmt.Errorf("montecarlo: half-life %d for %s/%s", hl, res.X, res.Y)
	}

	fit, err := fitAR1(spread)
	if err != nil {
		return nil, err
	}

	blockLen := utils.MaxInt(1, int(math.Round(math.Max(1, float64(hl)*e.cfg.BlockLenFactor))))

	simsPerDraw := e.cfg.SimsPerDraw
	if e.cfg.EnsembleSize*simsPerDraw > e.cfg.MaxTotalSims {
		simsPerDraw = utils.MaxInt(1, e.cfg.MaxTotalSims/utils.MaxInt(1, e.cfg.EnsembleSize))
	}

	rng := rand.New(rand.NewPCG(e.cfg.Seed, e.cfg.Seed))
	stdNorm := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	chi2 := distuv.ChiSquared{K: float64(utils.MaxInt(1, fit.nObs-2)), Src: rng}
	df := chi2.K

	r0 := spread[len(spread)-1]
	sign := tradeSign(spread, hl)

	eps := make([]float64, hl)
	path := make([]float64, hl+1)

	winFracs := make([]float64, 0, e.cfg.EnsembleSize)
	totalSims := 0
	for m := 0; m < e.cfg.EnsembleSize; m++ {
		aS := fit.a + fit.seA*stdNorm.Rand()
		phiS := fit.phi + fit.sePhi*stdNorm.Rand()
		phiS = clamp(phiS, -0.999, 0.999)

		chiDraw := chi2.Rand()
		sigmaS := fit.sigma
		if chiDraw > 0 {
			sigmaS = fit.sigma * math.Sqrt(df/chiDraw)
		}

		wins := 0
		for si := 0; si < simsPerDraw; si++ {
			if e.cfg.UseBootstrap && len(fit.resid) > 0 {
				eps = blockBootstrap(fit.resid, hl, blockLen, rng, eps)
			} else {
				for i := range eps {
					eps[i] = sigmaS * stdNorm.Rand()
				}
			}
			path = simulatePath(aS, phiS, r0, eps, path)
			for t := 1; t <= hl; t++ {
				if sign*(path[t]-r0) > 0 {
					wins++
					break
				}
			}
		}
		totalSims += simsPerDraw

		frac := 0.0
		if simsPerDraw > 0 {
			frac = float64(wins) / float64(simsPerDraw)
		}
		if utils.IsFinite(frac) {
			winFracs = append(winFracs, frac)
		}
	}

	out := &Outcome{
		Draws:       len(winFracs),
		TotalSims:   totalSims,
		SimsPerDraw: simsPerDraw,
	}
	if len(winFracs) > 0 {
		out.ProbMedian = utils.Round(stats.Median(winFracs)*100, 1)
		out.ProbLow = utils.Round(stats.Percentile(winFracs, 5)*100, 1)
		out.ProbHigh = utils.Round(stats.Percentile(winFracs, 95)*100, 1)
	}
	e.displayMetrics(res, out)

	e.logger.Debug("ensemble complete",
		zap.String("x", res.X), zap.String("y", res.Y),
		zap.Int("draws", out.Draws),
		zap.Int("total_sims", totalSims),
		zap.Float64("p_median", out.ProbMedian))
	return out, nil
}

// displayMetrics fills the draw-independent fields: the expected move back
// to the rolling mean, the combined one-unit position notional, and the
// expected return over that notional.
func (e *Ensemble) displayMetrics(res *screener.Result, out *Outcome) {
	mstd := stats.RollingStd(res.Spread, res.HalfLife, res.HalfLife)
	sd := mstd[len(mstd)-1]

	if utils.IsFinite(res.ZScore) && utils.IsFinite(sd) && sd != 0 {
		out.MoveToMean = utils.Round(-res.ZScore*sd, 2)
	}

	betaLast := res.BetaSeries[len(res.BetaSeries)-1]
	if utils.IsFinite(betaLast) {
		out.UnitPrice = utils.Round(math.Abs(betaLast*res.PX)+math.Abs(res.PY), 2)
	}
	if out.UnitPrice != 0 {
		out.ExpReturn = math.Abs(utils.Round(out.MoveToMean*100/out.UnitPrice, 1))
	}
}

// tradeSign derives the direction from the current z over the half-life
// window with a minimum of one period, so short histories still produce a
// direction. Positive z expects downward reversion.
func tradeSign(spread []float64, hl int) float64 {
	mavg := stats.RollingMean(spread, hl, 1)
	mstd := stats.RollingStd(spread, hl, 1)
	last := len(spread) - 1
	sd := mstd[last]
	if !utils.IsFinite(sd) || sd == 0 {
		sd = 1e-12
	}
	z := (spread[last] - mavg[last]) / sd
	if z > 0 {
		return -1
	}
	return 1
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
