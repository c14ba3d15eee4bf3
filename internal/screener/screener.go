// Package screener decides whether a pair of instruments is a tradable
// cointegration candidate. A pair passes when either the CADF test on the
// Kalman-filtered spread or the Johansen test on raw price levels confirms
// a long-run relationship, and the current signal clears the z-score and
// Hurst filters.
package screener

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/somewisecrack/omnispread/internal/data"
	"github.com/somewisecrack/omnispread/internal/kalman"
	"github.com/somewisecrack/omnispread/internal/stats"
	"github.com/somewisecrack/omnispread/pkg/types"
	"github.com/somewisecrack/omnispread/pkg/utils"
)

// Result carries everything downstream consumers need: the simulator reads
// the spread and half-life, the tracker reads the spread history, and the
// final ScanResult is assembled from the display fields.
type Result struct {
	X, Y   string
	Method types.PassMethod

	CADFPass     bool
	JohansenPass bool

	PriceCorr  float64
	ReturnCorr float64
	PX, PY     float64
	Combo      string

	BetaSeries []float64
	Spread     []float64
	Times      []time.Time
	HalfLife   int

	ZScore float64
	Hurst  float64

	SectorX, SectorY string
}

// SameSector reports whether both legs share a known sector.
func (r *Result) SameSector() bool {
	return r.SectorX != data.SectorUnknown && r.SectorX == r.SectorY
}

// Screener screens pairs against an immutable scan configuration.
type Screener struct {
	logger *zap.Logger
	cfg    types.ScanConfig
	filter kalman.BetaFilter
}

// New creates a Screener.
func New(logger *zap.Logger, cfg types.ScanConfig) *Screener {
	return &Screener{
		logger: logger,
		cfg:    cfg,
		filter: kalman.BetaFilter{ProcessVar: kalman.DefaultProcessVar},
	}
}

// ScreenPair runs both cointegration tests on the pair and returns a Result
// when it passes every filter, or (nil, nil) for a definite rejection.
// Numerical failure of one test counts as that test not passing; the other
// test still gets its chance.
func (s *Screener) ScreenPair(pair *data.Pair, sectors data.SectorMap) (*Result, error) {
	if pair.Len() < s.cfg.MinObservations {
		s.logger.Debug("pair rejected: short history",
			zap.String("x", pair.X), zap.String("y", pair.Y), zap.Int("rows", pair.Len()))
		return nil, nil
	}
	rx, ry := pair.Returns()
	if len(rx) < s.cfg.MinObservations {
		return nil, nil
	}

	priceCorr := utils.Round(stats.Correlation(pair.PX, pair.PY), 2)
	returnCorr := utils.Round(stats.Correlation(rx, ry), 2)
	px := utils.Round(pair.PX[pair.Len()-1], 2)
	py := utils.Round(pair.PY[pair.Len()-1], 2)

	var (
		cadfPass     bool
		johansenPass bool
		betaSeries   []float64
		spread       []float64
		johansenBeta float64
	)

	// CADF path: static OLS hedge ratio seeds the recursive filter, then a
	// unit-root test runs on the filtered spread.
	if _, beta0, err := stats.SimpleOLS(pair.PX, pair.PY); err == nil {
		if bs, err := s.filter.Series(pair.PX, pair.PY, beta0); err == nil {
			sp := spreadOf(pair.PY, pair.PX, bs)
			if adf, err := stats.ADF(sp); err == nil && adf.PValue < s.cfg.ADFPValue {
				cadfPass = true
			}
			betaSeries, spread = bs, sp
		}
	}

	// Johansen path runs on raw price levels regardless of the CADF outcome.
	if jr, err := stats.Johansen(pair.PX, pair.PY); err == nil && jr.PassesAt95() {
		if b, err := jr.HedgeRatio(); err == nil {
			johansenPass = true
			johansenBeta = b
		}
	}

	if !cadfPass && !johansenPass {
		return nil, nil
	}

	var method types.PassMethod
	switch {
	case cadfPass && johansenPass:
		method = types.PassBoth
	case cadfPass:
		method = types.PassCADF
	default:
		// Only Johansen passed: rebuild the dynamic beta and spread seeded
		// from the Johansen estimate.
		bs, err := s.filter.Series(pair.PX, pair.PY, johansenBeta)
		if err != nil {
			return nil, nil
		}
		betaSeries = bs
		spread = spreadOf(pair.PY, pair.PX, bs)
		method = types.PassJohansen
	}

	hl := stats.HalfLife(spread)

	z := currentZ(spread, hl)
	if !utils.IsFinite(z) || math.Abs(z) <= s.cfg.ZScoreLimit {
		return nil, nil
	}
	hurst := stats.Hurst(spread)
	if !utils.IsFinite(hurst) || hurst < 0 || hurst >= s.cfg.HurstLimit {
		return nil, nil
	}

	sectorX := sectors.Lookup(pair.X)
	sectorY := sectors.Lookup(pair.Y)
	combo := tradeInstruction(z, betaSeries[len(betaSeries)-1], pair.X, pair.Y, px, py, sectorX, sectorY)

	s.logger.Info("pair cointegrated",
		zap.String("x", pair.X), zap.String("y", pair.Y),
		zap.String("method", string(method)),
		zap.Float64("z", z), zap.Int("half_life", hl))

	return &Result{
		X: pair.X, Y: pair.Y,
		Method:       method,
		CADFPass:     cadfPass,
		JohansenPass: johansenPass,
		PriceCorr:    priceCorr,
		ReturnCorr:   returnCorr,
		PX:           px,
		PY:           py,
		Combo:        combo,
		BetaSeries:   betaSeries,
		Spread:       spread,
		Times:        pair.Times,
		HalfLife:     hl,
		ZScore:       z,
		Hurst:        hurst,
		SectorX:      sectorX,
		SectorY:      sectorY,
	}, nil
}

// spreadOf computes y − beta_t·x at every observation.
func spreadOf(y, x, beta []float64) []float64 {
	sp := make([]float64, len(y))
	for i := range y {
		sp[i] = y[i] - beta[i]*x[i]
	}
	return sp
}

// currentZ standardizes the last spread value against the full-window
// rolling mean and std over the half-life horizon, rounded to one decimal
// for display and filtering. NaN when the rolling std is undefined or zero.
func currentZ(spread []float64, hl int) float64 {
	mavg := stats.RollingMean(spread, hl, hl)
	mstd := stats.RollingStd(spread, hl, hl)
	last := len(spread) - 1
	sd := mstd[last]
	if !utils.IsFinite(sd) || sd == 0 {
		return math.NaN()
	}
	return utils.Round((spread[last]-mavg[last])/sd, 1)
}

// tradeInstruction renders the human-readable combo string. Positive z means
// the spread is rich: short the hedge-weighted first leg, buy one unit of the
// second. Negative z reverses the legs.
func tradeInstruction(z, betaLast float64, x, y string, px, py float64, sectorX, sectorY string) string {
	qty := utils.Round(math.Abs(betaLast), 2)
	xd, yd := utils.DisplaySymbol(x), utils.DisplaySymbol(y)
	if z > 0 {
		return fmt.Sprintf("Sell %v of %s (%v, %s)  &  Buy 1 of %s (%v, %s)",
			qty, xd, px, sectorX, yd, py, sectorY)
	}
	return fmt.Sprintf("Buy %v of %s (%v, %s)  &  Sell 1 of %s (%v, %s)",
		qty, xd, px, sectorX, yd, py, sectorY)
}
