// Package scanner orchestrates a full scan: it enumerates candidate pairs,
// screens them for cointegration, runs the ensemble simulator and the
// extreme-z tracker on every pass, and ranks the results.
package scanner

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/somewisecrack/omnispread/internal/data"
	"github.com/somewisecrack/omnispread/internal/metrics"
	"github.com/somewisecrack/omnispread/internal/montecarlo"
	"github.com/somewisecrack/omnispread/internal/screener"
	"github.com/somewisecrack/omnispread/internal/tracker"
	"github.com/somewisecrack/omnispread/internal/workers"
	"github.com/somewisecrack/omnispread/pkg/types"
	"github.com/somewisecrack/omnispread/pkg/utils"
)

// ProgressFunc receives phase updates during a scan. Phase is "screening"
// or "simulating"; done/total count pairs within the phase.
type ProgressFunc func(phase string, done, total int)

// Scanner runs scans against an immutable configuration.
type Scanner struct {
	logger   *zap.Logger
	cfg      types.ScanConfig
	screener *screener.Screener
	ensemble *montecarlo.Ensemble
	tracker  *tracker.Tracker
	recorder *metrics.Recorder

	// OnProgress, when set, is invoked between pair evaluations.
	OnProgress ProgressFunc
}

// New wires a Scanner and its sub-components.
func New(logger *zap.Logger, cfg types.ScanConfig, rec *metrics.Recorder) *Scanner {
	return &Scanner{
		logger:   logger,
		cfg:      cfg,
		screener: screener.New(logger, cfg),
		ensemble: montecarlo.NewEnsemble(logger, cfg),
		tracker:  tracker.New(logger),
		recorder: rec,
	}
}

// Scan screens every pair of panel symbols until the target count of passes
// is reached, simulates each pass, and returns results sorted descending by
// median probability of profit. Cancellation is honored between pair
// evaluations; per-pair failures are logged and skipped.
func (s *Scanner) Scan(ctx context.Context, panel *data.Panel, sectors data.SectorMap) ([]types.ScanResult, error) {
	start := time.Now()
	s.recorder.ScansStarted.Inc()

	symbols := panel.Symbols()
	if len(symbols) < 2 {
		s.logger.Warn("scan needs at least 2 symbols", zap.Int("symbols", len(symbols)))
		s.recorder.ScansCompleted.Inc()
		return []types.ScanResult{}, nil
	}

	pairs := enumeratePairs(symbols)
	s.logger.Info("screening pairs", zap.Int("pairs", len(pairs)))

	screened, err := s.screenAll(ctx, panel, sectors, pairs)
	if err != nil {
		s.recorder.ScansFailed.Inc()
		return nil, err
	}
	s.logger.Info("screening done", zap.Int("cointegrated", len(screened)))

	results, err := s.simulateAll(ctx, screened)
	if err != nil {
		s.recorder.ScansFailed.Inc()
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ProbProfit > results[j].ProbProfit
	})

	s.recorder.ScansCompleted.Inc()
	s.recorder.ScanDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("scan complete",
		zap.Int("results", len(results)),
		zap.Duration("elapsed", time.Since(start)))
	return results, nil
}

func (s *Scanner) screenAll(ctx context.Context, panel *data.Panel, sectors data.SectorMap, pairs [][2]string) ([]*screener.Result, error) {
	screened := make([]*screener.Result, 0, s.cfg.TopN)
	for i, pr := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(screened) >= s.cfg.TopN {
			break
		}
		s.progress("screening", i, len(pairs))

		pairStart := time.Now()
		s.recorder.PairsScreened.Inc()

		pair, err := panel.Pair(pr[0], pr[1])
		if err != nil {
			s.recorder.PairsSkipped.Inc()
			s.logger.Warn("pair projection failed",
				zap.String("x", pr[0]), zap.String("y", pr[1]), zap.Error(err))
			continue
		}
		res, err := s.screener.ScreenPair(pair, sectors)
		if err != nil {
			s.recorder.PairsSkipped.Inc()
			s.logger.Warn("screening failed",
				zap.String("x", pr[0]), zap.String("y", pr[1]), zap.Error(err))
			continue
		}
		s.recorder.PairDuration.Observe(time.Since(pairStart).Seconds())
		if res == nil {
			continue
		}
		s.recorder.PairsPassed.Inc()
		screened = append(screened, res)
	}
	return screened, nil
}

// simulateAll runs the ensemble and tracker on every screened pair. With
// Workers > 1 pairs run in parallel; results stay deterministic because
// each pair's ensemble owns a generator seeded from the configured seed.
func (s *Scanner) simulateAll(ctx context.Context, screened []*screener.Result) ([]types.ScanResult, error) {
	if len(screened) == 0 {
		return []types.ScanResult{}, nil
	}

	ordered := make([]*types.ScanResult, len(screened))
	if s.cfg.Workers <= 1 {
		for i, item := range screened {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			s.progress("simulating", i, len(screened))
			ordered[i] = s.evaluate(item)
		}
	} else {
		pool := workers.NewPool(s.logger, s.cfg.Workers, len(screened))
		pool.Start()
		for i, item := range screened {
			if err := ctx.Err(); err != nil {
				pool.Stop()
				return nil, err
			}
			i, item := i, item
			pool.Submit(func() error {
				ordered[i] = s.evaluate(item)
				return nil
			})
		}
		pool.Stop()
	}

	results := make([]types.ScanResult, 0, len(ordered))
	for _, r := range ordered {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results, nil
}

// evaluate runs the simulator and tracker on one screened pair and builds
// the final record. Returns nil when simulation fails.
func (s *Scanner) evaluate(item *screener.Result) *types.ScanResult {
	out, err := s.ensemble.Run(item)
	if err != nil {
		s.recorder.PairsSkipped.Inc()
		s.logger.Warn("simulation failed",
			zap.String("x", item.X), zap.String("y", item.Y), zap.Error(err))
		return nil
	}
	s.recorder.SimulationsRun.Add(float64(out.TotalSims))

	ann := s.tracker.Annotate(item)
	history := ann.History
	if history == nil {
		history = []types.ZScorePoint{}
	}

	sameSector := "No"
	if item.SameSector() {
		sameSector = "Yes"
	}

	res := &types.ScanResult{
		Pair:           utils.DisplaySymbol(item.X) + "/" + utils.DisplaySymbol(item.Y),
		Combo:          item.Combo,
		Method:         item.Method,
		PriceCorr:      utils.SafeFloat(item.PriceCorr, 0),
		ZScore:         utils.SafeFloat(item.ZScore, 0),
		HalfLife:       item.HalfLife,
		MoveToMean:     utils.Money(utils.SafeFloat(out.MoveToMean, 0)),
		ExpReturn:      utils.SafeFloat(out.ExpReturn, 0),
		UnitPrice:      utils.Money(utils.SafeFloat(out.UnitPrice, 0)),
		Hurst:          utils.SafeFloat(item.Hurst, 0.5),
		ProbProfit:     utils.SafeFloat(out.ProbMedian, 0),
		ProbProfitLow:  utils.SafeFloat(out.ProbLow, 0),
		ProbProfitHigh: utils.SafeFloat(out.ProbHigh, 0),

		SameSector: sameSector,

		ExtremeZInHL:           ann.AtExtreme,
		ExtremeZDetail:         ann.Detail,
		ProfitableSinceExtreme: ann.ProfitableSince,
		PnLSinceExtreme:        utils.Money(utils.SafeFloat(ann.PnLSince, 0)),

		HistoricalZScores: history,
	}
	s.logger.Info("pair evaluated",
		zap.String("pair", res.Pair),
		zap.Float64("z", res.ZScore),
		zap.Float64("prob_profit", res.ProbProfit))
	return res
}

func (s *Scanner) progress(phase string, done, total int) {
	if s.OnProgress != nil {
		s.OnProgress(phase, done, total)
	}
}

// enumeratePairs lists ordered combinations of the symbols, preserving the
// panel's symbol order.
func enumeratePairs(symbols []string) [][2]string {
	pairs := make([][2]string, 0, len(symbols)*(len(symbols)-1)/2)
	for i := 0; i < len(symbols); i++ {
		for j := i + 1; j < len(symbols); j++ {
			pairs = append(pairs, [2]string{symbols[i], symbols[j]})
		}
	}
	return pairs
}
