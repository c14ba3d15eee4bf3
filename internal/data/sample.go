package data

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// SampleProvider generates a deterministic synthetic price panel for
// development and testing. Odd-indexed symbols are cointegrated with their
// predecessor through a mean-reverting spread so that a scan over the sample
// universe actually finds pairs; even-indexed symbols are independent walks.
type SampleProvider struct {
	logger *zap.Logger
	bars   int
	seed   uint64
}

// NewSampleProvider creates a sample provider with the given series length
// and generator seed.
func NewSampleProvider(logger *zap.Logger, bars int, seed uint64) *SampleProvider {
	if bars < 60 {
		bars = 60
	}
	return &SampleProvider{logger: logger, bars: bars, seed: seed}
}

var sampleSectors = []string{"Technology", "Financials", "Energy", "Healthcare", "Consumer"}

// FetchPanel implements Provider.
func (sp *SampleProvider) FetchPanel(ctx context.Context, symbols []string) (*Panel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(sp.seed, sp.seed))

	times := make([]time.Time, sp.bars)
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -sp.bars)
	for i := range times {
		times[i] = start.AddDate(0, 0, i)
	}

	series := make(map[string][]float64, len(symbols))
	var prevWalk []float64
	for i, sym := range symbols {
		base := 50 + rng.Float64()*150
		if i%2 == 1 && prevWalk != nil {
			series[sym] = sp.cointegratedWith(prevWalk, base, rng)
		} else {
			walk := sp.randomWalk(base, rng)
			series[sym] = walk
			prevWalk = walk
		}
	}

	sp.logger.Info("generated sample panel",
		zap.Int("symbols", len(symbols)),
		zap.Int("bars", sp.bars),
	)
	return NewPanel(times, symbols, series)
}

// FetchSectors implements Provider. Adjacent symbols share a sector so
// sample scans exercise the same-sector flag.
func (sp *SampleProvider) FetchSectors(ctx context.Context, symbols []string) (SectorMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sectors := make(SectorMap, len(symbols))
	for i, sym := range symbols {
		sectors[sym] = sampleSectors[(i/2)%len(sampleSectors)]
	}
	return sectors, nil
}

// randomWalk produces a geometric random walk around the base price.
func (sp *SampleProvider) randomWalk(base float64, rng *rand.Rand) []float64 {
	prices := make([]float64, sp.bars)
	price := base
	for i := range prices {
		price *= 1 + rng.NormFloat64()*0.012
		if price < 1 {
			price = 1
		}
		prices[i] = price
	}
	return prices
}

// cointegratedWith builds a series tied to ref through a stationary AR(1)
// spread, scaled so both legs trade near the base price.
func (sp *SampleProvider) cointegratedWith(ref []float64, base float64, rng *rand.Rand) []float64 {
	beta := base / ref[0]
	sigma := base * 0.01
	prices := make([]float64, sp.bars)
	spread := 0.0
	for i := range prices {
		spread = 0.85*spread + rng.NormFloat64()*sigma
		p := beta*ref[i] + spread
		if p < 1 {
			p = 1
		}
		prices[i] = p
	}
	// Push the final observation away from equilibrium so the current
	// z-score has a chance to clear the screening threshold.
	prices[sp.bars-1] += 3.5 * sigma * signOf(rng.Float64()-0.5)
	return prices
}

func signOf(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
