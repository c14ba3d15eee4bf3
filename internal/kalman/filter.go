// Package kalman provides a scalar Kalman filter that tracks a time-varying
// hedge ratio between two price series. The hedge ratio is modeled as a
// random walk observed through the noisy linear relationship y_t ≈ beta_t·x_t.
package kalman

import (
	"fmt"

	"github.com/somewisecrack/omnispread/internal/stats"
)

// DefaultProcessVar is the random-walk process-noise variance of the
// hedge-ratio state.
const DefaultProcessVar = 1e-5

// BetaFilter estimates a full-history series of hedge ratios.
type BetaFilter struct {
	// ProcessVar is the state process-noise variance. Zero means
	// DefaultProcessVar.
	ProcessVar float64
}

// Series runs the filter over the aligned series x, y seeded with beta0 and
// returns one post-update beta per observation. The measurement-noise
// variance is estimated once from the dispersion of y - beta0*x; the state
// covariance starts at 1. The recursion is an inherently sequential fold:
// each step conditions on the previous posterior.
func (f BetaFilter) Series(x, y []float64, beta0 float64) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("kalman: series length mismatch %d/%d", len(x), len(y))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("kalman: empty input series")
	}

	r := f.ProcessVar
	if r == 0 {
		r = DefaultProcessVar
	}

	resid := make([]float64, len(x))
	for i := range x {
		resid[i] = y[i] - beta0*x[i]
	}
	q := stats.PopStd(resid)
	q *= q

	beta := beta0
	p := 1.0
	betas := make([]float64, len(x))
	for t := range x {
		p += r
		h := x[t]
		innov := y[t] - h*beta
		s := h*p*h + q
		k := p * h / s
		beta += k * innov
		p *= 1 - k*h
		betas[t] = beta
	}
	return betas, nil
}
