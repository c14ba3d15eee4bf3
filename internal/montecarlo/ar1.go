package montecarlo

import (
	"fmt"

	"github.com/somewisecrack/omnispread/internal/stats"
)

// ar1Fit holds the least-squares AR(1) model of a spread:
// spread[t] = a + phi·spread[t−1] + resid[t].
type ar1Fit struct {
	a, phi     float64
	resid      []float64
	sigma      float64 // unbiased residual std
	seA, sePhi float64 // diagonal parameter standard errors
	nObs       int
}

// fitAR1 regresses the spread on its own first lag. When the normal-equation
// inverse is unavailable the standard errors fall back to 1.0, so the
// ensemble still expresses some parameter uncertainty.
func fitAR1(spread []float64) (*ar1Fit, error) {
	if len(spread) < 3 {
		return nil, fmt.Errorf("montecarlo: %d observations, need at least 3 for AR(1)", len(spread))
	}
	y := spread[1:]
	x := spread[:len(spread)-1]

	ols, err := stats.FitOLS(y, x)
	if err != nil {
		return nil, fmt.Errorf("montecarlo: AR(1) fit: %w", err)
	}
	return &ar1Fit{
		a:     ols.Coef[0],
		phi:   ols.Coef[1],
		resid: ols.Resid,
		sigma: stats.StdDev(ols.Resid),
		seA:   ols.StdErr[0],
		sePhi: ols.StdErr[1],
		nObs:  len(y),
	}, nil
}

// simulatePath runs the AR(1) recursion for len(eps) steps from r0.
// path[0] = r0 and path[t] = a + phi·path[t−1] + eps[t−1].
func simulatePath(a, phi, r0 float64, eps []float64, path []float64) []float64 {
	if cap(path) < len(eps)+1 {
		path = make([]float64, len(eps)+1)
	}
	path = path[:len(eps)+1]
	path[0] = r0
	for t := 1; t < len(path); t++ {
		path[t] = a + phi*path[t-1] + eps[t-1]
	}
	return path
}
