package stats

import (
	"fmt"
	"math"
)

// ADFResult holds an augmented Dickey-Fuller unit-root test outcome.
type ADFResult struct {
	Stat    float64 // tau statistic on the lagged level
	PValue  float64 // MacKinnon approximate p-value
	UsedLag int     // lag order selected by AIC
}

// MacKinnon approximate p-value surface for the constant-only regression
// on a single series (Dickey-Fuller tau distribution).
var (
	adfTauMax  = 2.74
	adfTauMin  = -18.83
	adfTauStar = -1.61
	adfSmallP  = []float64{2.1659, 1.4412, 0.038269}
	adfLargeP  = []float64{1.7339, 0.93202, -0.15021, -0.033377}
)

// ADF runs an augmented Dickey-Fuller test with a constant term on the
// series, selecting the lag order automatically by AIC over a common
// sample, the standard Schwert upper bound giving the maximum lag.
func ADF(series []float64) (*ADFResult, error) {
	n := len(series)
	if n < 15 {
		return nil, fmt.Errorf("stats: adf needs >= 15 observations, got %d", n)
	}

	maxlag := int(math.Ceil(12.0 * math.Pow(float64(n)/100.0, 0.25)))
	if cap := (n-1)/2 - 2; maxlag > cap {
		maxlag = cap
	}
	if maxlag < 0 {
		maxlag = 0
	}

	dy := Diff(series)

	// Lag selection on a fixed sample so AICs are comparable.
	bestLag, bestAIC := 0, math.Inf(1)
	for p := 0; p <= maxlag; p++ {
		fit, err := adfFit(series, dy, maxlag, p)
		if err != nil {
			continue
		}
		if aic := fit.AIC(); aic < bestAIC {
			bestAIC = aic
			bestLag = p
		}
	}

	fit, err := adfFit(series, dy, bestLag, bestLag)
	if err != nil {
		return nil, err
	}
	if !fit.CovOK || fit.StdErr[1] == 0 {
		return nil, ErrDegenerate
	}

	tau := fit.Coef[1] / fit.StdErr[1]
	return &ADFResult{
		Stat:    tau,
		PValue:  mackinnonP(tau),
		UsedLag: bestLag,
	}, nil
}

// adfFit regresses dy[t] on [const, y[t-1], dy[t-1..t-p]] with the first
// `offset` difference rows trimmed.
func adfFit(series, dy []float64, offset, p int) (*OLSResult, error) {
	m := len(dy)
	dep := dy[offset:]
	regs := make([][]float64, 0, p+1)
	regs = append(regs, series[offset:m])
	for j := 1; j <= p; j++ {
		regs = append(regs, dy[offset-j:m-j])
	}
	return FitOLS(dep, regs...)
}

// mackinnonP maps a tau statistic to an approximate p-value via the
// MacKinnon (1994) regression surface.
func mackinnonP(tau float64) float64 {
	switch {
	case tau > adfTauMax:
		return 1.0
	case tau < adfTauMin:
		return 0.0
	}
	coeffs := adfLargeP
	if tau <= adfTauStar {
		coeffs = adfSmallP
	}
	return normCDF(polyval(coeffs, tau))
}

// polyval evaluates a polynomial with ascending coefficients at x.
func polyval(coeffs []float64, x float64) float64 {
	var v, pow float64
	pow = 1
	for _, c := range coeffs {
		v += c * pow
		pow *= x
	}
	return v
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}
