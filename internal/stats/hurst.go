package stats

import (
	"math"
)

// Hurst estimates the Hurst exponent of ts by regressing the log standard
// deviation of lagged differences on log lag, over lags 2..min(100, n-1).
// Values below 0.5 indicate mean reversion, above 0.5 trending behavior.
// Returns NaN for series shorter than 20 observations or when any lag has
// exactly zero dispersion.
func Hurst(ts []float64) float64 {
	n := len(ts)
	if n < 20 {
		return math.NaN()
	}

	maxLag := 100
	if n-1 < maxLag {
		maxLag = n - 1
	}

	logLags := make([]float64, 0, maxLag-1)
	logTau := make([]float64, 0, maxLag-1)
	for lag := 2; lag <= maxLag; lag++ {
		diffs := make([]float64, n-lag)
		for i := lag; i < n; i++ {
			diffs[i-lag] = ts[i] - ts[i-lag]
		}
		tau := PopStd(diffs)
		if tau == 0 {
			return math.NaN()
		}
		logLags = append(logLags, math.Log(float64(lag)))
		logTau = append(logTau, math.Log(tau))
	}

	_, slope, err := SimpleOLS(logLags, logTau)
	if err != nil {
		return math.NaN()
	}
	return slope * 2.0
}
