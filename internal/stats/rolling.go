// Package stats provides the statistical primitives behind pair screening:
// regression fits, unit-root and cointegration tests, Hurst scaling and
// rolling-window summaries.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) float64 {
	return stat.Mean(xs, nil)
}

// StdDev returns the sample standard deviation of xs (n-1 in the denominator).
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// PopStd returns the population standard deviation of xs.
func PopStd(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	mean := stat.Mean(xs, nil)
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// Correlation returns the Pearson correlation between xs and ys.
func Correlation(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// RollingMean computes a trailing-window mean series. Entries before the
// window has at least minPeriods observations are NaN.
func RollingMean(xs []float64, window, minPeriods int) []float64 {
	out := make([]float64, len(xs))
	var sum float64
	for i := range xs {
		sum += xs[i]
		if i >= window {
			sum -= xs[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		if n < minPeriods {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(n)
	}
	return out
}

// RollingStd computes a trailing-window sample standard deviation series.
// Entries with fewer than minPeriods observations are NaN; a single
// observation yields NaN as well (no sample variance from one point).
func RollingStd(xs []float64, window, minPeriods int) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		n := i - lo + 1
		if n < minPeriods || n < 2 {
			out[i] = math.NaN()
			continue
		}
		out[i] = StdDev(xs[lo : i+1])
	}
	return out
}

// Percentile returns the p-th percentile (0..100) of xs using linear
// interpolation between closest ranks. NaN when xs is empty.
func Percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Median returns the 50th percentile of xs.
func Median(xs []float64) float64 {
	return Percentile(xs, 50)
}

// Diff returns first differences xs[i+1]-xs[i], length len(xs)-1.
func Diff(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	out := make([]float64, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		out[i-1] = xs[i] - xs[i-1]
	}
	return out
}
