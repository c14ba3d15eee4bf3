package stats

import (
	"math"
)

// HalfLife estimates the mean-reversion half-life of a spread series by
// regressing one-period spread changes on the lagged spread level (first
// lag back-filled). A non-negative slope means no reversion was detected
// and the degenerate fallback of 1 is returned; callers should treat that
// as a weak signal rather than a strong one-period reversion.
// The result is always an integer >= 1.
func HalfLife(spread []float64) int {
	if len(spread) < 3 {
		return 1
	}

	lag := make([]float64, len(spread))
	lag[0] = spread[0]
	copy(lag[1:], spread[:len(spread)-1])

	ret := make([]float64, len(spread))
	for i := range spread {
		ret[i] = spread[i] - lag[i]
	}

	if PopStd(lag) == 0 {
		return 1
	}
	_, b, err := SimpleOLS(lag, ret)
	if err != nil || b >= 0 {
		return 1
	}

	hl := int(math.Round(math.Ln2 / -b))
	if hl < 1 {
		return 1
	}
	return hl
}
