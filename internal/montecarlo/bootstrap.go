package montecarlo

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// blockBootstrap fills eps with a resampled error sequence of exactly
// horizon entries. Contiguous residual blocks of blockLen are drawn at
// uniform start offsets, wrapping circularly at the array boundary, and
// concatenated until the horizon is covered. An empty residual vector
// degrades to standard normal draws.
func blockBootstrap(resid []float64, horizon, blockLen int, rng *rand.Rand, eps []float64) []float64 {
	if cap(eps) < horizon {
		eps = make([]float64, horizon)
	}
	eps = eps[:horizon]

	n := len(resid)
	if n == 0 {
		norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
		for i := range eps {
			eps[i] = norm.Rand()
		}
		return eps
	}
	if blockLen < 1 {
		blockLen = 1
	}

	filled := 0
	for filled < horizon {
		start := rng.IntN(n)
		for i := 0; i < blockLen && filled < horizon; i++ {
			eps[filled] = resid[(start+i)%n]
			filled++
		}
	}
	return eps
}
