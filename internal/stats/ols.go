package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrDegenerate is returned when a regression has no variation to fit.
var ErrDegenerate = errors.New("stats: degenerate regression input")

// SimpleOLS fits y = alpha + beta*x by ordinary least squares.
func SimpleOLS(x, y []float64) (alpha, beta float64, err error) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, 0, fmt.Errorf("stats: need two equal-length series of >= 2 points, got %d/%d", len(x), len(y))
	}
	if PopStd(x) == 0 {
		return 0, 0, ErrDegenerate
	}
	alpha, beta = stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return 0, 0, ErrDegenerate
	}
	return alpha, beta, nil
}

// OLSResult holds a multiple-regression fit with an intercept.
type OLSResult struct {
	Coef   []float64 // intercept first, then one per regressor
	StdErr []float64 // unit standard errors when CovOK is false
	Resid  []float64
	Fitted []float64
	SSR    float64
	MSE    float64 // SSR / (n - k)
	N      int
	K      int
	CovOK  bool
}

// FitOLS regresses y on an intercept plus the given regressor columns.
// Singular normal equations do not fail the fit: coefficients come from the
// least-squares solve and the standard errors fall back to ones with
// CovOK=false, so callers can degrade rather than abort.
func FitOLS(y []float64, regressors ...[]float64) (*OLSResult, error) {
	n := len(y)
	k := len(regressors) + 1
	if n <= k {
		return nil, fmt.Errorf("stats: %d observations insufficient for %d parameters", n, k)
	}
	for i, r := range regressors {
		if len(r) != n {
			return nil, fmt.Errorf("stats: regressor %d length %d != %d", i, len(r), n)
		}
	}

	X := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1)
		for j, r := range regressors {
			X.Set(i, j+1, r[i])
		}
	}
	yv := mat.NewVecDense(n, append([]float64(nil), y...))

	var coef mat.VecDense
	if err := coef.SolveVec(X, yv); err != nil {
		return nil, fmt.Errorf("stats: least squares solve: %w", err)
	}

	res := &OLSResult{
		Coef:   make([]float64, k),
		StdErr: make([]float64, k),
		Resid:  make([]float64, n),
		Fitted: make([]float64, n),
		N:      n,
		K:      k,
	}
	for j := 0; j < k; j++ {
		res.Coef[j] = coef.AtVec(j)
	}

	var fitted mat.VecDense
	fitted.MulVec(X, &coef)
	for i := 0; i < n; i++ {
		res.Fitted[i] = fitted.AtVec(i)
		res.Resid[i] = y[i] - res.Fitted[i]
		res.SSR += res.Resid[i] * res.Resid[i]
	}
	res.MSE = res.SSR / float64(n-k)

	// Parameter covariance from mse * diag((X'X)^-1); identity fallback
	// when the normal equations are singular.
	var xtx mat.Dense
	xtx.Mul(X.T(), X)
	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		for j := range res.StdErr {
			res.StdErr[j] = 1
		}
		return res, nil
	}
	res.CovOK = true
	for j := 0; j < k; j++ {
		v := inv.At(j, j) * res.MSE
		if v < 0 {
			v = 0
		}
		res.StdErr[j] = math.Sqrt(v)
	}
	return res, nil
}

// AIC returns the Akaike information criterion of the fit under gaussian
// errors, comparable across fits on the same observations.
func (r *OLSResult) AIC() float64 {
	n := float64(r.N)
	ssr := r.SSR
	if ssr <= 0 {
		ssr = 1e-300
	}
	llf := -n / 2 * (math.Log(2*math.Pi) + math.Log(ssr/n) + 1)
	return -2*llf + 2*float64(r.K)
}
