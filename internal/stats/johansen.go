package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// JohansenResult holds the two-variable Johansen cointegration test:
// eigenvalues and eigenvectors of the VECM reduced-rank problem plus the
// trace and maximum-eigenvalue statistics per cointegrating rank.
type JohansenResult struct {
	Eigenvalues  []float64    // sorted descending
	Eigenvectors [][]float64  // Eigenvectors[i] is the vector for Eigenvalues[i]
	Trace        []float64    // trace statistic for rank r = 0, 1
	MaxEig       []float64    // max-eigenvalue statistic for rank r = 0, 1
	TraceCrit    [][3]float64 // 90/95/99% critical values per rank
	MaxEigCrit   [][3]float64
}

// Osterwald-Lenum critical values, constant deterministic term, for
// (remaining rank) = 2 and 1 variables. Columns: 90%, 95%, 99%.
var (
	johTraceCrit = [][3]float64{
		{13.4294, 15.4943, 19.9349},
		{2.7055, 3.8415, 6.6349},
	}
	johMaxCrit = [][3]float64{
		{12.2971, 14.2639, 18.5200},
		{2.7055, 3.8415, 6.6349},
	}
)

// Johansen runs the two-variable Johansen cointegration test on price
// levels with a constant deterministic term and one lagged difference.
func Johansen(x, y []float64) (*JohansenResult, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("stats: johansen series length mismatch %d/%d", len(x), len(y))
	}
	T := len(x)
	if T < 20 {
		return nil, fmt.Errorf("stats: johansen needs >= 20 observations, got %d", T)
	}
	rows := T - 2

	endog := mat.NewDense(T, 2, nil)
	for i := 0; i < T; i++ {
		endog.Set(i, 0, x[i])
		endog.Set(i, 1, y[i])
	}
	demeanColumns(endog)

	dx := mat.NewDense(T-1, 2, nil)
	for i := 0; i < T-1; i++ {
		dx.Set(i, 0, endog.At(i+1, 0)-endog.At(i, 0))
		dx.Set(i, 1, endog.At(i+1, 1)-endog.At(i, 1))
	}

	// One lagged difference as short-run regressor, levels lagged once as
	// the long-run block, all demeaned over the effective sample.
	z := mat.DenseCopyOf(dx.Slice(0, rows, 0, 2))
	dxt := mat.DenseCopyOf(dx.Slice(1, rows+1, 0, 2))
	lx := mat.DenseCopyOf(endog.Slice(1, rows+1, 0, 2))
	demeanColumns(z)
	demeanColumns(dxt)
	demeanColumns(lx)

	r0t, err := residualsOf(dxt, z)
	if err != nil {
		return nil, fmt.Errorf("stats: johansen short-run residuals: %w", err)
	}
	rkt, err := residualsOf(lx, z)
	if err != nil {
		return nil, fmt.Errorf("stats: johansen long-run residuals: %w", err)
	}

	s00 := crossProduct(r0t, r0t, rows)
	skk := crossProduct(rkt, rkt, rows)
	sk0 := crossProduct(rkt, r0t, rows)

	var s00inv, skkinv mat.Dense
	if err := s00inv.Inverse(s00); err != nil {
		return nil, fmt.Errorf("stats: johansen S00 singular: %w", err)
	}
	if err := skkinv.Inverse(skk); err != nil {
		return nil, fmt.Errorf("stats: johansen Skk singular: %w", err)
	}

	var sig, m mat.Dense
	sig.Product(sk0, &s00inv, sk0.T())
	m.Product(&skkinv, &sig)

	var eig mat.Eigen
	if ok := eig.Factorize(&m, mat.EigenRight); !ok {
		return nil, fmt.Errorf("stats: johansen eigendecomposition failed")
	}
	values := eig.Values(nil)
	var vectors mat.CDense
	eig.VectorsTo(&vectors)

	order := []int{0, 1}
	lambda := []float64{real(values[0]), real(values[1])}
	sort.Slice(order, func(a, b int) bool { return lambda[order[a]] > lambda[order[b]] })

	res := &JohansenResult{
		Eigenvalues:  make([]float64, 2),
		Eigenvectors: make([][]float64, 2),
		Trace:        make([]float64, 2),
		MaxEig:       make([]float64, 2),
		TraceCrit:    johTraceCrit,
		MaxEigCrit:   johMaxCrit,
	}
	for i, idx := range order {
		res.Eigenvalues[i] = clampEigenvalue(lambda[idx])
		res.Eigenvectors[i] = []float64{
			real(vectors.At(0, idx)),
			real(vectors.At(1, idx)),
		}
	}

	tsize := float64(rows)
	res.Trace[0] = -tsize * (math.Log(1-res.Eigenvalues[0]) + math.Log(1-res.Eigenvalues[1]))
	res.Trace[1] = -tsize * math.Log(1-res.Eigenvalues[1])
	res.MaxEig[0] = -tsize * math.Log(1-res.Eigenvalues[0])
	res.MaxEig[1] = -tsize * math.Log(1-res.Eigenvalues[1])

	return res, nil
}

// PassesAt95 reports whether any tested rank clears both the trace and the
// maximum-eigenvalue 95% critical values.
func (r *JohansenResult) PassesAt95() bool {
	for i := 0; i < 2; i++ {
		if r.Trace[i] > r.TraceCrit[i][1] && r.MaxEig[i] > r.MaxEigCrit[i][1] {
			return true
		}
	}
	return false
}

// HedgeRatio derives the hedge ratio from the eigenvector of the largest
// eigenvalue, normalized so the ratio is relative to the first series:
// spread = y - ratio*x.
func (r *JohansenResult) HedgeRatio() (float64, error) {
	v := r.Eigenvectors[0]
	if math.Abs(v[1]) < 1e-12 {
		return 0, fmt.Errorf("stats: johansen eigenvector degenerate in second component")
	}
	ratio := -v[0] / v[1]
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0, fmt.Errorf("stats: johansen hedge ratio not finite")
	}
	return ratio, nil
}

func demeanColumns(a *mat.Dense) {
	r, c := a.Dims()
	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += a.At(i, j)
		}
		mean := sum / float64(r)
		for i := 0; i < r; i++ {
			a.Set(i, j, a.At(i, j)-mean)
		}
	}
}

// residualsOf returns dep - z*B where B is the least-squares fit of dep on z.
func residualsOf(dep, z *mat.Dense) (*mat.Dense, error) {
	var b mat.Dense
	if err := b.Solve(z, dep); err != nil {
		return nil, err
	}
	var fitted mat.Dense
	fitted.Mul(z, &b)
	var resid mat.Dense
	resid.Sub(dep, &fitted)
	return &resid, nil
}

func crossProduct(a, b *mat.Dense, n int) *mat.Dense {
	var p mat.Dense
	p.Mul(a.T(), b)
	p.Scale(1/float64(n), &p)
	return &p
}

func clampEigenvalue(l float64) float64 {
	if l < 0 {
		return 0
	}
	if l > 1-1e-12 {
		return 1 - 1e-12
	}
	return l
}
