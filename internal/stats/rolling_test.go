package stats_test

import (
	"math"
	"testing"

	"github.com/somewisecrack/omnispread/internal/stats"
)

func TestMeanAndStd(t *testing.T) {
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	if got := stats.Mean(xs); math.Abs(got-5) > 1e-12 {
		t.Errorf("Mean = %v, want 5", got)
	}
	if got := stats.PopStd(xs); math.Abs(got-2) > 1e-12 {
		t.Errorf("PopStd = %v, want 2", got)
	}
	// Sample std uses n-1.
	want := 2 * math.Sqrt(8.0/7.0)
	if got := stats.StdDev(xs); math.Abs(got-want) > 1e-12 {
		t.Errorf("StdDev = %v, want %v", got, want)
	}
}

func TestCorrelation(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 4, 6, 8, 10}
	if got := stats.Correlation(xs, ys); math.Abs(got-1) > 1e-12 {
		t.Errorf("Correlation of scaled series = %v, want 1", got)
	}

	neg := []float64{10, 8, 6, 4, 2}
	if got := stats.Correlation(xs, neg); math.Abs(got+1) > 1e-12 {
		t.Errorf("Correlation of inverted series = %v, want -1", got)
	}

	if got := stats.Correlation(xs, []float64{1, 2}); !math.IsNaN(got) {
		t.Errorf("Correlation with mismatched lengths = %v, want NaN", got)
	}
}

func TestRollingMeanWindow(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	out := stats.RollingMean(xs, 3, 3)

	if !math.IsNaN(out[0]) || !math.IsNaN(out[1]) {
		t.Errorf("expected NaN before window fills, got %v %v", out[0], out[1])
	}
	for i, want := range []float64{2, 3, 4} {
		if got := out[i+2]; math.Abs(got-want) > 1e-12 {
			t.Errorf("RollingMean[%d] = %v, want %v", i+2, got, want)
		}
	}
}

func TestRollingMeanMinPeriods(t *testing.T) {
	xs := []float64{2, 4, 6}
	out := stats.RollingMean(xs, 3, 1)

	for i, want := range []float64{2, 3, 4} {
		if math.Abs(out[i]-want) > 1e-12 {
			t.Errorf("RollingMean[%d] = %v, want %v", i, out[i], want)
		}
	}
}

func TestRollingStd(t *testing.T) {
	xs := []float64{1, 1, 1, 5, 9}
	out := stats.RollingStd(xs, 3, 3)

	if !math.IsNaN(out[0]) || !math.IsNaN(out[1]) {
		t.Errorf("expected NaN before window fills")
	}
	if math.Abs(out[2]-0) > 1e-12 {
		t.Errorf("RollingStd of constant window = %v, want 0", out[2])
	}
	// Window {1, 5, 9}: sample std is 4.
	if math.Abs(out[4]-4) > 1e-12 {
		t.Errorf("RollingStd[4] = %v, want 4", out[4])
	}

	// min_periods=1 still yields NaN for a single point.
	single := stats.RollingStd([]float64{3, 4}, 3, 1)
	if !math.IsNaN(single[0]) {
		t.Errorf("RollingStd single observation = %v, want NaN", single[0])
	}
}

func TestPercentileInterpolation(t *testing.T) {
	xs := []float64{4, 1, 3, 2}

	if got := stats.Percentile(xs, 50); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("Percentile 50 = %v, want 2.5", got)
	}
	if got := stats.Percentile(xs, 0); got != 1 {
		t.Errorf("Percentile 0 = %v, want 1", got)
	}
	if got := stats.Percentile(xs, 100); got != 4 {
		t.Errorf("Percentile 100 = %v, want 4", got)
	}
	if got := stats.Percentile(xs, 25); math.Abs(got-1.75) > 1e-12 {
		t.Errorf("Percentile 25 = %v, want 1.75", got)
	}
	if got := stats.Median([]float64{7}); got != 7 {
		t.Errorf("Median of singleton = %v, want 7", got)
	}
}

func TestDiff(t *testing.T) {
	out := stats.Diff([]float64{1, 4, 9, 16})
	want := []float64{3, 5, 7}
	if len(out) != len(want) {
		t.Fatalf("Diff length = %d, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("Diff[%d] = %v, want %v", i, out[i], want[i])
		}
	}
	if stats.Diff([]float64{1}) != nil {
		t.Error("Diff of singleton should be nil")
	}
}
