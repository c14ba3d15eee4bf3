package utils_test

import (
	"math"
	"testing"

	"github.com/somewisecrack/omnispread/pkg/utils"
)

func TestRound(t *testing.T) {
	cases := []struct {
		x      float64
		places int
		want   float64
	}{
		{1.2345, 2, 1.23},
		{1.235, 2, 1.24},
		{-2.567, 1, -2.6},
		{3.14159, 0, 3},
		{0, 3, 0},
	}
	for _, c := range cases {
		if got := utils.Round(c.x, c.places); got != c.want {
			t.Errorf("Round(%v, %d) = %v, want %v", c.x, c.places, got, c.want)
		}
	}
	if !math.IsNaN(utils.Round(math.NaN(), 2)) {
		t.Error("Round must pass NaN through")
	}
}

func TestSafeFloat(t *testing.T) {
	if got := utils.SafeFloat(1.5, 0); got != 1.5 {
		t.Errorf("SafeFloat(1.5) = %v", got)
	}
	if got := utils.SafeFloat(math.NaN(), 0.5); got != 0.5 {
		t.Errorf("SafeFloat(NaN) = %v, want fallback", got)
	}
	if got := utils.SafeFloat(math.Inf(1), -1); got != -1 {
		t.Errorf("SafeFloat(+Inf) = %v, want fallback", got)
	}
}

func TestClose(t *testing.T) {
	if !utils.Close(1.0, 1.0+1e-9) {
		t.Error("values within tolerance reported as different")
	}
	if utils.Close(1.0, 1.001) {
		t.Error("values outside tolerance reported as close")
	}
	if utils.Close(math.NaN(), math.NaN()) {
		t.Error("NaN must never compare close")
	}
	if utils.Close(0, math.Inf(1)) {
		t.Error("infinity must never compare close")
	}
}

func TestDisplaySymbol(t *testing.T) {
	cases := map[string]string{
		"RELIANCE.NS":  "RELIANCE",
		"TATASTEEL.BO": "TATASTEEL",
		"AAPL":         "AAPL",
	}
	for in, want := range cases {
		if got := utils.DisplaySymbol(in); got != want {
			t.Errorf("DisplaySymbol(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMoney(t *testing.T) {
	if got := utils.Money(12.345); got.String() != "12.35" {
		t.Errorf("Money(12.345) = %s, want 12.35", got)
	}
	if got := utils.Money(math.NaN()); !got.IsZero() {
		t.Errorf("Money(NaN) = %s, want 0", got)
	}
}

func TestGenerateID(t *testing.T) {
	a, b := utils.GenerateID("task"), utils.GenerateID("task")
	if a == b {
		t.Error("consecutive ids collided")
	}
	if a[:5] != "task_" {
		t.Errorf("id %q missing prefix", a)
	}
	if utils.GenerateID("") == "" {
		t.Error("empty prefix produced empty id")
	}
}

func TestMaxInt(t *testing.T) {
	if utils.MaxInt(2, 5) != 5 || utils.MaxInt(5, 2) != 5 {
		t.Error("MaxInt wrong")
	}
}
