package data_test

import (
	"math"
	"testing"
	"time"

	"github.com/somewisecrack/omnispread/internal/data"
)

func day(i int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
}

func days(n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = day(i)
	}
	return out
}

func TestNewPanelValidation(t *testing.T) {
	times := days(3)
	good := map[string][]float64{
		"A": {1, 2, 3},
		"B": {4, 5, 6},
	}

	if _, err := data.NewPanel(times, []string{"A", "B"}, good); err != nil {
		t.Fatalf("valid panel rejected: %v", err)
	}

	cases := []struct {
		name    string
		times   []time.Time
		symbols []string
		series  map[string][]float64
	}{
		{"no symbols", times, nil, good},
		{"no timestamps", nil, []string{"A"}, good},
		{"missing series", times, []string{"A", "C"}, good},
		{"length mismatch", times, []string{"A"}, map[string][]float64{"A": {1, 2}}},
		{"non-finite value", times, []string{"A"}, map[string][]float64{"A": {1, math.NaN(), 3}}},
		{"unsorted times", []time.Time{day(1), day(0), day(2)}, []string{"A"}, good},
		{"duplicate times", []time.Time{day(0), day(0), day(1)}, []string{"A"}, good},
	}
	for _, tc := range cases {
		if _, err := data.NewPanel(tc.times, tc.symbols, tc.series); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestPanelImmutability(t *testing.T) {
	times := days(3)
	input := map[string][]float64{"A": {1, 2, 3}, "B": {4, 5, 6}}
	panel, err := data.NewPanel(times, []string{"A", "B"}, input)
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}

	// Mutating the input or an accessor copy must not leak into the panel.
	input["A"][0] = 99
	got, _ := panel.Series("A")
	if got[0] != 1 {
		t.Errorf("panel shares storage with constructor input")
	}
	got[1] = 99
	again, _ := panel.Series("A")
	if again[1] != 2 {
		t.Errorf("panel shares storage with accessor result")
	}

	syms := panel.Symbols()
	syms[0] = "Z"
	if panel.Symbols()[0] != "A" {
		t.Errorf("panel shares storage with Symbols result")
	}
}

func TestPairProjection(t *testing.T) {
	panel, err := data.NewPanel(days(4), []string{"A", "B", "C"}, map[string][]float64{
		"A": {1, 2, 3, 4},
		"B": {10, 20, 30, 40},
		"C": {5, 5, 5, 5},
	})
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}

	pair, err := panel.Pair("A", "B")
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if pair.Len() != 4 {
		t.Errorf("pair length = %d, want 4", pair.Len())
	}
	if pair.X != "A" || pair.Y != "B" {
		t.Errorf("pair symbols = %s/%s", pair.X, pair.Y)
	}

	rx, ry := pair.Returns()
	if len(rx) != 3 || len(ry) != 3 {
		t.Fatalf("returns length = %d/%d, want 3/3", len(rx), len(ry))
	}
	if math.Abs(rx[0]-1.0) > 1e-12 {
		t.Errorf("rx[0] = %v, want 1.0", rx[0])
	}
	if math.Abs(ry[1]-0.5) > 1e-12 {
		t.Errorf("ry[1] = %v, want 0.5", ry[1])
	}

	if _, err := panel.Pair("A", "Z"); err == nil {
		t.Error("expected error for unknown symbol")
	}
}

func TestSectorMapLookup(t *testing.T) {
	m := data.SectorMap{"AAPL": "Technology", "XOM": ""}
	if got := m.Lookup("AAPL"); got != "Technology" {
		t.Errorf("Lookup(AAPL) = %q", got)
	}
	if got := m.Lookup("XOM"); got != data.SectorUnknown {
		t.Errorf("Lookup of empty label = %q, want Unknown", got)
	}
	if got := m.Lookup("MISSING"); got != data.SectorUnknown {
		t.Errorf("Lookup(MISSING) = %q, want Unknown", got)
	}
	var nilMap data.SectorMap
	if got := nilMap.Lookup("X"); got != data.SectorUnknown {
		t.Errorf("nil map Lookup = %q, want Unknown", got)
	}
}
