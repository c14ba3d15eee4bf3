// Package data provides the aligned price panel the scanner reads from and
// the providers that build it.
package data

import (
	"fmt"
	"time"

	"github.com/somewisecrack/omnispread/pkg/utils"
)

// Panel is an immutable set of aligned price series: every instrument shares
// the identical, strictly increasing timestamp index with no missing values.
// The alignment invariant is validated once at construction.
type Panel struct {
	times   []time.Time
	symbols []string
	values  map[string][]float64
}

// NewPanel validates and builds a panel. The symbols slice fixes iteration
// order; every symbol must have a fully finite series of the same length as
// times, and times must be strictly increasing.
func NewPanel(times []time.Time, symbols []string, series map[string][]float64) (*Panel, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("data: panel needs at least one symbol")
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("data: panel needs at least one timestamp")
	}
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return nil, fmt.Errorf("data: timestamps not strictly increasing at index %d", i)
		}
	}

	values := make(map[string][]float64, len(symbols))
	for _, sym := range symbols {
		s, ok := series[sym]
		if !ok {
			return nil, fmt.Errorf("data: no series for symbol %s", sym)
		}
		if len(s) != len(times) {
			return nil, fmt.Errorf("data: series %s length %d != index length %d", sym, len(s), len(times))
		}
		for i, v := range s {
			if !utils.IsFinite(v) {
				return nil, fmt.Errorf("data: series %s has non-finite value at index %d", sym, i)
			}
		}
		values[sym] = append([]float64(nil), s...)
	}

	return &Panel{
		times:   append([]time.Time(nil), times...),
		symbols: append([]string(nil), symbols...),
		values:  values,
	}, nil
}

// Len returns the number of observations.
func (p *Panel) Len() int { return len(p.times) }

// Symbols returns the instruments in panel order.
func (p *Panel) Symbols() []string {
	return append([]string(nil), p.symbols...)
}

// Times returns the timestamp index.
func (p *Panel) Times() []time.Time {
	return append([]time.Time(nil), p.times...)
}

// Series returns a copy of one instrument's price series.
func (p *Panel) Series(symbol string) ([]float64, bool) {
	s, ok := p.values[symbol]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), s...), true
}

// Pair is a read-only projection of a panel to two instruments.
type Pair struct {
	X, Y   string
	Times  []time.Time
	PX, PY []float64
}

// Pair projects the panel to two instruments. Rows where either value is
// non-finite are dropped; the panel invariant makes this a no-op in the
// normal case but projections stay safe against relaxed inputs.
func (p *Panel) Pair(x, y string) (*Pair, error) {
	sx, ok := p.values[x]
	if !ok {
		return nil, fmt.Errorf("data: unknown symbol %s", x)
	}
	sy, ok := p.values[y]
	if !ok {
		return nil, fmt.Errorf("data: unknown symbol %s", y)
	}

	pair := &Pair{X: x, Y: y}
	for i := range p.times {
		if !utils.IsFinite(sx[i]) || !utils.IsFinite(sy[i]) {
			continue
		}
		pair.Times = append(pair.Times, p.times[i])
		pair.PX = append(pair.PX, sx[i])
		pair.PY = append(pair.PY, sy[i])
	}
	return pair, nil
}

// Len returns the number of aligned observations in the pair.
func (p *Pair) Len() int { return len(p.Times) }

// Returns computes simple percentage returns for both legs, one entry per
// observation after the first.
func (p *Pair) Returns() (rx, ry []float64) {
	if len(p.PX) < 2 {
		return nil, nil
	}
	rx = make([]float64, len(p.PX)-1)
	ry = make([]float64, len(p.PY)-1)
	for i := 1; i < len(p.PX); i++ {
		rx[i-1] = pctChange(p.PX[i-1], p.PX[i])
		ry[i-1] = pctChange(p.PY[i-1], p.PY[i])
	}
	return rx, ry
}

func pctChange(prev, cur float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev
}
