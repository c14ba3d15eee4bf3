package data

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
)

// maxMissingFrac is the largest fraction of missing rows a symbol may have
// before it is dropped from the panel.
const maxMissingFrac = 0.10

// fileBar is one row of a per-symbol JSON series on disk.
type fileBar struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// FileProvider loads daily close series from a directory containing one
// <SYMBOL>.json file per symbol plus an optional sectors.json map. Series
// are aligned on the union of dates, gaps are forward-filled then
// backward-filled, and symbols missing more than 10% of rows are dropped.
type FileProvider struct {
	logger *zap.Logger
	dir    string
}

// NewFileProvider creates a provider reading from dir.
func NewFileProvider(logger *zap.Logger, dir string) *FileProvider {
	return &FileProvider{logger: logger, dir: dir}
}

// FetchPanel implements Provider.
func (fp *FileProvider) FetchPanel(ctx context.Context, symbols []string) (*Panel, error) {
	raw := make(map[string]map[time.Time]float64, len(symbols))
	dateSet := make(map[time.Time]struct{})

	for _, sym := range symbols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bars, err := fp.readSeries(sym)
		if err != nil {
			fp.logger.Warn("skipping symbol", zap.String("symbol", sym), zap.Error(err))
			continue
		}
		byDate := make(map[time.Time]float64, len(bars))
		for _, b := range bars {
			t, err := time.Parse("2006-01-02", b.Date)
			if err != nil {
				return nil, fmt.Errorf("%s: bad date %q: %w", sym, b.Date, err)
			}
			if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) {
				continue
			}
			byDate[t] = b.Close
			dateSet[t] = struct{}{}
		}
		if len(byDate) > 0 {
			raw[sym] = byDate
		}
	}

	if len(raw) < 2 {
		return nil, fmt.Errorf("only %d usable symbols in %s, need at least 2", len(raw), fp.dir)
	}

	times := make([]time.Time, 0, len(dateSet))
	for t := range dateSet {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	kept := make([]string, 0, len(symbols))
	series := make(map[string][]float64, len(raw))
	for _, sym := range symbols {
		byDate, ok := raw[sym]
		if !ok {
			continue
		}
		missing := len(times) - len(byDate)
		if float64(missing) > maxMissingFrac*float64(len(times)) {
			fp.logger.Warn("dropping sparse symbol",
				zap.String("symbol", sym),
				zap.Int("missing", missing),
				zap.Int("rows", len(times)),
			)
			continue
		}
		vals := make([]float64, len(times))
		for i, t := range times {
			if v, ok := byDate[t]; ok {
				vals[i] = v
			} else {
				vals[i] = math.NaN()
			}
		}
		fillGaps(vals)
		kept = append(kept, sym)
		series[sym] = vals
	}

	if len(kept) < 2 {
		return nil, fmt.Errorf("fewer than 2 symbols survived alignment in %s", fp.dir)
	}

	fp.logger.Info("loaded price panel",
		zap.String("dir", fp.dir),
		zap.Int("symbols", len(kept)),
		zap.Int("rows", len(times)),
	)
	return NewPanel(times, kept, series)
}

// FetchSectors implements Provider. Symbols absent from sectors.json map to
// SectorUnknown; a missing file yields an empty map rather than an error.
func (fp *FileProvider) FetchSectors(ctx context.Context, symbols []string) (SectorMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(fp.dir, "sectors.json")
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return SectorMap{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var all SectorMap
	if err := json.Unmarshal(buf, &all); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	out := make(SectorMap, len(symbols))
	for _, sym := range symbols {
		if sec, ok := all[sym]; ok {
			out[sym] = sec
		}
	}
	return out, nil
}

func (fp *FileProvider) readSeries(symbol string) ([]fileBar, error) {
	path := filepath.Join(fp.dir, symbol+".json")
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var bars []fileBar
	if err := json.Unmarshal(buf, &bars); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return bars, nil
}

// fillGaps forward-fills NaN holes, then backward-fills any leading run.
func fillGaps(vals []float64) {
	last := math.NaN()
	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = last
		} else {
			last = v
		}
	}
	next := math.NaN()
	for i := len(vals) - 1; i >= 0; i-- {
		if math.IsNaN(vals[i]) {
			vals[i] = next
		} else {
			next = vals[i]
		}
	}
}
