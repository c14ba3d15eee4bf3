// Package tracker annotates a screened pair with extreme-z context: whether
// the current reading is the most stretched value inside the trailing
// half-life window, and what entering at the last extremum instead would
// have earned or lost by now.
package tracker

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/somewisecrack/omnispread/internal/screener"
	"github.com/somewisecrack/omnispread/internal/stats"
	"github.com/somewisecrack/omnispread/pkg/types"
	"github.com/somewisecrack/omnispread/pkg/utils"
)

// Annotation is the tracker output for one pair. History always carries the
// full dated z-score series for charting; the remaining fields describe the
// window extremum.
type Annotation struct {
	AtExtreme       string // "Yes" or "No"
	Detail          string // "z (YYYY-MM-DD)" of the window extremum
	ProfitableSince string // "Yes", "No" or "N/A"
	PnLSince        float64
	History         []types.ZScorePoint
}

// Tracker computes extreme-z annotations.
type Tracker struct {
	logger *zap.Logger
}

// New creates a Tracker.
func New(logger *zap.Logger) *Tracker {
	return &Tracker{logger: logger}
}

// Annotate builds the z-score history and extremum annotation for a
// screened pair. The history standardizes every spread value against the
// half-life rolling window; entries where the window is incomplete or the
// value is non-finite are omitted.
func (tr *Tracker) Annotate(res *screener.Result) *Annotation {
	ann := &Annotation{
		AtExtreme:       "No",
		ProfitableSince: "N/A",
	}

	spread := res.Spread
	hl := res.HalfLife
	if !utils.IsFinite(res.ZScore) || hl < 1 || len(spread) < hl {
		return ann
	}

	mavg := stats.RollingMean(spread, hl, hl)
	mstd := stats.RollingStd(spread, hl, hl)

	allZ := make([]float64, len(spread))
	for i := range spread {
		allZ[i] = (spread[i] - mavg[i]) / mstd[i]
	}

	for i, z := range allZ {
		if utils.IsFinite(z) {
			ann.History = append(ann.History, types.ZScorePoint{
				Time:  res.Times[i].Format("2006-01-02"),
				Value: utils.Round(z, 2),
			})
		}
	}

	// Trailing half-life window of finite z values, with original indices
	// retained so the extremum maps back to a date and a spread level.
	windowStart := len(allZ) - hl
	var winIdx []int
	for i := windowStart; i < len(allZ); i++ {
		if utils.IsFinite(allZ[i]) {
			winIdx = append(winIdx, i)
		}
	}
	if len(winIdx) == 0 {
		return ann
	}

	currentZ := allZ[len(allZ)-1]
	extremum := math.Inf(-1)
	if currentZ <= 0 {
		extremum = math.Inf(1)
	}
	for _, i := range winIdx {
		if currentZ > 0 {
			extremum = math.Max(extremum, allZ[i])
		} else {
			extremum = math.Min(extremum, allZ[i])
		}
	}
	if utils.Close(currentZ, extremum) {
		ann.AtExtreme = "Yes"
	}
	if !utils.IsFinite(extremum) {
		return ann
	}

	extIdx := -1
	for _, i := range winIdx {
		if utils.Close(allZ[i], extremum) {
			extIdx = i
			break
		}
	}
	dateStr := "N/A"
	if extIdx >= 0 {
		dateStr = res.Times[extIdx].Format("2006-01-02")
	}
	ann.Detail = formatDetail(extremum, dateStr)

	if ann.AtExtreme == "No" && extIdx >= 0 {
		entrySign := 1.0
		if extremum > 0 {
			entrySign = -1.0
		}
		pnl := -entrySign * (spread[len(spread)-1] - spread[extIdx])
		ann.PnLSince = utils.Round(pnl, 2)
		if pnl > 0 {
			ann.ProfitableSince = "Yes"
		} else {
			ann.ProfitableSince = "No"
		}
	}
	return ann
}

func formatDetail(extremum float64, date string) string {
	return fmt.Sprintf("%v (%s)", utils.Round(extremum, 1), date)
}
