// Package types provides the shared domain types for the pairs scanner.
package types

import (
	"github.com/shopspring/decimal"
)

// PassMethod identifies which cointegration test(s) a pair passed.
type PassMethod string

const (
	PassCADF     PassMethod = "CADF"
	PassJohansen PassMethod = "Johansen"
	PassBoth     PassMethod = "Both"
)

// ScanStatus represents the lifecycle state of a scan task.
type ScanStatus string

const (
	ScanProcessing ScanStatus = "processing"
	ScanCompleted  ScanStatus = "completed"
	ScanFailed     ScanStatus = "failed"
	ScanCancelled  ScanStatus = "cancelled"
	ScanNotFound   ScanStatus = "not_found"
)

// ZScorePoint is a single dated z-score observation for charting.
type ZScorePoint struct {
	Time  string  `json:"time"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// ScanRequest is the payload to start a scan.
type ScanRequest struct {
	Tickers []string `json:"tickers"`
	Preset  string   `json:"preset,omitempty"`
}

// ScanResult is the final immutable record for one cointegrated pair.
// Fields mirror what the frontend table and chart consume.
type ScanResult struct {
	Pair    string     `json:"pair"`
	Combo   string     `json:"combo"`
	Method  PassMethod `json:"method"`

	PriceCorr float64 `json:"price_corr"`
	ZScore    float64 `json:"z_score"`
	HalfLife  int     `json:"half_life"`

	MoveToMean decimal.Decimal `json:"move_to_mean"`
	ExpReturn  float64         `json:"exp_return"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Hurst      float64         `json:"hurst"`

	ProbProfit     float64 `json:"prob_profit"`
	ProbProfitLow  float64 `json:"prob_profit_low"`
	ProbProfitHigh float64 `json:"prob_profit_high"`

	SameSector string `json:"same_sector"` // "Yes"/"No"

	ExtremeZInHL           string          `json:"extreme_z_in_hl"` // "Yes"/"No"
	ExtremeZDetail         string          `json:"extreme_z_detail"`
	ProfitableSinceExtreme string          `json:"profitable_since_extreme"` // "Yes"/"No"/"N/A"
	PnLSinceExtreme        decimal.Decimal `json:"pnl_since_extreme"`

	HistoricalZScores []ZScorePoint `json:"historical_z_scores"`
}
