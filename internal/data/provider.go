package data

import (
	"context"
)

// Provider supplies the aligned price panel and sector labels the scanner
// consumes. Fetching, cleaning and retrying against a market-data source is
// the provider's responsibility; the analytical pipeline only ever sees a
// validated panel.
type Provider interface {
	// FetchPanel returns an aligned, gap-free panel for the requested
	// symbols. Symbols with insufficient data may be dropped; the panel
	// preserves the requested ordering of those that survive.
	FetchPanel(ctx context.Context, symbols []string) (*Panel, error)

	// FetchSectors returns sector labels for the requested symbols,
	// defaulting to Unknown for instruments it cannot classify.
	FetchSectors(ctx context.Context, symbols []string) (SectorMap, error)
}
