package data

// SectorUnknown is the label used when no sector information is available.
const SectorUnknown = "Unknown"

// SectorMap maps instrument symbols to sector/industry labels.
type SectorMap map[string]string

// Lookup returns the sector for a symbol, defaulting to SectorUnknown.
func (m SectorMap) Lookup(symbol string) string {
	if m == nil {
		return SectorUnknown
	}
	if s, ok := m[symbol]; ok && s != "" {
		return s
	}
	return SectorUnknown
}
