// Package utils provides utility functions shared across the scanner.
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// GenerateID generates a unique ID with optional prefix.
func GenerateID(prefix string) string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	id := hex.EncodeToString(bytes)
	if prefix != "" {
		return fmt.Sprintf("%s_%s", prefix, id)
	}
	return id
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	if !IsFinite(x) {
		return x
	}
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}

// SafeFloat returns x if it is finite, otherwise the fallback.
func SafeFloat(x, fallback float64) float64 {
	if IsFinite(x) {
		return x
	}
	return fallback
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Close reports whether a and b are equal within a relative-and-absolute
// tolerance, matching the usual numerical closeness check.
func Close(a, b float64) bool {
	const rtol, atol = 1e-5, 1e-8
	if !IsFinite(a) || !IsFinite(b) {
		return false
	}
	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}

// DisplaySymbol strips exchange suffixes so tickers read cleanly in
// trade instructions ("RELIANCE.NS" -> "RELIANCE").
func DisplaySymbol(symbol string) string {
	symbol = strings.TrimSuffix(symbol, ".NS")
	symbol = strings.TrimSuffix(symbol, ".BO")
	return symbol
}

// Money converts a float price into a two-place decimal for display.
func Money(x float64) decimal.Decimal {
	if !IsFinite(x) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(x).Round(2)
}

// MaxInt returns the larger of two ints.
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
