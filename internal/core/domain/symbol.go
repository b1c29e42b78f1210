package domain

import (
	"regexp"
	"strings"
)

// Ticker symbols: 1-10 alphanumerics with an optional exchange or pair
// suffix, e.g. "AAPL", "BRK.B", "BTC-USD".
var symbolPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}([.-][A-Z0-9]{1,4})?$`)

// NormalizeSymbol trims and uppercases a raw ticker string.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidSymbol reports whether s is an acceptable ticker after normalization.
func ValidSymbol(s string) bool {
	return symbolPattern.MatchString(NormalizeSymbol(s))
}
