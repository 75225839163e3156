package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	AlgoDecimals = 6 // ALGO has 6 decimals (microAlgos)
)

// MicroAlgosToAlgo converts microAlgos to ALGO string without float precision loss
func MicroAlgosToAlgo(micro uint64) string {
	return formatWithDecimals(micro, AlgoDecimals)
}

// AlgoToMicroAlgos converts ALGO string to microAlgos without float precision loss
func AlgoToMicroAlgos(algo string) (uint64, error) {
	return parseWithDecimals(algo, AlgoDecimals)
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(1000, 6) = "0.001000"
func formatWithDecimals(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)

	// Pad with leading zeros if needed
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("0.001", 6) = 1000
func parseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}

	whole, frac, hasPoint := strings.Cut(s, ".")
	if hasPoint && strings.Contains(frac, ".") {
		return 0, fmt.Errorf("invalid decimal format")
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid decimal format")
	}
	if len(frac) > decimals {
		return 0, fmt.Errorf("%s has more than %d decimal places", s, decimals)
	}

	// Pad fractional part to exact decimals
	frac += strings.Repeat("0", decimals-len(frac))

	return strconv.ParseUint(whole+frac, 10, 64)
}
