// Package numeric holds the permissive number handling shared by the analyzer-output parsers.
// Malformed input never fails: it coerces to zero.
package numeric

import (
	"regexp"
	"strconv"
	"strings"
)

// leading numeric prefix, as accepted by the analyzers' own report readers
var numberPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// Parse returns the value of the longest numeric prefix of s after trimming
// surrounding whitespace. Non-numeric input yields 0.
func Parse(s string) float64 {
	m := numberPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// exponent overflow and the like
		return 0
	}
	return v
}

// ParseInt is Parse truncated toward zero.
func ParseInt(s string) int {
	return int(Parse(s))
}

// IsBlank reports whether s holds nothing but whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Format renders v in its shortest exact decimal form ("0.55", "1", "-12.5").
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
