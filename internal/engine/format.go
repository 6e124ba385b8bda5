package engine

import (
	"math"
	"strconv"
	"strings"
)

// Exponent notation kicks in outside [expLow, expHigh).
const (
	expLow  = 1e-6
	expHigh = 1e21
)

// formatNumber renders v with the fewest digits that round-trip, switching to
// exponent form for very large and very small magnitudes. Negative zero
// prints as "0".
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}

	abs := math.Abs(v)
	if abs >= expLow && abs < expHigh {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

// parseNumber reads a display string. Only finite decimal values parse.
func parseNumber(s string) (float64, bool) {
	if s == "" || strings.Trim(s, "0123456789.-+eE") != "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) {
		return 0, false
	}
	return v, true
}
